package converter

import (
	"consultation-booking/internal/domain/settings"
	"consultation-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

var SettingsColumns = []string{
	"fee_amount_cents", "fee_currency", "duration_minutes", "is_active", "description", "updated_at",
}

type SettingsRow struct {
	FeeAmountCents  int64              `db:"fee_amount_cents"`
	FeeCurrency     string             `db:"fee_currency"`
	DurationMinutes int32              `db:"duration_minutes"`
	IsActive        bool               `db:"is_active"`
	Description     string             `db:"description"`
	UpdatedAt       pgtype.Timestamptz `db:"updated_at"`
}

func SettingsFromRow(row *SettingsRow) settings.Settings {
	return settings.Settings{
		FeeCents:        row.FeeAmountCents,
		Currency:        row.FeeCurrency,
		DurationMinutes: int(row.DurationMinutes),
		IsActive:        row.IsActive,
		Description:     row.Description,
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

var IdempotencyColumns = []string{
	"key", "user_id", "status", "request_hash", "booking_id", "expires_at",
}

type IdempotencyRow struct {
	Key         uuid.UUID          `db:"key"`
	UserID      uuid.UUID          `db:"user_id"`
	Status      string             `db:"status"`
	RequestHash string             `db:"request_hash"`
	BookingID   pgtype.UUID        `db:"booking_id"`
	ExpiresAt   pgtype.Timestamptz `db:"expires_at"`
}

func UUIDPtrFromPgtype(p pgtype.UUID) *uuid.UUID {
	if !p.Valid {
		return nil
	}
	id := uuid.UUID(p.Bytes)
	return &id
}
