package repository

import (
	"context"

	"consultation-booking/internal/domain/settings"
	"consultation-booking/internal/infra"
	"consultation-booking/internal/infra/db"
	"consultation-booking/internal/infra/repository/converter"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/pkg/pgconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const settingsRowID = 1

type SettingsRepository struct{}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

func (r *SettingsRepository) Get(ctx context.Context, tx db.DBTX) (settings.Settings, error) {
	query, args, err := db.Psql.Select(converter.SettingsColumns...).
		From("consultation_settings").
		Where(sq.Eq{"id": settingsRowID}).
		ToSql()
	if err != nil {
		return settings.Settings{}, errs.Wrap(err, "failed to build settings query")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return settings.Settings{}, infra.WrapRepoErr("failed to get consultation settings", err)
	}
	rec, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[converter.SettingsRow])
	if err != nil {
		return settings.Settings{}, infra.WrapRepoErr("failed to get consultation settings", err)
	}
	return converter.SettingsFromRow(rec), nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, tx db.DBTX, s settings.Settings) error {
	query, args, err := upsertSettingsQuery(s)
	if err != nil {
		return errs.Wrap(err, "failed to build settings upsert")
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to save consultation settings", err)
	}
	return nil
}

func upsertSettingsQuery(s settings.Settings) (string, []any, error) {
	return db.Psql.Insert("consultation_settings").
		Columns(append([]string{"id"}, converter.SettingsColumns...)...).
		Values(settingsRowID, s.FeeCents, s.Currency, int32(s.DurationMinutes), s.IsActive, s.Description, pgconv.TimeToPgtype(s.UpdatedAt)).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			fee_amount_cents = EXCLUDED.fee_amount_cents,
			fee_currency = EXCLUDED.fee_currency,
			duration_minutes = EXCLUDED.duration_minutes,
			is_active = EXCLUDED.is_active,
			description = EXCLUDED.description,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
}
