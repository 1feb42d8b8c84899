package converter

import (
	"fmt"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns is the column order shared by BookingRow and booking inserts.
var BookingColumns = []string{
	"id", "reference", "player_id", "booking_date", "start_time", "end_time",
	"fee_amount_cents", "fee_currency", "payment_method", "payment_reference", "proof_ref",
	"player_notes", "admin_notes", "meeting_link", "status", "payment_status",
	"created_at", "updated_at", "confirmed_at", "cancelled_at", "cancelled_by",
}

type BookingRow struct {
	ID               uuid.UUID          `db:"id"`
	Reference        string             `db:"reference"`
	PlayerID         uuid.UUID          `db:"player_id"`
	BookingDate      pgtype.Date        `db:"booking_date"`
	StartTime        string             `db:"start_time"`
	EndTime          string             `db:"end_time"`
	FeeAmountCents   int64              `db:"fee_amount_cents"`
	FeeCurrency      string             `db:"fee_currency"`
	PaymentMethod    string             `db:"payment_method"`
	PaymentReference pgtype.Text        `db:"payment_reference"`
	ProofRef         pgtype.Text        `db:"proof_ref"`
	PlayerNotes      pgtype.Text        `db:"player_notes"`
	AdminNotes       pgtype.Text        `db:"admin_notes"`
	MeetingLink      pgtype.Text        `db:"meeting_link"`
	Status           string             `db:"status"`
	PaymentStatus    string             `db:"payment_status"`
	CreatedAt        pgtype.Timestamptz `db:"created_at"`
	UpdatedAt        pgtype.Timestamptz `db:"updated_at"`
	ConfirmedAt      pgtype.Timestamptz `db:"confirmed_at"`
	CancelledAt      pgtype.Timestamptz `db:"cancelled_at"`
	CancelledBy      pgtype.Text        `db:"cancelled_by"`
}

func BookingFromRow(row *BookingRow) (*booking.Booking, error) {
	date, err := pgconv.DateFromPgtype(row.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("booking %s booking_date: %w", row.ID, err)
	}
	window, err := calendar.ParseTimeWindow(row.StartTime, row.EndTime)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", row.ID, err)
	}
	status, err := booking.NewStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", row.ID, err)
	}
	method, err := booking.NewPaymentMethod(row.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", row.ID, err)
	}
	paymentStatus := booking.PaymentStatus(row.PaymentStatus)
	if !paymentStatus.IsValid() {
		return nil, fmt.Errorf("booking %s: invalid payment status %q", row.ID, row.PaymentStatus)
	}

	var cancelledBy *booking.Actor
	if row.CancelledBy.Valid {
		a := booking.Actor(row.CancelledBy.String)
		cancelledBy = &a
	}

	return booking.Reconstruct(booking.ReconstructParams{
		ID:               row.ID,
		Reference:        row.Reference,
		PlayerID:         row.PlayerID,
		Date:             date,
		Window:           window,
		Fee:              booking.Fee{AmountCents: row.FeeAmountCents, Currency: row.FeeCurrency},
		PaymentMethod:    method,
		PaymentReference: pgconv.StringPtrFromPgtype(row.PaymentReference),
		ProofRef:         pgconv.StringPtrFromPgtype(row.ProofRef),
		PlayerNotes:      pgconv.StringPtrFromPgtype(row.PlayerNotes),
		AdminNotes:       pgconv.StringPtrFromPgtype(row.AdminNotes),
		MeetingLink:      pgconv.StringPtrFromPgtype(row.MeetingLink),
		Status:           status,
		PaymentStatus:    paymentStatus,
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
		ConfirmedAt:      pgconv.TimePtrFromPgtype(row.ConfirmedAt),
		CancelledAt:      pgconv.TimePtrFromPgtype(row.CancelledAt),
		CancelledBy:      cancelledBy,
	}), nil
}

// BookingToValues returns insert values in BookingColumns order.
func BookingToValues(b *booking.Booking) []any {
	return []any{
		b.ID(),
		b.Reference(),
		b.PlayerID(),
		pgconv.DateToPgtype(b.Date()),
		b.StartTime().String(),
		b.EndTime().String(),
		b.Fee().AmountCents,
		b.Fee().Currency,
		b.PaymentMethod().String(),
		pgconv.StringPtrToPgtype(b.PaymentReference()),
		pgconv.StringPtrToPgtype(b.ProofRef()),
		pgconv.StringPtrToPgtype(b.PlayerNotes()),
		pgconv.StringPtrToPgtype(b.AdminNotes()),
		pgconv.StringPtrToPgtype(b.MeetingLink()),
		b.Status().String(),
		b.PaymentStatus().String(),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
		pgconv.TimePtrToPgtype(b.ConfirmedAt()),
		pgconv.TimePtrToPgtype(b.CancelledAt()),
		actorToPgtype(b.CancelledBy()),
	}
}

func actorToPgtype(a *booking.Actor) pgtype.Text {
	if a == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: string(*a), Valid: true}
}
