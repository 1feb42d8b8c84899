package repository

import (
	"context"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/infra"
	"consultation-booking/internal/infra/db"
	"consultation-booking/internal/infra/repository/converter"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/pkg/pgconv"
	"consultation-booking/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func selectBookings() sq.SelectBuilder {
	return db.Psql.Select(converter.BookingColumns...).From("bookings")
}

func (r *BookingRepository) List(ctx context.Context, tx db.DBTX, filter shared.BookingFilter) ([]*booking.Booking, error) {
	query, args, err := listBookingsQuery(filter)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build bookings query")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[converter.BookingRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}

	bookings := make([]*booking.Booking, 0, len(records))
	for _, rec := range records {
		b, err := converter.BookingFromRow(rec)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode booking", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// listBookingsQuery orders by (booking_date, start_time, id) so the same tuple can
// serve as a keyset cursor.
func listBookingsQuery(f shared.BookingFilter) (string, []any, error) {
	b := selectBookings()

	if f.PlayerID != nil {
		b = b.Where(sq.Eq{"player_id": *f.PlayerID})
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = s.String()
		}
		b = b.Where(sq.Eq{"status": statuses})
	}
	if f.Date != nil {
		b = b.Where(sq.Eq{"booking_date": pgconv.DateToPgtype(*f.Date)})
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"booking_date": pgconv.DateToPgtype(*f.From)})
	}
	if f.To != nil {
		b = b.Where(sq.LtOrEq{"booking_date": pgconv.DateToPgtype(*f.To)})
	}

	dir, op := " ASC", ">"
	if f.Descending {
		dir, op = " DESC", "<"
	}
	if f.AfterStart != nil {
		at := f.AfterStart.UTC()
		start, err := calendar.NewTimeOfDay(at.Hour(), at.Minute())
		if err != nil {
			return "", nil, err
		}
		b = b.Where(
			sq.Expr("(booking_date, start_time, id) "+op+" (?, ?, ?)",
				pgconv.DateToPgtype(calendar.DateOf(at)), start.String(), f.AfterID),
		)
	}

	b = b.OrderBy("booking_date"+dir, "start_time"+dir, "id"+dir)
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	return b.ToSql()
}

func (r *BookingRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	return r.findOne(ctx, tx, selectBookings().Where(sq.Eq{"id": id}))
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	return r.findOne(ctx, tx, selectBookings().Where(sq.Eq{"id": id}).Suffix("FOR UPDATE"))
}

func (r *BookingRepository) findOne(ctx context.Context, tx db.DBTX, b sq.SelectBuilder) (*booking.Booking, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "failed to build booking query")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	rec, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[converter.BookingRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	res, err := converter.BookingFromRow(rec)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking", err)
	}
	return res, nil
}

func (r *BookingRepository) Insert(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	query, args, err := db.Psql.Insert("bookings").
		Columns(converter.BookingColumns...).
		Values(converter.BookingToValues(b)...).
		ToSql()
	if err != nil {
		return errs.Wrap(err, "failed to build booking insert")
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

// UpdateStatus persists the lifecycle fields a status or payment change can touch.
func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	var cancelledBy pgtype.Text
	if by := b.CancelledBy(); by != nil {
		cancelledBy = pgtype.Text{String: string(*by), Valid: true}
	}

	query, args, err := db.Psql.Update("bookings").
		Set("status", b.Status().String()).
		Set("payment_status", b.PaymentStatus().String()).
		Set("meeting_link", pgconv.StringPtrToPgtype(b.MeetingLink())).
		Set("admin_notes", pgconv.StringPtrToPgtype(b.AdminNotes())).
		Set("confirmed_at", pgconv.TimePtrToPgtype(b.ConfirmedAt())).
		Set("cancelled_at", pgconv.TimePtrToPgtype(b.CancelledAt())).
		Set("cancelled_by", cancelledBy).
		Set("updated_at", pgconv.TimeToPgtype(b.UpdatedAt())).
		Where(sq.Eq{"id": b.ID()}).
		ToSql()
	if err != nil {
		return errs.Wrap(err, "failed to build booking update")
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewNotFound("booking not found")
	}
	return nil
}
