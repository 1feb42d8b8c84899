package converter

import (
	"fmt"

	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/domain/slot"
	"consultation-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// SlotColumns is the column order shared by SlotRow and slot inserts.
var SlotColumns = []string{
	"id", "day_of_week", "start_time", "end_time", "is_active", "recurrence_type",
	"start_date", "end_date", "specific_dates", "created_at", "updated_at",
}

type SlotRow struct {
	ID             uuid.UUID          `db:"id"`
	DayOfWeek      int16              `db:"day_of_week"`
	StartTime      string             `db:"start_time"`
	EndTime        string             `db:"end_time"`
	IsActive       bool               `db:"is_active"`
	RecurrenceType string             `db:"recurrence_type"`
	StartDate      pgtype.Date        `db:"start_date"`
	EndDate        pgtype.Date        `db:"end_date"`
	SpecificDates  []pgtype.Date      `db:"specific_dates"`
	CreatedAt      pgtype.Timestamptz `db:"created_at"`
	UpdatedAt      pgtype.Timestamptz `db:"updated_at"`
}

func SlotFromRow(row *SlotRow) (*slot.Slot, error) {
	window, err := calendar.ParseTimeWindow(row.StartTime, row.EndTime)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", row.ID, err)
	}
	recurrence, err := slot.NewRecurrenceType(row.RecurrenceType)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", row.ID, err)
	}
	startDate, err := pgconv.DatePtrFromPgtype(row.StartDate)
	if err != nil {
		return nil, fmt.Errorf("slot %s start_date: %w", row.ID, err)
	}
	endDate, err := pgconv.DatePtrFromPgtype(row.EndDate)
	if err != nil {
		return nil, fmt.Errorf("slot %s end_date: %w", row.ID, err)
	}
	dates, err := pgconv.DatesFromPgtype(row.SpecificDates)
	if err != nil {
		return nil, fmt.Errorf("slot %s specific_dates: %w", row.ID, err)
	}

	draft := slot.Draft{
		DayOfWeek:      int(row.DayOfWeek),
		Window:         window,
		RecurrenceType: recurrence,
		StartDate:      startDate,
		EndDate:        endDate,
		SpecificDates:  dates,
	}
	return slot.Reconstruct(row.ID, draft, row.IsActive, pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt)), nil
}

// DraftToValues returns insert values in SlotColumns order.
func DraftToValues(id uuid.UUID, d slot.Draft, now pgtype.Timestamptz) []any {
	return []any{
		id,
		int16(d.DayOfWeek),
		d.Window.Start.String(),
		d.Window.End.String(),
		true,
		d.RecurrenceType.String(),
		pgconv.DatePtrToPgtype(d.StartDate),
		pgconv.DatePtrToPgtype(d.EndDate),
		pgconv.DatesToPgtype(d.SpecificDates),
		now,
		now,
	}
}
