//go:build unit || e2e

package builder

import (
	"time"

	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/domain/slot"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	ID             uuid.UUID
	DayOfWeek      int
	StartTime      string
	EndTime        string
	RecurrenceType slot.RecurrenceType
	StartDate      *string
	EndDate        *string
	SpecificDates  []string
	IsActive       bool
	CreatedAt      time.Time
}

func NewSlotBuilder() *SlotBuilder {
	return &SlotBuilder{
		ID:             uuid.New(),
		DayOfWeek:      1,
		StartTime:      "09:00",
		EndTime:        "10:00",
		RecurrenceType: slot.RecurrenceWeekly,
		IsActive:       true,
		CreatedAt:      time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

func (b *SlotBuilder) WithDay(dow int) *SlotBuilder {
	b.DayOfWeek = dow
	return b
}

func (b *SlotBuilder) WithWindow(start, end string) *SlotBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *SlotBuilder) Inactive() *SlotBuilder {
	b.IsActive = false
	return b
}

func (b *SlotBuilder) BuildDraft() slot.Draft {
	d := slot.Draft{
		DayOfWeek:      b.DayOfWeek,
		Window:         calendar.MustParseTimeWindow(b.StartTime, b.EndTime),
		RecurrenceType: b.RecurrenceType,
	}
	if b.StartDate != nil {
		sd := calendar.MustParseDate(*b.StartDate)
		d.StartDate = &sd
	}
	if b.EndDate != nil {
		ed := calendar.MustParseDate(*b.EndDate)
		d.EndDate = &ed
	}
	for _, s := range b.SpecificDates {
		d.SpecificDates = append(d.SpecificDates, calendar.MustParseDate(s))
	}
	return d
}

func (b *SlotBuilder) BuildDomain() *slot.Slot {
	return slot.Reconstruct(b.ID, b.BuildDraft(), b.IsActive, b.CreatedAt, b.CreatedAt)
}
