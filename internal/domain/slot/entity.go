package slot

import (
	"time"

	"consultation-booking/internal/domain/calendar"

	"github.com/google/uuid"
)

// Draft is an expanded slot that has not been persisted yet.
type Draft struct {
	DayOfWeek      int
	Window         calendar.TimeWindow
	RecurrenceType RecurrenceType
	StartDate      *calendar.Date
	EndDate        *calendar.Date
	SpecificDates  []calendar.Date
}

type Slot struct {
	id        uuid.UUID
	draft     Draft
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func Reconstruct(id uuid.UUID, draft Draft, isActive bool, createdAt, updatedAt time.Time) *Slot {
	return &Slot{
		id:        id,
		draft:     draft,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Slot) ID() uuid.UUID                  { return s.id }
func (s *Slot) DayOfWeek() int                 { return s.draft.DayOfWeek }
func (s *Slot) Window() calendar.TimeWindow    { return s.draft.Window }
func (s *Slot) RecurrenceType() RecurrenceType { return s.draft.RecurrenceType }
func (s *Slot) StartDate() *calendar.Date      { return s.draft.StartDate }
func (s *Slot) EndDate() *calendar.Date        { return s.draft.EndDate }
func (s *Slot) SpecificDates() []calendar.Date { return s.draft.SpecificDates }
func (s *Slot) IsActive() bool                 { return s.isActive }
func (s *Slot) CreatedAt() time.Time           { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time           { return s.updatedAt }
func (s *Slot) Draft() Draft                   { return s.draft }

// OffersOn reports whether the slot opens a window on date. Matching is by day of week;
// date_range and specific_dates boundaries are not re-checked. A weekly slot stops
// matching after its end date.
func (s *Slot) OffersOn(date calendar.Date) bool {
	if !s.isActive || s.draft.DayOfWeek != date.Weekday() {
		return false
	}
	if s.draft.RecurrenceType == RecurrenceWeekly && s.draft.EndDate != nil && s.draft.EndDate.Before(date) {
		return false
	}
	return true
}
