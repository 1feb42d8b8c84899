package booking

import (
	"time"

	"consultation-booking/internal/domain/calendar"
)

const DefaultCancellationThreshold = 24 * time.Hour

type CancellationPolicy struct {
	Threshold time.Duration
	Location  *time.Location
}

func NewCancellationPolicy(threshold time.Duration, loc *time.Location) CancellationPolicy {
	if threshold <= 0 {
		threshold = DefaultCancellationThreshold
	}
	if loc == nil {
		loc = time.UTC
	}
	return CancellationPolicy{Threshold: threshold, Location: loc}
}

// CanCancel is true only while the start is strictly more than Threshold away.
func (p CancellationPolicy) CanCancel(b *Booking, now time.Time) bool {
	if b.status.IsTerminal() {
		return false
	}
	return b.StartsAt(p.Location).Sub(now) > p.Threshold
}

type slotKey struct {
	date  string
	start calendar.TimeOfDay
}

// ConflictChecker answers whether a (date, start time) pair is held by a live booking.
// It is a fast-path check; the storage layer enforces the same rule with a unique index.
type ConflictChecker struct {
	taken map[slotKey]struct{}
}

func NewConflictChecker(existing []*Booking) *ConflictChecker {
	taken := make(map[slotKey]struct{}, len(existing))
	for _, b := range existing {
		if b == nil || !b.status.IsLive() {
			continue
		}
		taken[slotKey{date: b.date.String(), start: b.window.Start}] = struct{}{}
	}
	return &ConflictChecker{taken: taken}
}

func (c *ConflictChecker) IsBooked(date calendar.Date, start calendar.TimeOfDay) bool {
	_, ok := c.taken[slotKey{date: date.String(), start: start}]
	return ok
}

func (c *ConflictChecker) Check(date calendar.Date, start calendar.TimeOfDay) error {
	if c.IsBooked(date, start) {
		return ErrSlotTaken
	}
	return nil
}
