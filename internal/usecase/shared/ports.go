package shared

import (
	"context"
	"time"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrLockNotAcquired         = errs.New("slot lock is held by another request")
	ErrMeetingCreationDisabled = errs.New("automatic meeting creation is not configured")
)

// Notification events
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingRejected  = "booking.rejected"
	EventBookingCompleted = "booking.completed"
)

type MeetingRequest struct {
	BookingID   uuid.UUID
	Reference   string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

type MeetingCreator interface {
	Enabled() bool
	CreateMeeting(ctx context.Context, req MeetingRequest) (string, error)
}

// Notifier delivers user-facing events. Callers treat it as fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, event string, payload map[string]any) error
}

// SlotLocker serializes booking attempts for one (date, start time) across instances.
// Acquire fails with ErrLockNotAcquired when another request holds the lock.
type SlotLocker interface {
	Acquire(ctx context.Context, date calendar.Date, start calendar.TimeOfDay) (release func(), err error)
}

// Labels passed to Metrics.BookingConflict
const (
	ConflictSlotNotOffered = "slot_not_offered"
	ConflictSlotBooked     = "slot_booked"
	ConflictLockContention = "lock_contention"
	ConflictUniqueIndex    = "unique_index"
)

type Metrics interface {
	BookingCreated()
	BookingConflict(reason string)
	BookingTransition(to booking.Status)
	SlotsCreated(n int)
}
