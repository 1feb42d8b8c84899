package shared

import (
	"time"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/calendar"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Status      string
	RequestHash string
	BookingID   *uuid.UUID
	ExpiresAt   time.Time
}

// BookingFilter narrows a booking listing. Results are ordered by date then start time,
// newest first when Descending is set. AfterStart/AfterID continue a keyset page.
type BookingFilter struct {
	PlayerID   *uuid.UUID
	Statuses   []booking.Status
	Date       *calendar.Date
	From       *calendar.Date
	To         *calendar.Date
	Descending bool
	AfterStart *time.Time
	AfterID    uuid.UUID
	Limit      int
}

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Event     string
	Payload   []byte
	CreatedAt time.Time
}
