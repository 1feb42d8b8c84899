package shared

import (
	"context"
	"time"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/settings"
	"consultation-booking/internal/domain/slot"
	"consultation-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Slots() SlotRepository
	Bookings() BookingRepository
	Settings() SettingsRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	DB() db.DBTX
}

type SlotRepository interface {
	ListActive(ctx context.Context, tx db.DBTX) ([]*slot.Slot, error)
	ListAll(ctx context.Context, tx db.DBTX) ([]*slot.Slot, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*slot.Slot, error)
	InsertBatch(ctx context.Context, tx db.DBTX, drafts []slot.Draft, now time.Time) (int, error)
	SetActive(ctx context.Context, tx db.DBTX, id uuid.UUID, active bool, now time.Time) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type BookingRepository interface {
	List(ctx context.Context, tx db.DBTX, filter BookingFilter) ([]*booking.Booking, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	// Insert fails with infra.KindDuplicateKey when a live booking already holds the slot.
	Insert(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error
}

type SettingsRepository interface {
	// Get fails with infra.KindNotFound until the settings are saved once.
	Get(ctx context.Context, tx db.DBTX) (settings.Settings, error)
	Upsert(ctx context.Context, tx db.DBTX, s settings.Settings) error
}

type IdempotencyRepository interface {
	// TryInsert claims key for userID. It reports false when an unexpired record already exists.
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt, now time.Time) (bool, error)
	Get(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) (*IdempotencyRecord, error)
	Complete(ctx context.Context, tx db.DBTX, key, userID, bookingID uuid.UUID) error
	Release(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) error
}

type NotificationRepository interface {
	Create(ctx context.Context, tx db.DBTX, n Notification) error
}
