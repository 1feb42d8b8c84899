//go:build unit || e2e

// Package fakestore is an in-memory shared.UnitOfWork. Bookings keep the live-slot
// uniqueness of the bookings_live_slot_uniq index. There is no rollback.
package fakestore

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/settings"
	"consultation-booking/internal/domain/slot"
	"consultation-booking/internal/infra"
	"consultation-booking/internal/infra/db"
	"consultation-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type Store struct {
	mu            sync.Mutex
	slots         []*slot.Slot
	bookings      []*booking.Booking
	settings      *settings.Settings
	idempotency   map[[2]uuid.UUID]*shared.IdempotencyRecord
	notifications []shared.Notification
}

func New() *Store {
	return &Store{idempotency: make(map[[2]uuid.UUID]*shared.IdempotencyRecord)}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, s)
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, s)
}

func (s *Store) WithDB(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, s)
}

func (s *Store) Slots() shared.SlotRepository                 { return slotRepo{s} }
func (s *Store) Bookings() shared.BookingRepository           { return bookingRepo{s} }
func (s *Store) Settings() shared.SettingsRepository          { return settingsRepo{s} }
func (s *Store) Idempotency() shared.IdempotencyRepository    { return idempotencyRepo{s} }
func (s *Store) Notifications() shared.NotificationRepository { return notificationRepo{s} }
func (s *Store) DB() db.DBTX                                  { return nil }

// BookingCount returns how many stored bookings have one of statuses, or all of them.
func (s *Store) BookingCount(statuses ...booking.Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if len(statuses) == 0 || slices.Contains(statuses, b.Status()) {
			n++
		}
	}
	return n
}

type slotRepo struct{ s *Store }

func (r slotRepo) ListActive(context.Context, db.DBTX) ([]*slot.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*slot.Slot
	for _, sl := range r.s.slots {
		if sl.IsActive() {
			out = append(out, sl)
		}
	}
	return out, nil
}

func (r slotRepo) ListAll(context.Context, db.DBTX) ([]*slot.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return slices.Clone(r.s.slots), nil
}

func (r slotRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*slot.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if i := r.index(id); i >= 0 {
		return r.s.slots[i], nil
	}
	return nil, infra.NewNotFound("slot not found")
}

func (r slotRepo) InsertBatch(_ context.Context, _ db.DBTX, drafts []slot.Draft, now time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range drafts {
		r.s.slots = append(r.s.slots, slot.Reconstruct(uuid.New(), d, true, now, now))
	}
	return len(drafts), nil
}

func (r slotRepo) SetActive(_ context.Context, _ db.DBTX, id uuid.UUID, active bool, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return infra.NewNotFound("slot not found")
	}
	old := r.s.slots[i]
	r.s.slots[i] = slot.Reconstruct(id, old.Draft(), active, old.CreatedAt(), now)
	return nil
}

func (r slotRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return infra.NewNotFound("slot not found")
	}
	r.s.slots = slices.Delete(r.s.slots, i, i+1)
	return nil
}

func (r slotRepo) index(id uuid.UUID) int {
	return slices.IndexFunc(r.s.slots, func(sl *slot.Slot) bool { return sl.ID() == id })
}

type bookingRepo struct{ s *Store }

func (r bookingRepo) List(_ context.Context, _ db.DBTX, f shared.BookingFilter) ([]*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*booking.Booking
	for _, b := range r.s.bookings {
		if matches(b, f) {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b *booking.Booking) int {
		c := cmp.Or(a.StartsAt(time.UTC).Compare(b.StartsAt(time.UTC)), cmp.Compare(a.ID().String(), b.ID().String()))
		if f.Descending {
			return -c
		}
		return c
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func matches(b *booking.Booking, f shared.BookingFilter) bool {
	switch {
	case f.PlayerID != nil && b.PlayerID() != *f.PlayerID:
		return false
	case len(f.Statuses) > 0 && !slices.Contains(f.Statuses, b.Status()):
		return false
	case f.Date != nil && !b.Date().Equal(*f.Date):
		return false
	case f.From != nil && b.Date().Before(*f.From):
		return false
	case f.To != nil && b.Date().After(*f.To):
		return false
	}
	if f.AfterStart != nil {
		at := b.StartsAt(time.UTC)
		if at.Before(*f.AfterStart) || (at.Equal(*f.AfterStart) && b.ID().String() <= f.AfterID.String()) {
			return false
		}
	}
	return true
}

func (r bookingRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if i := r.index(id); i >= 0 {
		return r.s.bookings[i], nil
	}
	return nil, infra.NewNotFound("booking not found")
}

func (r bookingRepo) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	return r.FindByID(ctx, tx, id)
}

func (r bookingRepo) Insert(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b.Status().IsLive() {
		for _, other := range r.s.bookings {
			if other.Status().IsLive() && other.Date().Equal(b.Date()) && other.StartTime() == b.StartTime() {
				return infra.WrapRepoErr("failed to insert booking", &pgconn.PgError{
					Code:           "23505",
					Message:        "duplicate key value violates unique constraint",
					ConstraintName: shared.LiveSlotConstraint,
				})
			}
		}
	}
	r.s.bookings = append(r.s.bookings, b)
	return nil
}

func (r bookingRepo) UpdateStatus(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.index(b.ID())
	if i < 0 {
		return infra.NewNotFound("booking not found")
	}
	r.s.bookings[i] = b
	return nil
}

func (r bookingRepo) index(id uuid.UUID) int {
	return slices.IndexFunc(r.s.bookings, func(b *booking.Booking) bool { return b.ID() == id })
}

type settingsRepo struct{ s *Store }

func (r settingsRepo) Get(context.Context, db.DBTX) (settings.Settings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.settings == nil {
		return settings.Settings{}, infra.NewNotFound("consultation settings not found")
	}
	return *r.s.settings, nil
}

func (r settingsRepo) Upsert(_ context.Context, _ db.DBTX, st settings.Settings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings = &st
	return nil
}

type idempotencyRepo struct{ s *Store }

func (r idempotencyRepo) TryInsert(_ context.Context, _ db.DBTX, key, userID uuid.UUID, hash string, expiresAt, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.idempotency[[2]uuid.UUID{key, userID}]; ok && rec.ExpiresAt.After(now) {
		return false, nil
	}
	r.s.idempotency[[2]uuid.UUID{key, userID}] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: hash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) Get(_ context.Context, _ db.DBTX, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.idempotency[[2]uuid.UUID{key, userID}]
	if !ok {
		return nil, infra.NewNotFound("idempotency key not found")
	}
	cp := *rec
	return &cp, nil
}

func (r idempotencyRepo) Complete(_ context.Context, _ db.DBTX, key, userID, bookingID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.idempotency[[2]uuid.UUID{key, userID}]
	if !ok {
		return infra.NewNotFound("idempotency key not found")
	}
	rec.Status = shared.IdempotencyStatusCompleted
	rec.BookingID = &bookingID
	return nil
}

func (r idempotencyRepo) Release(_ context.Context, _ db.DBTX, key, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.idempotency, [2]uuid.UUID{key, userID})
	return nil
}

type notificationRepo struct{ s *Store }

func (r notificationRepo) Create(_ context.Context, _ db.DBTX, n shared.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications = append(r.s.notifications, n)
	return nil
}
