package queries

import (
	"context"
	"strings"
	"time"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/pkg/clock"
	"consultation-booking/internal/pkg/config"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Scopes accepted by ListMine
const (
	ScopeUpcoming = "upcoming"
	ScopePast     = "past"
	ScopeAll      = "all"
)

var ErrInvalidScope = errs.New("scope must be upcoming, past or all")

// AdminBookingFilter is the raw admin listing filter. Statuses may be comma separated.
type AdminBookingFilter struct {
	Status   string
	From     string
	To       string
	PlayerID *uuid.UUID
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*BookingView, error)
	ListMine(ctx context.Context, playerID uuid.UUID, scope string) ([]*BookingView, error)
	ListAll(ctx context.Context, filter AdminBookingFilter, cursor *Cursor, limit int) (*BookingPage, error)
}

type bookingQueriesImpl struct {
	uow    shared.UnitOfWork
	policy booking.CancellationPolicy
	clock  clock.Clock
}

func NewBookingQueries(uow shared.UnitOfWork, cfg config.BookingConfig, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		uow:    uow,
		policy: booking.NewCancellationPolicy(cfg.CancellationThreshold, cfg.Location()),
		clock:  clk,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*BookingView, error) {
	b, err := q.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != RoleAdmin && !b.IsOwnedBy(actorID) {
		return nil, errs.Mark(booking.ErrNotOwner, errs.ErrForbidden)
	}
	return NewBookingView(b, q.policy, q.clock.Now()), nil
}

func (q *bookingQueriesImpl) find(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var b *booking.Booking
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var derr error
		b, derr = tx.Bookings().FindByID(ctx, tx.DB(), id)
		return derr
	})
	if err != nil {
		return nil, shared.Classify(err)
	}
	return b, nil
}

// ListMine lists a player's bookings. Upcoming runs soonest first; past and all run
// most recent first.
func (q *bookingQueriesImpl) ListMine(ctx context.Context, playerID uuid.UUID, scope string) ([]*BookingView, error) {
	if scope == "" {
		scope = ScopeUpcoming
	}
	if scope != ScopeUpcoming && scope != ScopePast && scope != ScopeAll {
		return nil, errs.Mark(ErrInvalidScope, errs.ErrValidation)
	}

	filter := shared.BookingFilter{PlayerID: &playerID, Descending: scope != ScopeUpcoming}
	var list []*booking.Booking
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var derr error
		list, derr = tx.Bookings().List(ctx, tx.DB(), filter)
		return derr
	})
	if err != nil {
		return nil, shared.Classify(err)
	}

	now := q.clock.Now()
	views := make([]*BookingView, 0, len(list))
	for _, b := range list {
		upcoming := b.IsUpcoming(now, q.policy.Location)
		if (scope == ScopeUpcoming && !upcoming) || (scope == ScopePast && upcoming) {
			continue
		}
		views = append(views, NewBookingView(b, q.policy, now))
	}
	return views, nil
}

// ListAll pages through every booking in (date, start time, id) order.
func (q *bookingQueriesImpl) ListAll(ctx context.Context, f AdminBookingFilter, cursor *Cursor, limit int) (*BookingPage, error) {
	filter, err := buildAdminFilter(f)
	if err != nil {
		return nil, shared.Classify(err)
	}
	if cursor != nil && cursor.After != "" {
		afterStart, afterID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, derr
		}
		filter.AfterStart = &afterStart
		filter.AfterID = afterID
	}
	limit = ValidateLimit(limit)
	filter.Limit = limit + 1

	var list []*booking.Booking
	err = q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var derr error
		list, derr = tx.Bookings().List(ctx, tx.DB(), filter)
		return derr
	})
	if err != nil {
		return nil, shared.Classify(err)
	}

	page := &BookingPage{Bookings: make([]*BookingView, 0, min(len(list), limit))}
	if len(list) > limit {
		last := list[limit-1]
		next := EncodeAfterCursor(last.StartsAt(time.UTC), last.ID())
		page.NextCursor = &next
		list = list[:limit]
	}

	now := q.clock.Now()
	for _, b := range list {
		page.Bookings = append(page.Bookings, NewBookingView(b, q.policy, now))
	}
	return page, nil
}

func buildAdminFilter(f AdminBookingFilter) (shared.BookingFilter, error) {
	filter := shared.BookingFilter{PlayerID: f.PlayerID}
	if f.Status != "" {
		for _, raw := range strings.Split(f.Status, ",") {
			s, err := booking.NewStatus(strings.TrimSpace(raw))
			if err != nil {
				return shared.BookingFilter{}, err
			}
			filter.Statuses = append(filter.Statuses, s)
		}
	}
	if f.From != "" {
		from, err := calendar.ParseDate(f.From)
		if err != nil {
			return shared.BookingFilter{}, err
		}
		filter.From = &from
	}
	if f.To != "" {
		to, err := calendar.ParseDate(f.To)
		if err != nil {
			return shared.BookingFilter{}, err
		}
		filter.To = &to
	}
	return filter, nil
}
