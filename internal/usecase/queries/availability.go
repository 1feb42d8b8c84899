package queries

import (
	"context"
	"time"

	"consultation-booking/internal/domain/availability"
	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/domain/settings"
	"consultation-booking/internal/domain/slot"
	"consultation-booking/internal/pkg/clock"
	"consultation-booking/internal/pkg/config"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/usecase/shared"
)

// MaxCalendarSpanDays bounds ListOpenDates, both ends inclusive.
const MaxCalendarSpanDays = 62

type AvailabilityQueries interface {
	GetDay(ctx context.Context, date string) (*DayAvailabilityView, error)
	ListOpenDates(ctx context.Context, from, to string) ([]string, error)
}

type availabilityQueriesImpl struct {
	uow   shared.UnitOfWork
	loc   *time.Location
	clock clock.Clock
}

func NewAvailabilityQueries(uow shared.UnitOfWork, cfg config.BookingConfig, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow, loc: cfg.Location(), clock: clk}
}

func (q *availabilityQueriesImpl) GetDay(ctx context.Context, rawDate string) (*DayAvailabilityView, error) {
	date, err := calendar.ParseDate(rawDate)
	if err != nil {
		return nil, shared.Classify(err)
	}

	var (
		st       settings.Settings
		slots    []*slot.Slot
		bookings []*booking.Booking
	)
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var derr error
		if st, derr = shared.LoadSettings(ctx, tx); derr != nil {
			return derr
		}
		if !st.IsActive {
			return nil
		}
		if slots, derr = tx.Slots().ListActive(ctx, tx.DB()); derr != nil {
			return derr
		}
		bookings, derr = tx.Bookings().List(ctx, tx.DB(), shared.BookingFilter{
			Date:     &date,
			Statuses: booking.LiveStatuses(),
		})
		return derr
	})
	if err != nil {
		return nil, shared.Classify(err)
	}

	return buildDayView(date, st.IsActive, slots, bookings, q.clock.Now(), q.loc), nil
}

// ListOpenDates returns the dates in [from, to] that still have at least one bookable window.
// Dates before today are never returned.
func (q *availabilityQueriesImpl) ListOpenDates(ctx context.Context, rawFrom, rawTo string) ([]string, error) {
	from, err := calendar.ParseDate(rawFrom)
	if err != nil {
		return nil, shared.Classify(err)
	}
	to, err := calendar.ParseDate(rawTo)
	if err != nil {
		return nil, shared.Classify(err)
	}
	if to.Before(from) {
		return nil, errs.Mark(errs.New("calendar range end must not be before its start"), errs.ErrValidation)
	}
	if from.DaysUntil(to)+1 > MaxCalendarSpanDays {
		return nil, errs.Mark(errs.Newf("calendar range must not exceed %d days", MaxCalendarSpanDays), errs.ErrValidation)
	}

	now := q.clock.Now()
	today := calendar.DateOf(now.In(q.loc))
	if from.Before(today) {
		from = today
	}
	if to.Before(from) {
		return []string{}, nil
	}

	var (
		st       settings.Settings
		slots    []*slot.Slot
		bookings []*booking.Booking
	)
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var derr error
		if st, derr = shared.LoadSettings(ctx, tx); derr != nil {
			return derr
		}
		if !st.IsActive {
			return nil
		}
		if slots, derr = tx.Slots().ListActive(ctx, tx.DB()); derr != nil {
			return derr
		}
		bookings, derr = tx.Bookings().List(ctx, tx.DB(), shared.BookingFilter{
			From:     &from,
			To:       &to,
			Statuses: booking.LiveStatuses(),
		})
		return derr
	})
	if err != nil {
		return nil, shared.Classify(err)
	}

	dates := []string{}
	if !st.IsActive {
		return dates, nil
	}

	byDate := make(map[string][]*booking.Booking)
	for _, b := range bookings {
		key := b.Date().String()
		byDate[key] = append(byDate[key], b)
	}
	for d := from; !d.After(to); d = d.AddDays(1) {
		day := buildDayView(d, true, slots, byDate[d.String()], now, q.loc)
		for _, w := range day.Windows {
			if w.IsAvailable {
				dates = append(dates, d.String())
				break
			}
		}
	}
	return dates, nil
}

// buildDayView applies the presentation rules on top of the resolver: past dates and
// windows that already started are reported but never available.
func buildDayView(date calendar.Date, active bool, slots []*slot.Slot, bookings []*booking.Booking, now time.Time, loc *time.Location) *DayAvailabilityView {
	today := calendar.DateOf(now.In(loc))
	view := &DayAvailabilityView{
		Date:    date.String(),
		IsPast:  date.Before(today),
		Windows: []WindowView{},
	}
	if !active {
		return view
	}

	for _, w := range availability.Resolve(date, slots, bookings) {
		started := !date.At(w.Window.Start, loc).After(now)
		view.Windows = append(view.Windows, WindowView{
			StartTime:   w.Window.Start.String(),
			EndTime:     w.Window.End.String(),
			IsBooked:    w.IsBooked,
			IsAvailable: !w.IsBooked && !view.IsPast && !started,
		})
	}
	view.IsOffered = len(view.Windows) > 0
	return view
}
