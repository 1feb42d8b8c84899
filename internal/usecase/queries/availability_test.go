//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/settings"
	"consultation-booking/internal/domain/slot"
	"consultation-booking/internal/infra/db"
	"consultation-booking/internal/pkg/clock"
	"consultation-booking/internal/pkg/config"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/usecase/queries"
	"consultation-booking/internal/usecase/shared"
	"consultation-booking/tests/common/builder"
	"consultation-booking/tests/common/uowtest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Monday 2024-02-05, 09:30 UTC.
var mondayMorning = time.Date(2024, 2, 5, 9, 30, 0, 0, time.UTC)

var activeSettings = settings.Settings{FeeCents: 5000, Currency: "USD", DurationMinutes: 60, IsActive: true}

func mondaySlots() []*slot.Slot {
	return []*slot.Slot{
		builder.NewSlotBuilder().WithDay(1).WithWindow("14:00", "15:00").BuildDomain(),
		builder.NewSlotBuilder().WithDay(1).WithWindow("09:00", "10:00").BuildDomain(),
		builder.NewSlotBuilder().WithDay(1).WithWindow("11:00", "12:00").BuildDomain(),
		builder.NewSlotBuilder().WithDay(1).WithWindow("11:00", "12:00").BuildDomain(),
	}
}

func TestAvailabilityQueries_GetDay(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewTestConfig().Booking

	t.Run("windows ordered, deduplicated and flagged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := uowtest.New(ctrl)
		q := queries.NewAvailabilityQueries(h.UoW, cfg, clock.NewMockClock(mondayMorning))

		taken := builder.NewBookingBuilder().WithSlot("2024-02-12", "14:00", "15:00").BuildReconstructed()
		h.Settings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeSettings, nil)
		h.Slots.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return(mondaySlots(), nil)
		h.Bookings.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, f shared.BookingFilter) ([]*booking.Booking, error) {
				assert.Equal(t, "2024-02-12", f.Date.String())
				assert.Equal(t, booking.LiveStatuses(), f.Statuses)
				return []*booking.Booking{taken}, nil
			})

		view, err := q.GetDay(ctx, "2024-02-12")

		require.NoError(t, err)
		expected := &queries.DayAvailabilityView{
			Date:      "2024-02-12",
			IsOffered: true,
			Windows: []queries.WindowView{
				{StartTime: "09:00", EndTime: "10:00", IsAvailable: true},
				{StartTime: "11:00", EndTime: "12:00", IsAvailable: true},
				{StartTime: "14:00", EndTime: "15:00", IsBooked: true},
			},
		}
		if diff := cmp.Diff(expected, view); diff != "" {
			t.Errorf("GetDay() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("today: started windows are not available", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := uowtest.New(ctrl)
		q := queries.NewAvailabilityQueries(h.UoW, cfg, clock.NewMockClock(mondayMorning))

		h.Settings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeSettings, nil)
		h.Slots.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return(mondaySlots(), nil)
		h.Bookings.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		view, err := q.GetDay(ctx, "2024-02-05")

		require.NoError(t, err)
		assert.False(t, view.IsPast)
		require.Len(t, view.Windows, 3)
		assert.False(t, view.Windows[0].IsAvailable)
		assert.False(t, view.Windows[0].IsBooked)
		assert.True(t, view.Windows[1].IsAvailable)
	})

	t.Run("past date reports every window unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := uowtest.New(ctrl)
		q := queries.NewAvailabilityQueries(h.UoW, cfg, clock.NewMockClock(mondayMorning))

		h.Settings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeSettings, nil)
		h.Slots.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return(mondaySlots(), nil)
		h.Bookings.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		view, err := q.GetDay(ctx, "2024-01-29")

		require.NoError(t, err)
		assert.True(t, view.IsPast)
		assert.True(t, view.IsOffered)
		for _, w := range view.Windows {
			assert.False(t, w.IsAvailable)
		}
	})

	t.Run("consultations disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := uowtest.New(ctrl)
		q := queries.NewAvailabilityQueries(h.UoW, cfg, clock.NewMockClock(mondayMorning))

		h.Settings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(settings.Default(), nil)

		view, err := q.GetDay(ctx, "2024-02-12")

		require.NoError(t, err)
		assert.False(t, view.IsOffered)
		assert.Empty(t, view.Windows)
	})

	t.Run("malformed date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := uowtest.New(ctrl)
		q := queries.NewAvailabilityQueries(h.UoW, cfg, clock.NewMockClock(mondayMorning))

		_, err := q.GetDay(ctx, "12-02-2024")

		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestAvailabilityQueries_ListOpenDates(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewTestConfig().Booking

	t.Run("only future dates with a free window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := uowtest.New(ctrl)
		q := queries.NewAvailabilityQueries(h.UoW, cfg, clock.NewMockClock(mondayMorning))

		single := []*slot.Slot{builder.NewSlotBuilder().WithDay(1).WithWindow("11:00", "12:00").BuildDomain()}
		fullyBooked := builder.NewBookingBuilder().WithSlot("2024-02-12", "11:00", "12:00").BuildReconstructed()
		h.Settings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeSettings, nil)
		h.Slots.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return(single, nil)
		h.Bookings.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, f shared.BookingFilter) ([]*booking.Booking, error) {
				assert.Equal(t, "2024-02-05", f.From.String())
				assert.Equal(t, "2024-02-29", f.To.String())
				return []*booking.Booking{fullyBooked}, nil
			})

		dates, err := q.ListOpenDates(ctx, "2024-01-01", "2024-02-29")

		require.NoError(t, err)
		assert.Equal(t, []string{"2024-02-05", "2024-02-19", "2024-02-26"}, dates)
	})

	t.Run("range validation", func(t *testing.T) {
		testCases := []struct {
			name     string
			from, to string
		}{
			{name: "reversed", from: "2024-03-01", to: "2024-02-01"},
			{name: "too long", from: "2024-02-05", to: "2024-04-07"},
			{name: "malformed", from: "2024-02-05", to: "soon"},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				h := uowtest.New(ctrl)
				q := queries.NewAvailabilityQueries(h.UoW, cfg, clock.NewMockClock(mondayMorning))

				_, err := q.ListOpenDates(ctx, tc.from, tc.to)

				assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
			})
		}
	})
}
