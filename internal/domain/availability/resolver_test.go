//go:build unit

package availability_test

import (
	"testing"

	"consultation-booking/internal/domain/availability"
	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/domain/slot"
	"consultation-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	// 2024-02-05 is a Monday
	monday := calendar.MustParseDate("2024-02-05")

	type want struct {
		window string
		booked bool
	}

	testCases := []struct {
		name     string
		slots    []*slot.Slot
		bookings []*booking.Booking
		expect   []want
	}{
		{name: "no slots", expect: []want{}},
		{
			name: "sorted by start time",
			slots: []*slot.Slot{
				builder.NewSlotBuilder().WithWindow("14:00", "15:00").BuildDomain(),
				builder.NewSlotBuilder().WithWindow("09:00", "10:00").BuildDomain(),
				builder.NewSlotBuilder().WithWindow("11:00", "12:00").BuildDomain(),
			},
			expect: []want{{"09:00-10:00", false}, {"11:00-12:00", false}, {"14:00-15:00", false}},
		},
		{
			name: "inactive and other weekday slots are skipped",
			slots: []*slot.Slot{
				builder.NewSlotBuilder().Inactive().BuildDomain(),
				builder.NewSlotBuilder().WithDay(2).WithWindow("10:00", "11:00").BuildDomain(),
				builder.NewSlotBuilder().WithWindow("12:00", "13:00").BuildDomain(),
			},
			expect: []want{{"12:00-13:00", false}},
		},
		{
			name: "identical windows from several slots are reported once",
			slots: []*slot.Slot{
				builder.NewSlotBuilder().BuildDomain(),
				builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) {
					b.RecurrenceType = slot.RecurrenceSpecificDates
					b.SpecificDates = []string{"2024-02-05"}
				}).BuildDomain(),
			},
			expect: []want{{"09:00-10:00", false}},
		},
		{
			name:     "live booking marks window booked",
			slots:    []*slot.Slot{builder.NewSlotBuilder().BuildDomain(), builder.NewSlotBuilder().WithWindow("10:00", "11:00").BuildDomain()},
			bookings: []*booking.Booking{builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).BuildReconstructed()},
			expect:   []want{{"09:00-10:00", true}, {"10:00-11:00", false}},
		},
		{
			name:     "cancelled booking leaves window open",
			slots:    []*slot.Slot{builder.NewSlotBuilder().BuildDomain()},
			bookings: []*booking.Booking{builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildReconstructed()},
			expect:   []want{{"09:00-10:00", false}},
		},
		{
			name: "expired weekly slot is skipped",
			slots: []*slot.Slot{builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) {
				end := "2024-02-04"
				b.EndDate = &end
			}).BuildDomain()},
			expect: []want{},
		},
		{
			name: "date range slot matches by weekday outside its range",
			slots: []*slot.Slot{builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) {
				start, end := "2023-01-02", "2023-01-02"
				b.RecurrenceType = slot.RecurrenceDateRange
				b.StartDate = &start
				b.EndDate = &end
			}).BuildDomain()},
			expect: []want{{"09:00-10:00", false}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := availability.Resolve(monday, tc.slots, tc.bookings)

			require.Len(t, got, len(tc.expect))
			for i, w := range tc.expect {
				assert.Equal(t, w.window, got[i].Window.String(), "window %d", i)
				assert.Equal(t, w.booked, got[i].IsBooked, "window %d", i)
			}
		})
	}
}

func TestFindAndHasAvailable(t *testing.T) {
	monday := calendar.MustParseDate("2024-02-05")
	windows := availability.Resolve(monday,
		[]*slot.Slot{builder.NewSlotBuilder().BuildDomain(), builder.NewSlotBuilder().WithWindow("10:00", "11:00").BuildDomain()},
		[]*booking.Booking{builder.NewBookingBuilder().BuildReconstructed()},
	)

	w, ok := availability.Find(windows, calendar.MustParseTimeOfDay("10:00"))
	require.True(t, ok)
	assert.False(t, w.IsBooked)

	_, ok = availability.Find(windows, calendar.MustParseTimeOfDay("10:30"))
	assert.False(t, ok)

	assert.True(t, availability.HasAvailable(windows))
	assert.False(t, availability.HasAvailable(windows[:1]))
	assert.False(t, availability.HasAvailable(nil))
}
