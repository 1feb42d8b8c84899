//go:build unit

package calendar_test

import (
	"testing"
	"time"

	"consultation-booking/internal/domain/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		weekday int
		wantErr bool
	}{
		{name: "sunday", input: "2024-01-07", want: "2024-01-07", weekday: 0},
		{name: "leap day", input: "2024-02-29", want: "2024-02-29", weekday: 4},
		{name: "saturday", input: "2024-03-02", want: "2024-03-02", weekday: 6},
		{name: "not a leap year", input: "2023-02-29", wantErr: true},
		{name: "missing padding", input: "2024-1-07", wantErr: true},
		{name: "with time suffix", input: "2024-01-07T00:00:00Z", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := calendar.ParseDate(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, calendar.ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.String())
			assert.Equal(t, tc.weekday, d.Weekday())
		})
	}
}

func TestDate_Arithmetic(t *testing.T) {
	d := calendar.MustParseDate("2024-02-28")

	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, 2, d.DaysUntil(d.AddDays(2)))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.True(t, d.Equal(calendar.NewDate(2024, time.February, 28)))
	assert.Equal(t, -1, d.Compare(d.AddDays(1)))
	assert.Equal(t, "", calendar.Date{}.String())
}

func TestDateOf(t *testing.T) {
	lagos, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)

	// 23:30 UTC is already the next day in Lagos (UTC+1)
	instant := time.Date(2024, 5, 10, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-10", calendar.DateOf(instant).String())
	assert.Equal(t, "2024-05-11", calendar.DateOf(instant.In(lagos)).String())
}

func TestDate_At(t *testing.T) {
	d := calendar.MustParseDate("2024-05-10")
	tod := calendar.MustParseTimeOfDay("14:30")

	assert.Equal(t, time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC), d.At(tod, nil))

	loc := time.FixedZone("UTC+2", 2*60*60)
	at := d.At(tod, loc)
	assert.Equal(t, time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC), at.UTC())
}

func TestParseTimeOfDay(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		minutes int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", minutes: 0},
		{name: "morning", input: "09:05", minutes: 9*60 + 5},
		{name: "last minute", input: "23:59", minutes: 23*60 + 59},
		{name: "unpadded hour", input: "9:00", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "seconds suffix", input: "10:00:00", wantErr: true},
		{name: "wrong separator", input: "10.00", wantErr: true},
		{name: "non digits", input: "ab:cd", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := calendar.ParseTimeOfDay(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, calendar.ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.minutes, got.Minutes())
			assert.Equal(t, tc.input, got.String())
		})
	}
}

func TestTimeWindow(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		w, err := calendar.ParseTimeWindow("09:00", "10:30")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, w.Duration())
		assert.Equal(t, "09:00-10:30", w.String())
	})

	t.Run("empty window rejected", func(t *testing.T) {
		_, err := calendar.ParseTimeWindow("09:00", "09:00")
		require.ErrorIs(t, err, calendar.ErrInvalidTimeWindow)
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		_, err := calendar.ParseTimeWindow("10:00", "09:00")
		require.ErrorIs(t, err, calendar.ErrInvalidTimeWindow)
	})

	t.Run("bad time propagates", func(t *testing.T) {
		_, err := calendar.ParseTimeWindow("9:00", "10:00")
		require.ErrorIs(t, err, calendar.ErrInvalidTimeOfDay)
	})

	t.Run("ordering by start then end", func(t *testing.T) {
		a := calendar.MustParseTimeWindow("09:00", "10:00")
		b := calendar.MustParseTimeWindow("09:00", "11:00")
		c := calendar.MustParseTimeWindow("08:00", "12:00")

		assert.Equal(t, -1, calendar.CompareWindows(a, b))
		assert.Equal(t, 1, calendar.CompareWindows(a, c))
		assert.Equal(t, 0, calendar.CompareWindows(a, a))
	})
}
