package calendar

import (
	"fmt"
	"time"

	"consultation-booking/internal/pkg/errs"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrInvalidDate       = errs.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidTimeOfDay  = errs.New("time must be formatted as zero-padded HH:MM")
	ErrInvalidTimeWindow = errs.New("time window start must be before its end")
)

// Date is a civil calendar date. The zero value is not a valid date.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{t: t}, nil
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(fmt.Sprintf("calendar: invalid date %q", s))
	}
	return d
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) IsZero() bool { return d.t.IsZero() }

// Weekday uses 0 for Sunday through 6 for Saturday.
func (d Date) Weekday() int { return int(d.t.Weekday()) }

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

func (d Date) Compare(o Date) int { return d.t.Compare(o.t) }

// DaysUntil returns the number of calendar days from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return d.t }

// At combines the date with a time of day in loc.
func (d Date) At(tod TimeOfDay, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, day := d.t.Date()
	return time.Date(y, m, day, tod.Hour(), tod.Minute(), 0, 0, loc)
}

// TimeOfDay is a wall clock time with minute precision.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// ParseTimeOfDay accepts only the zero-padded 24h form, so "9:00" is rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != len(TimeLayout) || s[2] != ':' {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	hour, ok := twoDigits(s[0:2])
	if !ok {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	minute, ok := twoDigits(s[3:5])
	if !ok {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return NewTimeOfDay(hour, minute)
}

func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(fmt.Sprintf("calendar: invalid time of day %q", s))
	}
	return t
}

func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func (t TimeOfDay) Hour() int    { return t.minutes / 60 }
func (t TimeOfDay) Minute() int  { return t.minutes % 60 }
func (t TimeOfDay) Minutes() int { return t.minutes }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) Before(o TimeOfDay) bool { return t.minutes < o.minutes }

func (t TimeOfDay) Compare(o TimeOfDay) int {
	switch {
	case t.minutes < o.minutes:
		return -1
	case t.minutes > o.minutes:
		return 1
	default:
		return 0
	}
}

type TimeWindow struct {
	Start TimeOfDay
	End   TimeOfDay
}

func NewTimeWindow(start, end TimeOfDay) (TimeWindow, error) {
	if !start.Before(end) {
		return TimeWindow{}, ErrInvalidTimeWindow
	}
	return TimeWindow{Start: start, End: end}, nil
}

func ParseTimeWindow(start, end string) (TimeWindow, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return TimeWindow{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return TimeWindow{}, err
	}
	return NewTimeWindow(s, e)
}

func MustParseTimeWindow(start, end string) TimeWindow {
	w, err := ParseTimeWindow(start, end)
	if err != nil {
		panic(fmt.Sprintf("calendar: invalid time window %s-%s", start, end))
	}
	return w
}

func (w TimeWindow) Duration() time.Duration {
	return time.Duration(w.End.minutes-w.Start.minutes) * time.Minute
}

func (w TimeWindow) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// CompareWindows orders by start, then by end.
func CompareWindows(a, b TimeWindow) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	return a.End.Compare(b.End)
}
