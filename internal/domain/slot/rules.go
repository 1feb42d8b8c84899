package slot

import (
	"slices"

	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/pkg/errs"
)

var (
	ErrInvalidRecurrenceType = errs.New("recurrence type must be weekly, date_range or specific_dates")
	ErrNoTimeWindows         = errs.New("at least one time window is required")
	ErrNoDaysSelected        = errs.New("at least one day of week is required")
	ErrInvalidDayOfWeek      = errs.New("day of week must be between 0 (Sunday) and 6 (Saturday)")
	ErrMissingDateRange      = errs.New("date range requires both start and end dates")
	ErrInvalidDateRange      = errs.New("date range start must not be after its end")
	ErrNoDatesSelected       = errs.New("at least one specific date is required")
)

// Rule is an administrator availability rule that expands into slot drafts.
type Rule interface {
	Type() RecurrenceType
	expand(windows []calendar.TimeWindow) []Draft
}

type WeeklyRule struct {
	days    []int
	endDate *calendar.Date
}

// NewWeeklyRule normalizes days to an ascending set.
func NewWeeklyRule(days []int, endDate *calendar.Date) (WeeklyRule, error) {
	if len(days) == 0 {
		return WeeklyRule{}, ErrNoDaysSelected
	}
	set := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return WeeklyRule{}, ErrInvalidDayOfWeek
		}
		if !slices.Contains(set, d) {
			set = append(set, d)
		}
	}
	slices.Sort(set)
	return WeeklyRule{days: set, endDate: endDate}, nil
}

func (r WeeklyRule) Type() RecurrenceType { return RecurrenceWeekly }

func (r WeeklyRule) Days() []int { return slices.Clone(r.days) }

func (r WeeklyRule) EndDate() *calendar.Date { return r.endDate }

func (r WeeklyRule) expand(windows []calendar.TimeWindow) []Draft {
	drafts := make([]Draft, 0, len(r.days)*len(windows))
	for _, day := range r.days {
		for _, w := range windows {
			drafts = append(drafts, Draft{
				DayOfWeek:      day,
				Window:         w,
				RecurrenceType: RecurrenceWeekly,
				EndDate:        cloneDate(r.endDate),
			})
		}
	}
	return drafts
}

type DateRangeRule struct {
	start calendar.Date
	end   calendar.Date
}

func NewDateRangeRule(start, end calendar.Date) (DateRangeRule, error) {
	if start.IsZero() || end.IsZero() {
		return DateRangeRule{}, ErrMissingDateRange
	}
	if start.After(end) {
		return DateRangeRule{}, ErrInvalidDateRange
	}
	return DateRangeRule{start: start, end: end}, nil
}

func (r DateRangeRule) Type() RecurrenceType { return RecurrenceDateRange }

func (r DateRangeRule) Start() calendar.Date { return r.start }
func (r DateRangeRule) End() calendar.Date   { return r.end }

// One draft per calendar day and window, so N days x W windows drafts.
func (r DateRangeRule) expand(windows []calendar.TimeWindow) []Draft {
	if r.start.IsZero() || r.end.IsZero() || r.start.After(r.end) {
		return nil
	}
	var drafts []Draft
	for d := r.start; !d.After(r.end); d = d.AddDays(1) {
		for _, w := range windows {
			start, end := r.start, r.end
			drafts = append(drafts, Draft{
				DayOfWeek:      d.Weekday(),
				Window:         w,
				RecurrenceType: RecurrenceDateRange,
				StartDate:      &start,
				EndDate:        &end,
			})
		}
	}
	return drafts
}

type SpecificDatesRule struct {
	dates []calendar.Date
}

func NewSpecificDatesRule(dates []calendar.Date) (SpecificDatesRule, error) {
	if len(dates) == 0 {
		return SpecificDatesRule{}, ErrNoDatesSelected
	}
	for _, d := range dates {
		if d.IsZero() {
			return SpecificDatesRule{}, calendar.ErrInvalidDate
		}
	}
	return SpecificDatesRule{dates: slices.Clone(dates)}, nil
}

func (r SpecificDatesRule) Type() RecurrenceType { return RecurrenceSpecificDates }

func (r SpecificDatesRule) Dates() []calendar.Date { return slices.Clone(r.dates) }

// One draft per window carrying every date; the day of week is taken from the first date.
func (r SpecificDatesRule) expand(windows []calendar.TimeWindow) []Draft {
	if len(r.dates) == 0 {
		return nil
	}
	dow := r.dates[0].Weekday()
	drafts := make([]Draft, 0, len(windows))
	for _, w := range windows {
		drafts = append(drafts, Draft{
			DayOfWeek:      dow,
			Window:         w,
			RecurrenceType: RecurrenceSpecificDates,
			SpecificDates:  slices.Clone(r.dates),
		})
	}
	return drafts
}

// ValidateWindows checks the window list handed to Expand.
func ValidateWindows(windows []calendar.TimeWindow) error {
	if len(windows) == 0 {
		return ErrNoTimeWindows
	}
	for _, w := range windows {
		if !w.Start.Before(w.End) {
			return calendar.ErrInvalidTimeWindow
		}
	}
	return nil
}

func cloneDate(d *calendar.Date) *calendar.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
