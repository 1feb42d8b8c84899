package slot

import "consultation-booking/internal/domain/calendar"

// Expand turns a rule and its time windows into unpersisted drafts.
// Inputs are validated by the rule constructors and ValidateWindows; Expand itself
// does not validate and returns no drafts for degenerate input.
func Expand(rule Rule, windows []calendar.TimeWindow) []Draft {
	if rule == nil || len(windows) == 0 {
		return nil
	}
	return rule.expand(windows)
}

type dedupKey struct {
	dayOfWeek      int
	start          calendar.TimeOfDay
	end            calendar.TimeOfDay
	recurrenceType RecurrenceType
	startDate      string
	endDate        string
}

func keyOf(d Draft) dedupKey {
	return dedupKey{
		dayOfWeek:      d.DayOfWeek,
		start:          d.Window.Start,
		end:            d.Window.End,
		recurrenceType: d.RecurrenceType,
		startDate:      dateKey(d.StartDate),
		endDate:        dateKey(d.EndDate),
	}
}

func dateKey(d *calendar.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// Dedup keeps the first draft of every (dayOfWeek, start, end, recurrenceType, startDate, endDate)
// key in input order. SpecificDates is not part of the key.
func Dedup(drafts []Draft) []Draft {
	seen := make(map[dedupKey]struct{}, len(drafts))
	out := make([]Draft, 0, len(drafts))
	for _, d := range drafts {
		k := keyOf(d)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	return out
}
