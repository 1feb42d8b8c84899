package availability

import (
	"slices"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/domain/slot"
)

type OpenWindow struct {
	Window   calendar.TimeWindow
	IsBooked bool
}

// Resolve lists the windows offered on date, ordered by start then end time.
// Slots are matched on active flag and day of week only (see slot.OffersOn); identical
// windows contributed by several slots are reported once. A window is booked when a
// pending or confirmed booking holds the same date and start time.
func Resolve(date calendar.Date, slots []*slot.Slot, bookings []*booking.Booking) []OpenWindow {
	checker := booking.NewConflictChecker(bookings)

	seen := make(map[calendar.TimeWindow]struct{})
	windows := make([]OpenWindow, 0, len(slots))
	for _, s := range slots {
		if s == nil || !s.OffersOn(date) {
			continue
		}
		w := s.Window()
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		windows = append(windows, OpenWindow{
			Window:   w,
			IsBooked: checker.IsBooked(date, w.Start),
		})
	}

	slices.SortStableFunc(windows, func(a, b OpenWindow) int {
		return calendar.CompareWindows(a.Window, b.Window)
	})
	return windows
}

// Find returns the first offered window starting at start.
func Find(windows []OpenWindow, start calendar.TimeOfDay) (OpenWindow, bool) {
	for _, w := range windows {
		if w.Window.Start == start {
			return w, true
		}
	}
	return OpenWindow{}, false
}

// HasAvailable reports whether at least one window can still be booked.
func HasAvailable(windows []OpenWindow) bool {
	return slices.ContainsFunc(windows, func(w OpenWindow) bool { return !w.IsBooked })
}
