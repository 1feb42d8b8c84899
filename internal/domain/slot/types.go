package slot

type RecurrenceType string

const (
	RecurrenceWeekly        RecurrenceType = "weekly"
	RecurrenceDateRange     RecurrenceType = "date_range"
	RecurrenceSpecificDates RecurrenceType = "specific_dates"
)

func (r RecurrenceType) String() string {
	return string(r)
}

func (r RecurrenceType) IsValid() bool {
	switch r {
	case RecurrenceWeekly, RecurrenceDateRange, RecurrenceSpecificDates:
		return true
	default:
		return false
	}
}

func NewRecurrenceType(s string) (RecurrenceType, error) {
	r := RecurrenceType(s)
	if !r.IsValid() {
		return "", ErrInvalidRecurrenceType
	}
	return r, nil
}
