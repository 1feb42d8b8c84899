package queries

import (
	"time"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/settings"
	"consultation-booking/internal/domain/slot"

	"github.com/google/uuid"
)

// Roles carried by access tokens
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

type SettingsView struct {
	FeeCents        int64      `json:"fee_cents"`
	Currency        string     `json:"currency"`
	DurationMinutes int        `json:"duration_minutes"`
	IsActive        bool       `json:"is_active"`
	Description     string     `json:"description"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

func NewSettingsView(s settings.Settings) *SettingsView {
	v := &SettingsView{
		FeeCents:        s.FeeCents,
		Currency:        s.Currency,
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
		Description:     s.Description,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		v.UpdatedAt = &updatedAt
	}
	return v
}

type SlotView struct {
	ID             uuid.UUID `json:"id"`
	DayOfWeek      int       `json:"day_of_week"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	IsActive       bool      `json:"is_active"`
	RecurrenceType string    `json:"recurrence_type"`
	StartDate      *string   `json:"start_date,omitempty"`
	EndDate        *string   `json:"end_date,omitempty"`
	SpecificDates  []string  `json:"specific_dates,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewSlotView(s *slot.Slot) *SlotView {
	v := &SlotView{
		ID:             s.ID(),
		DayOfWeek:      s.DayOfWeek(),
		StartTime:      s.Window().Start.String(),
		EndTime:        s.Window().End.String(),
		IsActive:       s.IsActive(),
		RecurrenceType: s.RecurrenceType().String(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
	if d := s.StartDate(); d != nil {
		str := d.String()
		v.StartDate = &str
	}
	if d := s.EndDate(); d != nil {
		str := d.String()
		v.EndDate = &str
	}
	for _, d := range s.SpecificDates() {
		v.SpecificDates = append(v.SpecificDates, d.String())
	}
	return v
}

type WindowView struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsBooked    bool   `json:"is_booked"`
	IsAvailable bool   `json:"is_available"`
}

type DayAvailabilityView struct {
	Date      string       `json:"date"`
	IsPast    bool         `json:"is_past"`
	IsOffered bool         `json:"is_offered"`
	Windows   []WindowView `json:"windows"`
}

type BookingView struct {
	ID               uuid.UUID  `json:"id"`
	Reference        string     `json:"reference"`
	PlayerID         uuid.UUID  `json:"player_id"`
	BookingDate      string     `json:"booking_date"`
	StartTime        string     `json:"start_time"`
	EndTime          string     `json:"end_time"`
	StartsAt         time.Time  `json:"starts_at"`
	FeeCents         int64      `json:"fee_cents"`
	FeeCurrency      string     `json:"fee_currency"`
	PaymentMethod    string     `json:"payment_method"`
	PaymentReference *string    `json:"payment_reference,omitempty"`
	ProofRef         *string    `json:"proof_ref,omitempty"`
	PlayerNotes      *string    `json:"player_notes,omitempty"`
	AdminNotes       *string    `json:"admin_notes,omitempty"`
	MeetingLink      *string    `json:"meeting_link,omitempty"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	IsUpcoming       bool       `json:"is_upcoming"`
	CanCancel        bool       `json:"can_cancel"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy      *string    `json:"cancelled_by,omitempty"`
}

// NewBookingView derives IsUpcoming and CanCancel at now under policy.
func NewBookingView(b *booking.Booking, policy booking.CancellationPolicy, now time.Time) *BookingView {
	v := &BookingView{
		ID:               b.ID(),
		Reference:        b.Reference(),
		PlayerID:         b.PlayerID(),
		BookingDate:      b.Date().String(),
		StartTime:        b.StartTime().String(),
		EndTime:          b.EndTime().String(),
		StartsAt:         b.StartsAt(policy.Location),
		FeeCents:         b.Fee().AmountCents,
		FeeCurrency:      b.Fee().Currency,
		PaymentMethod:    b.PaymentMethod().String(),
		PaymentReference: b.PaymentReference(),
		ProofRef:         b.ProofRef(),
		PlayerNotes:      b.PlayerNotes(),
		AdminNotes:       b.AdminNotes(),
		MeetingLink:      b.MeetingLink(),
		Status:           b.Status().String(),
		PaymentStatus:    b.PaymentStatus().String(),
		IsUpcoming:       b.IsUpcoming(now, policy.Location),
		CanCancel:        policy.CanCancel(b, now),
		CreatedAt:        b.CreatedAt(),
		UpdatedAt:        b.UpdatedAt(),
		ConfirmedAt:      b.ConfirmedAt(),
		CancelledAt:      b.CancelledAt(),
	}
	if by := b.CancelledBy(); by != nil {
		s := string(*by)
		v.CancelledBy = &s
	}
	return v
}

type BookingPage struct {
	Bookings   []*BookingView `json:"bookings"`
	NextCursor *string        `json:"next_cursor,omitempty"`
}
