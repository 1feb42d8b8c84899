package response

import (
	"time"

	"consultation-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID               uuid.UUID  `json:"id"`
	Reference        string     `json:"reference"`
	PlayerID         uuid.UUID  `json:"playerId"`
	BookingDate      string     `json:"bookingDate"`
	StartTime        string     `json:"startTime"`
	EndTime          string     `json:"endTime"`
	StartsAt         time.Time  `json:"startsAt"`
	FeeCents         int64      `json:"feeCents"`
	FeeCurrency      string     `json:"feeCurrency"`
	PaymentMethod    string     `json:"paymentMethod"`
	PaymentReference *string    `json:"paymentReference,omitempty"`
	ProofRef         *string    `json:"proofRef,omitempty"`
	PlayerNotes      *string    `json:"playerNotes,omitempty"`
	AdminNotes       *string    `json:"adminNotes,omitempty"`
	MeetingLink      *string    `json:"meetingLink,omitempty"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"paymentStatus"`
	IsUpcoming       bool       `json:"isUpcoming"`
	CanCancel        bool       `json:"canCancel"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	ConfirmedAt      *time.Time `json:"confirmedAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy      *string    `json:"cancelledBy,omitempty"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return mustCopy[BookingResponse](v)
}

func FromBookingViews(vs []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(vs))
	for i, v := range vs {
		out[i] = FromBookingView(v)
	}
	return out
}

type BookingPageResponse struct {
	Bookings   []*BookingResponse `json:"bookings"`
	NextCursor *string            `json:"nextCursor,omitempty"`
}

func FromBookingPage(p *queries.BookingPage) *BookingPageResponse {
	return &BookingPageResponse{Bookings: FromBookingViews(p.Bookings), NextCursor: p.NextCursor}
}
