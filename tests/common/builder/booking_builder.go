//go:build unit || e2e

package builder

import (
	"time"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/calendar"
	reqdto "consultation-booking/internal/handler/dto/request"
	"consultation-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID               uuid.UUID
	Reference        string
	PlayerID         uuid.UUID
	Date             string
	StartTime        string
	EndTime          string
	FeeCents         int64
	Currency         string
	PaymentMethod    booking.PaymentMethod
	PaymentReference *string
	PlayerNotes      *string
	MeetingLink      *string
	Status           booking.Status
	PaymentStatus    booking.PaymentStatus
	CreatedAt        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	ref := "TRX-2024-0001"
	return &BookingBuilder{
		ID:               uuid.New(),
		Reference:        "CB-7K3M9QXA",
		PlayerID:         uuid.New(),
		Date:             "2024-02-05",
		StartTime:        "09:00",
		EndTime:          "10:00",
		FeeCents:         5000,
		Currency:         "USD",
		PaymentMethod:    booking.PaymentMethodBankTransfer,
		PaymentReference: &ref,
		Status:           booking.StatusPending,
		PaymentStatus:    booking.PaymentPending,
		CreatedAt:        time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithSlot(date, start, end string) *BookingBuilder {
	b.Date = date
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithPlayer(id uuid.UUID) *BookingBuilder {
	b.PlayerID = id
	return b
}

// BuildDomain goes through booking.New, so the result is always pending.
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	window, err := calendar.ParseTimeWindow(b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	date, err := calendar.ParseDate(b.Date)
	if err != nil {
		return nil, err
	}
	return booking.New(booking.NewParams{
		PlayerID:         b.PlayerID,
		Date:             date,
		Window:           window,
		Fee:              booking.Fee{AmountCents: b.FeeCents, Currency: b.Currency},
		PaymentMethod:    b.PaymentMethod,
		PaymentReference: b.PaymentReference,
		PlayerNotes:      b.PlayerNotes,
	}, b.CreatedAt)
}

// BuildReconstructed keeps the configured status, as if loaded from storage.
func (b *BookingBuilder) BuildReconstructed() *booking.Booking {
	var confirmedAt *time.Time
	if b.Status == booking.StatusConfirmed || b.Status == booking.StatusCompleted {
		t := b.CreatedAt.Add(time.Hour)
		confirmedAt = &t
		if b.MeetingLink == nil {
			link := "https://meet.google.com/abc-defg-hij"
			b.MeetingLink = &link
		}
		if b.PaymentStatus == booking.PaymentPending {
			b.PaymentStatus = booking.PaymentCompleted
		}
	}
	return booking.Reconstruct(booking.ReconstructParams{
		ID:               b.ID,
		Reference:        b.Reference,
		PlayerID:         b.PlayerID,
		Date:             calendar.MustParseDate(b.Date),
		Window:           calendar.MustParseTimeWindow(b.StartTime, b.EndTime),
		Fee:              booking.Fee{AmountCents: b.FeeCents, Currency: b.Currency},
		PaymentMethod:    b.PaymentMethod,
		PaymentReference: b.PaymentReference,
		PlayerNotes:      b.PlayerNotes,
		MeetingLink:      b.MeetingLink,
		Status:           b.Status,
		PaymentStatus:    b.PaymentStatus,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
		ConfirmedAt:      confirmedAt,
	})
}

// BuildView is the read model handlers receive from the use cases.
func (b *BookingBuilder) BuildView() *queries.BookingView {
	startsAt, _ := time.Parse("2006-01-02 15:04", b.Date+" "+b.StartTime)
	return &queries.BookingView{
		ID:               b.ID,
		Reference:        b.Reference,
		PlayerID:         b.PlayerID,
		BookingDate:      b.Date,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		StartsAt:         startsAt,
		FeeCents:         b.FeeCents,
		FeeCurrency:      b.Currency,
		PaymentMethod:    b.PaymentMethod.String(),
		PaymentReference: b.PaymentReference,
		PlayerNotes:      b.PlayerNotes,
		MeetingLink:      b.MeetingLink,
		Status:           b.Status.String(),
		PaymentStatus:    b.PaymentStatus.String(),
		IsUpcoming:       true,
		CanCancel:        b.Status == booking.StatusPending || b.Status == booking.StatusConfirmed,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	}
}

// BuildCreateRequestDTO is the JSON body a player posts for this booking.
func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		Date:             b.Date,
		StartTime:        b.StartTime,
		PaymentMethod:    b.PaymentMethod.String(),
		PaymentReference: b.PaymentReference,
		Notes:            b.PlayerNotes,
	}
}
