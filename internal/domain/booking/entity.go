package booking

import (
	"strings"
	"time"

	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus            = errs.New("invalid booking status")
	ErrInvalidPaymentMethod     = errs.New("invalid payment method")
	ErrInvalidFee               = errs.New("fee must not be negative")
	ErrInvalidCurrency          = errs.New("currency must be a 3-letter ISO code")
	ErrPlayerRequired           = errs.New("player id is required")
	ErrNotesTooLong             = errs.New("notes exceed maximum length")
	ErrReferenceTooLong         = errs.New("payment reference exceeds maximum length")
	ErrStartInPast              = errs.New("booking start time has already passed")
	ErrInvalidTransition        = errs.New("booking status transition not allowed")
	ErrMeetingLinkRequired      = errs.New("a meeting link is required to confirm a booking")
	ErrNotOwner                 = errs.New("booking belongs to another player")
	ErrCancellationWindowClosed = errs.New("booking starts too soon to be cancelled")
	ErrPaymentNotPending        = errs.New("payment is not awaiting verification")
	ErrSlotTaken                = errs.New("slot is already taken by another booking")
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether from -> to is an allowed lifecycle step.
// Terminal states have no outgoing transitions.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Booking struct {
	id               uuid.UUID
	reference        string
	playerID         uuid.UUID
	date             calendar.Date
	window           calendar.TimeWindow
	fee              Fee
	paymentMethod    PaymentMethod
	paymentReference *string
	proofRef         *string
	playerNotes      *string
	adminNotes       *string
	meetingLink      *string
	status           Status
	paymentStatus    PaymentStatus
	createdAt        time.Time
	updatedAt        time.Time
	confirmedAt      *time.Time
	cancelledAt      *time.Time
	cancelledBy      *Actor
}

type NewParams struct {
	PlayerID         uuid.UUID
	Date             calendar.Date
	Window           calendar.TimeWindow
	Fee              Fee
	PaymentMethod    PaymentMethod
	PaymentReference *string
	ProofRef         *string
	PlayerNotes      *string
}

// New creates a pending booking awaiting payment verification.
func New(p NewParams, now time.Time) (*Booking, error) {
	if p.PlayerID == uuid.Nil {
		return nil, ErrPlayerRequired
	}
	if !p.PaymentMethod.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	if _, err := NewFee(p.Fee.AmountCents, p.Fee.Currency); err != nil {
		return nil, err
	}
	if !p.Window.Start.Before(p.Window.End) {
		return nil, calendar.ErrInvalidTimeWindow
	}
	if p.Date.IsZero() {
		return nil, calendar.ErrInvalidDate
	}
	paymentRef, err := normalizeText(p.PaymentReference, MaxReferenceLength, ErrReferenceTooLong)
	if err != nil {
		return nil, err
	}
	proofRef, err := normalizeText(p.ProofRef, MaxReferenceLength*4, ErrReferenceTooLong)
	if err != nil {
		return nil, err
	}
	notes, err := normalizeText(p.PlayerNotes, MaxNotesLength, ErrNotesTooLong)
	if err != nil {
		return nil, err
	}
	reference, err := NewReference()
	if err != nil {
		return nil, errs.Wrap(err, "generate booking reference")
	}

	return &Booking{
		id:               uuid.New(),
		reference:        reference,
		playerID:         p.PlayerID,
		date:             p.Date,
		window:           p.Window,
		fee:              p.Fee,
		paymentMethod:    p.PaymentMethod,
		paymentReference: paymentRef,
		proofRef:         proofRef,
		playerNotes:      notes,
		status:           StatusPending,
		paymentStatus:    PaymentPending,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

type ReconstructParams struct {
	ID               uuid.UUID
	Reference        string
	PlayerID         uuid.UUID
	Date             calendar.Date
	Window           calendar.TimeWindow
	Fee              Fee
	PaymentMethod    PaymentMethod
	PaymentReference *string
	ProofRef         *string
	PlayerNotes      *string
	AdminNotes       *string
	MeetingLink      *string
	Status           Status
	PaymentStatus    PaymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ConfirmedAt      *time.Time
	CancelledAt      *time.Time
	CancelledBy      *Actor
}

func Reconstruct(p ReconstructParams) *Booking {
	return &Booking{
		id:               p.ID,
		reference:        p.Reference,
		playerID:         p.PlayerID,
		date:             p.Date,
		window:           p.Window,
		fee:              p.Fee,
		paymentMethod:    p.PaymentMethod,
		paymentReference: p.PaymentReference,
		proofRef:         p.ProofRef,
		playerNotes:      p.PlayerNotes,
		adminNotes:       p.AdminNotes,
		meetingLink:      p.MeetingLink,
		status:           p.Status,
		paymentStatus:    p.PaymentStatus,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
		confirmedAt:      p.ConfirmedAt,
		cancelledAt:      p.CancelledAt,
		cancelledBy:      p.CancelledBy,
	}
}

func (b *Booking) ID() uuid.UUID                 { return b.id }
func (b *Booking) Reference() string             { return b.reference }
func (b *Booking) PlayerID() uuid.UUID           { return b.playerID }
func (b *Booking) Date() calendar.Date           { return b.date }
func (b *Booking) Window() calendar.TimeWindow   { return b.window }
func (b *Booking) StartTime() calendar.TimeOfDay { return b.window.Start }
func (b *Booking) EndTime() calendar.TimeOfDay   { return b.window.End }
func (b *Booking) Fee() Fee                      { return b.fee }
func (b *Booking) PaymentMethod() PaymentMethod  { return b.paymentMethod }
func (b *Booking) PaymentReference() *string     { return b.paymentReference }
func (b *Booking) ProofRef() *string             { return b.proofRef }
func (b *Booking) PlayerNotes() *string          { return b.playerNotes }
func (b *Booking) AdminNotes() *string           { return b.adminNotes }
func (b *Booking) MeetingLink() *string          { return b.meetingLink }
func (b *Booking) Status() Status                { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus  { return b.paymentStatus }
func (b *Booking) CreatedAt() time.Time          { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time          { return b.updatedAt }
func (b *Booking) ConfirmedAt() *time.Time       { return b.confirmedAt }
func (b *Booking) CancelledAt() *time.Time       { return b.cancelledAt }
func (b *Booking) CancelledBy() *Actor           { return b.cancelledBy }

// StartsAt combines the booking date and start time in loc.
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	return b.date.At(b.window.Start, loc)
}

// IsUpcoming is derived, not stored: the start is still ahead and the booking was not cancelled.
func (b *Booking) IsUpcoming(now time.Time, loc *time.Location) bool {
	return b.StartsAt(loc).After(now) && b.status != StatusCancelled
}

func (b *Booking) IsOwnedBy(playerID uuid.UUID) bool {
	return b.playerID == playerID
}

func (b *Booking) transitionTo(next Status, now time.Time) error {
	if !CanTransition(b.status, next) {
		return errs.Wrapf(ErrInvalidTransition, "%s -> %s", b.status, next)
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// Confirm moves a pending booking to confirmed. The meeting link is mandatory and
// payment is considered verified from this point on.
func (b *Booking) Confirm(meetingLink string, adminNotes *string, now time.Time) error {
	link := strings.TrimSpace(meetingLink)
	if !CanTransition(b.status, StatusConfirmed) {
		return errs.Wrapf(ErrInvalidTransition, "%s -> %s", b.status, StatusConfirmed)
	}
	if link == "" {
		return ErrMeetingLinkRequired
	}
	if err := b.setAdminNotes(adminNotes); err != nil {
		return err
	}
	if err := b.transitionTo(StatusConfirmed, now); err != nil {
		return err
	}
	b.meetingLink = &link
	b.paymentStatus = PaymentCompleted
	confirmedAt := now
	b.confirmedAt = &confirmedAt
	return nil
}

// Reject is the admin refusal of a booking that was never confirmed.
func (b *Booking) Reject(adminNotes *string, now time.Time) error {
	if b.status != StatusPending {
		return errs.Wrapf(ErrInvalidTransition, "reject from %s", b.status)
	}
	return b.cancel(ActorAdmin, adminNotes, now)
}

// CancelByAdmin overrides the cancellation policy.
func (b *Booking) CancelByAdmin(adminNotes *string, now time.Time) error {
	return b.cancel(ActorAdmin, adminNotes, now)
}

// CancelByPlayer applies ownership and the cancellation policy before cancelling.
func (b *Booking) CancelByPlayer(playerID uuid.UUID, policy CancellationPolicy, now time.Time) error {
	if !b.IsOwnedBy(playerID) {
		return ErrNotOwner
	}
	if b.status.IsTerminal() {
		return errs.Wrapf(ErrInvalidTransition, "%s -> %s", b.status, StatusCancelled)
	}
	if !policy.CanCancel(b, now) {
		return ErrCancellationWindowClosed
	}
	return b.cancel(ActorPlayer, nil, now)
}

func (b *Booking) cancel(by Actor, adminNotes *string, now time.Time) error {
	if !CanTransition(b.status, StatusCancelled) {
		return errs.Wrapf(ErrInvalidTransition, "%s -> %s", b.status, StatusCancelled)
	}
	if err := b.setAdminNotes(adminNotes); err != nil {
		return err
	}
	if err := b.transitionTo(StatusCancelled, now); err != nil {
		return err
	}
	cancelledAt := now
	b.cancelledAt = &cancelledAt
	b.cancelledBy = &by
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	return b.transitionTo(StatusCompleted, now)
}

// MarkPaymentFailed records a rejected payment proof without changing the booking status.
func (b *Booking) MarkPaymentFailed(adminNotes *string, now time.Time) error {
	if b.status != StatusPending || b.paymentStatus != PaymentPending {
		return ErrPaymentNotPending
	}
	if err := b.setAdminNotes(adminNotes); err != nil {
		return err
	}
	b.paymentStatus = PaymentFailed
	b.updatedAt = now
	return nil
}

func (b *Booking) setAdminNotes(notes *string) error {
	n, err := normalizeText(notes, MaxNotesLength, ErrNotesTooLong)
	if err != nil {
		return err
	}
	if n != nil {
		b.adminNotes = n
	}
	return nil
}
