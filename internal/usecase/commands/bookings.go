package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"consultation-booking/internal/domain/availability"
	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/domain/settings"
	"consultation-booking/internal/infra"
	"consultation-booking/internal/pkg/clock"
	"consultation-booking/internal/pkg/config"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/usecase/queries"
	"consultation-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	Date             string  `json:"date"`
	StartTime        string  `json:"start_time"`
	PaymentMethod    string  `json:"payment_method"`
	PaymentReference *string `json:"payment_reference,omitempty"`
	ProofRef         *string `json:"proof_ref,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

// ConfirmBookingRequest confirms with MeetingLink when given, otherwise the meeting
// creator is asked for one.
type ConfirmBookingRequest struct {
	MeetingLink *string
	AdminNotes  *string
}

type BookingCommands interface {
	Create(ctx context.Context, req CreateBookingRequest, playerID uuid.UUID, idempotencyKey *uuid.UUID) (*CreateBookingResult, error)
	Confirm(ctx context.Context, bookingID uuid.UUID, req ConfirmBookingRequest) (*queries.BookingView, error)
	Reject(ctx context.Context, bookingID uuid.UUID, adminNotes *string) (*queries.BookingView, error)
	CancelByAdmin(ctx context.Context, bookingID uuid.UUID, adminNotes *string) (*queries.BookingView, error)
	CancelByPlayer(ctx context.Context, bookingID, playerID uuid.UUID) (*queries.BookingView, error)
	Complete(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error)
	MarkPaymentFailed(ctx context.Context, bookingID uuid.UUID, adminNotes *string) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	locker         shared.SlotLocker
	meetings       shared.MeetingCreator
	notifier       shared.Notifier
	metrics        shared.Metrics
	policy         booking.CancellationPolicy
	idempotencyTTL time.Duration
	clock          clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	locker shared.SlotLocker,
	meetings shared.MeetingCreator,
	notifier shared.Notifier,
	metrics shared.Metrics,
	cfg config.BookingConfig,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		locker:         locker,
		meetings:       meetings,
		notifier:       notifier,
		metrics:        metrics,
		policy:         booking.NewCancellationPolicy(cfg.CancellationThreshold, cfg.Location()),
		idempotencyTTL: cfg.IdempotencyTTL,
		clock:          clk,
	}
}

func (uc *bookingUseCaseImpl) Create(
	ctx context.Context,
	req CreateBookingRequest,
	playerID uuid.UUID,
	idempotencyKey *uuid.UUID,
) (*CreateBookingResult, error) {
	if idempotencyKey == nil {
		view, err := uc.createBooking(ctx, req, playerID, nil)
		if err != nil {
			return nil, err
		}
		return &CreateBookingResult{Booking: view}, nil
	}

	replayed, err := uc.handleIdempotency(ctx, *idempotencyKey, playerID, calculateRequestHash(req))
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
	}

	view, err := uc.createBooking(ctx, req, playerID, idempotencyKey)
	if err != nil {
		uc.releaseIdempotencyKey(ctx, *idempotencyKey, playerID)
		return nil, err
	}
	return &CreateBookingResult{Booking: view}, nil
}

// handleIdempotency claims key for the request. It returns the earlier booking when the
// same request already completed under key, and nil when the caller should proceed.
func (uc *bookingUseCaseImpl) handleIdempotency(
	ctx context.Context,
	key, userID uuid.UUID,
	requestHash string,
) (*queries.BookingView, error) {
	now := uc.clock.Now()

	var (
		claimed  bool
		existing *shared.IdempotencyRecord
		err      error
	)
	// A failed request releases its key, so the row can vanish between the claim and the
	// read. One more claim settles it.
	for attempt := 0; attempt < 2; attempt++ {
		err = uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
			var derr error
			claimed, derr = tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, requestHash, now.Add(uc.idempotencyTTL), now)
			if derr != nil || claimed {
				return derr
			}
			existing, derr = tx.Idempotency().Get(ctx, tx.DB(), key, userID)
			return derr
		})
		if !infra.IsKind(err, infra.KindNotFound) {
			break
		}
	}
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if claimed {
		return nil, nil
	}

	if existing.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyKeyReused
	}
	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.BookingID == nil {
			return nil, errs.New("completed request missing result booking ID")
		}
		return uc.loadView(ctx, *existing.BookingID)
	case shared.IdempotencyStatusProcessing:
		return nil, errs.ErrIdempotencyInProgress
	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

// releaseIdempotencyKey lets the client retry a request that failed.
func (uc *bookingUseCaseImpl) releaseIdempotencyKey(ctx context.Context, key, userID uuid.UUID) {
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, tx.DB(), key, userID)
	})
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		slog.Warn("failed to release idempotency key",
			slog.String("idempotency_key", key.String()),
			slog.Any("error", err))
	}
}

func (uc *bookingUseCaseImpl) createBooking(
	ctx context.Context,
	req CreateBookingRequest,
	playerID uuid.UUID,
	idempotencyKey *uuid.UUID,
) (*queries.BookingView, error) {
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, shared.Classify(err)
	}
	start, err := calendar.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, shared.Classify(err)
	}
	method, err := booking.NewPaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, shared.Classify(err)
	}

	now := uc.clock.Now()
	if !date.At(start, uc.policy.Location).After(now) {
		return nil, shared.Classify(booking.ErrStartInPast)
	}

	st, window, err := uc.resolveWindow(ctx, date, start)
	if err != nil {
		return nil, err
	}
	fee, err := booking.NewFee(st.FeeCents, st.Currency)
	if err != nil {
		return nil, shared.Classify(err)
	}

	release, err := uc.locker.Acquire(ctx, date, start)
	if err != nil {
		if errs.Is(err, shared.ErrLockNotAcquired) {
			uc.metrics.BookingConflict(shared.ConflictLockContention)
		}
		return nil, shared.Classify(err)
	}
	defer release()

	var created *booking.Booking
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		live, derr := tx.Bookings().List(ctx, tx.DB(), shared.BookingFilter{
			Date:     &date,
			Statuses: booking.LiveStatuses(),
		})
		if derr != nil {
			return derr
		}
		if derr = booking.NewConflictChecker(live).Check(date, start); derr != nil {
			uc.metrics.BookingConflict(shared.ConflictSlotBooked)
			return derr
		}

		b, derr := booking.New(booking.NewParams{
			PlayerID:         playerID,
			Date:             date,
			Window:           window,
			Fee:              fee,
			PaymentMethod:    method,
			PaymentReference: req.PaymentReference,
			ProofRef:         req.ProofRef,
			PlayerNotes:      req.Notes,
		}, now)
		if derr != nil {
			return derr
		}
		if derr = tx.Bookings().Insert(ctx, tx.DB(), b); derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				uc.metrics.BookingConflict(shared.ConflictUniqueIndex)
			}
			return derr
		}
		if idempotencyKey != nil {
			if derr = tx.Idempotency().Complete(ctx, tx.DB(), *idempotencyKey, playerID, b.ID()); derr != nil {
				return derr
			}
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, shared.Classify(err)
	}

	uc.metrics.BookingCreated()
	slog.Info("booking created",
		slog.String("booking_id", created.ID().String()),
		slog.String("reference", created.Reference()),
		slog.String("date", date.String()),
		slog.String("start_time", start.String()))
	uc.notify(ctx, created, shared.EventBookingCreated)

	return queries.NewBookingView(created, uc.policy, now), nil
}

// resolveWindow runs the availability resolver for date and returns the window that
// starts at start when it is offered and free.
func (uc *bookingUseCaseImpl) resolveWindow(
	ctx context.Context,
	date calendar.Date,
	start calendar.TimeOfDay,
) (settings.Settings, calendar.TimeWindow, error) {
	var (
		st      settings.Settings
		windows []availability.OpenWindow
	)
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var derr error
		if st, derr = shared.LoadSettings(ctx, tx); derr != nil {
			return derr
		}
		if !st.IsActive {
			return nil
		}
		slots, derr := tx.Slots().ListActive(ctx, tx.DB())
		if derr != nil {
			return derr
		}
		live, derr := tx.Bookings().List(ctx, tx.DB(), shared.BookingFilter{
			Date:     &date,
			Statuses: booking.LiveStatuses(),
		})
		if derr != nil {
			return derr
		}
		windows = availability.Resolve(date, slots, live)
		return nil
	})
	if err != nil {
		return settings.Settings{}, calendar.TimeWindow{}, shared.Classify(err)
	}
	if !st.IsActive {
		return settings.Settings{}, calendar.TimeWindow{}, errs.ErrConsultationsDisabled
	}

	w, ok := availability.Find(windows, start)
	if !ok {
		uc.metrics.BookingConflict(shared.ConflictSlotNotOffered)
		return settings.Settings{}, calendar.TimeWindow{}, errs.Wrapf(errs.ErrSlotNotOffered, "%s %s", date, start)
	}
	if w.IsBooked {
		uc.metrics.BookingConflict(shared.ConflictSlotBooked)
		return settings.Settings{}, calendar.TimeWindow{}, shared.Classify(booking.ErrSlotTaken)
	}
	return st, w.Window, nil
}

func (uc *bookingUseCaseImpl) Confirm(ctx context.Context, bookingID uuid.UUID, req ConfirmBookingRequest) (*queries.BookingView, error) {
	b, err := uc.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.CanTransition(b.Status(), booking.StatusConfirmed) {
		return nil, shared.Classify(errs.Wrapf(booking.ErrInvalidTransition, "%s -> %s", b.Status(), booking.StatusConfirmed))
	}

	link := ""
	if req.MeetingLink != nil {
		link = strings.TrimSpace(*req.MeetingLink)
	}
	autoCreated := false
	if link == "" {
		created, err := uc.createMeeting(ctx, b)
		if err != nil {
			return nil, err
		}
		link, autoCreated = created, true
	}

	view, err := uc.apply(ctx, bookingID, shared.EventBookingConfirmed, func(b *booking.Booking, now time.Time) error {
		return b.Confirm(link, req.AdminNotes, now)
	})
	if err != nil && autoCreated {
		slog.Warn("meeting created for a booking that was not confirmed",
			slog.String("booking_id", bookingID.String()),
			slog.String("meeting_link", link),
			slog.Any("error", err))
	}
	return view, err
}

// createMeeting asks the collaborator for a link. Without a configured collaborator the
// admin has to supply the link.
//
// The meeting is created outside the row lock taken by apply, so a cancel that lands in
// between still fails the confirm with InvalidTransition and leaves the calendar event behind.
func (uc *bookingUseCaseImpl) createMeeting(ctx context.Context, b *booking.Booking) (string, error) {
	if !uc.meetings.Enabled() {
		return "", shared.Classify(booking.ErrMeetingLinkRequired)
	}

	start := b.StartsAt(uc.policy.Location)
	link, err := uc.meetings.CreateMeeting(ctx, shared.MeetingRequest{
		BookingID:   b.ID(),
		Reference:   b.Reference(),
		Summary:     "Consultation " + b.Reference(),
		Description: "Consultation booking " + b.Reference(),
		Start:       start,
		End:         start.Add(b.Window().Duration()),
	})
	if err != nil {
		slog.Error("meeting creation failed",
			slog.String("booking_id", b.ID().String()),
			slog.Any("error", err))
		return "", errs.Mark(errs.Wrap(err, "create meeting"), errs.ErrCollaboratorFailure)
	}
	return link, nil
}

func (uc *bookingUseCaseImpl) Reject(ctx context.Context, bookingID uuid.UUID, adminNotes *string) (*queries.BookingView, error) {
	return uc.apply(ctx, bookingID, shared.EventBookingRejected, func(b *booking.Booking, now time.Time) error {
		return b.Reject(adminNotes, now)
	})
}

func (uc *bookingUseCaseImpl) CancelByAdmin(ctx context.Context, bookingID uuid.UUID, adminNotes *string) (*queries.BookingView, error) {
	return uc.apply(ctx, bookingID, shared.EventBookingCancelled, func(b *booking.Booking, now time.Time) error {
		return b.CancelByAdmin(adminNotes, now)
	})
}

func (uc *bookingUseCaseImpl) CancelByPlayer(ctx context.Context, bookingID, playerID uuid.UUID) (*queries.BookingView, error) {
	return uc.apply(ctx, bookingID, shared.EventBookingCancelled, func(b *booking.Booking, now time.Time) error {
		return b.CancelByPlayer(playerID, uc.policy, now)
	})
}

func (uc *bookingUseCaseImpl) Complete(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error) {
	return uc.apply(ctx, bookingID, shared.EventBookingCompleted, func(b *booking.Booking, now time.Time) error {
		return b.Complete(now)
	})
}

func (uc *bookingUseCaseImpl) MarkPaymentFailed(ctx context.Context, bookingID uuid.UUID, adminNotes *string) (*queries.BookingView, error) {
	return uc.apply(ctx, bookingID, "", func(b *booking.Booking, now time.Time) error {
		return b.MarkPaymentFailed(adminNotes, now)
	})
}

// apply runs one lifecycle step on a row locked for the duration of the transaction.
// An empty event skips the notification.
func (uc *bookingUseCaseImpl) apply(
	ctx context.Context,
	bookingID uuid.UUID,
	event string,
	step func(b *booking.Booking, now time.Time) error,
) (*queries.BookingView, error) {
	now := uc.clock.Now()

	var (
		from    booking.Status
		updated *booking.Booking
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := tx.Bookings().FindByIDForUpdate(ctx, tx.DB(), bookingID)
		if derr != nil {
			return derr
		}
		from = b.Status()
		if derr = step(b, now); derr != nil {
			return derr
		}
		if derr = tx.Bookings().UpdateStatus(ctx, tx.DB(), b); derr != nil {
			return derr
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, shared.Classify(err)
	}

	if updated.Status() != from {
		uc.metrics.BookingTransition(updated.Status())
	}
	slog.Info("booking updated",
		slog.String("booking_id", bookingID.String()),
		slog.String("from", from.String()),
		slog.String("to", updated.Status().String()),
		slog.String("payment_status", updated.PaymentStatus().String()))
	if event != "" {
		uc.notify(ctx, updated, event)
	}

	return queries.NewBookingView(updated, uc.policy, now), nil
}

func (uc *bookingUseCaseImpl) find(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error) {
	var b *booking.Booking
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var derr error
		b, derr = tx.Bookings().FindByID(ctx, tx.DB(), bookingID)
		return derr
	})
	if err != nil {
		return nil, shared.Classify(err)
	}
	return b, nil
}

func (uc *bookingUseCaseImpl) loadView(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error) {
	b, err := uc.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return queries.NewBookingView(b, uc.policy, uc.clock.Now()), nil
}

// notify never fails the caller; delivery problems are only logged.
func (uc *bookingUseCaseImpl) notify(ctx context.Context, b *booking.Booking, event string) {
	payload := map[string]any{
		"bookingId":     b.ID().String(),
		"reference":     b.Reference(),
		"bookingDate":   b.Date().String(),
		"startTime":     b.StartTime().String(),
		"status":        b.Status().String(),
		"paymentStatus": b.PaymentStatus().String(),
	}
	if link := b.MeetingLink(); link != nil {
		payload["meetingLink"] = *link
	}
	if err := uc.notifier.Notify(ctx, b.PlayerID(), event, payload); err != nil {
		slog.Warn("failed to send notification",
			slog.String("event", event),
			slog.String("booking_id", b.ID().String()),
			slog.Any("error", err))
	}
}

func calculateRequestHash(req CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
