package shared

import (
	"context"
	"log/slog"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/domain/settings"
	"consultation-booking/internal/domain/slot"
	"consultation-booking/internal/infra"
	"consultation-booking/internal/pkg/errs"
)

// LiveSlotConstraint is the partial unique index guarding one live booking per slot.
const LiveSlotConstraint = "bookings_live_slot_uniq"

var categories = []error{
	errs.ErrValidation,
	errs.ErrNotFound,
	errs.ErrForbidden,
	errs.ErrSlotAlreadyBooked,
	errs.ErrSlotNotOffered,
	errs.ErrInvalidTransition,
	errs.ErrCancellationNotAllowed,
	errs.ErrConsultationsDisabled,
	errs.ErrCollaboratorFailure,
	errs.ErrIdempotencyInProgress,
	errs.ErrIdempotencyKeyReused,
	errs.ErrDatabaseOperationFailed,
}

var validationErrors = []error{
	calendar.ErrInvalidDate,
	calendar.ErrInvalidTimeOfDay,
	calendar.ErrInvalidTimeWindow,
	slot.ErrInvalidRecurrenceType,
	slot.ErrNoTimeWindows,
	slot.ErrNoDaysSelected,
	slot.ErrInvalidDayOfWeek,
	slot.ErrMissingDateRange,
	slot.ErrInvalidDateRange,
	slot.ErrNoDatesSelected,
	booking.ErrInvalidStatus,
	booking.ErrInvalidPaymentMethod,
	booking.ErrInvalidFee,
	booking.ErrInvalidCurrency,
	booking.ErrPlayerRequired,
	booking.ErrNotesTooLong,
	booking.ErrReferenceTooLong,
	booking.ErrStartInPast,
	booking.ErrMeetingLinkRequired,
	settings.ErrInvalidFee,
	settings.ErrInvalidCurrency,
	settings.ErrInvalidDuration,
	settings.ErrDescriptionTooLong,
}

// Classify marks err with the category handlers translate into a status code.
// Errors that already carry a category are returned unchanged.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errs.IsAny(err, categories...):
		return err
	case errs.IsAny(err, context.Canceled, context.DeadlineExceeded):
		return err
	case errs.Is(err, booking.ErrSlotTaken), errs.Is(err, ErrLockNotAcquired):
		return errs.Mark(err, errs.ErrSlotAlreadyBooked)
	case errs.IsAny(err, booking.ErrInvalidTransition, booking.ErrPaymentNotPending):
		slog.Error("rejected booking transition", slog.Any("error", err))
		return errs.Mark(err, errs.ErrInvalidTransition)
	case errs.Is(err, booking.ErrCancellationWindowClosed):
		return errs.Mark(err, errs.ErrCancellationNotAllowed)
	case errs.Is(err, booking.ErrNotOwner):
		return errs.Mark(err, errs.ErrForbidden)
	case errs.IsAny(err, validationErrors...):
		return errs.Mark(err, errs.ErrValidation)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrNotFound)
	case infra.IsKind(err, infra.KindDuplicateKey) && infra.ConstraintName(err) == LiveSlotConstraint:
		return errs.Mark(err, errs.ErrSlotAlreadyBooked)
	case errs.Is(err, ErrMeetingCreationDisabled):
		return errs.Mark(err, errs.ErrValidation)
	case infra.IsKind(err, infra.KindDuplicateKey), infra.IsKind(err, infra.KindForeignKeyViolated), infra.IsKind(err, infra.KindDBFailure):
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	default:
		return err
	}
}
