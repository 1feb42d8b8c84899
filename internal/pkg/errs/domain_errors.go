package errs

// Error categories shared by the use case layer and mapped to HTTP statuses by handlers.
var (
	ErrValidation              = New("validation error")
	ErrNotFound                = New("not found")
	ErrForbidden               = New("forbidden")
	ErrSlotAlreadyBooked       = New("slot already booked")
	ErrSlotNotOffered          = New("slot not offered on this date")
	ErrInvalidTransition       = New("invalid booking status transition")
	ErrCancellationNotAllowed  = New("booking can no longer be cancelled")
	ErrConsultationsDisabled   = New("consultations are not currently offered")
	ErrCollaboratorFailure     = New("collaborator failure")
	ErrIdempotencyInProgress   = New("idempotency in progress")
	ErrIdempotencyKeyReused    = New("idempotency key reused with a different request")
	ErrDatabaseOperationFailed = New("database operation failed")
)
