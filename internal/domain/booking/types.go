package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsLive reports whether the status occupies its slot.
func (s Status) IsLive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func NewStatus(v string) (Status, error) {
	s := Status(v)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// LiveStatuses are the statuses that hold a (date, start time) slot.
func LiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
)

func (p PaymentMethod) String() string {
	return string(p)
}

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentMethodBankTransfer, PaymentMethodMobileMoney, PaymentMethodCard, PaymentMethodPayPal:
		return true
	default:
		return false
	}
}

// RequiresProof reports whether payment is verified manually by an admin from an uploaded proof.
func (p PaymentMethod) RequiresProof() bool {
	return p == PaymentMethodBankTransfer || p == PaymentMethodMobileMoney
}

func NewPaymentMethod(v string) (PaymentMethod, error) {
	p := PaymentMethod(v)
	if !p.IsValid() {
		return "", ErrInvalidPaymentMethod
	}
	return p, nil
}

// Actor identifies who cancelled a booking.
type Actor string

const (
	ActorPlayer Actor = "player"
	ActorAdmin  Actor = "admin"
)
