package request

import (
	"consultation-booking/internal/usecase/commands"
)

// Date and time formats are checked strictly by the use case.
type CreateBookingRequest struct {
	Date             string  `json:"date" binding:"required"`
	StartTime        string  `json:"startTime" binding:"required"`
	PaymentMethod    string  `json:"paymentMethod" binding:"required,oneof=bank_transfer mobile_money card paypal"`
	PaymentReference *string `json:"paymentReference,omitempty" binding:"omitempty,max=120"`
	ProofRef         *string `json:"proofRef,omitempty" binding:"omitempty,max=500"`
	Notes            *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		Date:             r.Date,
		StartTime:        r.StartTime,
		PaymentMethod:    r.PaymentMethod,
		PaymentReference: r.PaymentReference,
		ProofRef:         r.ProofRef,
		Notes:            r.Notes,
	}
}

type ConfirmBookingRequest struct {
	MeetingLink *string `json:"meetingLink,omitempty" binding:"omitempty,url,max=500"`
	AdminNotes  *string `json:"adminNotes,omitempty" binding:"omitempty,max=1000"`
}

func (r ConfirmBookingRequest) ToCommand() commands.ConfirmBookingRequest {
	return commands.ConfirmBookingRequest{MeetingLink: r.MeetingLink, AdminNotes: r.AdminNotes}
}

// AdminNotesRequest is the optional body of reject, cancel and payment-failed.
type AdminNotesRequest struct {
	AdminNotes *string `json:"adminNotes,omitempty" binding:"omitempty,max=1000"`
}
