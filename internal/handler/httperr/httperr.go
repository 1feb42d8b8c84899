package httperr

import (
	"log/slog"
	"net/http"

	"consultation-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	category error
	status   int
	message  string
}

// First match wins.
var mappings = []mapping{
	{errs.ErrValidation, http.StatusBadRequest, "Invalid request"},
	{errs.ErrSlotAlreadyBooked, http.StatusConflict, "Slot already booked"},
	{errs.ErrSlotNotOffered, http.StatusUnprocessableEntity, "Slot not offered on this date"},
	{errs.ErrInvalidTransition, http.StatusConflict, "Booking status does not allow this action"},
	{errs.ErrCancellationNotAllowed, http.StatusConflict, "Booking can no longer be cancelled"},
	{errs.ErrForbidden, http.StatusForbidden, "Access denied"},
	{errs.ErrNotFound, http.StatusNotFound, "Not found"},
	{errs.ErrConsultationsDisabled, http.StatusServiceUnavailable, "Consultations are not currently offered"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "Request is currently being processed"},
	{errs.ErrIdempotencyKeyReused, http.StatusConflict, "Idempotency key was used with a different request"},
	{errs.ErrCollaboratorFailure, http.StatusBadGateway, "Upstream service failed"},
}

// StatusOf maps a use case error category to its HTTP status. Uncategorized errors are 500.
func StatusOf(err error) int {
	status, _ := lookup(err)
	return status
}

func lookup(err error) (int, string) {
	for _, m := range mappings {
		if errs.Is(err, m.category) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// Abort writes err with the status of its category. Client errors carry the cause as
// detail; server errors are logged with a stack excerpt and keep the cause private.
func Abort(c *gin.Context, err error) {
	status, msg := lookup(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.Int("status", status),
			slog.Any("error", err),
			slog.Any("stack", errs.ExtractStackLines(err, 12)))
		AbortWithError(c, status, err, msg, nil)
		return
	}
	AbortWithError(c, status, err, msg, gin.H{"reason": err.Error()})
}
