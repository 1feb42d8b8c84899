package api

import (
	"context"
	"net/http"
	"strconv"

	reqdto "consultation-booking/internal/handler/dto/request"
	resdto "consultation-booking/internal/handler/dto/response"
	"consultation-booking/internal/handler/httperr"
	"consultation-booking/internal/usecase/commands"
	"consultation-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminBookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewAdminBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *AdminBookingHandler {
	return &AdminBookingHandler{cmds: cmds, q: q}
}

// @Summary List bookings
// @Description All bookings ordered by start, with keyset pagination
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Comma separated statuses"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Param playerId query string false "Player ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 400 {object} httperr.Response
// @Router /api/admin/bookings [get]
func (h *AdminBookingHandler) List(c *gin.Context) {
	filter := queries.AdminBookingFilter{
		Status: c.Query("status"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	}
	if v := c.Query("playerId"); v != "" {
		playerID, err := uuid.Parse(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid playerId", nil)
			return
		}
		filter.PlayerID = &playerID
	}
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	page, err := h.q.ListAll(c.Request.Context(), filter, cursor, limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingPage(page))
}

// @Summary Confirm booking
// @Description Confirms a pending booking. Without meetingLink a meeting is created when auto creation is configured.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ConfirmBookingRequest false "Meeting link and notes"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/admin/bookings/{id}/confirm [post]
func (h *AdminBookingHandler) Confirm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.ConfirmBookingRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	h.respond(c, func(ctx context.Context) (*queries.BookingView, error) {
		return h.cmds.Confirm(ctx, id, req.ToCommand())
	})
}

// @Summary Reject booking
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AdminNotesRequest false "Notes"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/bookings/{id}/reject [post]
func (h *AdminBookingHandler) Reject(c *gin.Context) {
	h.withNotes(c, h.cmds.Reject)
}

// @Summary Cancel booking
// @Description Admin override; ignores the player cancellation threshold
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AdminNotesRequest false "Notes"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/bookings/{id}/cancel [post]
func (h *AdminBookingHandler) Cancel(c *gin.Context) {
	h.withNotes(c, h.cmds.CancelByAdmin)
}

// @Summary Mark payment failed
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AdminNotesRequest false "Notes"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/bookings/{id}/payment-failed [post]
func (h *AdminBookingHandler) MarkPaymentFailed(c *gin.Context) {
	h.withNotes(c, h.cmds.MarkPaymentFailed)
}

// @Summary Complete booking
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/bookings/{id}/complete [post]
func (h *AdminBookingHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respond(c, func(ctx context.Context) (*queries.BookingView, error) {
		return h.cmds.Complete(ctx, id)
	})
}

func (h *AdminBookingHandler) withNotes(c *gin.Context, action func(context.Context, uuid.UUID, *string) (*queries.BookingView, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.AdminNotesRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	h.respond(c, func(ctx context.Context) (*queries.BookingView, error) {
		return action(ctx, id, req.AdminNotes)
	})
}

func (h *AdminBookingHandler) respond(c *gin.Context, action func(context.Context) (*queries.BookingView, error)) {
	view, err := action(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
