package api

import (
	"net/http"

	reqdto "consultation-booking/internal/handler/dto/request"
	resdto "consultation-booking/internal/handler/dto/response"
	"consultation-booking/internal/handler/httperr"
	"consultation-booking/internal/usecase/commands"
	"consultation-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Book a consultation
// @Description Book one offered window. A repeated Idempotency-Key replays the first result.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "UUID identifying this booking attempt"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var idempotencyKey *uuid.UUID
	if raw := c.GetHeader(headerIdempotencyKey); raw != "" {
		key, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key", nil)
			return
		}
		idempotencyKey = &key
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req.ToCommand(), userID, idempotencyKey)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	if result.IsReplayed {
		c.Header(headerIdempotencyReplayed, "true")
	}
	c.Header("Location", "/api/bookings/"+result.Booking.ID.String())
	c.JSON(http.StatusCreated, resdto.FromBookingView(result.Booking))
}

// @Summary My bookings
// @Description The caller's bookings. upcoming runs soonest first; past and all run newest first.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param scope query string false "upcoming (default), past or all"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Router /api/bookings/me [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	views, err := h.q.ListMine(c.Request.Context(), userID, c.Query("scope"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Get booking
// @Description Players may read their own bookings; admins may read any
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel my booking
// @Description Allowed while the booking is pending or confirmed and more than the cancellation threshold away
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	view, err := h.cmds.CancelByPlayer(c.Request.Context(), id, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
