package api

import (
	"net/http"

	resdto "consultation-booking/internal/handler/dto/response"
	"consultation-booking/internal/handler/httperr"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errMissingQuery = errs.New("required query parameter missing")

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Day availability
// @Description Offered windows for one date with booked and available flags
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.DayAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /api/availability [get]
func (h *AvailabilityHandler) GetDay(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingQuery, "date is required", nil)
		return
	}
	view, err := h.q.GetDay(c.Request.Context(), date)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDayAvailabilityView(view))
}

// @Summary Bookable dates
// @Description Dates in [from, to] with at least one available window, at most 62 days
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} resdto.OpenDatesResponse
// @Failure 400 {object} httperr.Response
// @Router /api/availability/calendar [get]
func (h *AvailabilityHandler) ListOpenDates(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingQuery, "from and to are required", nil)
		return
	}
	dates, err := h.q.ListOpenDates(c.Request.Context(), from, to)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewOpenDatesResponse(from, to, dates))
}
