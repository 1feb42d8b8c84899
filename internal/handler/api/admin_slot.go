package api

import (
	"net/http"

	reqdto "consultation-booking/internal/handler/dto/request"
	resdto "consultation-booking/internal/handler/dto/response"
	"consultation-booking/internal/handler/httperr"
	"consultation-booking/internal/usecase/commands"
	"consultation-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminSlotHandler struct {
	cmds commands.SlotCommands
	q    queries.SlotQueries
}

func NewAdminSlotHandler(cmds commands.SlotCommands, q queries.SlotQueries) *AdminSlotHandler {
	return &AdminSlotHandler{cmds: cmds, q: q}
}

// @Summary List slots
// @Description Every slot, including inactive ones
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.SlotResponse
// @Router /api/admin/slots [get]
func (h *AdminSlotHandler) List(c *gin.Context) {
	views, err := h.q.ListAll(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotViews(views))
}

// @Summary Add slots
// @Description Expands a recurrence rule into slots. Duplicate (day, window) pairs are stored once.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddSlotsRequest true "Recurrence rule and windows"
// @Success 201 {object} resdto.AddSlotsResponse
// @Failure 400 {object} httperr.Response
// @Router /api/admin/slots [post]
func (h *AdminSlotHandler) Add(c *gin.Context) {
	var req reqdto.AddSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.AddSlots(c.Request.Context(), cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromAddSlotsResult(result))
}

// @Summary Activate or deactivate slot
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param request body reqdto.SetSlotActiveRequest true "Active flag"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/slots/{id} [patch]
func (h *AdminSlotHandler) SetActive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.SetSlotActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete slot
// @Description Existing bookings are kept
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/admin/slots/{id} [delete]
func (h *AdminSlotHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
