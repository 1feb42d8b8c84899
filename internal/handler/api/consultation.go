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

type ConsultationHandler struct {
	cmds commands.SettingsCommands
	q    queries.SettingsQueries
}

func NewConsultationHandler(cmds commands.SettingsCommands, q queries.SettingsQueries) *ConsultationHandler {
	return &ConsultationHandler{cmds: cmds, q: q}
}

// @Summary Get consultation settings
// @Description Fee, currency, session length and whether consultations are offered
// @Tags consultation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SettingsResponse
// @Failure 401 {object} httperr.Response
// @Router /api/consultation [get]
func (h *ConsultationHandler) Get(c *gin.Context) {
	view, err := h.q.Get(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSettingsView(view))
}

// @Summary Update consultation settings
// @Description Partial update; omitted fields keep their saved value
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateSettingsRequest true "Settings patch"
// @Success 200 {object} resdto.SettingsResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/consultation [put]
func (h *ConsultationHandler) Update(c *gin.Context) {
	var req reqdto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Update(c.Request.Context(), cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSettingsView(view))
}
