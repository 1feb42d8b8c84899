package api

import (
	"net/http"

	"consultation-booking/internal/handler/httperr"
	"consultation-booking/internal/handler/middleware"
	"consultation-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerIdempotencyKey      = "Idempotency-Key"
	headerIdempotencyReplayed = "Idempotent-Replayed"
)

var errMissingPrincipal = errs.New("authenticated principal missing from context")

// pathID parses the :id segment and aborts with 400 when it is not a UUID.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func currentUser(c *gin.Context) (uuid.UUID, string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return uuid.Nil, "", false
	}
	role, _ := middleware.GetUserRole(c)
	return userID, role.String(), true
}

// bindOptionalJSON accepts an empty body as the zero value.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return false
	}
	return true
}
