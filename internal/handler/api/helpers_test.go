//go:build unit

package api_test

import (
	"net/http"

	"consultation-booking/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fakeAuth stands in for RequireAuth: any Authorization header authenticates as userID.
func fakeAuth(userID uuid.UUID, role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}
