//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"consultation-booking/internal/domain/user"
	"consultation-booking/internal/handler/middleware"
	"consultation-booking/internal/pkg/jwt"
	"consultation-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-middleware-tests"

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwt.NewService(testSecret, time.Hour)))
	r := gin.New()
	api := r.Group("/api", auth.RequireAuth())
	api.GET("/whoami", func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": role.String()})
	})
	api.GET("/admin/ping", auth.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func tokenFor(t *testing.T, secret string, role user.Role) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	token, err := jwt.NewService(secret, time.Hour).GenerateToken(id, role)
	require.NoError(t, err)
	return id, token
}

func TestRequireAuth(t *testing.T) {
	router := newAuthRouter(t)
	playerID, playerToken := tokenFor(t, testSecret, user.RolePlayer)
	_, foreignToken := tokenFor(t, "another-secret", user.RolePlayer)

	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid player token", header: "Bearer " + playerToken, wantStatus: http.StatusOK, wantBody: playerID.String()},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantBody: "Access token required"},
		{name: "wrong scheme", header: "Basic " + playerToken, wantStatus: http.StatusUnauthorized, wantBody: "Access token required"},
		{name: "signed with another key", header: "Bearer " + foreignToken, wantStatus: http.StatusUnauthorized, wantBody: "Invalid or expired token"},
		{name: "garbage", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized, wantBody: "Invalid or expired token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantBody)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	router := newAuthRouter(t)
	_, playerToken := tokenFor(t, testSecret, user.RolePlayer)
	_, adminToken := tokenFor(t, testSecret, user.RoleAdmin)

	testCases := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "admin", token: adminToken, wantStatus: http.StatusNoContent},
		{name: "player", token: playerToken, wantStatus: http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}
