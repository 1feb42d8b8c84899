//go:build unit || e2e

package authtest

import (
	"testing"

	"consultation-booking/internal/domain/user"
	"consultation-booking/internal/pkg/config"
	"consultation-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints access tokens the way the platform's identity service does.
type JWTHelper struct {
	svc *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{svc: jwt.NewService(cfg.Secret, cfg.Duration)}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.svc.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// NewPlayer returns a fresh player id and a token for it.
func (h *JWTHelper) NewPlayer(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	return id, h.GenerateToken(t, id, user.RolePlayer)
}

func (h *JWTHelper) NewAdmin(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	return id, h.GenerateToken(t, id, user.RoleAdmin)
}
