package usecase

import (
	"consultation-booking/internal/domain/user"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrUnauthenticated = errs.New("unauthenticated")

// Principal is the caller identity carried by a verified access token.
type Principal struct {
	UserID uuid.UUID
	Role   user.Role
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

// ValidateToken accepts only player and admin tokens.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Principal{}, errs.Mark(err, ErrUnauthenticated)
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Principal{}, errs.Mark(err, ErrUnauthenticated)
	}

	return Principal{UserID: claims.UserID, Role: role}, nil
}
