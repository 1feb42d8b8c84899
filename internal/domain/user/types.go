package user

import "consultation-booking/internal/pkg/errs"

var ErrInvalidRole = errs.New("invalid role")

type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RolePlayer, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
