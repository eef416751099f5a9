package model

import "github.com/google/uuid"

// Identity is the authenticated session of a request. It is established at
// login, carried in the bearer token and passed explicitly into every
// mall-scoped operation.
type Identity struct {
	MallID   uuid.UUID  `json:"mall_id"`
	MallName string     `json:"mall_name"`
	Role     string     `json:"role"`
	UserID   *uuid.UUID `json:"user_id,omitempty"` // nil for a mall (owner) login
}

// IsAdmin reports whether the session carries the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
