package models

// RoleAdmin is the role value required for catalog write operations.
const RoleAdmin = "admin"

// Claims holds the identity extracted from a verified bearer token.
// It is built fresh per request and never persisted.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// IsAdmin reports whether the claims carry the admin role.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
