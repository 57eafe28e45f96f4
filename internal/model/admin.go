package model

import "time"

// AdminUser is a stored admin account. Admin login does not consult it; it
// compares against the configured credentials instead.
type AdminUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Roles.
const RoleAdmin = "admin"

// SessionUser is the identity returned by a successful admin login.
type SessionUser struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// AdminSessionUser is the identity every successful admin login returns.
var AdminSessionUser = SessionUser{Name: "Admin", Role: RoleAdmin}
