package models

import "time"

// Role values recognised by the service.
const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)

// User represents an account able to own stations.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// OwnerSummary is the public projection of a station owner attached to responses.
type OwnerSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary projects the user to its public owner fields.
func (u User) Summary() OwnerSummary {
	return OwnerSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
