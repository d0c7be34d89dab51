// Package models defines server-side data models persisted in the database.
package models

import "time"

// Roles a user may hold.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is a registered forum member. PasswordHash is a bcrypt hash and also
// serves as the key that signs the user's access tokens.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
