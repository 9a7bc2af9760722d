package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether name is one of the closed set of role names.
// Anything else is rejected, including in token claims.
func ValidRole(name string) bool {
	return name == RoleAdmin || name == RoleUser
}

// Role is a named privilege level. The roles collection is seeded at startup
// and referenced by every user.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User models a registered account. PasswordHash always holds an Argon2id
// hash, never plaintext.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
