package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a registered account. PasswordHash holds the bcrypt hash
// of the user's password - the raw password is never stored or logged.
type User struct {
	ID           string    `json:"id,omitempty"`    // Unique identifier for the user
	Name         string    `json:"name,omitempty"`  // Display name
	Title        string    `json:"title,omitempty"` // Job title shown in the UI
	Role         string    `json:"role,omitempty"`  // Role label (e.g. "Developer", "Manager")
	Email        string    `json:"email,omitempty"` // User's email address - unique
	PasswordHash string    `json:"-"`               // Hashed version of the user's password - never serialize
	IsAdmin      bool      `json:"isAdmin"`         // IsAdmin, grants access to admin-only routes
	IsActive     bool      `json:"isActive"`        // IsActive, deactivation is the soft-delete path
	TaskIDs      []string  `json:"tasks,omitempty"` // IDs of tasks assigned to this user
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// HashPassword hashes a raw password with bcrypt. bcrypt generates a fresh
// random salt per call, so hashing the same password twice yields different
// stored values. cost is the tunable work factor.
func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash verifies a raw password against a stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// SetPassword hashes the given raw password and assigns it to the user.
// Callers invoke it only when an operation actually carries a new password;
// updates that do not touch the password must leave PasswordHash untouched
// (never re-hash an already-hashed value).
func (u *User) SetPassword(password string, cost int) error {
	hash, err := HashPassword(password, cost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword verifies a raw password against this user's stored hash.
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}
