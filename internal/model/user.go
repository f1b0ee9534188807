package model

import (
	"errors"
	"time"
)

// User is a warehouse staff account.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Staff roles. Users read listings and place orders, managers may also
// delete inventory and orders, admins additionally manage accounts.
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

func roleRank(role string) int {
	switch role {
	case RoleAdmin:
		return 3
	case RoleManager:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// RoleAtLeast reports whether role grants at least the minimum role's
// privileges. Unknown roles on either side fail closed.
func RoleAtLeast(role, minimum string) bool {
	r, m := roleRank(role), roleRank(minimum)
	if r == 0 || m == 0 {
		return false
	}
	return r >= m
}

// MinPasswordLength applies to new and changed passwords.
const MinPasswordLength = 8

// ErrPasswordTooShort is returned by ValidatePassword.
var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

// ValidatePassword checks a plaintext password against the account rules.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
