package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrInvalidRole        = errors.New("invalid user role")
)

// Role determines what a user may do in the school.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// User represents a student, instructor or admin account.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Role         Role
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}

// Filter defines filter options for listing users.
type Filter struct {
	Email    string
	Role     Role
	IsActive *bool // pointer to distinguish between false and not set

	Page     int
	PageSize int
}
