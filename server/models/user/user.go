package user

import (
	"errors"
	"time"
)

// User is a registered account. The password hash is never serialized;
// client-facing representations carry the account without it.
type User struct {
	ID          ID         `json:"id"`
	Username    Username   `json:"username"`
	Email       Email      `json:"email"`
	Password    Password   `json:"-"`
	DisplayName string     `json:"display_name"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLogin   *time.Time `json:"last_login"`
	LastLogout  *time.Time `json:"last_logout"`
}

// NewUser carries the validated fields of an account to create.
type NewUser struct {
	Email       Email
	Username    Username
	Password    Password
	DisplayName string
}

// Repository defines the interface for user data access. Lookups return
// ErrUserNotFound for a missing row, which callers treat as an ordinary
// empty result; any other error is a storage failure to surface. The
// Record/Deactivate mutations are single conditional updates keyed by id
// and stamp updated_at alongside their own column.
type Repository interface {
	CreateUser(n *NewUser) (*User, error)
	GetUserByUsername(username Username) (*User, error)
	GetUserByID(id ID) (*User, error)
	RecordLogin(id ID, at time.Time) (*User, error)
	RecordLogout(id ID, at time.Time) (*User, error)
	DeactivateUser(id ID, at time.Time) (*User, error)
}

// Errors
var (
	ErrUserExists   = errors.New("username or email already exists")
	ErrUserNotFound = errors.New("user not found")
)
