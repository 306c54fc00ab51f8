package user

import (
	"sync"
	"time"
)

// MemoryRepository is an in-memory user storage, used in tests and when
// running without a database.
type MemoryRepository struct {
	sync.RWMutex
	byID    map[ID]*User
	byName  map[Username]*User
	byEmail map[string]*User
}

// NewMemoryRepository creates a new MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[ID]*User),
		byName:  make(map[Username]*User),
		byEmail: make(map[string]*User),
	}
}

// CreateUser adds a new user to the store
func (r *MemoryRepository) CreateUser(n *NewUser) (*User, error) {
	r.Lock()
	defer r.Unlock()

	if _, exists := r.byName[n.Username]; exists {
		return nil, ErrUserExists
	}
	if _, exists := r.byEmail[n.Email.String()]; exists {
		return nil, ErrUserExists
	}

	now := time.Now()
	u := &User{
		ID:          NewID(),
		Username:    n.Username,
		Email:       n.Email,
		Password:    n.Password,
		DisplayName: n.DisplayName,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.byID[u.ID] = u
	r.byName[u.Username] = u
	r.byEmail[u.Email.String()] = u

	copied := *u
	return &copied, nil
}

// GetUserByUsername retrieves a user by username
func (r *MemoryRepository) GetUserByUsername(username Username) (*User, error) {
	r.RLock()
	defer r.RUnlock()
	u, exists := r.byName[username]
	if !exists {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// GetUserByID retrieves a user by ID
func (r *MemoryRepository) GetUserByID(id ID) (*User, error) {
	r.RLock()
	defer r.RUnlock()
	u, exists := r.byID[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// RecordLogin stamps last_login
func (r *MemoryRepository) RecordLogin(id ID, at time.Time) (*User, error) {
	return r.update(id, func(u *User) {
		stamped := at
		u.LastLogin = &stamped
	})
}

// RecordLogout stamps last_logout
func (r *MemoryRepository) RecordLogout(id ID, at time.Time) (*User, error) {
	return r.update(id, func(u *User) {
		stamped := at
		u.LastLogout = &stamped
	})
}

// DeactivateUser clears is_active
func (r *MemoryRepository) DeactivateUser(id ID, at time.Time) (*User, error) {
	return r.update(id, func(u *User) {
		u.IsActive = false
	})
}

func (r *MemoryRepository) update(id ID, mutate func(u *User)) (*User, error) {
	r.Lock()
	defer r.Unlock()

	u, exists := r.byID[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	mutate(u)
	u.UpdatedAt = time.Now()

	copied := *u
	return &copied, nil
}
