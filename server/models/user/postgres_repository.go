package user

import (
	"database/sql"
	"time"

	"github.com/hayas1/closet/server/bsql"

	"github.com/lib/pq"
)

const userColumns = `id, username, email, password, display_name, is_active, created_at, updated_at, last_login, last_logout`

// PostgresRepository handles user database operations
type PostgresRepository struct {
	db *bsql.DB
}

// NewPostgresRepository creates a new PostgresRepository
func NewPostgresRepository(db *bsql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateUser inserts a new user into the database
func (r *PostgresRepository) CreateUser(n *NewUser) (*User, error) {
	now := time.Now()
	id := NewID()

	err := r.db.Insert("users", map[string]interface{}{
		"id":           id.String(),
		"username":     n.Username.String(),
		"email":        n.Email.String(),
		"password":     n.Password.Hash(),
		"display_name": n.DisplayName,
		"is_active":    true,
		"created_at":   now,
		"updated_at":   now,
	})

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			// 23505 is unique_violation: duplicate username or email
			if pqErr.Code == "23505" {
				return nil, ErrUserExists
			}
		}
		return nil, err
	}

	return &User{
		ID:          id,
		Username:    n.Username,
		Email:       n.Email,
		Password:    n.Password,
		DisplayName: n.DisplayName,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetUserByUsername retrieves a user by username
func (r *PostgresRepository) GetUserByUsername(username Username) (*User, error) {
	row := r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username.String(),
	)
	return returnUser(row)
}

// GetUserByID retrieves a user by ID
func (r *PostgresRepository) GetUserByID(id ID) (*User, error) {
	row := r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id.String(),
	)
	return returnUser(row)
}

// RecordLogin stamps last_login in a single conditional update
func (r *PostgresRepository) RecordLogin(id ID, at time.Time) (*User, error) {
	row := r.db.QueryRow(
		`UPDATE users SET last_login = $1, updated_at = $1 WHERE id = $2 RETURNING `+userColumns,
		at, id.String(),
	)
	return returnUser(row)
}

// RecordLogout stamps last_logout in a single conditional update
func (r *PostgresRepository) RecordLogout(id ID, at time.Time) (*User, error) {
	row := r.db.QueryRow(
		`UPDATE users SET last_logout = $1, updated_at = $1 WHERE id = $2 RETURNING `+userColumns,
		at, id.String(),
	)
	return returnUser(row)
}

// DeactivateUser clears is_active; idempotent
func (r *PostgresRepository) DeactivateUser(id ID, at time.Time) (*User, error) {
	row := r.db.QueryRow(
		`UPDATE users SET is_active = FALSE, updated_at = $1 WHERE id = $2 RETURNING `+userColumns,
		at, id.String(),
	)
	return returnUser(row)
}

// returnUser reads a full user row. Only an absent row becomes
// ErrUserNotFound; scan and connection failures propagate as storage
// errors so an outage is never mistaken for a miss.
func returnUser(row *sql.Row) (*User, error) {
	u, err := decodeUserRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func decodeUserRow(row *sql.Row) (*User, error) {
	var (
		id, username, email, passwordHash string
		u                                 User
		lastLogin, lastLogout             sql.NullTime
	)
	err := row.Scan(&id, &username, &email, &passwordHash,
		&u.DisplayName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		&lastLogin, &lastLogout)
	if err != nil {
		return nil, err
	}

	if u.ID, err = ParseID(id); err != nil {
		return nil, err
	}
	if u.Username, err = ParseUsername(username); err != nil {
		return nil, err
	}
	if u.Email, err = ParseEmail(email); err != nil {
		return nil, err
	}
	if u.Password, err = PasswordFromHash(passwordHash); err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	if lastLogout.Valid {
		u.LastLogout = &lastLogout.Time
	}
	return &u, nil
}
