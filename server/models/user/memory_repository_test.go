package user

import (
	"testing"
	"time"
)

// Ensure MemoryRepository implements Repository
var _ Repository = (*MemoryRepository)(nil)

func newTestUser(t *testing.T, username, emailAddr string) *NewUser {
	t.Helper()
	email, err := ParseEmail(emailAddr)
	if err != nil {
		t.Fatalf("ParseEmail returned error: %v", err)
	}
	name, err := ParseUsername(username)
	if err != nil {
		t.Fatalf("ParseUsername returned error: %v", err)
	}
	password, err := HashPassword([]byte("password123"))
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	return &NewUser{
		Email:       email,
		Username:    name,
		Password:    password,
		DisplayName: "Test User",
	}
}

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	repo := NewMemoryRepository()

	created, err := repo.CreateUser(newTestUser(t, "alice", "alice@example.com"))
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected created user to have an id")
	}
	if !created.IsActive {
		t.Error("Expected created user to be active")
	}
	if created.LastLogin != nil || created.LastLogout != nil {
		t.Error("Expected fresh user to have no login or logout stamps")
	}

	byName, err := repo.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("GetUserByUsername returned error: %v", err)
	}
	if byName.ID != created.ID {
		t.Errorf("Lookup by name returned id %q, want %q", byName.ID, created.ID)
	}

	byID, err := repo.GetUserByID(created.ID)
	if err != nil {
		t.Fatalf("GetUserByID returned error: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("Lookup by id returned username %q, want alice", byID.Username)
	}

	if _, err := repo.GetUserByUsername("nobody"); err != ErrUserNotFound {
		t.Errorf("Unknown username: got %v, want ErrUserNotFound", err)
	}
	if _, err := repo.GetUserByID(NewID()); err != ErrUserNotFound {
		t.Errorf("Unknown id: got %v, want ErrUserNotFound", err)
	}
}

func TestMemoryRepository_DuplicateUser(t *testing.T) {
	repo := NewMemoryRepository()

	if _, err := repo.CreateUser(newTestUser(t, "bob", "bob@example.com")); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	if _, err := repo.CreateUser(newTestUser(t, "bob", "other@example.com")); err != ErrUserExists {
		t.Errorf("Duplicate username: got %v, want ErrUserExists", err)
	}
	if _, err := repo.CreateUser(newTestUser(t, "robert", "bob@example.com")); err != ErrUserExists {
		t.Errorf("Duplicate email: got %v, want ErrUserExists", err)
	}
}

func TestMemoryRepository_RecordLoginLogout(t *testing.T) {
	repo := NewMemoryRepository()
	created, err := repo.CreateUser(newTestUser(t, "carol", "carol@example.com"))
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	loginAt := time.Now().Add(-time.Minute)
	updated, err := repo.RecordLogin(created.ID, loginAt)
	if err != nil {
		t.Fatalf("RecordLogin returned error: %v", err)
	}
	if updated.LastLogin == nil || !updated.LastLogin.Equal(loginAt) {
		t.Errorf("LastLogin = %v, want %v", updated.LastLogin, loginAt)
	}

	logoutAt := time.Now()
	updated, err = repo.RecordLogout(created.ID, logoutAt)
	if err != nil {
		t.Fatalf("RecordLogout returned error: %v", err)
	}
	if updated.LastLogout == nil || !updated.LastLogout.Equal(logoutAt) {
		t.Errorf("LastLogout = %v, want %v", updated.LastLogout, logoutAt)
	}
	if updated.LastLogin == nil {
		t.Error("Expected logout to preserve last login stamp")
	}

	if _, err := repo.RecordLogin(NewID(), time.Now()); err != ErrUserNotFound {
		t.Errorf("RecordLogin for unknown id: got %v, want ErrUserNotFound", err)
	}
}

func TestMemoryRepository_Deactivate(t *testing.T) {
	repo := NewMemoryRepository()
	created, err := repo.CreateUser(newTestUser(t, "dave", "dave@example.com"))
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	updated, err := repo.DeactivateUser(created.ID, time.Now())
	if err != nil {
		t.Fatalf("DeactivateUser returned error: %v", err)
	}
	if updated.IsActive {
		t.Error("Expected deactivated user to be inactive")
	}

	// Idempotent
	again, err := repo.DeactivateUser(created.ID, time.Now())
	if err != nil {
		t.Fatalf("Second DeactivateUser returned error: %v", err)
	}
	if again.IsActive {
		t.Error("Expected repeat deactivation to stay inactive")
	}
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	created, err := repo.CreateUser(newTestUser(t, "eve", "eve@example.com"))
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	created.DisplayName = "mutated"
	fresh, err := repo.GetUserByID(created.ID)
	if err != nil {
		t.Fatalf("GetUserByID returned error: %v", err)
	}
	if fresh.DisplayName != "Test User" {
		t.Errorf("Store leaked caller mutation: DisplayName = %q", fresh.DisplayName)
	}
}
