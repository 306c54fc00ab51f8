package auth

import (
	"testing"
	"time"

	"github.com/hayas1/closet/server/models/user"
)

func testJWTService(d time.Duration) *JWTService {
	return NewJWTService(&Config{
		SecretKey:     []byte("test-secret-key-for-testing-only"),
		TokenDuration: d,
	})
}

func TestGenerateToken_ClaimsRoundTrip(t *testing.T) {
	service := testJWTService(time.Hour)
	userID := user.NewID()

	token, issuedAt, err := service.GenerateToken(userID)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if token == "" {
		t.Fatal("Expected non-empty token")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.Subject != userID.String() {
		t.Errorf("Subject = %q, want %q", claims.Subject, userID)
	}
	if !claims.IssuedTime().Equal(issuedAt) {
		t.Errorf("IssuedTime = %v, want %v", claims.IssuedTime(), issuedAt)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("Expected expiry claim")
	}
	wantExpiry := issuedAt.Add(time.Hour).Truncate(time.Second)
	if !claims.ExpiresAt.Time.Equal(wantExpiry) {
		t.Errorf("Expiry = %v, want %v", claims.ExpiresAt.Time, wantExpiry)
	}
}

func TestGenerateToken_SubSecondIssuedAt(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 500_000_000, time.UTC)
	service := testJWTService(time.Hour).WithClock(func() time.Time { return at })

	token, issuedAt, err := service.GenerateToken(user.NewID())
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if !issuedAt.Equal(at) {
		t.Errorf("issuedAt = %v, want %v", issuedAt, at)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	// The round trip keeps the sub-second part, not just whole seconds.
	if !claims.IssuedTime().Equal(at) {
		t.Errorf("IssuedTime = %v, want %v", claims.IssuedTime(), at)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	service := testJWTService(time.Hour).WithClock(func() time.Time { return base })

	token, _, err := service.GenerateToken(user.NewID())
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	// Still inside the window
	service.WithClock(func() time.Time { return base.Add(30 * time.Minute) })
	if _, err := service.ValidateToken(token); err != nil {
		t.Errorf("Expected token valid inside window, got: %v", err)
	}

	// Past expiry
	service.WithClock(func() time.Time { return base.Add(2 * time.Hour) })
	if _, err := service.ValidateToken(token); err == nil {
		t.Error("Expected expired token to fail validation")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := testJWTService(time.Hour).GenerateToken(user.NewID())
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	other := NewJWTService(&Config{
		SecretKey:     []byte("a-completely-different-secret"),
		TokenDuration: time.Hour,
	})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("Expected token signed with other secret to fail validation")
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	service := testJWTService(time.Hour)

	token, _, err := service.GenerateToken(user.NewID())
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	malformed := []string{
		"",
		"not-a-token",
		"a.b.c",
		token[:len(token)-5],
		token + "tampered",
	}
	for _, bad := range malformed {
		if _, err := service.ValidateToken(bad); err == nil {
			t.Errorf("ValidateToken(%q) succeeded, want error", bad)
		}
	}
}
