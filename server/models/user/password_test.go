package user

import (
	"fmt"
	"strings"
	"testing"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	p, err := HashPassword([]byte("fugafuga"))
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if !p.Verify([]byte("fugafuga")) {
		t.Error("Expected hashed password to verify against its own input")
	}
	if p.Verify([]byte("wrong-password")) {
		t.Error("Expected wrong password to fail verification")
	}
	if p.Verify([]byte("")) {
		t.Error("Expected empty password to fail verification")
	}
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	first, err := HashPassword([]byte("same-input"))
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword([]byte("same-input"))
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if first.Hash() == second.Hash() {
		t.Error("Expected two hashes of the same input to differ by salt")
	}
	if !second.Verify([]byte("same-input")) {
		t.Error("Expected second hash to verify the shared input")
	}
}

func TestHashPassword_PHCFormat(t *testing.T) {
	p, err := HashPassword([]byte("secret"))
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if !strings.HasPrefix(p.Hash(), "$argon2id$v=19$m=65536,t=1,p=4$") {
		t.Errorf("Unexpected hash prefix: %s", p.Hash())
	}
	if parts := strings.Split(p.Hash(), "$"); len(parts) != 6 {
		t.Errorf("Expected 6 dollar-separated segments, got %d", len(parts))
	}
}

func TestPasswordFromHash(t *testing.T) {
	original, err := HashPassword([]byte("stored-secret"))
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	loaded, err := PasswordFromHash(original.Hash())
	if err != nil {
		t.Fatalf("PasswordFromHash returned error: %v", err)
	}
	if !loaded.Verify([]byte("stored-secret")) {
		t.Error("Expected loaded hash to verify the original input")
	}

	malformed := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	}
	for _, h := range malformed {
		if _, err := PasswordFromHash(h); err == nil {
			t.Errorf("PasswordFromHash(%q) succeeded, want error", h)
		}
	}
}

func TestPassword_Unauthenticated(t *testing.T) {
	if !Unauthenticated.IsUnauthenticated() {
		t.Error("Expected sentinel to report unauthenticated")
	}
	if Unauthenticated.Verify([]byte("anything")) {
		t.Error("Expected sentinel to fail verification against any input")
	}
	if Unauthenticated.Verify(nil) {
		t.Error("Expected sentinel to fail verification against nil")
	}
	if got := Unauthenticated.String(); got != "********" {
		t.Errorf("Sentinel String() = %q, want masked form", got)
	}

	p, err := HashPassword([]byte("real"))
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if p.IsUnauthenticated() {
		t.Error("Expected real credential to not be the sentinel")
	}
}

func TestPassword_StringNeverLeaksHash(t *testing.T) {
	p, err := HashPassword([]byte("secret"))
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	// Both display paths must be masked; only Hash() exposes the PHC
	// string, and only for persistence.
	if got := p.String(); got != "********" {
		t.Errorf("String() = %q, want masked form", got)
	}
	if got := fmt.Sprintf("%v", p); strings.Contains(got, "argon2id") {
		t.Errorf("%%v leaked the hash: %q", got)
	}
	if !strings.Contains(p.Hash(), "argon2id") {
		t.Error("Expected Hash() to return the stored PHC string")
	}
}
