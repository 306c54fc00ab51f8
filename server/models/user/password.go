package user

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for newly hashed passwords. The hash string is
// self-contained, so these can change without invalidating stored
// credentials.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// ErrCannotHashPassword is returned when salt generation fails.
var ErrCannotHashPassword = errors.New("cannot hash password")

// Password is either an authenticated credential (an argon2id hash in
// PHC string form) or the unauthenticated sentinel. The sentinel never
// verifies and marks a credential that was redacted or never set.
type Password struct {
	hash string
}

// Unauthenticated is the zero Password; it verifies as false against
// any candidate.
var Unauthenticated = Password{}

// HashPassword derives an argon2id hash with a fresh random salt.
func HashPassword(raw []byte) (Password, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return Password{}, ErrCannotHashPassword
	}
	key := argon2.IDKey(raw, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	hash := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
	return Password{hash: hash}, nil
}

// PasswordFromHash wraps a stored hash string loaded from the database.
func PasswordFromHash(hash string) (Password, error) {
	if _, err := decodeHash(hash); err != nil {
		return Password{}, err
	}
	return Password{hash: hash}, nil
}

// Verify reports whether raw matches the stored credential. It returns
// false for the unauthenticated sentinel, a malformed stored hash, or a
// mismatched candidate; it never errors.
func (p Password) Verify(raw []byte) bool {
	if p.IsUnauthenticated() {
		return false
	}
	params, err := decodeHash(p.hash)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey(raw, params.salt, params.time, params.memory, params.threads, uint32(len(params.key)))
	return subtle.ConstantTimeCompare(candidate, params.key) == 1
}

// IsUnauthenticated reports whether this is the redacted sentinel.
func (p Password) IsUnauthenticated() bool {
	return p.hash == ""
}

// Hash returns the stored PHC string, empty for the sentinel. It must
// never reach a client-facing representation.
func (p Password) Hash() string {
	return p.hash
}

// String is always the masked form, so a credential caught in a %v or
// %s never leaks its hash.
func (p Password) String() string {
	return "********"
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

// decodeHash splits a PHC argon2id string. The parameters embedded in
// the string are used for verification so older hashes keep verifying
// after the package constants change.
func decodeHash(hash string) (*argonParams, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, fmt.Errorf("malformed password hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("malformed password hash version")
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	p := &argonParams{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return nil, fmt.Errorf("malformed password hash parameters")
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, err
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, err
	}
	return p, nil
}
