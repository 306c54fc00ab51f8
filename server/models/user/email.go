package user

import (
	"fmt"
	"regexp"
	"strings"
)

// Grammar pieces of an email address. The local part is dot-separated
// tokens of letters, digits and _+-; the domain needs at least one
// label-dot and a final label of two or more letters.
const (
	EmailLocalPartRegex = `[a-zA-Z0-9_+-]+(\.[a-zA-Z0-9_+-]+)*`
	EmailDomainRegex    = `([a-zA-Z0-9][a-zA-Z0-9-]*\.)+[a-zA-Z]{2,}`
)

var emailRe = regexp.MustCompile(`^` + EmailLocalPartRegex + `@` + EmailDomainRegex + `$`)

// Email is a validated address, kept as separate local part and domain.
// Construct it with ParseEmail.
type Email struct {
	localPart string
	domain    string
}

// ParseEmail validates a raw email string.
func ParseEmail(s string) (Email, error) {
	if !emailRe.MatchString(s) {
		return Email{}, fmt.Errorf("invalid email: %q", s)
	}
	at := strings.Index(s, "@")
	return Email{localPart: s[:at], domain: s[at+1:]}, nil
}

func (e Email) String() string {
	return e.localPart + "@" + e.domain
}

// MarshalText serializes the address back to its local@domain form.
func (e Email) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText parses and validates an address.
func (e *Email) UnmarshalText(text []byte) error {
	parsed, err := ParseEmail(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
