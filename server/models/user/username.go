package user

import (
	"fmt"
	"regexp"
)

// UsernameRegex is the full username grammar: letters, digits and
// underscores, at least one character.
const UsernameRegex = `^[a-zA-Z0-9_]+$`

var usernameRe = regexp.MustCompile(UsernameRegex)

// Username is a validated account name. Construct it with ParseUsername.
type Username string

// ParseUsername validates a raw username string.
func ParseUsername(s string) (Username, error) {
	if !usernameRe.MatchString(s) {
		return "", fmt.Errorf("invalid username: %q", s)
	}
	return Username(s), nil
}

func (u Username) String() string {
	return string(u)
}
