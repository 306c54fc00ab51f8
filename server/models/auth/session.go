package auth

import (
	"errors"

	"github.com/hayas1/closet/server/models/user"
)

// Identity is a verified session: the account it belongs to, the claims
// that proved it, and the bearer token that was presented.
type Identity struct {
	User   *user.User
	Claims *TokenClaims
	Token  string
}

// SessionVerifier resolves a bearer token to a live identity. There is
// no token blacklist: a token is good only while the account is active
// and the token was issued strictly after the account's last logout.
type SessionVerifier struct {
	users      user.Repository
	jwtService *JWTService
}

// NewSessionVerifier creates a new SessionVerifier
func NewSessionVerifier(users user.Repository, jwtService *JWTService) *SessionVerifier {
	return &SessionVerifier{users: users, jwtService: jwtService}
}

// VerifyToken validates the token string and checks it against the
// current account state. An invalid token, a missing account, an
// inactive account, or a token issued at or before last_logout all
// yield (nil, false, nil); absence of identity is an expected outcome,
// not an error. A non-nil error means the account could not be loaded
// and callers must not treat the request as anonymous.
func (v *SessionVerifier) VerifyToken(tokenString string) (*Identity, bool, error) {
	claims, err := v.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, false, nil
	}

	id, err := user.ParseID(claims.Subject)
	if err != nil {
		return nil, false, nil
	}

	u, err := v.users.GetUserByID(id)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if !u.IsActive {
		return nil, false, nil
	}
	if u.LastLogout != nil && !claims.IssuedTime().After(*u.LastLogout) {
		return nil, false, nil
	}

	return &Identity{User: u, Claims: claims, Token: tokenString}, true, nil
}
