package auth

import (
	"errors"
	"time"

	"github.com/hayas1/closet/server/models/user"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds JWT configuration
type Config struct {
	SecretKey     []byte
	TokenDuration time.Duration
}

// TokenClaims is the signed session payload: subject (user id),
// issued-at and expiry. Nothing else goes into the token.
type TokenClaims struct {
	jwt.RegisteredClaims

	// IssuedAtNanos carries the full-precision issue instant. The
	// standard iat claim only has second granularity, which is too
	// coarse for the logout-freshness comparison: a login in the same
	// wall-clock second as a logout must still produce a live token.
	IssuedAtNanos int64 `json:"iatn,omitempty"`
}

// IssuedTime returns the issue instant, preferring the full-precision
// claim over the second-granular iat; zero when both are absent.
func (c *TokenClaims) IssuedTime() time.Time {
	if c.IssuedAtNanos != 0 {
		return time.Unix(0, c.IssuedAtNanos).UTC()
	}
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// JWTService issues and verifies session tokens. The clock is injected
// so tests can control issuance and expiry.
type JWTService struct {
	config *Config
	now    func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(config *Config) *JWTService {
	return &JWTService{
		config: config,
		now:    time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

// GenerateToken generates a new signed token for a user. The returned
// issued-at instant doubles as the login timestamp so the token and the
// users row carry the same time.
func (s *JWTService) GenerateToken(userID user.ID) (string, time.Time, error) {
	now := s.now()

	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenDuration)),
		},
		IssuedAtNanos: now.UnixNano(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, now, nil
}

// ValidateToken checks signature and expiry and returns the claims.
// Any failure means "no verified identity"; callers should not surface
// the error to clients.
func (s *JWTService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.config.SecretKey, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
