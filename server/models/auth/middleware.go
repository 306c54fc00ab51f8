package auth

import (
	"strings"

	"github.com/hayas1/closet/server/response"

	"github.com/labstack/echo/v4"
)

// identityKey is the echo context key holding the verified Identity.
const identityKey = "auth_identity"

// Middleware extracts and verifies an optional bearer token. A missing,
// malformed or stale token leaves the request anonymous instead of
// rejecting it; handlers that need a session check CurrentIdentity and
// answer login-required themselves. A storage failure during
// verification is a 500, not an anonymous request.
func Middleware(verifier *SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			identity, ok, err := verifier.VerifyToken(parts[1])
			if err != nil {
				return response.InternalServerError(c, "Failed to verify session", err)
			}
			if ok {
				c.Set(identityKey, identity)
			}
			return next(c)
		}
	}
}

// CurrentIdentity returns the verified identity of the request, if any.
func CurrentIdentity(c echo.Context) (*Identity, bool) {
	identity, ok := c.Get(identityKey).(*Identity)
	return identity, ok && identity != nil
}
