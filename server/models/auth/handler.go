package auth

import (
	"errors"
	"time"

	"github.com/hayas1/closet/server/bredis"
	"github.com/hayas1/closet/server/models/user"
	"github.com/hayas1/closet/server/response"

	"github.com/labstack/echo/v4"
)

// Handler handles authentication-related requests
type Handler struct {
	users      user.Repository
	jwtService *JWTService
	redis      *bredis.Client
}

// NewHandler creates a new Handler
func NewHandler(users user.Repository, jwtService *JWTService, redis *bredis.Client) *Handler {
	return &Handler{
		users:      users,
		jwtService: jwtService,
		redis:      redis,
	}
}

// CreateRequest represents the request body for account creation
type CreateRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthUser is the client-facing profile: the account without its
// credential, plus the session token when one was just issued or
// presented.
type AuthUser struct {
	Token *string    `json:"token"`
	User  *user.User `json:"user"`
}

// Rate limit config for login attempts per account
const (
	loginRateLimitMax    = 5
	loginRateLimitWindow = 15 * time.Minute
)

// Create handles account registration. All four fields are validated
// before any persistence write; no token is issued.
func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, response.ErrCodeBadRequest, "Invalid request body")
	}

	email, err := user.ParseEmail(req.Email)
	if err != nil {
		return response.ValidationError(c, err.Error())
	}
	username, err := user.ParseUsername(req.Username)
	if err != nil {
		return response.ValidationError(c, err.Error())
	}
	if req.DisplayName == "" {
		return response.ValidationError(c, "display_name is required")
	}
	password, err := user.HashPassword([]byte(req.Password))
	if err != nil {
		return response.InternalServerError(c, "Failed to process password", err)
	}

	created, err := h.users.CreateUser(&user.NewUser{
		Email:       email,
		Username:    username,
		Password:    password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserExists) {
			return response.Conflict(c, response.ErrCodeUserExists, "Username or email already exists")
		}
		return response.InternalServerError(c, "Failed to create user", err)
	}

	return response.Created(c, "User registered successfully", AuthUser{User: created})
}

// Login verifies credentials, stamps last_login and issues a token.
// "No such user", an unparseable username and a wrong password are all
// the same generic failure so accounts cannot be enumerated.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, response.ErrCodeBadRequest, "Invalid request body")
	}

	// Per-account rate limit (IP rate limit is handled by middleware)
	if h.redis != nil {
		result := h.redis.CheckRateLimit("login:user:"+req.Username, loginRateLimitMax, loginRateLimitWindow)
		if !result.Allowed {
			return response.TooManyRequests(c, "Too many login attempts for this account", result.RetryAfter.Seconds())
		}
	}

	username, err := user.ParseUsername(req.Username)
	if err != nil {
		return response.Forbidden(c, response.ErrCodeLoginFail, "invalid username or password")
	}

	u, err := h.users.GetUserByUsername(username)
	if errors.Is(err, user.ErrUserNotFound) {
		return response.Forbidden(c, response.ErrCodeLoginFail, "invalid username or password")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to look up user", err)
	}
	if !u.Password.Verify([]byte(req.Password)) {
		return response.Forbidden(c, response.ErrCodeLoginFail, "invalid username or password")
	}
	if !u.IsActive {
		return response.Forbidden(c, response.ErrCodeInactiveUser, "inactive user")
	}

	token, issuedAt, err := h.jwtService.GenerateToken(u.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token", err)
	}

	updated, err := h.users.RecordLogin(u.ID, issuedAt)
	if err != nil {
		return response.InternalServerError(c, "Failed to record login", err)
	}

	if h.redis != nil {
		h.redis.ResetRateLimit("login:user:" + req.Username)
	}

	return response.Success(c, AuthUser{Token: &token, User: updated})
}

// Whoami returns the verified identity of the request. An anonymous
// request gets a null result, not an error.
func (h *Handler) Whoami(c echo.Context) error {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return response.Success(c, nil)
	}
	return response.Success(c, AuthUser{Token: &identity.Token, User: identity.User})
}

// Logout stamps last_logout, which invalidates every token issued up to
// now. The response carries no token.
func (h *Handler) Logout(c echo.Context) error {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return response.Forbidden(c, response.ErrCodeLoginRequired, "login required")
	}

	updated, err := h.users.RecordLogout(identity.User.ID, time.Now())
	if err != nil {
		return response.InternalServerError(c, "Failed to record logout", err)
	}

	return response.Success(c, AuthUser{User: updated})
}

// Deactivate flips is_active off; subsequent logins and token
// verifications fail. Idempotent.
func (h *Handler) Deactivate(c echo.Context) error {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return response.Forbidden(c, response.ErrCodeLoginRequired, "login required")
	}

	updated, err := h.users.DeactivateUser(identity.User.ID, time.Now())
	if err != nil {
		return response.InternalServerError(c, "Failed to deactivate user", err)
	}

	return response.Success(c, AuthUser{User: updated})
}
