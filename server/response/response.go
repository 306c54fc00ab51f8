package response

import (
	"net/http"

	"github.com/hayas1/closet/server/logger"

	"github.com/labstack/echo/v4"
)

// ErrorCode represents application error codes
type ErrorCode string

const (
	// General errors
	ErrCodeBadRequest          ErrorCode = "BAD_REQUEST"
	ErrCodeForbidden           ErrorCode = "FORBIDDEN"
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeConflict            ErrorCode = "CONFLICT"
	ErrCodeTooManyRequests     ErrorCode = "TOO_MANY_REQUESTS"
	ErrCodeInternalServerError ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"

	// Auth errors: login failure is deliberately generic so "no such
	// user" and "wrong password" are indistinguishable
	ErrCodeLoginFail     ErrorCode = "LOGIN_FAIL"
	ErrCodeInactiveUser  ErrorCode = "INACTIVE_USER"
	ErrCodeLoginRequired ErrorCode = "LOGIN_REQUIRED"

	// User errors
	ErrCodeUserExists ErrorCode = "USER_EXISTS"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// ErrorBody contains error details
type ErrorBody struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse represents a standardized success response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// --- Error Response Helpers ---

// BadRequest returns a 400 Bad Request error response
func BadRequest(c echo.Context, code ErrorCode, message string, details ...interface{}) error {
	logger.Warnf("[%s] Bad Request: %s", code, message)
	return fail(c, http.StatusBadRequest, code, message, getDetails(details))
}

// ValidationError returns a 400 Bad Request with validation details
func ValidationError(c echo.Context, message string, details ...interface{}) error {
	logger.Warnf("[VALIDATION] %s", message)
	return fail(c, http.StatusBadRequest, ErrCodeValidationFailed, message, getDetails(details))
}

// Forbidden returns a 403 Forbidden error response. Login failures,
// inactive accounts and missing sessions all land here.
func Forbidden(c echo.Context, code ErrorCode, message string) error {
	logger.Warnf("[%s] Forbidden: %s", code, message)
	return fail(c, http.StatusForbidden, code, message, nil)
}

// NotFound returns a 404 Not Found error response
func NotFound(c echo.Context, code ErrorCode, message string) error {
	logger.Warnf("[%s] Not Found: %s", code, message)
	return fail(c, http.StatusNotFound, code, message, nil)
}

// Conflict returns a 409 Conflict error response
func Conflict(c echo.Context, code ErrorCode, message string) error {
	logger.Warnf("[%s] Conflict: %s", code, message)
	return fail(c, http.StatusConflict, code, message, nil)
}

// TooManyRequests returns a 429 error response with a retry hint
func TooManyRequests(c echo.Context, message string, retryAfterSeconds float64) error {
	logger.Warnf("[%s] %s", ErrCodeTooManyRequests, message)
	return fail(c, http.StatusTooManyRequests, ErrCodeTooManyRequests, message,
		echo.Map{"retry_after": retryAfterSeconds})
}

// InternalServerError returns a 500 Internal Server Error response.
// The wrapped error is logged, never serialized.
func InternalServerError(c echo.Context, message string, err error) error {
	if err != nil {
		logger.ErrorErr(err, message)
	} else {
		logger.Errorf("[%s] Internal Server Error: %s", ErrCodeInternalServerError, message)
	}
	return fail(c, http.StatusInternalServerError, ErrCodeInternalServerError, message, nil)
}

// --- Success Response Helpers ---

// Success returns a 200 OK success response with data
func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// Created returns a 201 Created success response
func Created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// --- Helper Functions ---

func fail(c echo.Context, status int, code ErrorCode, message string, details interface{}) error {
	return c.JSON(status, ErrorResponse{
		Success: false,
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func getDetails(details []interface{}) interface{} {
	if len(details) > 0 {
		return details[0]
	}
	return nil
}
