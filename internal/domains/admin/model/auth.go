package model

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Login throttling theo IP
const (
	MaxFailedAttempts = 5
	FailureWindow     = 15 * time.Minute
	LockDuration      = 15 * time.Minute
)

const (
	failedKeyPrefix = "admin_login_failed:"
	lockedKeyPrefix = "admin_login_locked:"
)

func FailedAttemptsKey(ip string) string { return failedKeyPrefix + ip }
func LockKey(ip string) string           { return lockedKeyPrefix + ip }

type LoginRequest struct {
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required, validation.Length(1, 128)),
	)
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ==================== ERRORS ====================

type AuthError struct {
	Code    string
	Message string
	Err     error
	// RetryAfter chỉ có khi bị lock
	RetryAfter time.Duration
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

const (
	CodeInvalidRequest   = "INVALID_LOGIN_REQUEST"
	CodeInvalidPassword  = "INVALID_PASSWORD"
	CodeTooManyAttempts  = "TOO_MANY_ATTEMPTS"
	CodeLoginUnavailable = "LOGIN_UNAVAILABLE"
	CodeTokenError       = "TOKEN_ERROR"
)

func NewInvalidRequest(err error) *AuthError {
	return &AuthError{Code: CodeInvalidRequest, Message: "Password is required", Err: err}
}

func NewInvalidPassword() *AuthError {
	return &AuthError{Code: CodeInvalidPassword, Message: "Invalid password"}
}

func NewTooManyAttempts(retryAfter time.Duration) *AuthError {
	return &AuthError{
		Code:       CodeTooManyAttempts,
		Message:    "Too many failed attempts. Please try again later",
		RetryAfter: retryAfter,
	}
}

func NewLoginUnavailable() *AuthError {
	return &AuthError{Code: CodeLoginUnavailable, Message: "Admin login is not configured"}
}

func NewTokenError(err error) *AuthError {
	return &AuthError{Code: CodeTokenError, Message: "Failed to issue token", Err: err}
}

func MapErrorToHTTP(err error) (int, string, string) {
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}

	switch authErr.Code {
	case CodeInvalidRequest:
		return http.StatusBadRequest, authErr.Code, authErr.Message
	case CodeInvalidPassword:
		return http.StatusUnauthorized, authErr.Code, authErr.Message
	case CodeTooManyAttempts:
		return http.StatusTooManyRequests, authErr.Code, authErr.Message
	default:
		return http.StatusInternalServerError, authErr.Code, authErr.Message
	}
}
