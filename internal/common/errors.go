// Package common defines shared constants and sentinel errors used across
// client and server layers of the storefront. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level input errors.
	ErrorValidation = errors.New("validation error")

	// Session token errors (tampered, malformed or signed with another secret).
	ErrInvalidToken = errors.New("invalid token")

	// Account errors.
	ErrUserNotFound       = errors.New("no user found for that email")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmptyPassword      = errors.New("password must not be empty")

	// Password reset errors.
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrInvalidOrExpiredToken = errors.New("reset token is invalid or expired")
	ErrTooManyResetRequests  = errors.New("too many password reset requests")

	// Authorization errors.
	ErrNotAuthenticated       = errors.New("you must be logged in to do that")
	ErrInsufficientPermission = errors.New("you do not have sufficient permissions")
)
