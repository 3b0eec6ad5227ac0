// Package apierrors maps domain errors onto the JSON error body and HTTP
// status returned by the API.
package apierrors

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// APIError is the "error" member of an API response.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a custom message.
func (e *APIError) WithMessage(message string) *APIError {
	return &APIError{Code: e.Code, Message: message, StatusCode: e.StatusCode}
}

var (
	ErrBadRequest = &APIError{
		Code:       "bad_request",
		Message:    "Invalid request",
		StatusCode: http.StatusBadRequest,
	}

	ErrInvalidToken = &APIError{
		Code:       "invalid_token",
		Message:    "Session is invalid, please sign in again",
		StatusCode: http.StatusUnauthorized,
	}

	ErrNotFound = &APIError{
		Code:       "not_found",
		Message:    "Resource not found",
		StatusCode: http.StatusNotFound,
	}

	ErrRateLimited = &APIError{
		Code:       "rate_limited",
		Message:    "Too many requests. Please try again later.",
		StatusCode: http.StatusTooManyRequests,
	}

	ErrInternal = &APIError{
		Code:       "internal_error",
		Message:    "An internal error occurred",
		StatusCode: http.StatusInternalServerError,
	}
)

// fixed maps errors whose wrapped text is not meant for clients to a
// constant reply.
var fixed = []struct {
	target error
	reply  *APIError
}{
	{common.ErrInvalidToken, ErrInvalidToken},
	{common.ErrTooManyResetRequests, ErrRateLimited},
	{common.ErrorNotFound, ErrNotFound},
}

var table = []struct {
	target error
	code   string
	status int
}{
	{common.ErrNotAuthenticated, "not_authenticated", http.StatusUnauthorized},
	{common.ErrInvalidCredentials, "invalid_credentials", http.StatusUnauthorized},
	{common.ErrInsufficientPermission, "insufficient_permission", http.StatusForbidden},
	{common.ErrUserNotFound, "user_not_found", http.StatusNotFound},
	{common.ErrEmailTaken, "email_taken", http.StatusConflict},
	{common.ErrPasswordMismatch, "password_mismatch", http.StatusBadRequest},
	{common.ErrInvalidOrExpiredToken, "invalid_or_expired_token", http.StatusBadRequest},
	{common.ErrorValidation, "validation_error", http.StatusBadRequest},
	{common.ErrEmptyPassword, "validation_error", http.StatusBadRequest},
}

// AsAPIError converts err into an APIError. Known domain errors keep their
// message; anything else becomes ErrInternal so internals never leak.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	for _, e := range fixed {
		if errors.Is(err, e.target) {
			return e.reply
		}
	}

	for _, e := range table {
		if errors.Is(err, e.target) {
			return &APIError{Code: e.code, Message: err.Error(), StatusCode: e.status}
		}
	}

	return ErrInternal
}
