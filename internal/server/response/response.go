// Package response provides JSON response helpers for API handlers.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/server/apierrors"
)

// Response is the envelope of every API reply. Data is always present and
// null on errors or when there is nothing to return.
type Response struct {
	Data  any                 `json:"data"`
	Error *apierrors.APIError `json:"error,omitempty"`
}

// JSON writes data with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// the status line is already out; the encode failure can only be logged
	if err := json.NewEncoder(w).Encode(Response{Data: data}); err != nil {
		slog.Error("failed to encode response", "status", status, "error", err)
	}
}

// OK writes a 200 OK response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Error writes err as an error response with the mapped status code.
func Error(w http.ResponseWriter, err error) {
	apiErr := apierrors.AsAPIError(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)
	if err := json.NewEncoder(w).Encode(Response{Error: apiErr}); err != nil {
		slog.Error("failed to encode error response", "status", apiErr.StatusCode, "error", err)
	}
}
