package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/devjjun/commu/internal/concurrency"
	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode into a pooled buffer first so a failed encode never writes a
	// half-finished body
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, msg := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgUserNotFoundError    = "User not found"
	ErrMsgItemNotFoundError    = "Item not found"
	ErrMsgItemUnavailableError = "That item is not for sale"
	ErrMsgNotEnoughPointsError = "Not enough points"
	ErrMsgAlreadyOwnedError    = "You already own that item"
	ErrMsgNotOwnedError        = "You don't own that item"
	ErrMsgAlreadyExistsError   = "That already exists"
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
	ErrMsgInvalidAmountError   = "Amount must be positive"
	ErrMsgJobNotFoundError     = "Job not found"
	ErrMsgBusyError            = "Another request for this user is in progress. Try again shortly."
	ErrMsgTryAgainLaterError   = "Service temporarily unavailable. Try again later."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses so internal details never leak to clients.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrItemUnavailable):
		return http.StatusConflict, ErrMsgItemUnavailableError
	case errors.Is(err, domain.ErrInsufficientPoints):
		return http.StatusConflict, ErrMsgNotEnoughPointsError
	case errors.Is(err, domain.ErrAlreadyOwned):
		return http.StatusConflict, ErrMsgAlreadyOwnedError
	case errors.Is(err, domain.ErrNotOwned):
		return http.StatusConflict, ErrMsgNotOwnedError
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, ErrMsgAlreadyExistsError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, ErrMsgJobNotFoundError
	case errors.Is(err, concurrency.ErrLockTimeout):
		// Lock contention is transient; the client should simply retry
		return http.StatusConflict, ErrMsgBusyError
	case errors.Is(err, concurrency.ErrLockUnavailable):
		// The lock store itself is down, not the user's fault
		return http.StatusServiceUnavailable, ErrMsgTryAgainLaterError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// Wrapped errors with a domain error at the base resolve above via
	// errors.Is; anything left is unexpected
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
