package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linkup-app/linkup-engine/internal/domain"
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

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, nothing to do but log
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

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	ErrMsgUserNotFoundError      = "User not found"
	ErrMsgCaseNotFoundError      = "Case not found"
	ErrMsgNotEnoughPointsError   = "Not enough points"
	ErrMsgInvalidStateError      = "Invalid game data. Please contact support."
	ErrMsgConflictError          = "Too many simultaneous updates. Please retry."
	ErrMsgConnectionTimeoutError = "Server is temporarily unavailable. Please try again later."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrCaseNotFound):
		return http.StatusNotFound, ErrMsgCaseNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughPointsError
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusInternalServerError, ErrMsgInvalidStateError
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, ErrMsgConflictError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrConnectionTimeout):
		return http.StatusServiceUnavailable, ErrMsgConnectionTimeoutError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
