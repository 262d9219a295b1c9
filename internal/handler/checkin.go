package handler

import (
	"encoding/json"
	"net/http"

	"github.com/linkup-app/linkup-engine/internal/logger"
	"github.com/linkup-app/linkup-engine/internal/streak"
)

// CheckInRequest represents the daily check-in request
type CheckInRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
}

// HandleCheckIn records the user's daily check-in
func HandleCheckIn(svc streak.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CheckInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode check-in request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		result, err := svc.CheckIn(r.Context(), req.UserID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			log.Error("Check-in failed", "error", err, "user_id", req.UserID)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
