package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkup-app/linkup-engine/internal/domain"
	"github.com/linkup-app/linkup-engine/internal/logger"
	"github.com/linkup-app/linkup-engine/internal/progression"
)

// GrantXPRequest represents the request to grant XP for an action
type GrantXPRequest struct {
	UserID     string `json:"user_id" validate:"required,max=64"`
	Action     string `json:"action" validate:"required,max=64"`
	WithFriend bool   `json:"with_friend"`
	FirstTime  bool   `json:"first_time"`
}

// HandleGrantXP converts a user action into XP, levels and achievements
func HandleGrantXP(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GrantXPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode grant xp request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid grant xp request", "errors", FormatValidationError(err))
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		result, err := svc.GiveXP(r.Context(), req.UserID, domain.ActionType(req.Action), domain.ActionContext{
			WithFriend: req.WithFriend,
			FirstTime:  req.FirstTime,
		})
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			log.Error("Failed to grant xp", "error", err, "user_id", req.UserID, "action", req.Action)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// RegisterUserRequest represents the request to create a progression record
type RegisterUserRequest struct {
	UserID   string `json:"user_id" validate:"required,max=64"`
	Username string `json:"username" validate:"required,max=64"`
}

// HandleRegisterUser creates the progression record on first login
func HandleRegisterUser(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode register request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		rec, err := svc.EnsureUser(r.Context(), req.UserID, req.Username)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			log.Error("Failed to register user", "error", err, "user_id", req.UserID)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, rec)
	}
}

// HandleGetProgression returns a user's progression snapshot
func HandleGetProgression(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := chi.URLParam(r, "userID")
		if userID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		snap, err := svc.GetProgression(r.Context(), userID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			log.Error("Failed to get progression", "error", err, "user_id", userID)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, snap)
	}
}
