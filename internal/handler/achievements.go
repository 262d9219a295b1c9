package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/linkup-app/linkup-engine/internal/achievement"
	"github.com/linkup-app/linkup-engine/internal/domain"
	"github.com/linkup-app/linkup-engine/internal/eventlog"
	"github.com/linkup-app/linkup-engine/internal/logger"
)

// CheckAchievementsRequest triggers re-evaluation of unlock conditions
type CheckAchievementsRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	Action string `json:"action" validate:"required,actiontype,max=64"`
}

// CheckAchievementsResponse lists achievements unlocked by this evaluation
type CheckAchievementsResponse struct {
	Unlocked []domain.AchievementID `json:"unlocked"`
}

// HandleCheckAchievements re-evaluates achievement conditions for a user
func HandleCheckAchievements(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CheckAchievementsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode check achievements request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		ids, err := svc.CheckAchievements(r.Context(), req.UserID, domain.ActionType(req.Action))
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			log.Error("Failed to check achievements", "error", err, "user_id", req.UserID)
			respondError(w, status, msg)
			return
		}
		if ids == nil {
			ids = []domain.AchievementID{}
		}

		respondJSON(w, http.StatusOK, CheckAchievementsResponse{Unlocked: ids})
	}
}

// HandleGetAchievements returns the user's unlock history
func HandleGetAchievements(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := chi.URLParam(r, "userID")
		if userID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		unlocked, err := svc.ListUnlocked(r.Context(), userID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			log.Error("Failed to list achievements", "error", err, "user_id", userID)
			respondError(w, status, msg)
			return
		}
		if unlocked == nil {
			unlocked = []domain.UnlockedAchievement{}
		}

		respondJSON(w, http.StatusOK, unlocked)
	}
}

// HandleGetHistory returns a user's recent engine events
func HandleGetHistory(svc eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := chi.URLParam(r, "userID")
		if userID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
				return
			}
			limit = parsed
		}

		entries, err := svc.GetUserHistory(r.Context(), userID, limit)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			log.Error("Failed to get history", "error", err, "user_id", userID)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, entries)
	}
}
