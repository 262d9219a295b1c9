package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkup-app/linkup-engine/internal/logger"
	"github.com/linkup-app/linkup-engine/internal/lootcase"
)

// OpenCaseRequest represents the request body for opening a case
type OpenCaseRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
}

// HandleOpenCase charges the case price and draws one item
func HandleOpenCase(svc lootcase.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		caseID := chi.URLParam(r, "caseID")
		if caseID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		var req OpenCaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode open case request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		result, err := svc.OpenCase(r.Context(), req.UserID, caseID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			log.Error("Failed to open case", "error", err, "user_id", req.UserID, "case_id", caseID)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
