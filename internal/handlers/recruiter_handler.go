package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/service"
)

type RecruiterHandler struct {
	recruiters *service.RecruiterService
	errors     *apperrors.ErrorHandler
}

func NewRecruiterHandler(recruiters *service.RecruiterService, errHandler *apperrors.ErrorHandler) *RecruiterHandler {
	return &RecruiterHandler{recruiters: recruiters, errors: errHandler}
}

// Get handles GET /api/v1/recruiters/:id.
func (h *RecruiterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	rec, err := h.recruiters.Get(r.Context(), id)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// Update handles PUT /api/v1/recruiters/:id.
func (h *RecruiterHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, err := requireRecruiter(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	var input service.RecruiterUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.errors.WriteError(w, r, apperrors.NewValidationError("invalid recruiter payload"))
		return
	}

	rec, err := h.recruiters.Update(r.Context(), id, &input, callerID)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}
