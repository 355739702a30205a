package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/service"
)

type UserHandler struct {
	users  *service.UserService
	errors *apperrors.ErrorHandler
}

func NewUserHandler(users *service.UserService, errHandler *apperrors.ErrorHandler) *UserHandler {
	return &UserHandler{users: users, errors: errHandler}
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Update handles PUT /api/v1/users/:id. Users may only edit themselves.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		h.errors.WriteError(w, r, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	var input struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.errors.WriteError(w, r, apperrors.NewValidationError("invalid user payload"))
		return
	}

	user, err := h.users.Update(r.Context(), id, input.Email, input.FullName, session.UserID)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
