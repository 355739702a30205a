package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/service"
)

type AuthHandler struct {
	auth   *service.AuthService
	errors *apperrors.ErrorHandler
}

func NewAuthHandler(auth *service.AuthService, errHandler *apperrors.ErrorHandler) *AuthHandler {
	return &AuthHandler{auth: auth, errors: errHandler}
}

// Signup handles POST /api/v1/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.errors.WriteError(w, r, apperrors.NewValidationError("invalid signup payload"))
		return
	}

	user, err := h.auth.Signup(r.Context(), &input)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.errors.WriteError(w, r, apperrors.NewValidationError("invalid login payload"))
		return
	}

	token, user, err := h.auth.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Logout handles POST /api/v1/auth/logout. It revokes the live session so
// the token stops working before its expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		h.errors.WriteError(w, r, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.auth.Logout(r.Context(), session.ID); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
