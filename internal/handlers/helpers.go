// Package handlers is the HTTP layer: it parses and validates requests,
// invokes the services, and shapes JSON responses. No business rules live
// here.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/models"
)

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession stashes the authenticated session on the request context.
func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext returns the authenticated session, if any.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*models.Session)
	return session, ok
}

// optionalIntParam returns nil when the parameter is absent, so absent
// filters never become zero-valued clauses downstream.
func optionalIntParam(values url.Values, name string) (*int, error) {
	raw := values.Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(name + " must be an integer")
	}
	return &n, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
