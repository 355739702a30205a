// cmd/api-server/middleware.go
package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/metrics"
	"jobboard-api/internal/handlers"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.logger.Info("request", map[string]interface{}{
			"remote": r.RemoteAddr,
			"method": r.Method,
			"uri":    r.URL.RequestURI(),
		})
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				w.Header().Set("Connection", "close")
				app.errors.WriteError(w, r, apperrors.NewInternalError(fmt.Errorf("%v", rec)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response code for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (app *application) instrumentRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

// requireAuth resolves the bearer token to a live session and puts it on
// the request context. Tokens whose session has been revoked are rejected
// even when the JWT itself is still within its expiry.
func (app *application) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			app.errors.WriteError(w, r, apperrors.NewUnauthorizedError("authorization header missing or invalid"))
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		session, err := app.auth.Authenticate(r.Context(), token)
		if err != nil {
			app.errors.WriteError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(handlers.WithSession(r.Context(), session)))
	})
}
