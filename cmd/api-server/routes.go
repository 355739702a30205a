// cmd/api-server/routes.go
package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, app.instrumentRequest)
	authMiddleware := standardMiddleware.Append(app.requireAuth)

	mux := pat.New()

	// Jobs. Search and reads are public, writes need a recruiter session.
	mux.Get("/api/v1/jobs/search", standardMiddleware.ThenFunc(app.jobs.Search))
	mux.Get("/api/v1/jobs/:id", standardMiddleware.ThenFunc(app.jobs.Get))
	mux.Get("/api/v1/jobs", standardMiddleware.ThenFunc(app.jobs.List))
	mux.Post("/api/v1/jobs", authMiddleware.ThenFunc(app.jobs.Create))
	mux.Put("/api/v1/jobs/:id", authMiddleware.ThenFunc(app.jobs.Update))
	mux.Del("/api/v1/jobs/:id", authMiddleware.ThenFunc(app.jobs.Delete))

	// Auth
	mux.Post("/api/v1/auth/signup", standardMiddleware.ThenFunc(app.authH.Signup))
	mux.Post("/api/v1/auth/login", standardMiddleware.ThenFunc(app.authH.Login))
	mux.Post("/api/v1/auth/logout", authMiddleware.ThenFunc(app.authH.Logout))

	// Users
	mux.Get("/api/v1/users/:id", authMiddleware.ThenFunc(app.users.Get))
	mux.Put("/api/v1/users/:id", authMiddleware.ThenFunc(app.users.Update))

	// Recruiters
	mux.Get("/api/v1/recruiters/:id", standardMiddleware.ThenFunc(app.recruitrs.Get))
	mux.Put("/api/v1/recruiters/:id", authMiddleware.ThenFunc(app.recruitrs.Update))

	// Operational endpoints
	mux.Get("/healthz", http.HandlerFunc(app.healthz))
	mux.Get("/metrics", promhttp.Handler())

	return mux
}

// healthz pings each backing store so load balancers see dependency
// outages, not just a live process.
func (app *application) healthz(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	}
	code := http.StatusOK

	if err := app.pg.Ping(r.Context()); err != nil {
		status["postgres"] = err.Error()
		code = http.StatusServiceUnavailable
	}
	if err := app.redis.Ping(r.Context()); err != nil {
		status["redis"] = err.Error()
		code = http.StatusServiceUnavailable
	}
	if err := app.es.Ping(); err != nil {
		status["elasticsearch"] = err.Error()
		code = http.StatusServiceUnavailable
	}
	if code != http.StatusOK {
		status["status"] = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}
