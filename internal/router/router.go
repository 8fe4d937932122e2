// Package router sets up all HTTP routes and middleware chains for the
// learning center. It organizes routes into the learn pages, the JSON API
// and operational endpoints, each with its own middleware stack.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"learncenter/internal/handlers"
	"learncenter/internal/metrics"
	"learncenter/internal/middleware"
	"learncenter/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. metricsHandler serves /metrics; limiter
// guards the learn pages and the API.
func New(sessionStore middleware.SessionStore, learn *handlers.Learn, api *handlers.API, limiter *middleware.RateLimiter, rec metrics.Recorder, metricsHandler http.Handler, secureCookies bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware: applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Instrument(rec))
	r.Use(middleware.SecureHeaders)

	// Operational endpoints: no session, no CSRF.
	r.Get("/health", healthHandler)
	r.Handle("/metrics", metricsHandler)
	r.Handle("/static/*", staticHandler())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/learn", http.StatusSeeOther)
	})

	// Learning center: session-backed, CSRF-protected.
	r.Route("/learn", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Use(middleware.NewCSRF(secureCookies))
		r.Use(middleware.LoadSession(sessionStore))

		r.Get("/", learn.Page)
		r.Get("/results", learn.Results)
		r.Post("/category/{category}", learn.SetCategory)
		r.Post("/user-type/{userType}", learn.SetUserType)
		r.Post("/search", learn.Search)
		r.Post("/search/submit", learn.SearchSubmit)
		r.Post("/search/focus", learn.Focus)
		r.Post("/search/blur", learn.Blur)
		r.Post("/questions/{id}/select", learn.Select)
		r.Post("/modal/close", learn.CloseModal)
		r.Post("/reset", learn.Reset)
	})

	// JSON API: stateless and read-only.
	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Middleware)

		r.Get("/questions", api.Questions)
		r.Get("/questions/{id}", api.Question)
		r.Get("/featured", api.Featured)
		r.Get("/taxonomy", api.Taxonomy)
		r.Get("/activity", api.Activity)
	})

	return r
}

// staticHandler serves the embedded web/static tree under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
