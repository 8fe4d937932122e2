// Package main is the entry point for the learning center server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"learncenter/internal/cache"
	"learncenter/internal/catalog"
	"learncenter/internal/config"
	"learncenter/internal/database"
	"learncenter/internal/handlers"
	"learncenter/internal/learning"
	"learncenter/internal/logger"
	"learncenter/internal/metrics"
	"learncenter/internal/middleware"
	"learncenter/internal/render"
	"learncenter/internal/router"
	"learncenter/internal/session"
	"learncenter/internal/store"
)

func main() {
	// Load configuration from environment variables (and .env, if present).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: outputs JSON in production, text in development.
	logger.SetupDefault(cfg.Env, os.Stdout)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"search_debounce", cfg.SearchDebounce,
		"featured_limit", cfg.FeaturedLimit,
	)

	// The question catalog is compiled in; a malformed file is a build defect.
	questions := catalog.MustLoad()
	slog.Info("question catalog loaded", "questions", questions.Len())

	// Connect to PostgreSQL (activity log).
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Rendered question lists from a previous build may no longer match the
	// catalog or the templates.
	fragments := cache.NewFragmentCache(valkeyClient, cache.DefaultFragmentTTL)
	fragments.InvalidateAll(context.Background())

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Metrics: a dedicated registry with the Go runtime and process
	// collectors next to the learning-center metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	activityStore := store.NewActivityStore(db)

	// Live learning sessions, rebuilt from Valkey snapshots on demand.
	registry := learning.NewRegistry(questions, learning.Options{
		Debounce:      cfg.SearchDebounce,
		FeaturedLimit: cfg.FeaturedLimit,
	}, cfg.SessionIdle)
	registry.OnCommit = handlers.CommitHook(sessionStore, activityStore, collector)
	metrics.RegisterLiveSessions(reg, registry.Len)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Create handler groups with their dependencies.
	learnHandlers := handlers.NewLearn(renderer, sessionStore, registry, fragments, activityStore, collector)
	apiHandlers := handlers.NewAPI(questions, activityStore, cfg.FeaturedLimit, collector)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, learnHandlers, apiHandlers, limiter, collector, metrics.Handler(reg), secureCookies)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Pending search commits are dropped; the raw query is already saved.
	registry.Stop()
	limiter.Stop()

	slog.Info("server stopped gracefully")
}
