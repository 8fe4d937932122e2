// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"learncenter/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"

	// SessionIDKey is the context key for the session ID.
	SessionIDKey contextKey = "session_id"
)

// SessionStore is the part of session.Store LoadSession needs.
type SessionStore interface {
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
}

// LoadSession retrieves the visitor's session from Valkey, starting a new
// one when the cookie is missing or the session expired, and stores it in
// the request context. Every learning-center page needs a session, so a
// store failure answers 503 instead of continuing without one.
func LoadSession(store SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			data, err := store.Get(ctx, r)
			if err != nil {
				slog.Error("session load failed", "error", err)
				http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
				return
			}

			var id string
			if data != nil {
				id, _ = session.IDFromRequest(r)
			} else {
				data = session.NewData()
				id, err = store.Create(ctx, w, data)
				if err != nil {
					slog.Error("session create failed", "error", err)
					http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
					return
				}
				slog.Debug("session started", "analytics_id", data.AnalyticsID)
			}

			ctx = context.WithValue(ctx, SessionKey, data)
			ctx = context.WithValue(ctx, SessionIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if LoadSession did not run.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

// SessionIDFromCtx extracts the session ID from the request context.
func SessionIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}
