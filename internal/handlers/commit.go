// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"learncenter/internal/learning"
	"learncenter/internal/metrics"
	"learncenter/internal/session"
)

// commitTimeout bounds the Valkey round trips of a search commit. Commits
// fire from the debounce timer, outside any request context.
const commitTimeout = 5 * time.Second

// CommitSessions is the slice of the session store a search commit needs.
// SaveState must leave a session that no longer exists alone.
type CommitSessions interface {
	Load(ctx context.Context, id string) (*session.Data, error)
	SaveState(ctx context.Context, id string, state learning.Snapshot) error
}

// SearchLogger records committed searches. Implementations are best-effort.
type SearchLogger interface {
	LogSearch(sessionID uuid.UUID, query string, results int)
}

// CommitHook returns the Registry.OnCommit callback: it persists the
// committed query, logs it in the activity log and records the metric.
// A session destroyed in the meantime is left alone. The state is written
// with one SaveState; the payload is read afterwards only for the
// analytics ID and never written back.
func CommitHook(sessions CommitSessions, activity SearchLogger, rec metrics.Recorder) func(id string, s *learning.Session, query string) {
	return func(id string, s *learning.Session, query string) {
		ctx, cancel := context.WithTimeout(context.Background(), commitTimeout)
		defer cancel()

		results := s.View().Count
		rec.RecordSearchCommit(results)

		if err := sessions.SaveState(ctx, id, s.Snapshot()); err != nil {
			slog.Warn("search commit: session save failed", "error", err)
		}
		slog.Debug("search committed", "query", query, "results", results)

		// Clearing the box is a commit too, but not a search.
		if query == "" || activity == nil {
			return
		}
		data, err := sessions.Load(ctx, id)
		if err != nil {
			slog.Warn("search commit: session load failed", "error", err)
			return
		}
		if data == nil {
			return
		}
		activity.LogSearch(data.AnalyticsID, query, results)
	}
}
