// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// activity.go records what visitors do in the learning center: which
// questions they open and which searches they commit. Writes are
// best-effort; a failed insert is logged and never reaches the visitor.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"learncenter/internal/models"
)

// ActivityStore handles the question-open and search-commit logs.
type ActivityStore struct {
	db *sql.DB
}

// NewActivityStore creates a new ActivityStore.
func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// LogOpen records a question being opened in the given mode ("inline" or
// "modal").
func (s *ActivityStore) LogOpen(sessionID uuid.UUID, questionID, mode string) {
	_, err := s.db.Exec(`
		INSERT INTO question_opens (session_id, question_id, mode)
		VALUES ($1, $2, $3)
	`, sessionID, questionID, mode)
	if err != nil {
		slog.Warn("failed to log question open",
			"question_id", questionID,
			"mode", mode,
			"error", err,
		)
		return
	}
	slog.Debug("question open logged", "question_id", questionID, "mode", mode)
}

// LogSearch records a committed search query and its result count.
func (s *ActivityStore) LogSearch(sessionID uuid.UUID, query string, results int) {
	_, err := s.db.Exec(`
		INSERT INTO search_commits (session_id, query, results)
		VALUES ($1, $2, $3)
	`, sessionID, query, results)
	if err != nil {
		slog.Warn("failed to log search commit",
			"query", query,
			"results", results,
			"error", err,
		)
		return
	}
	slog.Debug("search commit logged", "query", query, "results", results)
}

// RecentOpens returns the most recent question opens, newest first.
func (s *ActivityStore) RecentOpens(limit int) ([]models.QuestionOpen, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, question_id, mode, opened_at
		FROM question_opens
		ORDER BY opened_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query question opens: %w", err)
	}
	defer rows.Close()

	var opens []models.QuestionOpen
	for rows.Next() {
		var o models.QuestionOpen
		if err := rows.Scan(&o.ID, &o.SessionID, &o.QuestionID, &o.Mode, &o.OpenedAt); err != nil {
			return nil, fmt.Errorf("scan question open: %w", err)
		}
		opens = append(opens, o)
	}
	return opens, rows.Err()
}

// RecentSearches returns the most recent committed searches, newest first.
func (s *ActivityStore) RecentSearches(limit int) ([]models.SearchCommit, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, query, results, committed_at
		FROM search_commits
		ORDER BY committed_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query search commits: %w", err)
	}
	defer rows.Close()

	var searches []models.SearchCommit
	for rows.Next() {
		var c models.SearchCommit
		if err := rows.Scan(&c.ID, &c.SessionID, &c.Query, &c.Results, &c.CommittedAt); err != nil {
			return nil, fmt.Errorf("scan search commit: %w", err)
		}
		searches = append(searches, c)
	}
	return searches, rows.Err()
}

// OpenCounts returns the most opened questions with their open counts,
// most opened first. Ties are broken by question ID.
func (s *ActivityStore) OpenCounts(limit int) ([]models.QuestionOpenCount, error) {
	rows, err := s.db.Query(`
		SELECT question_id, COUNT(*) AS opens
		FROM question_opens
		GROUP BY question_id
		ORDER BY opens DESC, question_id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query open counts: %w", err)
	}
	defer rows.Close()

	var counts []models.QuestionOpenCount
	for rows.Next() {
		var c models.QuestionOpenCount
		if err := rows.Scan(&c.QuestionID, &c.Opens); err != nil {
			return nil, fmt.Errorf("scan open count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
