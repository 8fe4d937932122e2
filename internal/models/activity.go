// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// QuestionOpen records a visitor opening a question, either expanded inline
// or shown in the modal detail view.
type QuestionOpen struct {
	ID         int64     `json:"id"`
	SessionID  uuid.UUID `json:"-"`
	QuestionID string    `json:"question_id"`
	Mode       string    `json:"mode"` // "inline" or "modal"
	OpenedAt   time.Time `json:"opened_at"`
}

// SearchCommit records a debounced search query that reached the filter,
// together with how many questions it matched at that moment.
type SearchCommit struct {
	ID          int64     `json:"id"`
	SessionID   uuid.UUID `json:"-"`
	Query       string    `json:"query"`
	Results     int       `json:"results"`
	CommittedAt time.Time `json:"committed_at"`
}

// QuestionOpenCount is an aggregate of opens for a single question.
type QuestionOpenCount struct {
	QuestionID string `json:"question_id"`
	Opens      int    `json:"opens"`
}
