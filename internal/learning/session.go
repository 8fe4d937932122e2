// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package learning

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"learncenter/internal/models"
)

// ErrQuestionNotFound is returned by Session.Select for an id the catalog
// does not hold. The selection is left untouched.
var ErrQuestionNotFound = errors.New("question not found")

// Repository is the read side of the question catalog.
type Repository interface {
	All() []models.Question
	Featured(limit int) []models.Question
	Find(id string) (models.Question, bool)
}

// Options configure a Session. The zero value is usable.
type Options struct {
	Scheduler     Scheduler     // nil means SystemScheduler
	Debounce      time.Duration // <= 0 means DefaultDebounce
	FeaturedLimit int           // <= 0 means DefaultFeaturedLimit

	// OnCommit runs after a search query is committed, from the debounce
	// timer or from Submit. No session lock is held.
	OnCommit func(s *Session, query string)
}

// Snapshot is the serialisable form of a session's state.
type Snapshot struct {
	Category  models.Category `json:"category"`
	UserType  models.UserType `json:"userType"`
	Query     string          `json:"query"`
	RawQuery  string          `json:"rawQuery,omitempty"`
	Focused   bool            `json:"focused,omitempty"`
	ActiveID  string          `json:"activeId,omitempty"`
	ModalOpen bool            `json:"modalOpen,omitempty"`
}

// DefaultSnapshot is the state of a freshly opened learning center.
func DefaultSnapshot() Snapshot {
	sel := DefaultSelectors()
	return Snapshot{Category: sel.Category, UserType: sel.UserType}
}

// Session is one visitor's learning-center state. Methods are safe for
// concurrent use: HTTP requests and the debounce timer may overlap.
type Session struct {
	repo          Repository
	featuredLimit int
	search        *SearchInput

	mu        sync.Mutex
	category  models.Category
	userType  models.UserType
	selection Selection
}

// NewSession starts a session with the default selectors.
func NewSession(repo Repository, opts Options) *Session {
	return RestoreSession(repo, DefaultSnapshot(), opts)
}

// RestoreSession rebuilds a session from a snapshot.
func RestoreSession(repo Repository, snap Snapshot, opts Options) *Session {
	s := &Session{
		repo:          repo,
		featuredLimit: opts.FeaturedLimit,
		category:      snap.Category,
		userType:      snap.UserType,
		selection:     Selection{ActiveID: snap.ActiveID, ModalOpen: snap.ModalOpen},
	}
	if s.featuredLimit <= 0 {
		s.featuredLimit = DefaultFeaturedLimit
	}

	var onCommit func(string)
	if opts.OnCommit != nil {
		hook := opts.OnCommit
		onCommit = func(query string) { hook(s, query) }
	}
	s.search = NewSearchInput(opts.Scheduler, opts.Debounce, onCommit)
	s.search.restore(snap.RawQuery, snap.Query, snap.Focused)
	return s
}

// SetCategory changes the category selector. The value is not validated;
// an unknown category yields an empty result set.
func (s *Session) SetCategory(c models.Category) {
	s.mu.Lock()
	s.category = c
	s.mu.Unlock()
}

// SetUserType changes the user-type selector.
func (s *Session) SetUserType(u models.UserType) {
	s.mu.Lock()
	s.userType = u
	s.mu.Unlock()
}

// Input records a keystroke in the search box.
func (s *Session) Input(text string) {
	s.search.OnInput(text)
}

// Submit commits the typed query without waiting for the debounce delay.
func (s *Session) Submit() bool {
	return s.search.Flush()
}

// Focus marks the search box focused.
func (s *Session) Focus() {
	s.search.OnFocus()
}

// Blur marks the search box unfocused.
func (s *Session) Blur() {
	s.search.OnBlur()
}

// Select applies a click on question id in the given mode. It returns
// ErrQuestionNotFound, without changing anything, for an unknown id.
func (s *Session) Select(id string, mode PresentationMode) error {
	if _, ok := s.repo.Find(id); !ok {
		return fmt.Errorf("select %q: %w", id, ErrQuestionNotFound)
	}
	s.mu.Lock()
	s.selection.Select(id, mode)
	s.mu.Unlock()
	return nil
}

// CloseModal dismisses the modal detail view.
func (s *Session) CloseModal() {
	s.mu.Lock()
	s.selection.CloseModal()
	s.mu.Unlock()
}

// Selection returns the current selection.
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Selectors returns the filter inputs, using the committed search query.
func (s *Session) Selectors() Selectors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Selectors{Category: s.category, UserType: s.userType, Query: s.search.Committed()}
}

// SearchPending reports whether a keystroke is waiting to be committed.
func (s *Session) SearchPending() bool {
	return s.search.Pending()
}

// Snapshot captures the session state for persistence.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Category:  s.category,
		UserType:  s.userType,
		Query:     s.search.Committed(),
		RawQuery:  s.search.Raw(),
		Focused:   s.search.Focused(),
		ActiveID:  s.selection.ActiveID,
		ModalOpen: s.selection.ModalOpen,
	}
}

// View derives everything the page renders from the current state.
func (s *Session) View() View {
	snap := s.Snapshot()
	sel := Selectors{Category: snap.Category, UserType: snap.UserType, Query: snap.Query}

	v := View{
		Selectors: sel,
		RawQuery:  snap.RawQuery,
		Focused:   snap.Focused,
		Questions: Filter(s.repo.All(), sel),
		ActiveID:  snap.ActiveID,
	}
	v.Count = len(v.Questions)
	v.CountLabel = CountLabel(v.Count)
	if ShelfVisible(sel.Query) {
		v.Featured = s.repo.Featured(s.featuredLimit)
	}
	if snap.ModalOpen && snap.ActiveID != "" {
		if q, ok := s.repo.Find(snap.ActiveID); ok {
			v.Modal = &q
		}
	}
	return v
}

// Close cancels any pending search commit. The session must not be used
// afterwards.
func (s *Session) Close() {
	s.search.Stop()
}
