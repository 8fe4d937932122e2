// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the learning center.
// Handlers are grouped by concern (learn pages, JSON API) and receive
// their dependencies through the handler struct.
package handlers

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"learncenter/internal/cache"
	"learncenter/internal/learning"
	"learncenter/internal/metrics"
	"learncenter/internal/middleware"
	"learncenter/internal/render"
)

// SessionWriter is the part of session.Store the learn handlers need.
type SessionWriter interface {
	SaveState(ctx context.Context, id string, state learning.Snapshot) error
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// OpenLogger records question opens. Implementations are best-effort.
type OpenLogger interface {
	LogOpen(sessionID uuid.UUID, questionID, mode string)
}

// Learn groups the learning-center page handlers and their dependencies.
type Learn struct {
	renderer  *render.Renderer
	sessions  SessionWriter
	registry  *learning.Registry
	fragments *cache.FragmentCache
	activity  OpenLogger
	metrics   metrics.Recorder
}

// NewLearn creates a new Learn handler group. fragments may be nil, which
// disables fragment caching.
func NewLearn(renderer *render.Renderer, sessions SessionWriter, registry *learning.Registry, fragments *cache.FragmentCache, activity OpenLogger, rec metrics.Recorder) *Learn {
	return &Learn{
		renderer:  renderer,
		sessions:  sessions,
		registry:  registry,
		fragments: fragments,
		activity:  activity,
		metrics:   rec,
	}
}

// Page renders the learning center. HTMX requests receive only the content
// block.
func (l *Learn) Page(w http.ResponseWriter, r *http.Request) {
	s, ok := l.acquire(w, r)
	if !ok {
		return
	}
	l.renderer.Page(w, r, "learn", l.pageData(r.Context(), s))
}

// Results renders the results region: featured shelf, count, question list
// and modal.
func (l *Learn) Results(w http.ResponseWriter, r *http.Request) {
	s, ok := l.acquire(w, r)
	if !ok {
		return
	}
	l.renderer.Partial(w, r, "learn", "results", l.pageData(r.Context(), s))
}

// SetCategory applies a sidebar category click.
func (l *Learn) SetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := learning.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, ok := l.acquire(w, r)
	if !ok {
		return
	}
	s.SetCategory(c)
	l.persist(r.Context(), s)
	l.respond(w, r, s, "content")
}

// SetUserType applies a user-type filter click.
func (l *Learn) SetUserType(w http.ResponseWriter, r *http.Request) {
	u, err := learning.ParseUserType(chi.URLParam(r, "userType"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, ok := l.acquire(w, r)
	if !ok {
		return
	}
	s.SetUserType(u)
	l.persist(r.Context(), s)
	l.respond(w, r, s, "content")
}

// Search records a keystroke. The query is committed after the debounce
// delay; HTMX clients are told to refresh the results region, which they
// do slightly after the delay has passed. Plain form posts commit at once.
func (l *Learn) Search(w http.ResponseWriter, r *http.Request) {
	q, ok := searchQuery(w, r)
	if !ok {
		return
	}
	s, ok := l.acquire(w, r)
	if !ok {
		return
	}

	s.Input(q)
	if !render.IsHTMX(r) {
		s.Submit()
		l.persist(r.Context(), s)
		http.Redirect(w, r, "/learn", http.StatusSeeOther)
		return
	}

	l.persist(r.Context(), s)
	w.Header().Set("HX-Trigger", "search-input")
	w.WriteHeader(http.StatusNoContent)
}

// SearchSubmit commits the typed query immediately (Enter key or the form's
// submit). A q field, when present, replaces the raw query first.
func (l *Learn) SearchSubmit(w http.ResponseWriter, r *http.Request) {
	q, ok := searchQuery(w, r)
	if !ok {
		return
	}
	s, ok := l.acquire(w, r)
	if !ok {
		return
	}

	if _, present := r.PostForm["q"]; present {
		s.Input(q)
	}
	s.Submit()
	l.persist(r.Context(), s)
	l.respond(w, r, s, "results")
}

// Focus marks the search box focused.
func (l *Learn) Focus(w http.ResponseWriter, r *http.Request) {
	s, ok := l.acquire(w, r)
	if !ok {
		return
	}
	s.Focus()
	l.persist(r.Context(), s)
	w.WriteHeader(http.StatusNoContent)
}

// Blur marks the search box unfocused.
func (l *Learn) Blur(w http.ResponseWriter, r *http.Request) {
	s, ok := l.acquire(w, r)
	if !ok {
		return
	}
	s.Blur()
	l.persist(r.Context(), s)
	w.WriteHeader(http.StatusNoContent)
}

// Select applies a click on a question. The viewport form field picks the
// presentation: "narrow" opens the modal, anything else expands inline.
func (l *Learn) Select(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	mode := learning.ParseViewport(r.FormValue("viewport"))

	s, ok := l.acquire(w, r)
	if !ok {
		return
	}

	if err := s.Select(id, mode); err != nil {
		if errors.Is(err, learning.ErrQuestionNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("select question failed", "error", err, "question_id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Collapsing an inline question is not an open.
	if s.Selection().Opened(id) {
		if data := middleware.SessionFromCtx(r.Context()); data != nil && l.activity != nil {
			l.activity.LogOpen(data.AnalyticsID, id, mode.String())
		}
		l.metrics.RecordQuestionOpen(mode.String())
	}

	l.persist(r.Context(), s)
	l.respond(w, r, s, "results")
}

// CloseModal dismisses the modal detail view.
func (l *Learn) CloseModal(w http.ResponseWriter, r *http.Request) {
	s, ok := l.acquire(w, r)
	if !ok {
		return
	}
	s.CloseModal()
	l.persist(r.Context(), s)
	l.respond(w, r, s, "results")
}

// Reset discards the visitor's session and starts over with the defaults.
func (l *Learn) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if id := middleware.SessionIDFromCtx(ctx); id != "" {
		l.registry.Drop(id)
	}
	if err := l.sessions.Destroy(ctx, w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}

	if render.IsHTMX(r) {
		w.Header().Set("HX-Redirect", "/learn")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/learn", http.StatusSeeOther)
}

// acquire returns the live learning session of the request, restoring it
// from the persisted snapshot when it is not in memory.
func (l *Learn) acquire(w http.ResponseWriter, r *http.Request) (*learning.Session, bool) {
	ctx := r.Context()
	id := middleware.SessionIDFromCtx(ctx)
	data := middleware.SessionFromCtx(ctx)
	if id == "" || data == nil {
		slog.Error("learn handler reached without a session", "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}

	s, err := l.registry.Acquire(id, func() (*learning.Snapshot, error) {
		snap := data.State
		return &snap, nil
	})
	if err != nil {
		slog.Error("learning session restore failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}

// persist saves the session snapshot so it survives eviction and restarts.
func (l *Learn) persist(ctx context.Context, s *learning.Session) {
	id := middleware.SessionIDFromCtx(ctx)
	if err := l.sessions.SaveState(ctx, id, s.Snapshot()); err != nil {
		slog.Warn("session state save failed", "error", err)
	}
}

// respond renders block for HTMX requests and redirects plain form posts
// back to the page.
func (l *Learn) respond(w http.ResponseWriter, r *http.Request, s *learning.Session, block string) {
	if !render.IsHTMX(r) {
		http.Redirect(w, r, "/learn", http.StatusSeeOther)
		return
	}
	l.renderer.Partial(w, r, "learn", block, l.pageData(r.Context(), s))
}

// pageData derives the view of s and renders its question list, reusing a
// cached fragment when one exists for the same view.
func (l *Learn) pageData(ctx context.Context, s *learning.Session) *render.PageData {
	v := s.View()
	l.metrics.RecordFilter(v.Count)
	return &render.PageData{
		View:          v,
		Results:       l.questionList(ctx, v),
		SearchPending: s.SearchPending(),
	}
}

func (l *Learn) questionList(ctx context.Context, v learning.View) template.HTML {
	if v.Empty() {
		return ""
	}

	key := cache.ResultsKey(v.Key())
	if cached, ok := l.fragments.Get(ctx, key); ok {
		return template.HTML(cached)
	}

	out, err := l.renderer.Fragment("learn", "question-list", v)
	if err != nil {
		slog.Error("question list render failed", "error", err)
		return ""
	}
	l.fragments.Set(ctx, key, out)
	return template.HTML(out)
}
