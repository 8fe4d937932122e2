// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"learncenter/internal/learning"
	"learncenter/internal/metrics"
	"learncenter/internal/models"
)

// ActivityReader lists the activity log.
type ActivityReader interface {
	RecentSearches(limit int) ([]models.SearchCommit, error)
	RecentOpens(limit int) ([]models.QuestionOpen, error)
	OpenCounts(limit int) ([]models.QuestionOpenCount, error)
}

// API groups the stateless JSON endpoints. They evaluate the same filter
// and featured selection as the pages, without a session.
type API struct {
	repo          learning.Repository
	activity      ActivityReader
	featuredLimit int
	metrics       metrics.Recorder
}

// NewAPI creates a new API handler group. activity may be nil when no
// database is configured; the activity endpoint then answers 503.
func NewAPI(repo learning.Repository, activity ActivityReader, featuredLimit int, rec metrics.Recorder) *API {
	if featuredLimit <= 0 {
		featuredLimit = learning.DefaultFeaturedLimit
	}
	return &API{repo: repo, activity: activity, featuredLimit: featuredLimit, metrics: rec}
}

type questionsResponse struct {
	Selectors learning.Selectors `json:"selectors"`
	Count     int                `json:"count"`
	Label     string             `json:"label"`
	Questions []models.Question  `json:"questions"`
}

type featuredResponse struct {
	Visible   bool              `json:"visible"`
	Questions []models.Question `json:"questions"`
}

type taxonomyResponse struct {
	Categories []models.CategoryInfo `json:"categories"`
	UserTypes  []models.UserTypeInfo `json:"userTypes"`
}

type activityResponse struct {
	Searches []models.SearchCommit      `json:"searches"`
	Opens    []models.QuestionOpen      `json:"opens"`
	Popular  []models.QuestionOpenCount `json:"popular"`
}

// Questions filters the catalog by the category, userType and q query
// parameters. Omitted parameters do not filter.
func (a *API) Questions(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	c, err := learning.ParseCategory(params.Get("category"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_category", err.Error())
		return
	}
	u, err := learning.ParseUserType(params.Get("userType"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_user_type", err.Error())
		return
	}
	q := params.Get("q")
	if msg := validateQuery(q); msg != "" {
		writeAPIError(w, http.StatusBadRequest, "invalid_query", msg)
		return
	}

	sel := learning.Selectors{Category: c, UserType: u, Query: q}
	found := learning.Filter(a.repo.All(), sel)
	a.metrics.RecordFilter(len(found))

	writeJSON(w, http.StatusOK, questionsResponse{
		Selectors: sel,
		Count:     len(found),
		Label:     learning.CountLabel(len(found)),
		Questions: found,
	})
}

// Question returns a single question by id.
func (a *API) Question(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q, ok := a.repo.Find(id)
	if !ok {
		writeAPIError(w, http.StatusNotFound, "not_found", "question not found")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Featured returns the featured shelf. A non-empty q hides it, as it does
// on the page while a search is committed.
func (a *API) Featured(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	limit, ok := parseLimit(params.Get("limit"), a.featuredLimit)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
		return
	}

	resp := featuredResponse{Visible: learning.ShelfVisible(params.Get("q")), Questions: []models.Question{}}
	if resp.Visible {
		resp.Questions = a.repo.Featured(limit)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Taxonomy lists the categories and user types with their display names.
func (a *API) Taxonomy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, taxonomyResponse{
		Categories: models.Categories,
		UserTypes:  models.UserTypes,
	})
}

// Activity reports the most recent committed searches and question opens,
// plus the most opened questions.
func (a *API) Activity(w http.ResponseWriter, r *http.Request) {
	if a.activity == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "unavailable", "activity log is not configured")
		return
	}
	limit, ok := parseLimit(r.URL.Query().Get("limit"), defaultListLimit)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
		return
	}

	searches, err := a.activity.RecentSearches(limit)
	if err != nil {
		slog.Error("list recent searches failed", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "internal", "failed to read activity")
		return
	}
	opens, err := a.activity.RecentOpens(limit)
	if err != nil {
		slog.Error("list recent opens failed", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "internal", "failed to read activity")
		return
	}
	popular, err := a.activity.OpenCounts(limit)
	if err != nil {
		slog.Error("list open counts failed", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "internal", "failed to read activity")
		return
	}
	if searches == nil {
		searches = []models.SearchCommit{}
	}
	if opens == nil {
		opens = []models.QuestionOpen{}
	}
	if popular == nil {
		popular = []models.QuestionOpenCount{}
	}
	writeJSON(w, http.StatusOK, activityResponse{Searches: searches, Opens: opens, Popular: popular})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeAPIError writes the JSON error envelope.
func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
