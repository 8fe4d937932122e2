// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the learning center.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"learncenter/internal/learning"
	"learncenter/internal/markdown"
	"learncenter/internal/middleware"
	"learncenter/internal/models"
)

//go:embed templates/learn/*.html
var learnFS embed.FS

// PageData holds all data passed to the learning-center templates.
type PageData struct {
	Title     string // Page title for <title> tag
	CSRFToken string // CSRF token for forms and HTMX headers

	View learning.View

	// Results is the rendered question list. It is produced separately
	// (see Renderer.Fragment) so it can be served from the fragment cache.
	Results template.HTML

	// SearchPending makes the results region poll once more: a keystroke
	// is still waiting for its debounce delay.
	SearchPending bool

	Categories []models.CategoryInfo
	UserTypes  []models.UserTypeInfo
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing all page templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// answer renders an answer's Markdown as HTML.
			"answer": markdown.Answer,
			"emptyMessage": func() string {
				return learning.EmptyMessage
			},
		},
	}

	entries, err := learnFS.ReadDir("templates/learn")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || !strings.HasSuffix(name, ".html") {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			learnFS, "templates/learn/base.html", "templates/learn/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Page renders a full page or an HTMX partial, depending on the request
// headers. For HTMX requests, only the "content" block is sent. For full
// page loads, the entire base layout is rendered.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	block := "base.html"
	if isHTMX(r) {
		block = "content"
	}
	rn.Partial(w, r, name, block, data)
}

// Partial renders a single named block of a page, such as "results".
func (rn *Renderer) Partial(w http.ResponseWriter, r *http.Request, name, block string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	rn.fill(r, data)

	// Render into a buffer so a template error never leaves a half-written
	// response behind.
	var buf bytes.Buffer
	if err := executeTemplate(&buf, tmpl, block, data); err != nil {
		slog.Error("template render failed", "template", name, "block", block, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// Fragment executes a named block of a page into a byte slice. The data
// is whatever the block expects; it is not a PageData.
func (rn *Renderer) Fragment(name, block string, data any) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := executeTemplate(&buf, tmpl, block, data); err != nil {
		return nil, fmt.Errorf("render %s/%s: %w", name, block, err)
	}
	return buf.Bytes(), nil
}

// fill injects the request-scoped values and sidebar catalogues.
func (rn *Renderer) fill(r *http.Request, data *PageData) {
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Title == "" {
		data.Title = "Real Estate Learning Center"
	}
	if data.Categories == nil {
		data.Categories = models.Categories
	}
	if data.UserTypes == nil {
		data.UserTypes = models.UserTypes
	}
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsHTMX reports whether r was issued by HTMX.
func IsHTMX(r *http.Request) bool {
	return isHTMX(r)
}
