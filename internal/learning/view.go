// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package learning

import (
	"fmt"

	"learncenter/internal/models"
)

// EmptyMessage is shown when the filters match nothing.
const EmptyMessage = "No questions found matching your criteria. Try adjusting your filters."

// View is the render-ready state of a session.
type View struct {
	Selectors Selectors
	RawQuery  string
	Focused   bool

	Questions  []models.Question
	Count      int
	CountLabel string

	// Featured is nil while a search is committed.
	Featured []models.Question

	ActiveID string
	Modal    *models.Question // set while the modal detail view is open
}

// Empty reports whether the filters matched nothing.
func (v View) Empty() bool {
	return v.Count == 0
}

// ShowFeatured reports whether the featured shelf is rendered.
func (v View) ShowFeatured() bool {
	return len(v.Featured) > 0
}

// IsExpanded reports whether question id is expanded inline. While the
// modal is open its question stays collapsed in the list behind it.
func (v View) IsExpanded(id string) bool {
	return v.Modal == nil && v.ActiveID != "" && v.ActiveID == id
}

// Key identifies the rendered output of the results region. Two views
// with the same key render the same HTML.
func (v View) Key() string {
	return fmt.Sprintf("%s|%s|%q|%s|%t",
		v.Selectors.Category, v.Selectors.UserType, v.Selectors.Query, v.ActiveID, v.Modal != nil)
}

// CountLabel formats the results heading, e.g. "1 Question Found".
func CountLabel(n int) string {
	if n == 1 {
		return "1 Question Found"
	}
	return fmt.Sprintf("%d Questions Found", n)
}
