// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package learning implements the learning-center view state: filtering the
// question catalog, the single active question, the debounced search box and
// the featured shelf. Everything here is in-memory; the HTTP layer owns one
// Session per browser session and renders what View returns.
package learning

import (
	"errors"
	"fmt"

	"learncenter/internal/models"
)

// Default selector values applied when a session starts.
const (
	DefaultCategory = models.CategoryBeginners
	DefaultUserType = models.UserTypeBuyers
)

var (
	// ErrUnknownCategory is returned by ParseCategory for values outside the fixed set.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownUserType is returned by ParseUserType for values outside the fixed set.
	ErrUnknownUserType = errors.New("unknown user type")
)

// Selectors are the three inputs of the filter. An empty field disables
// the corresponding predicate.
type Selectors struct {
	Category models.Category `json:"category"`
	UserType models.UserType `json:"userType"`
	Query    string          `json:"query"`
}

// DefaultSelectors returns the selectors a new session starts with.
func DefaultSelectors() Selectors {
	return Selectors{Category: DefaultCategory, UserType: DefaultUserType}
}

// Matches reports whether q passes all active predicates. Category and user
// type compare exactly; the query is a case-insensitive substring match on
// the question or the answer.
func (s Selectors) Matches(q models.Question) bool {
	if s.Category != "" && q.Category != s.Category {
		return false
	}
	if s.UserType != "" && q.UserType != s.UserType {
		return false
	}
	if s.Query != "" && !models.ContainsFold(q.Question, s.Query) && !models.ContainsFold(q.Answer, s.Query) {
		return false
	}
	return true
}

// Filter returns the records matching sel, in their original order. It
// never returns nil: no match yields an empty slice.
func Filter(records []models.Question, sel Selectors) []models.Question {
	out := make([]models.Question, 0, len(records))
	for _, q := range records {
		if sel.Matches(q) {
			out = append(out, q)
		}
	}
	return out
}

// ParseCategory validates a category coming from a client. The empty
// string is accepted and means "any category".
func ParseCategory(s string) (models.Category, error) {
	c := models.Category(s)
	if s != "" && !c.IsKnown() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// ParseUserType validates a user type coming from a client. The empty
// string is accepted and means "any user type".
func ParseUserType(s string) (models.UserType, error) {
	u := models.UserType(s)
	if s != "" && !u.IsKnown() {
		return "", fmt.Errorf("%w: %q", ErrUnknownUserType, s)
	}
	return u, nil
}
