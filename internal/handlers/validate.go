// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"unicode/utf8"
)

// Validation limits for client input.
const (
	maxQueryLen      = 200
	maxListLimit     = 50
	defaultListLimit = 20
)

// validateQuery checks a search query and returns the first error found.
// The empty query is valid: it clears the search.
func validateQuery(q string) string {
	if !utf8.ValidString(q) {
		return "Search query is not valid text."
	}
	if utf8.RuneCountInString(q) > maxQueryLen {
		return "Search query is too long (max 200 characters)."
	}
	return ""
}

// parseLimit reads an optional non-negative limit, capped at maxListLimit. An
// empty value yields def. The second result is false for malformed input.
func parseLimit(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	if n > maxListLimit {
		n = maxListLimit
	}
	return n, true
}

// searchQuery parses the request form and returns a validated q field,
// answering 400 itself when the input is rejected.
func searchQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return "", false
	}
	q := r.PostFormValue("q")
	if msg := validateQuery(q); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return "", false
	}
	return q, true
}
