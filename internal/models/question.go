// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Question is a single learning-center record: one question, its answer,
// and the topic and audience it belongs to. Records are authored once and
// never change for the lifetime of the process.
type Question struct {
	ID       string   `json:"id" yaml:"id"`
	Question string   `json:"question" yaml:"question"`
	Answer   string   `json:"answer" yaml:"answer"`
	Category Category `json:"category" yaml:"category"`
	UserType UserType `json:"userType" yaml:"userType"`
	Featured bool     `json:"featured,omitempty" yaml:"featured,omitempty"`
}

// CategoryLabel returns the category as a badge label ("beginners" -> "Beginners").
func (q Question) CategoryLabel() string {
	return Capitalize(string(q.Category))
}

// UserTypeLabel returns the user type as a badge label ("nris" -> "Nris").
func (q Question) UserTypeLabel() string {
	return Capitalize(string(q.UserType))
}

// Capitalize upper-cases the first letter of s and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// ContainsFold reports whether substr occurs in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
