// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds the fixed set of learning-center questions. The
// dataset is embedded in the binary at compile time, parsed once at startup
// and never mutated afterwards, so every read is safe for concurrent use.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"learncenter/internal/learning"
	"learncenter/internal/models"
)

//go:embed questions.yaml
var dataset []byte

// ErrInvalidDataset is returned when the question list breaks a construction
// invariant (missing fields or duplicate ids).
var ErrInvalidDataset = errors.New("invalid question dataset")

// Catalog is the read-only question repository.
type Catalog struct {
	questions []models.Question
	byID      map[string]int
}

// Load parses the embedded dataset.
func Load() (*Catalog, error) {
	return Parse(dataset)
}

// MustLoad is like Load but panics on a malformed embedded dataset. The
// dataset ships with the binary, so a failure here is a build defect.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Parse decodes a YAML list of questions and builds a Catalog from it.
func Parse(data []byte) (*Catalog, error) {
	var questions []models.Question
	if err := yaml.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return New(questions)
}

// New builds a Catalog from an in-memory list, keeping its order. Category
// and user type values are not checked against the known sets; unknown
// values just never match a filter.
func New(questions []models.Question) (*Catalog, error) {
	c := &Catalog{
		questions: make([]models.Question, len(questions)),
		byID:      make(map[string]int, len(questions)),
	}
	copy(c.questions, questions)

	for i, q := range c.questions {
		switch {
		case strings.TrimSpace(q.ID) == "":
			return nil, fmt.Errorf("%w: question %d has no id", ErrInvalidDataset, i)
		case strings.TrimSpace(q.Question) == "":
			return nil, fmt.Errorf("%w: question %q has no text", ErrInvalidDataset, q.ID)
		case strings.TrimSpace(q.Answer) == "":
			return nil, fmt.Errorf("%w: question %q has no answer", ErrInvalidDataset, q.ID)
		}
		if prev, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("%w: id %q used by questions %d and %d", ErrInvalidDataset, q.ID, prev, i)
		}
		c.byID[q.ID] = i
	}

	return c, nil
}

// All returns every question in dataset order. The slice is a copy.
func (c *Catalog) All() []models.Question {
	out := make([]models.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Featured returns up to limit featured questions in dataset order.
// It returns an empty slice when limit <= 0 or nothing is featured.
func (c *Catalog) Featured(limit int) []models.Question {
	return learning.Featured(c.questions, limit)
}

// Find looks a question up by id.
func (c *Catalog) Find(id string) (models.Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Question{}, false
	}
	return c.questions[i], true
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}
