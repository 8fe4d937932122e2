// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"errors"
	"testing"

	"learncenter/internal/models"
)

func TestLoadEmbeddedDataset(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 13 {
		t.Errorf("Len() = %d, want 13", c.Len())
	}

	all := c.All()
	if all[0].ID != "b1" || all[len(all)-1].ID != "o2" {
		t.Errorf("unexpected order: first %q, last %q", all[0].ID, all[len(all)-1].ID)
	}

	// Every shipped record uses the known enumerations.
	for _, q := range all {
		if !q.Category.IsKnown() {
			t.Errorf("%s: unknown category %q", q.ID, q.Category)
		}
		if !q.UserType.IsKnown() {
			t.Errorf("%s: unknown user type %q", q.ID, q.UserType)
		}
	}

	b2, ok := c.Find("b2")
	if !ok {
		t.Fatal("b2 not found")
	}
	if b2.Featured {
		t.Error("b2 should not be featured")
	}
	if b2.Answer == "" || b2.Answer[len(b2.Answer)-1] == '\n' {
		t.Errorf("answer should be folded without trailing newline: %q", b2.Answer)
	}
}

func TestMustLoad(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustLoad panicked: %v", r)
		}
	}()
	if MustLoad().Len() == 0 {
		t.Error("MustLoad returned an empty catalog")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	c := MustLoad()
	first := c.All()
	first[0].Question = "mutated"

	again := c.All()
	if again[0].Question == "mutated" {
		t.Error("All() must not expose the internal slice")
	}
}

func TestFeatured(t *testing.T) {
	c := MustLoad()

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "default shelf", limit: 3, want: []string{"b1", "b3", "i1"}},
		{name: "truncated", limit: 2, want: []string{"b1", "b3"}},
		{name: "more than flagged", limit: 10, want: []string{"b1", "b3", "i1"}},
		{name: "zero", limit: 0, want: []string{}},
		{name: "negative", limit: -1, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Featured(tt.limit)
			if got == nil {
				t.Fatal("Featured returned nil, want empty slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Featured(%d) returned %d records, want %d", tt.limit, len(got), len(tt.want))
			}
			for i, q := range got {
				if q.ID != tt.want[i] {
					t.Errorf("[%d] = %q, want %q", i, q.ID, tt.want[i])
				}
				if !q.Featured {
					t.Errorf("[%d] %q is not featured", i, q.ID)
				}
			}
		})
	}
}

func TestFeaturedNoneFlagged(t *testing.T) {
	c, err := New([]models.Question{
		{ID: "x", Question: "q", Answer: "a", Category: models.CategoryLegal, UserType: models.UserTypeAgents},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Featured(3); len(got) != 0 {
		t.Errorf("Featured(3) = %v, want empty", got)
	}
}

func TestFind(t *testing.T) {
	c := MustLoad()

	q, ok := c.Find("f2")
	if !ok {
		t.Fatal("f2 not found")
	}
	if q.Category != models.CategoryFinancial || q.UserType != models.UserTypeBuyers {
		t.Errorf("f2 = %+v", q)
	}

	if _, ok := c.Find("missing"); ok {
		t.Error("Find(missing) reported found")
	}
	if _, ok := c.Find("B1"); ok {
		t.Error("Find must be case-sensitive")
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name      string
		questions []models.Question
	}{
		{name: "missing id", questions: []models.Question{{Question: "q", Answer: "a"}}},
		{name: "blank question", questions: []models.Question{{ID: "a", Question: "  ", Answer: "a"}}},
		{name: "missing answer", questions: []models.Question{{ID: "a", Question: "q"}}},
		{name: "duplicate id", questions: []models.Question{
			{ID: "a", Question: "q1", Answer: "a1"},
			{ID: "a", Question: "q2", Answer: "a2"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.questions)
			if !errors.Is(err, ErrInvalidDataset) {
				t.Errorf("New() error = %v, want ErrInvalidDataset", err)
			}
		})
	}
}

// TestNewKeepsUnknownEnums verifies the enumerations are advisory.
func TestNewKeepsUnknownEnums(t *testing.T) {
	c, err := New([]models.Question{
		{ID: "t1", Question: "q", Answer: "a", Category: "taxes", UserType: "tenants"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("- id: [unterminated")); err == nil {
		t.Error("expected decode error")
	}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
- id: x1
  question: Is this parsed?
  answer: Yes.
  category: legal
  userType: agents
  featured: true
- id: x2
  question: And this?
  answer: Also yes.
  category: legal
  userType: sellers
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	all := c.All()
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if !all[0].Featured || all[1].Featured {
		t.Errorf("featured flags = %v, %v; want true, false", all[0].Featured, all[1].Featured)
	}
	if all[1].UserType != models.UserTypeSellers {
		t.Errorf("userType = %q", all[1].UserType)
	}
}
