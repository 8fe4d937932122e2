// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package learning_test

import (
	"testing"

	"learncenter/internal/learning"
)

func TestSelectionInlineToggle(t *testing.T) {
	t.Run("same question twice collapses", func(t *testing.T) {
		var s learning.Selection
		s.Select("x", learning.Inline)
		s.Select("x", learning.Inline)
		if id, ok := s.Active(); ok {
			t.Errorf("Active() = %q, want none", id)
		}
	})

	t.Run("other question replaces", func(t *testing.T) {
		var s learning.Selection
		s.Select("x", learning.Inline)
		s.Select("y", learning.Inline)
		if id, _ := s.Active(); id != "y" {
			t.Errorf("Active() = %q, want y", id)
		}
		if s.Opened("x") {
			t.Error("x should no longer be open")
		}
	})

	t.Run("inline never opens modal", func(t *testing.T) {
		var s learning.Selection
		s.Select("x", learning.Inline)
		if s.ModalOpen {
			t.Error("inline select opened the modal")
		}
	})
}

func TestSelectionModal(t *testing.T) {
	var s learning.Selection
	s.Select("x", learning.Modal)
	if !s.ModalOpen || s.ActiveID != "x" {
		t.Fatalf("after modal select: %+v", s)
	}

	// Repeated taps keep the modal open on the same question.
	s.Select("x", learning.Modal)
	if !s.ModalOpen || s.ActiveID != "x" {
		t.Errorf("repeated modal select toggled: %+v", s)
	}

	// Closing keeps the remembered question.
	s.CloseModal()
	if s.ModalOpen {
		t.Error("modal still open after CloseModal")
	}
	if s.ActiveID != "x" {
		t.Errorf("ActiveID = %q after close, want x", s.ActiveID)
	}

	s.Select("y", learning.Modal)
	if s.ActiveID != "y" || !s.ModalOpen {
		t.Errorf("modal select of another question: %+v", s)
	}
}

// TestSelectionModeSwitch covers a viewport change between clicks.
func TestSelectionModeSwitch(t *testing.T) {
	var s learning.Selection
	s.Select("x", learning.Modal)
	s.Select("x", learning.Inline)
	if s.ModalOpen {
		t.Error("inline click should close the modal")
	}
	if _, ok := s.Active(); ok {
		t.Error("inline click on the active question should collapse it")
	}
}

func TestPresentationMode(t *testing.T) {
	tests := []struct {
		viewport string
		want     learning.PresentationMode
		str      string
	}{
		{viewport: "narrow", want: learning.Modal, str: "modal"},
		{viewport: "wide", want: learning.Inline, str: "inline"},
		{viewport: "", want: learning.Inline, str: "inline"},
		{viewport: "NARROW", want: learning.Inline, str: "inline"},
	}

	for _, tt := range tests {
		t.Run(tt.viewport, func(t *testing.T) {
			got := learning.ParseViewport(tt.viewport)
			if got != tt.want {
				t.Errorf("ParseViewport(%q) = %v, want %v", tt.viewport, got, tt.want)
			}
			if got.String() != tt.str {
				t.Errorf("String() = %q, want %q", got.String(), tt.str)
			}
		})
	}

	if learning.ModeForViewport(true) != learning.Modal || learning.ModeForViewport(false) != learning.Inline {
		t.Error("ModeForViewport mapping is wrong")
	}
}
