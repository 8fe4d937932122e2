// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package learning

// PresentationMode selects how an opened question is shown.
type PresentationMode int

const (
	// Inline expands the answer in place (wide viewports).
	Inline PresentationMode = iota
	// Modal shows the answer in a detail overlay (narrow viewports).
	Modal
)

// String returns "inline" or "modal".
func (m PresentationMode) String() string {
	if m == Modal {
		return "modal"
	}
	return "inline"
}

// ModeForViewport maps the viewport classification to a presentation mode.
func ModeForViewport(narrow bool) PresentationMode {
	if narrow {
		return Modal
	}
	return Inline
}

// ParseViewport maps a client-supplied viewport value ("narrow" or "wide")
// to a presentation mode. Anything other than "narrow" is treated as wide.
func ParseViewport(v string) PresentationMode {
	return ModeForViewport(v == "narrow")
}

// Selection tracks the single active question. ActiveID is a lookup key,
// not ownership: it may point at a question the current filters hide.
type Selection struct {
	ActiveID  string `json:"activeId,omitempty"`
	ModalOpen bool   `json:"modalOpen,omitempty"`
}

// Select applies a click on question id. In modal mode the question becomes
// active and the modal opens; clicking again keeps it open. In inline mode
// the click toggles: the active question collapses, any other one expands
// and replaces it.
func (s *Selection) Select(id string, mode PresentationMode) {
	if mode == Modal {
		s.ActiveID = id
		s.ModalOpen = true
		return
	}

	s.ModalOpen = false
	if s.ActiveID == id {
		s.ActiveID = ""
		return
	}
	s.ActiveID = id
}

// CloseModal dismisses the modal. The active question is remembered so the
// same question can be reopened.
func (s *Selection) CloseModal() {
	s.ModalOpen = false
}

// Active returns the active question id, if any.
func (s Selection) Active() (string, bool) {
	return s.ActiveID, s.ActiveID != ""
}

// Opened reports whether the last Select left id open (expanded or in the modal).
func (s Selection) Opened(id string) bool {
	return id != "" && s.ActiveID == id
}
