// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package learning

import (
	"sync"
	"time"
)

// DefaultDebounce is how long the search box waits after the last keystroke
// before the typed text reaches the filter.
const DefaultDebounce = 300 * time.Millisecond

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already ran
	// or was already stopped.
	Stop() bool
}

// Scheduler runs f once after d. Production code uses SystemScheduler;
// tests inject a manual scheduler to control time.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler schedules callbacks with time.AfterFunc.
var SystemScheduler Scheduler = systemScheduler{}

// SearchInput is the search box: the raw text echoed while typing, the
// committed query the filter uses, and whether the box has focus. Every
// keystroke cancels the pending commit and schedules a new one, so only
// the last value of a burst is committed.
type SearchInput struct {
	sched    Scheduler
	delay    time.Duration
	onCommit func(query string)

	mu        sync.Mutex
	raw       string
	committed string
	focused   bool
	pending   Timer
	gen       uint64 // bumped on every keystroke; a callback from an older generation is stale
}

// NewSearchInput creates a search box. A nil scheduler means SystemScheduler
// and a non-positive delay means DefaultDebounce. onCommit, if set, runs
// after each commit without any lock held.
func NewSearchInput(sched Scheduler, delay time.Duration, onCommit func(query string)) *SearchInput {
	if sched == nil {
		sched = SystemScheduler
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &SearchInput{sched: sched, delay: delay, onCommit: onCommit}
}

// OnInput records a keystroke: the raw text updates immediately and the
// commit is (re)scheduled.
func (s *SearchInput) OnInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw = text
	s.gen++
	if s.pending != nil {
		s.pending.Stop()
	}
	gen := s.gen
	s.pending = s.sched.AfterFunc(s.delay, func() { s.fire(gen) })
}

// fire commits the value typed in generation gen, unless a newer keystroke
// has arrived since.
func (s *SearchInput) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.pending == nil {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.committed = s.raw
	query := s.committed
	s.mu.Unlock()

	if s.onCommit != nil {
		s.onCommit(query)
	}
}

// Flush commits the pending value immediately. It reports whether anything
// was pending.
func (s *SearchInput) Flush() bool {
	s.mu.Lock()
	if s.pending == nil {
		s.mu.Unlock()
		return false
	}
	s.pending.Stop()
	s.pending = nil
	s.gen++
	s.committed = s.raw
	query := s.committed
	s.mu.Unlock()

	if s.onCommit != nil {
		s.onCommit(query)
	}
	return true
}

// Stop cancels any pending commit without committing it.
func (s *SearchInput) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.gen++
}

// OnFocus marks the search box focused.
func (s *SearchInput) OnFocus() {
	s.mu.Lock()
	s.focused = true
	s.mu.Unlock()
}

// OnBlur marks the search box unfocused. It is also used when the visitor
// clicks outside the search control.
func (s *SearchInput) OnBlur() {
	s.mu.Lock()
	s.focused = false
	s.mu.Unlock()
}

// Raw returns the text as typed.
func (s *SearchInput) Raw() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// Committed returns the query the filter currently uses.
func (s *SearchInput) Committed() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// Focused reports whether the search box has focus.
func (s *SearchInput) Focused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// Pending reports whether a commit is scheduled.
func (s *SearchInput) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// restore sets the state without scheduling anything. A raw value that
// differs from the committed one was typed but never committed; it is
// committed right away because the timer that would have done it is gone.
func (s *SearchInput) restore(raw, committed string, focused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	s.committed = committed
	if raw != committed {
		s.committed = raw
	}
	s.focused = focused
}
