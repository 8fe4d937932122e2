// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package learning

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultIdleTimeout is how long a live session stays in memory without
// being touched.
const DefaultIdleTimeout = 30 * time.Minute

// LoadFunc returns the persisted snapshot of a session, or nil if there is
// none.
type LoadFunc func() (*Snapshot, error)

// registryEntry is a live session and when it was last used.
type registryEntry struct {
	session  *Session
	lastSeen time.Time
}

// Registry keeps the live Session of every active visitor, keyed by the
// browser session id. Sessions that are not in memory are rebuilt from
// their persisted snapshot; idle ones are closed and evicted in the
// background.
type Registry struct {
	repo Repository
	opts Options
	idle time.Duration
	now  func() time.Time

	// OnCommit runs after a session's search commit, with the session id.
	OnCommit func(id string, s *Session, query string)

	mu       sync.Mutex
	sessions map[string]*registryEntry
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRegistry creates a registry and starts the eviction loop. opts.OnCommit
// is ignored; set Registry.OnCommit instead.
func NewRegistry(repo Repository, opts Options, idle time.Duration) *Registry {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	r := &Registry{
		repo:     repo,
		opts:     opts,
		idle:     idle,
		now:      time.Now,
		sessions: make(map[string]*registryEntry),
		stopCh:   make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(sweepInterval(idle))
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.sweep()
			case <-r.stopCh:
				return
			}
		}
	}()

	return r
}

// sweepInterval checks a few times per idle period, at most once a minute.
func sweepInterval(idle time.Duration) time.Duration {
	d := idle / 4
	if d > time.Minute {
		d = time.Minute
	}
	if d < time.Second {
		d = time.Second
	}
	return d
}

// Acquire returns the live session for id. When none is in memory, load is
// called (outside the lock) and its snapshot restored; a nil snapshot or a
// nil load starts a default session.
func (r *Registry) Acquire(id string, load LoadFunc) (*Session, error) {
	if s, ok := r.touch(id); ok {
		return s, nil
	}

	var snap *Snapshot
	if load != nil {
		var err error
		if snap, err = load(); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check: another request may have restored it meanwhile.
	if e, ok := r.sessions[id]; ok {
		e.lastSeen = r.now()
		return e.session, nil
	}

	s := r.newSession(id, snap)
	r.sessions[id] = &registryEntry{session: s, lastSeen: r.now()}
	slog.Debug("learning session opened", "restored", snap != nil, "live", len(r.sessions))
	return s, nil
}

func (r *Registry) newSession(id string, snap *Snapshot) *Session {
	opts := r.opts
	opts.OnCommit = func(s *Session, query string) {
		r.mu.Lock()
		if e, ok := r.sessions[id]; ok {
			e.lastSeen = r.now()
		}
		hook := r.OnCommit
		r.mu.Unlock()
		if hook != nil {
			hook(id, s, query)
		}
	}
	if snap == nil {
		return NewSession(r.repo, opts)
	}
	return RestoreSession(r.repo, *snap, opts)
}

// touch returns the live session for id and refreshes its idle clock.
func (r *Registry) touch(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.session, true
}

// Drop closes and forgets the session for id.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		e.session.Close()
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// sweep evicts sessions idle for longer than the idle timeout.
func (r *Registry) sweep() {
	cutoff := r.now().Add(-r.idle)

	r.mu.Lock()
	var expired []*Session
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.session)
			delete(r.sessions, id)
		}
	}
	live := len(r.sessions)
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		slog.Debug("learning sessions evicted", "evicted", len(expired), "live", live)
	}
}

// Stop terminates the eviction loop and closes every live session.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })

	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*registryEntry)
	r.mu.Unlock()

	for _, e := range sessions {
		e.session.Close()
	}
}
