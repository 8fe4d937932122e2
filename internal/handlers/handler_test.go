// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Handlers run against the embedded catalog with in-memory fakes for the
// session store and activity log; integration tests that need Valkey are
// skipped when it is unavailable.
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"learncenter/internal/catalog"
	"learncenter/internal/learning"
	"learncenter/internal/learning/learningtest"
	"learncenter/internal/middleware"
	"learncenter/internal/models"
	"learncenter/internal/render"
	"learncenter/internal/session"
)

// fakeSessions records saved snapshots in memory.
type fakeSessions struct {
	mu        sync.Mutex
	saved     map[string]learning.Snapshot
	destroyed int
}

func (f *fakeSessions) SaveState(_ context.Context, id string, state learning.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		f.saved = make(map[string]learning.Snapshot)
	}
	f.saved[id] = state
	return nil
}

func (f *fakeSessions) Destroy(_ context.Context, _ http.ResponseWriter, _ *http.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed++
	return nil
}

func (f *fakeSessions) last(id string) (learning.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.saved[id]
	return s, ok
}

// fakeActivity implements OpenLogger and ActivityReader.
type fakeActivity struct {
	mu       sync.Mutex
	opens    []string // "questionID/mode"
	searches []models.SearchCommit
	recent   []models.QuestionOpen
	counts   []models.QuestionOpenCount
	err      error
	limits   []int
}

func (f *fakeActivity) LogOpen(_ uuid.UUID, questionID, mode string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens = append(f.opens, questionID+"/"+mode)
}

func (f *fakeActivity) RecentSearches(limit int) ([]models.SearchCommit, error) {
	f.limits = append(f.limits, limit)
	return f.searches, f.err
}

func (f *fakeActivity) RecentOpens(limit int) ([]models.QuestionOpen, error) {
	f.limits = append(f.limits, limit)
	return f.recent, f.err
}

func (f *fakeActivity) OpenCounts(limit int) ([]models.QuestionOpenCount, error) {
	f.limits = append(f.limits, limit)
	return f.counts, f.err
}

func (f *fakeActivity) logged() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.opens...)
}

// fakeRecorder implements metrics.Recorder.
type fakeRecorder struct {
	mu      sync.Mutex
	filters int
	opens   map[string]int
}

func (f *fakeRecorder) RecordFilter(int) {
	f.mu.Lock()
	f.filters++
	f.mu.Unlock()
}

func (f *fakeRecorder) RecordSearchCommit(int) {}

func (f *fakeRecorder) RecordQuestionOpen(mode string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.opens == nil {
		f.opens = make(map[string]int)
	}
	f.opens[mode]++
}

func (f *fakeRecorder) RecordHTTPStatus(int) {}

func (f *fakeRecorder) RecordRequestLatency(time.Duration) {}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Catalog   *catalog.Catalog
	Scheduler *learningtest.Scheduler
	Registry  *learning.Registry
	Renderer  *render.Renderer
	Sessions  *fakeSessions
	Activity  *fakeActivity
	Metrics   *fakeRecorder
	Learn     *Learn
	API       *API

	// Session is the visitor every learnRequest runs as.
	SessionID string
	Session   *session.Data
}

// newTestEnv creates a complete test environment without external services.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	cat := catalog.MustLoad()
	sched := learningtest.NewScheduler()
	registry := learning.NewRegistry(cat, learning.Options{Scheduler: sched}, time.Minute)
	t.Cleanup(registry.Stop)

	env := &testEnv{
		Catalog:   cat,
		Scheduler: sched,
		Registry:  registry,
		Renderer:  renderer,
		Sessions:  &fakeSessions{},
		Activity:  &fakeActivity{},
		Metrics:   &fakeRecorder{},
		SessionID: "test-session",
		Session:   session.NewData(),
	}
	env.Learn = NewLearn(renderer, env.Sessions, registry, nil, env.Activity, env.Metrics)
	env.API = NewAPI(cat, env.Activity, learning.DefaultFeaturedLimit, env.Metrics)
	return env
}

// learnRequest builds a request carrying the env's session, as LoadSession
// would. A non-nil form is sent url-encoded.
func (env *testEnv) learnRequest(method, target string, form url.Values, htmx bool) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	ctx := context.WithValue(req.Context(), middleware.SessionKey, env.Session)
	ctx = context.WithValue(ctx, middleware.SessionIDKey, env.SessionID)
	return req.WithContext(ctx)
}

// live returns the env's live learning session.
func (env *testEnv) live(t *testing.T) *learning.Session {
	t.Helper()
	s, err := env.Registry.Acquire(env.SessionID, nil)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	return s
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and fragment keys.
		for _, pattern := range []string{"session:*", "fragment:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}
