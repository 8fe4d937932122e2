// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"learncenter/internal/learning"
	"learncenter/internal/models"
)

// testValkeyClient returns a Redis client connected to the test Valkey.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, keyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// sessionCookie returns the session cookie set on a recorded response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("expected session cookie to be set")
	return nil
}

func TestNewData(t *testing.T) {
	a, b := NewData(), NewData()
	if a.AnalyticsID == b.AnalyticsID {
		t.Error("expected distinct analytics IDs")
	}
	if a.State != learning.DefaultSnapshot() {
		t.Errorf("State = %+v, want default snapshot", a.State)
	}
}

func TestIDFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := IDFromRequest(req); ok {
		t.Error("expected no ID without cookie")
	}

	req.AddCookie(&http.Cookie{Name: CookieName, Value: "abc"})
	id, ok := IDFromRequest(req)
	if !ok || id != "abc" {
		t.Errorf("IDFromRequest = %q, %v; want %q, true", id, ok, "abc")
	}
}

func TestGenerateID(t *testing.T) {
	id, err := generateID()
	if err != nil {
		t.Fatalf("generateID: %v", err)
	}
	if len(id) != idLength*2 {
		t.Errorf("len(id) = %d, want %d", len(id), idLength*2)
	}
}

func TestSessionCreateAndGet(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	w := httptest.NewRecorder()
	ctx := context.Background()

	data := NewData()
	data.State.Category = models.CategoryFinancial

	sessionID, err := store.Create(ctx, w, data)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sessionID == "" {
		t.Error("expected non-empty session ID")
	}

	cookie := sessionCookie(t, w)
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if cookie.Secure {
		t.Error("expected Secure=false for non-secure store")
	}
	if cookie.Value != sessionID {
		t.Errorf("cookie value = %q, want session ID %q", cookie.Value, sessionID)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)

	retrieved, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected session data, got nil")
	}
	if retrieved.AnalyticsID != data.AnalyticsID {
		t.Errorf("AnalyticsID = %s, want %s", retrieved.AnalyticsID, data.AnalyticsID)
	}
	if retrieved.State.Category != models.CategoryFinancial {
		t.Errorf("State.Category = %q, want %q", retrieved.State.Category, models.CategoryFinancial)
	}
	if retrieved.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestSessionSecureCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, true)

	w := httptest.NewRecorder()
	if _, err := store.Create(context.Background(), w, NewData()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !sessionCookie(t, w).Secure {
		t.Error("expected Secure=true for secure store")
	}
}

func TestSessionGetNoCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	req := httptest.NewRequest("GET", "/", nil)
	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get (no cookie): %v", err)
	}
	if data != nil {
		t.Error("expected nil for request without session cookie")
	}
}

func TestSessionGetExpired(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "nonexistent-session-id"})

	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get (expired): %v", err)
	}
	if data != nil {
		t.Error("expected nil for expired/nonexistent session")
	}
}

func TestSessionSaveState(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)
	ctx := context.Background()

	data := NewData()
	id, err := store.Create(ctx, httptest.NewRecorder(), data)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	state := learning.Snapshot{
		Category: models.CategoryInvestment,
		UserType: models.UserTypeAgents,
		Query:    "reit",
		RawQuery: "reit",
	}
	if err := store.SaveState(ctx, id, state); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	got, err := store.Load(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("Load: %v, %v", got, err)
	}
	if got.State != state {
		t.Errorf("State = %+v, want %+v", got.State, state)
	}
	if got.AnalyticsID != data.AnalyticsID {
		t.Error("SaveState must keep the analytics ID")
	}
}

func TestSessionSaveStateMissing(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)
	ctx := context.Background()

	if err := store.SaveState(ctx, "gone", learning.DefaultSnapshot()); err != nil {
		t.Fatalf("SaveState (missing): %v", err)
	}
	if got, _ := store.Load(ctx, "gone"); got != nil {
		t.Error("SaveState must not create a session")
	}
}

func TestSessionDestroy(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	w := httptest.NewRecorder()
	ctx := context.Background()

	if _, err := store.Create(ctx, w, NewData()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(sessionCookie(t, w))

	if err := store.Destroy(ctx, w2, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	for _, c := range w2.Result().Cookies() {
		if c.Name == CookieName && c.MaxAge != -1 {
			t.Error("expected MaxAge=-1 on destroyed cookie")
		}
	}

	if retrieved, _ := store.Get(ctx, req); retrieved != nil {
		t.Error("expected nil after destroy")
	}
}

func TestSessionDestroyNoCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	if err := store.Destroy(context.Background(), w, req); err != nil {
		t.Errorf("Destroy (no cookie): %v", err)
	}
}
