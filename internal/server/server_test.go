package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend-workoutmap/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestHealthRoute(t *testing.T) {
	s := NewServer(config.Config{ServerPort: ":0"}, nil, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestMetricsRoute(t *testing.T) {
	s := NewServer(config.Config{ServerPort: ":0"}, nil, nil)

	resp, err := s.App.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil || resp.StatusCode != 200 {
		t.Fatalf("metrics status: %v", err)
	}
}

func post(t *testing.T, s *Server, path, body string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp.StatusCode
}

func TestEndToEndWithRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cfg := config.Config{StorageDriver: config.DriverRedis, StorageKey: "workouts", StreamTopic: "workouts"}
	s := NewServer(cfg, nil, rdb)

	if code := post(t, s, "/tracker/position", `{"lat":32,"lng":-12}`); code != http.StatusNoContent {
		t.Fatalf("position status %d", code)
	}
	if code := post(t, s, "/stream/workouts/map/click", `{"lat":32,"lng":-12}`); code != http.StatusNoContent {
		t.Fatalf("click status %d", code)
	}
	if code := post(t, s, "/tracker/workouts", `{"type":"cycling","distance":"12","duration":"30","elevation":"578"}`); code != http.StatusCreated {
		t.Fatalf("submit status %d", code)
	}

	stored, err := mr.Get("workouts")
	if err != nil {
		t.Fatalf("expected stored workouts: %v", err)
	}
	if !bytes.Contains([]byte(stored), []byte(`"speedKmPerH":24`)) {
		t.Fatalf("unexpected stored value %s", stored)
	}

	// A second server over the same store restores the workout.
	restored := NewServer(cfg, nil, rdb)
	if got := len(restored.Tracker.Workouts()); got != 1 {
		t.Fatalf("expected 1 restored workout, got %d", got)
	}

	if code := post(t, s, "/tracker/reset", ""); code != http.StatusNoContent {
		t.Fatalf("reset status %d", code)
	}
	if mr.Exists("workouts") {
		t.Fatalf("expected storage cleared")
	}
}

func TestFixedLocatorReadyAtStartup(t *testing.T) {
	cfg := config.Config{StorageDriver: config.DriverMemory, Locator: config.LocatorFixed, DefaultLat: 32, DefaultLng: -12}
	s := NewServer(cfg, nil, nil)

	if !s.Tracker.State().MapReady {
		t.Fatalf("expected map ready with fixed locator")
	}
	if s.Locator != nil {
		t.Fatalf("fixed locator should not expose a client locator")
	}
	if code := post(t, s, "/tracker/position", `{"lat":1,"lng":1}`); code != http.StatusNotFound {
		t.Fatalf("expected not found, got %d", code)
	}
}

func TestPostgresDriverWithoutPoolFallsBack(t *testing.T) {
	kv := newKV(config.Config{StorageDriver: config.DriverPostgres}, nil, nil)
	if err := kv.Set(context.Background(), "k", []byte("v")); err != nil {
		t.Fatalf("fallback store should accept writes: %v", err)
	}
}
