package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/morezero/bear-bridge/internal/config"
	"github.com/morezero/bear-bridge/pkg/callback"
	"github.com/morezero/bear-bridge/pkg/dispatcher"
	"github.com/morezero/bear-bridge/pkg/pending"
)

const serverTestPrefix = "server:server_test"

// testServer returns a Server with a running callback listener for HTTP
// handler tests. NATS stays nil, which the health handler reports as down.
func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		HealthCheckTimeout: 5 * time.Second,
	}
	registry := pending.NewRegistry()
	listener := callback.NewServer(filepath.Join(t.TempDir(), "bridge-test.sock"), registry)
	if err := listener.Start(); err != nil {
		t.Fatalf("%s - listener start: %v", serverTestPrefix, err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		listener.Shutdown(ctx)
	})
	return &Server{cfg: cfg, registry: registry, listener: listener}
}

func TestHealthHandler_CommsDown(t *testing.T) {
	s := testServer(t)
	handler := s.handleHealth()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("%s - health (comms down) got status %d, want 503", serverTestPrefix, rec.Code)
	}
	var out healthOutput
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("%s - decode health: %v", serverTestPrefix, err)
	}
	if out.Status != "unhealthy" {
		t.Errorf("%s - Status = %q, want unhealthy", serverTestPrefix, out.Status)
	}
	if !out.Checks["listener"] {
		t.Errorf("%s - listener check = false, want true", serverTestPrefix)
	}
	if out.Checks["comms"] {
		t.Errorf("%s - comms check = true, want false", serverTestPrefix)
	}
	if out.Timestamp == "" {
		t.Errorf("%s - empty health timestamp", serverTestPrefix)
	}
}

func TestHealthHandler_ReportsPendingCount(t *testing.T) {
	s := testServer(t)
	if _, err := s.registry.Register("req-1"); err != nil {
		t.Fatalf("%s - register: %v", serverTestPrefix, err)
	}
	defer s.registry.Unregister("req-1")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.handleHealth().ServeHTTP(rec, req)

	var out healthOutput
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("%s - decode health: %v", serverTestPrefix, err)
	}
	if out.Pending != 1 {
		t.Errorf("%s - Pending = %d, want 1", serverTestPrefix, out.Pending)
	}
}

func TestHealthHandler_ListenerDown(t *testing.T) {
	s := testServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.listener.Shutdown(ctx); err != nil {
		t.Fatalf("%s - listener shutdown: %v", serverTestPrefix, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.handleHealth().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("%s - health (listener down) got status %d, want 503", serverTestPrefix, rec.Code)
	}
	var out healthOutput
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("%s - decode health: %v", serverTestPrefix, err)
	}
	if out.Checks["listener"] {
		t.Errorf("%s - listener check = true, want false", serverTestPrefix)
	}
}

func TestReadyHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	}(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("%s - ready got status %d, want 200", serverTestPrefix, rec.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("%s - decode ready: %v", serverTestPrefix, err)
	}
	if out["status"] != "ready" {
		t.Errorf("%s - status = %q, want ready", serverTestPrefix, out["status"])
	}
}

func TestRequestContext_ServerTimeout(t *testing.T) {
	ctx, cancel := requestContext(context.Background(), 25*time.Second, nil)
	defer cancel()
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatalf("%s - expected a deadline", serverTestPrefix)
	}
	if remaining := time.Until(deadline); remaining > 25*time.Second || remaining < 20*time.Second {
		t.Errorf("%s - deadline %v away, want ~25s", serverTestPrefix, remaining)
	}
}

func TestRequestContext_ClientShorterWins(t *testing.T) {
	ic := &dispatcher.InvocationContext{TimeoutMs: 1000}
	ctx, cancel := requestContext(context.Background(), 25*time.Second, ic)
	defer cancel()
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatalf("%s - expected a deadline", serverTestPrefix)
	}
	if remaining := time.Until(deadline); remaining > time.Second {
		t.Errorf("%s - deadline %v away, want <=1s", serverTestPrefix, remaining)
	}
}

func TestRequestContext_ClientLongerIgnored(t *testing.T) {
	ic := &dispatcher.InvocationContext{TimeoutMs: 60000}
	ctx, cancel := requestContext(context.Background(), 25*time.Second, ic)
	defer cancel()
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatalf("%s - expected a deadline", serverTestPrefix)
	}
	if remaining := time.Until(deadline); remaining > 25*time.Second {
		t.Errorf("%s - deadline %v away, want <=25s", serverTestPrefix, remaining)
	}
}

func TestRequestContext_ZeroTimeoutDisablesDeadline(t *testing.T) {
	ctx, cancel := requestContext(context.Background(), 0, nil)
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Errorf("%s - expected no deadline for zero timeout", serverTestPrefix)
	}

	// A client timeout still applies.
	ctx2, cancel2 := requestContext(context.Background(), 0, &dispatcher.InvocationContext{TimeoutMs: 500})
	defer cancel2()
	if _, ok := ctx2.Deadline(); !ok {
		t.Errorf("%s - expected client deadline despite zero server timeout", serverTestPrefix)
	}
}
