package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(Config{
		Addr:    "127.0.0.1:0",
		Dir:     t.TempDir(),
		BaseURL: "http://127.0.0.1:8000/",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty addr", Config{Addr: "", Dir: "x"}},
		{"bad addr", Config{Addr: "no-port", Dir: "x"}},
		{"bad port", Config{Addr: ":notaport", Dir: "x"}},
		{"empty dir", Config{Addr: ":8000", Dir: ""}},
		{"bad base url scheme", Config{Addr: ":8000", Dir: "x", BaseURL: "ftp://host/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Errorf("New(%+v) succeeded, want error", tt.cfg)
			}
		})
	}
}

func TestShutdownHandler(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/shutdown", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if body := rr.Body.String(); body != "Shutting down..." {
		t.Errorf("body = %q, want %q", body, "Shutting down...")
	}

	select {
	case <-srv.ShutdownRequested():
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown was never requested")
	}
}

func TestShutdownHandler_GetRejected(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/shutdown", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}

	select {
	case <-srv.ShutdownRequested():
		t.Fatal("GET must not trigger shutdown")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestStartAndShutdown(t *testing.T) {
	srv := newTestServer(t)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	// Shutdown without ever accepting a request must return cleanly.
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			t.Errorf("Start returned %v, want http.ErrServerClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start never returned")
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !containsAll(string(body), `"status":"healthy"`, `"storage"`) {
		t.Errorf("unexpected health body: %s", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !containsAll(string(body), `"uploads_total"`, `"requests_total"`) {
		t.Errorf("unexpected metrics body: %s", body)
	}
}
