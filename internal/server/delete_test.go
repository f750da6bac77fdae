package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestDeleteHandler_RemovesFile(t *testing.T) {
	srv := newTestServer(t)
	if err := os.WriteFile(srv.Store().Path("a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/delete/a.txt", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}

	if _, err := os.Stat(srv.Store().Path("a.txt")); !os.IsNotExist(err) {
		t.Errorf("file still present after delete (err=%v)", err)
	}
}

func TestDeleteHandler_MissingFileIsIdempotent(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/delete/missing.txt", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	// Deleting a non-existent file is treated as success.
	if rr.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}

func TestDeleteHandler_UnsafeNameStillRedirects(t *testing.T) {
	srv := newTestServer(t)

	outside := t.TempDir()
	victim := outside + "/victim.txt"
	if err := os.WriteFile(victim, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/delete/x", nil)
	req.URL.Path = "/delete/../" + victim
	rr := httptest.NewRecorder()
	srv.deleteHandler().ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", rr.Code)
	}
	if _, err := os.Stat(victim); err != nil {
		t.Errorf("file outside the root was touched: %v", err)
	}
}

func TestDeleteHandler_RejectsPost(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/delete/a.txt", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
}
