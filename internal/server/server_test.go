package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type pingRegistrar struct{}

func (pingRegistrar) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ping", func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte("pong"))
	})
}

func TestServer_Health(t *testing.T) {
	s := New(Config{Host: "127.0.0.1", Port: 0, Logger: testLogger()})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "ok") {
		t.Errorf("expected ok status, got %s", rr.Body.String())
	}
}

func TestServer_RegistrarRoutes(t *testing.T) {
	s := New(Config{Host: "127.0.0.1", Port: 0, Logger: testLogger()}, pingRegistrar{})
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "pong" {
		t.Errorf("expected pong, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestServer_RequestID(t *testing.T) {
	s := New(Config{Host: "127.0.0.1", Port: 0, Logger: testLogger()})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header on every response")
	}
}

func TestServer_NotFound(t *testing.T) {
	s := New(Config{Host: "127.0.0.1", Port: 0, Logger: testLogger()})
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}
