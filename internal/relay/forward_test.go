package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestForwarder_Success(t *testing.T) {
	var gotBody map[string]string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewForwarder(srv.URL, srv.Client(), testLogger())
	if err := f.Forward(context.Background(), "hello"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected application/json, got %q", gotContentType)
	}
	if gotBody["text"] != "hello" {
		t.Errorf("expected text field hello, got %v", gotBody)
	}
}

func TestForwarder_DestinationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewForwarder(srv.URL, srv.Client(), testLogger())
	err := f.Forward(context.Background(), "hello")
	var fwErr *ForwardError
	if !errors.As(err, &fwErr) {
		t.Fatalf("expected *ForwardError, got %v", err)
	}
	if fwErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", fwErr.StatusCode)
	}
}

func TestForwarder_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := NewForwarder(url, nil, testLogger())
	err := f.Forward(context.Background(), "hello")
	var fwErr *ForwardError
	if !errors.As(err, &fwErr) {
		t.Fatalf("expected *ForwardError, got %v", err)
	}
	if fwErr.Err == nil {
		t.Error("network failure should carry the underlying error")
	}
}

func TestForwarder_NoURL(t *testing.T) {
	f := NewForwarder("", nil, testLogger())
	if err := f.Forward(context.Background(), "hello"); err == nil {
		t.Error("expected error for missing destination URL")
	}
}
