package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestReverseLookupSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("lat") != "25.034300" {
			t.Fatalf("unexpected lat %q", r.URL.Query().Get("lat"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name":"Gladstone Road, Nassau, The Bahamas"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second, zap.NewNop())
	addr := c.ReverseLookup(context.Background(), 25.0343, -77.3963)
	if addr != "Gladstone Road, Nassau, The Bahamas" {
		t.Fatalf("unexpected address %q", addr)
	}
}

func TestReverseLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second, zap.NewNop())
	if addr := c.ReverseLookup(context.Background(), 25, -77); addr != Unavailable {
		t.Fatalf("expected fallback got %q", addr)
	}
}

func TestReverseLookupAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second, zap.NewNop())
	if addr := c.ReverseLookup(context.Background(), 0, 0); addr != Unavailable {
		t.Fatalf("expected fallback got %q", addr)
	}
}

func TestReverseLookupTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"display_name":"too late"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 50*time.Millisecond, zap.NewNop())
	start := time.Now()
	addr := c.ReverseLookup(context.Background(), 25, -77)
	if addr != Unavailable {
		t.Fatalf("expected fallback got %q", addr)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("lookup did not respect timeout")
	}
}
