package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTokenServer(t *testing.T, handler http.HandlerFunc) *tokenSource {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return newTokenSource(srv.URL, "cid", "secret", srv.Client())
}

func TestTokenSource_FetchesAndCaches(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		if got := r.Form.Get("grant_type"); got != "client_credentials" {
			t.Errorf("grant_type: got %q, want %q", got, "client_credentials")
		}
		if got := r.Form.Get("client_id"); got != "cid" {
			t.Errorf("client_id: got %q, want %q", got, "cid")
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenResponse{
			AccessToken: fmt.Sprintf("token-%d", calls.Load()),
			ExpiresIn:   3600,
		})
	})

	tok, err := ts.get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "token-1" {
		t.Errorf("token: got %q, want %q", tok, "token-1")
	}

	// Second call must come from the cache.
	tok, err = ts.get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "token-1" {
		t.Errorf("cached token: got %q, want %q", tok, "token-1")
	}
	if calls.Load() != 1 {
		t.Errorf("token endpoint calls: got %d, want 1", calls.Load())
	}
}

func TestTokenSource_InvalidateForcesFetch(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenResponse{
			AccessToken: fmt.Sprintf("token-%d", calls.Add(1)),
			ExpiresIn:   3600,
		})
	})

	if _, err := ts.get(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tok, err := ts.invalidate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "token-2" {
		t.Errorf("token after invalidate: got %q, want %q", tok, "token-2")
	}
}

func TestTokenSource_ErrorStatus(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad client", http.StatusBadRequest)
	})

	if _, err := ts.get(context.Background()); err == nil {
		t.Fatal("expected an error for a 400 token response")
	}
}

func TestTokenSource_MissingAccessToken(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenResponse{ExpiresIn: 3600})
	})

	if _, err := ts.get(context.Background()); err == nil {
		t.Fatal("expected an error when the response has no access_token")
	}
}
