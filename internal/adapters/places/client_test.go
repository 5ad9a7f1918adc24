package places_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"streetscout/internal/adapters/places"
	"streetscout/internal/domain"
)

func TestClient_Search_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"results": []map[string]any{{"fsq_id": "abc", "name": "Cafe One"}},
			})
		}
	}))
	defer ts.Close()

	cl, err := places.New(ts.URL, "test-key", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := cl.Search(ctx, "coffee", "40.7,-74.0", 1000, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0]["fsq_id"] != "abc" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_PlaceDetails_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := places.New(ts.URL, "test-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = cl.PlaceDetails(ctx, "missing")
	if !errors.Is(err, places.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("adapter sentinel should match the domain sentinel, got %v", err)
	}
}

func TestClient_SendsAuthHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{}})
	}))
	defer ts.Close()

	cl, _ := places.New(ts.URL, "secret", 100)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := cl.NearbyCategories(ctx, 40.7, -74.0, 1000); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotAuth != "secret" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "secret")
	}
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := places.New("http://x", "", 5); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
