// internal/adapters/places/client.go
package places

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"streetscout/internal/adapters/observability"
	"streetscout/internal/domain"
)

// Client talks to a Foursquare-style places API.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// Category IDs requested by the nearby scan: food & beverage, retail,
// entertainment, professional services, transportation.
var nearbyCategoryIDs = []string{"13065", "17069", "10032", "12022", "19014"}

// ---- Public API ----

func (c *Client) Search(ctx context.Context, query, near string, radius, limit int) ([]map[string]any, error) {
	q := url.Values{}
	if query != "" {
		q.Set("query", query)
	}
	q.Set("near", near)
	q.Set("radius", strconv.Itoa(radius))
	q.Set("limit", strconv.Itoa(limit))

	var out struct {
		Results []map[string]any `json:"results"`
	}
	if err := c.get(ctx, "search", c.base+"/places/search?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) NearbyCategories(ctx context.Context, lat, lng float64, radius int) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("ll", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", strconv.Itoa(radius))
	q.Set("categories", strings.Join(nearbyCategoryIDs, ","))
	q.Set("limit", "50")

	var out struct {
		Results []map[string]any `json:"results"`
	}
	if err := c.get(ctx, "nearby", c.base+"/places/nearby?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) PlaceDetails(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, "details", c.base+"/places/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PlaceTips(ctx context.Context, id string) ([]map[string]any, error) {
	var out []map[string]any
	if err := c.get(ctx, "tips", c.base+"/places/"+url.PathEscape(id)+"/tips", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- Internals ----

// ErrNotFound wraps the domain sentinel so callers can match either.
var (
	ErrNotFound     = fmt.Errorf("places: %w", domain.ErrNotFound)
	ErrUnauthorized = errors.New("places: unauthorized")
	ErrForbidden    = errors.New("places: forbidden")
)

// get performs a GET with client-side rate limiting, retries, and JSON decode into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, endpoint, u string, out any) error {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	var lastErr error
	for i := 0; i < 4; i++ {
		// build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", c.key)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "streetscout/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			// network error or context canceled
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveExternal("places", endpoint, 0, time.Since(start))
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			observability.ObserveExternal("places", endpoint, resp.StatusCode, time.Since(start))
			return err

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			observability.ObserveExternal("places", endpoint, resp.StatusCode, time.Since(start))
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			observability.ObserveExternal("places", endpoint, resp.StatusCode, time.Since(start))
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			observability.ObserveExternal("places", endpoint, resp.StatusCode, time.Since(start))
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			observability.ObserveExternal("places", endpoint, resp.StatusCode, time.Since(start))
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveExternal("places", endpoint, resp.StatusCode, time.Since(start))
			return lastErr

		default:
			// read a small error body for diagnostics
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			observability.ObserveExternal("places", endpoint, resp.StatusCode, time.Since(start))
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	// HTTP-date form
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// i = retry attempt (0,1,2,...). Base doubles each attempt (200ms, 400ms, 800ms...),
// with up to +50% random jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0                  // 0..1
	j := time.Duration(0.5 * f * float64(base)) // up to +50%
	return base + j
}
