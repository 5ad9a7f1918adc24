package app

import (
	"context"
	"fmt"
	"time"

	"streetscout/internal/domain"
)

// CachedPlaces wraps a PlaceDataSource with cache-aside reads so repeated
// analyses of the same area don't re-hit the upstream API. Errors from the
// cache are ignored: a broken cache degrades to pass-through.
type CachedPlaces struct {
	src   domain.PlaceDataSource
	cache domain.Cache
	ttl   time.Duration
}

func NewCachedPlaces(src domain.PlaceDataSource, cache domain.Cache, ttl time.Duration) *CachedPlaces {
	return &CachedPlaces{src: src, cache: cache, ttl: ttl}
}

func (c *CachedPlaces) Search(ctx context.Context, query, near string, radius, limit int) ([]map[string]any, error) {
	key := fmt.Sprintf("search:%s:%s:%d:%d", query, near, radius, limit)
	var out []map[string]any
	if ok, _ := c.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err := c.src.Search(ctx, query, near, radius, limit)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, out, int(c.ttl.Seconds()))
	return out, nil
}

func (c *CachedPlaces) NearbyCategories(ctx context.Context, lat, lng float64, radius int) ([]map[string]any, error) {
	key := fmt.Sprintf("nearby:%f:%f:%d", lat, lng, radius)
	var out []map[string]any
	if ok, _ := c.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err := c.src.NearbyCategories(ctx, lat, lng, radius)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, out, int(c.ttl.Seconds()))
	return out, nil
}

func (c *CachedPlaces) PlaceDetails(ctx context.Context, id string) (map[string]any, error) {
	key := "place_details:" + id
	var out map[string]any
	if ok, _ := c.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err := c.src.PlaceDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, out, int(c.ttl.Seconds()))
	return out, nil
}

func (c *CachedPlaces) PlaceTips(ctx context.Context, id string) ([]map[string]any, error) {
	key := "place_tips:" + id
	var out []map[string]any
	if ok, _ := c.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err := c.src.PlaceTips(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, out, int(c.ttl.Seconds()))
	return out, nil
}
