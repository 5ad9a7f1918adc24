package domain

import "context"

// PlaceDataSource is the upstream places API. Payloads come back as raw maps;
// mapping into Venue is the app layer's job.
type PlaceDataSource interface {
	Search(ctx context.Context, query, near string, radius, limit int) ([]map[string]any, error)
	NearbyCategories(ctx context.Context, lat, lng float64, radius int) ([]map[string]any, error)
	PlaceDetails(ctx context.Context, id string) (map[string]any, error)
	PlaceTips(ctx context.Context, id string) ([]map[string]any, error)
}

type AnalysisRepository interface {
	// Write paths
	SaveAnalysis(ctx context.Context, a Analysis) error
	InsertEvent(ctx context.Context, eventType string, data map[string]any) error
	LogMiss(ctx context.Context, endpoint string, status int, reason string) error

	// Read paths
	GetAnalysis(ctx context.Context, id string) (Analysis, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
