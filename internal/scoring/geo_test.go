package scoring_test

import (
	"testing"

	"streetscout/internal/domain"
	"streetscout/internal/scoring"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	pts := []domain.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 40.7128, Lng: -74.0060},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 90, Lng: 0},
	}
	for _, p := range pts {
		if d := scoring.Distance(p, p); d != 0 {
			t.Fatalf("Distance(%v, %v) = %f, want 0", p, p, d)
		}
	}
}

func TestDistance_SmallOffset(t *testing.T) {
	// 0.001 degrees of latitude is ~111.2m anywhere on the globe.
	a := domain.Coordinate{Lat: 40.0, Lng: -74.0}
	b := domain.Coordinate{Lat: 40.001, Lng: -74.0}
	d := scoring.Distance(a, b)
	if d < 110 || d > 113 {
		t.Fatalf("expected ~111m, got %f", d)
	}
}

func TestDistance_ParisLondon(t *testing.T) {
	paris := domain.Coordinate{Lat: 48.8566, Lng: 2.3522}
	london := domain.Coordinate{Lat: 51.5074, Lng: -0.1278}
	d := scoring.Distance(paris, london)
	// Geodesic distance is ~343.9km; haversine must land within 0.5%.
	if d < 340_000 || d > 348_000 {
		t.Fatalf("expected ~344km, got %fm", d)
	}
	if rev := scoring.Distance(london, paris); rev != d {
		t.Fatalf("distance not symmetric: %f vs %f", d, rev)
	}
}

func TestWithinRadius(t *testing.T) {
	target := domain.Coordinate{Lat: 40.0, Lng: -74.0}
	near := domain.Venue{ID: "a", Coord: domain.Coordinate{Lat: 40.001, Lng: -74.0}}  // ~111m
	far := domain.Venue{ID: "b", Coord: domain.Coordinate{Lat: 40.02, Lng: -74.0}}    // ~2.2km
	out := scoring.WithinRadius(target, []domain.Venue{near, far}, 500)
	if len(out) != 1 || out[0].ID != "a" {
		t.Fatalf("unexpected filter result: %+v", out)
	}
}
