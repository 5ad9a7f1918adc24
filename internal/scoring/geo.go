package scoring

import (
	"math"

	"streetscout/internal/domain"
)

// Mean Earth radius (IUGG) in meters.
const earthRadius = 6371008.8

// Distance returns the great-circle distance between two coordinates in
// meters, computed with the haversine formula. Against an ellipsoidal
// geodesic this is accurate to well under 0.5%, which is all the radius
// bucketing below needs.
func Distance(a, b domain.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadius * math.Asin(math.Min(1, math.Sqrt(h)))
}

// WithinRadius filters venues to those no farther than radius meters from
// target.
func WithinRadius(target domain.Coordinate, venues []domain.Venue, radius float64) []domain.Venue {
	out := make([]domain.Venue, 0, len(venues))
	for _, v := range venues {
		if Distance(target, v.Coord) <= radius {
			out = append(out, v)
		}
	}
	return out
}
