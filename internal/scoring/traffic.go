package scoring

import (
	"math"

	"streetscout/internal/domain"
)

// FootTraffic estimates pedestrian exposure at the target from the popularity
// of surrounding venues, weighted by proximity. Venues without a popularity
// value contribute nothing. The raw sum is divided by 10 and capped at 100.
func FootTraffic(target domain.Coordinate, venues []domain.Venue) float64 {
	var sum float64
	for _, v := range venues {
		if v.Popularity == nil {
			continue
		}
		d := Distance(target, v.Coord)
		switch {
		case d <= 200:
			sum += *v.Popularity * 1.5
		case d <= 500:
			sum += *v.Popularity * 1.0
		case d <= 1000:
			sum += *v.Popularity * 0.5
		}
	}
	return math.Min(100, sum/10)
}
