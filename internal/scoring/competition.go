package scoring

import (
	"sort"
	"strings"

	"streetscout/internal/domain"
)

// Competitors beyond this distance don't count toward the report.
const competitionRadius = 500.0

// AnalyzeCompetition classifies venues as competitors for the business type
// and scores competitor density around the target. Density decays linearly,
// 10 points per competitor, flooring at 0 past ten competitors.
func AnalyzeCompetition(r Rules, target domain.Coordinate, venues []domain.Venue, bt domain.BusinessType) domain.CompetitionReport {
	keywords := r.CompetitorKeywords[bt]

	var hits []domain.NearbyCompetitor
	for _, v := range venues {
		if !isCompetitor(v, keywords) {
			continue
		}
		d := Distance(target, v.Coord)
		if d > competitionRadius {
			continue
		}
		hits = append(hits, domain.NearbyCompetitor{Venue: v, Meters: d})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Meters < hits[j].Meters })

	var ratingSum float64
	var rated int
	for _, h := range hits {
		if h.Venue.Rating != nil {
			ratingSum += *h.Venue.Rating
			rated++
		}
	}
	avg := 0.0 // no rated competitors reports 0, see CompetitionReport
	if rated > 0 {
		avg = ratingSum / float64(rated)
	}

	density := 100 - float64(len(hits))*10
	if density < 0 {
		density = 0
	}

	nearest := hits
	if len(nearest) > 5 {
		nearest = nearest[:5]
	}

	return domain.CompetitionReport{
		TotalCompetitors: len(hits),
		AvgRating:        avg,
		DensityScore:     density,
		Nearest:          nearest,
	}
}

func isCompetitor(v domain.Venue, keywords []string) bool {
	name := strings.ToLower(v.Name)
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
		for _, cat := range v.Categories {
			if strings.Contains(strings.ToLower(cat), kw) {
				return true
			}
		}
	}
	return false
}
