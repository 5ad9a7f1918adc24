package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"streetscout/internal/domain"
)

// Confidence-score weights over the four sub-signals.
const (
	wFootTraffic = 0.30
	wCompetition = 0.25
	wDemographic = 0.25
	wCategoryGap = 0.20
)

// DemographicMatch scores how well the area's profile fits the requested
// target demographics. With no targets the score is a neutral 70. Each target
// carries weight 25; known tags contribute their raw indicator count times the
// weight, unknown tags a flat 50. The result is score/totalWeight capped at
// 100, so with a single known tag the score is just its raw indicator count.
func DemographicMatch(p domain.DemographicProfile, targets []string) float64 {
	if len(targets) == 0 {
		return 70
	}

	var score, totalWeight float64
	for _, t := range targets {
		const weight = 25.0
		switch strings.ToLower(t) {
		case "families", "family":
			score += float64(p.FamilyFriendly) * weight
		case "professionals", "young_professional":
			score += float64(p.YoungProfessional) * weight
		case "tourists", "tourist":
			score += float64(p.TouristArea) * weight
		default:
			score += 50 * weight
		}
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 50
	}
	return math.Min(100, score/totalWeight)
}

// RiskFactors lists location risks from fixed threshold rules.
func RiskFactors(report domain.CompetitionReport, profile domain.DemographicProfile, footTraffic float64) []string {
	var risks []string
	if report.TotalCompetitors > 5 {
		risks = append(risks, "High competition density")
	}
	if footTraffic < 30 {
		risks = append(risks, "Low foot traffic area")
	}
	if report.AvgRating > 4.5 {
		risks = append(risks, "High-quality established competitors")
	}
	if profile.Affluence < 2 {
		risks = append(risks, "Lower-income area may affect pricing")
	}
	return risks
}

// Confidence combines the four sub-signals into a 0..100 score. The gap term
// is 10 points per missing essential category before weighting; more gaps push
// the score up, reading an underserved area as opportunity rather than risk.
func Confidence(in domain.LocationInsight) float64 {
	score := in.FootTraffic*wFootTraffic +
		in.CompetitionDensity*wCompetition +
		in.DemographicMatch*wDemographic +
		float64(len(in.CategoryGaps))*10*wCategoryGap
	return math.Min(100, math.Max(0, score))
}

// Synthesize turns an insight into the final recommendation.
func Synthesize(in domain.LocationInsight, bt domain.BusinessType, r Rules) domain.BusinessRecommendation {
	confidence := Confidence(in)
	return domain.BusinessRecommendation{
		Insight:             in,
		BusinessType:        bt,
		Segment:             SegmentFor(in.FootTraffic, in.CompetitionDensity, in.DemographicMatch, len(in.CategoryGaps)),
		Confidence:          confidence,
		Reasoning:           reasoning(in),
		RevenuePotential:    revenueBand(confidence),
		SetupRequirements:   setupRequirements(r, in, bt),
		RecommendedDuration: duration(confidence),
		GeneratedAt:         time.Now().UTC(),
	}
}

func reasoning(in domain.LocationInsight) string {
	var reasons []string

	if in.FootTraffic > 70 {
		reasons = append(reasons, "High foot traffic from nearby popular venues")
	} else if in.FootTraffic < 30 {
		reasons = append(reasons, "Low foot traffic may require strong marketing")
	}

	if in.CompetitionDensity > 70 {
		reasons = append(reasons, "Low competition provides market opportunity")
	} else if in.CompetitionDensity < 30 {
		reasons = append(reasons, "High competition requires strong differentiation")
	}

	if len(in.CategoryGaps) > 0 {
		gaps := in.CategoryGaps
		if len(gaps) > 3 {
			gaps = gaps[:3]
		}
		reasons = append(reasons, "Market gaps identified: "+strings.Join(gaps, ", "))
	}

	if len(in.NearbyAttractions) > 0 {
		attrs := in.NearbyAttractions
		if len(attrs) > 2 {
			attrs = attrs[:2]
		}
		reasons = append(reasons, "Benefit from proximity to: "+strings.Join(attrs, ", "))
	}

	if len(reasons) == 0 {
		return "Standard market conditions observed"
	}
	return strings.Join(reasons, ". ")
}

func revenueBand(confidence float64) string {
	switch {
	case confidence > 80:
		return "High ($2000-5000/week)"
	case confidence > 60:
		return "Medium-High ($1000-2000/week)"
	case confidence > 40:
		return "Medium ($500-1000/week)"
	default:
		return "Low-Medium ($200-500/week)"
	}
}

func setupRequirements(r Rules, in domain.LocationInsight, bt domain.BusinessType) []string {
	reqs := append([]string(nil), r.SetupBase[bt]...)
	if in.CompetitionDensity < 50 {
		reqs = append(reqs, "Strong branding to stand out from competition")
	}
	if in.FootTraffic < 50 {
		reqs = append(reqs, "Marketing strategy for customer acquisition")
	}
	if len(in.RiskFactors) > 2 {
		reqs = append(reqs, "Risk mitigation strategy")
	}
	return reqs
}

func duration(confidence float64) string {
	switch {
	case confidence > 70:
		return "2-4 weeks for market validation, potential for longer"
	case confidence > 50:
		return "1-2 weeks with careful monitoring"
	default:
		return "3-5 days trial period recommended"
	}
}

// SegmentFor labels the location with an explicit threshold rule table. This
// replaces an earlier clustering stub that was fit on a handful of synthetic
// points; the rules below encode the same five segments directly.
func SegmentFor(footTraffic, competitionDensity, demographicMatch float64, gaps int) string {
	switch {
	case footTraffic >= 70 && competitionDensity <= 35:
		return "High-Competition Area"
	case footTraffic >= 80 && competitionDensity >= 70 && demographicMatch >= 75:
		return "High-Potential Location"
	case footTraffic >= 80 && gaps >= 2:
		return "Tourist/Event Area"
	case footTraffic >= 50 || demographicMatch >= 55:
		return "Medium-Potential Location"
	default:
		return "Low-Potential Location"
	}
}

// GapSummary is a short display string for a gap list.
func GapSummary(gaps []string) string {
	if len(gaps) == 0 {
		return "no gaps"
	}
	return fmt.Sprintf("%d gaps: %s", len(gaps), strings.Join(gaps, ", "))
}
