package domain

import "time"

type NearbyCompetitor struct {
	Venue  Venue
	Meters float64
}

// CompetitionReport describes competitor saturation around a target coordinate.
// AvgRating is 0 when no competitor reports a rating; that is indistinguishable
// from all competitors rated 0 and kept for parity with historical output.
type CompetitionReport struct {
	TotalCompetitors int
	AvgRating        float64
	DensityScore     float64 // 0..100, lower means more saturated
	Nearest          []NearbyCompetitor
}

type CategoryCount struct {
	Name  string
	Count int
}

// DemographicProfile holds raw indicator counts inferred from nearby venue
// categories. The three counts are not normalized to 0..100.
type DemographicProfile struct {
	Affluence         float64 // mean price level, 1..4
	FamilyFriendly    int
	YoungProfessional int
	TouristArea       int
	Dominant          []CategoryCount // top categories by frequency
}

type LocationInsight struct {
	Coord              Coordinate
	FootTraffic        float64 // 0..100
	CompetitionDensity float64 // 0..100
	DemographicMatch   float64 // 0..100
	OptimalHours       []string
	CategoryGaps       []string
	NearbyAttractions  []string
	RiskFactors        []string
}

type BusinessRecommendation struct {
	Insight             LocationInsight
	BusinessType        BusinessType
	Segment             string
	Confidence          float64 // 0..100
	Reasoning           string
	RevenuePotential    string
	SetupRequirements   []string
	RecommendedDuration string
	GeneratedAt         time.Time
}

// Analysis is the persisted record of one analyzed location.
type Analysis struct {
	ID                 string
	Location           string // caller-supplied location text
	Coord              Coordinate
	BusinessType       BusinessType
	TargetDemographics []string
	Recommendation     BusinessRecommendation
	CreatedAt          time.Time
}

// PlaceView is the read model for a place with its tips and a sentiment summary.
type PlaceView struct {
	Venue          Venue
	Tips           []string
	SentimentScore float64 // 0..1, 0.5 neutral
	Positives      []string
	Negatives      []string
}
