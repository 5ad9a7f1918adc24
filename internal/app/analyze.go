package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"streetscout/internal/domain"
	"streetscout/internal/scoring"
)

// Radii and limits for the three area queries.
const (
	areaRadius       = 1000
	competitorLimit  = 30
	attractionLimit  = 20
	attractionsQuery = "popular attractions restaurants"
)

type AnalysisService struct {
	places domain.PlaceDataSource
	repo   domain.AnalysisRepository
	cache  domain.Cache
	rules  scoring.Rules
	ttl    time.Duration
}

func NewAnalysisService(p domain.PlaceDataSource, r domain.AnalysisRepository, cache domain.Cache, rules scoring.Rules, ttl time.Duration) *AnalysisService {
	return &AnalysisService{places: p, repo: r, cache: cache, rules: rules, ttl: ttl}
}

// AnalyzeLocation runs the full pipeline for one candidate location: resolve
// the coordinate, pull area data, score it, synthesize the recommendation, and
// persist the finished analysis. Only coordinate/business-type validation is
// fatal; upstream fetch failures degrade to empty results so scoring proceeds
// on floor/neutral values.
func (s *AnalysisService) AnalyzeLocation(ctx context.Context, location string, bt domain.BusinessType, targets []string) (domain.Analysis, error) {
	if !bt.Valid() {
		return domain.Analysis{}, fmt.Errorf("%w: %q", domain.ErrInvalidBusinessType, bt)
	}

	coord, err := s.resolveCoordinate(ctx, location)
	if err != nil {
		return domain.Analysis{}, err
	}

	area := s.fetchAreaData(ctx, coord, bt)

	insight := s.buildInsight(coord, area, targets, bt)
	rec := scoring.Synthesize(insight, bt, s.rules)

	analysis := domain.Analysis{
		ID:                 fmt.Sprintf("analysis_%d", time.Now().Unix()),
		Location:           location,
		Coord:              coord,
		BusinessType:       bt,
		TargetDemographics: targets,
		Recommendation:     rec,
		CreatedAt:          rec.GeneratedAt,
	}

	if err := s.repo.SaveAnalysis(ctx, analysis); err != nil {
		return domain.Analysis{}, fmt.Errorf("save analysis %s: %w", analysis.ID, err)
	}

	// Analytics are best-effort; a failed event never fails the analysis.
	if err := s.repo.InsertEvent(ctx, "location_analysis", map[string]any{
		"business_type": string(bt),
		"location":      location,
		"success":       true,
	}); err != nil {
		log.Warn().Err(err).Str("id", analysis.ID).Msg("analytics event failed")
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, "analysis:"+analysis.ID, analysis, int(s.ttl.Seconds()))
	}

	log.Info().
		Str("id", analysis.ID).
		Str("business_type", string(bt)).
		Float64("confidence", rec.Confidence).
		Str("segment", rec.Segment).
		Str("gaps", scoring.GapSummary(insight.CategoryGaps)).
		Msg("analysis complete")

	return analysis, nil
}

// resolveCoordinate parses "lat,lng" out of the location text, falling back to
// a single-result place search to geocode free-form names.
func (s *AnalysisService) resolveCoordinate(ctx context.Context, location string) (domain.Coordinate, error) {
	coord, ok := parseCoordinate(location)
	if !ok {
		results, err := s.places.Search(ctx, "", location, areaRadius, 1)
		if err != nil {
			return domain.Coordinate{}, fmt.Errorf("%w: geocode %q: %v", domain.ErrUpstreamUnavailable, location, err)
		}
		if len(results) == 0 {
			return domain.Coordinate{}, fmt.Errorf("%w: could not resolve %q", domain.ErrInvalidCoordinate, location)
		}
		coord = mapVenue(results[0]).Coord
	}
	if !coord.Valid() {
		return domain.Coordinate{}, fmt.Errorf("%w: %.4f,%.4f", domain.ErrInvalidCoordinate, coord.Lat, coord.Lng)
	}
	return coord, nil
}

type areaData struct {
	all         []domain.Venue
	competitors []domain.Venue
	attractions []domain.Venue
}

// fetchAreaData pulls the three independent area queries concurrently. Each
// one degrades to an empty result on failure: the miss is logged and scoring
// continues on zero-signal input.
func (s *AnalysisService) fetchAreaData(ctx context.Context, coord domain.Coordinate, bt domain.BusinessType) areaData {
	var area areaData
	near := fmt.Sprintf("%f,%f", coord.Lat, coord.Lng)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := s.places.NearbyCategories(gctx, coord.Lat, coord.Lng, areaRadius)
		if err != nil {
			s.logMiss(gctx, "nearby", err)
			return nil
		}
		area.all = mapVenues(raw)
		return nil
	})
	g.Go(func() error {
		raw, err := s.places.Search(gctx, s.rules.CompetitorQuery(bt), near, areaRadius, competitorLimit)
		if err != nil {
			s.logMiss(gctx, "competitors", err)
			return nil
		}
		area.competitors = mapVenues(raw)
		return nil
	})
	g.Go(func() error {
		raw, err := s.places.Search(gctx, attractionsQuery, near, areaRadius, attractionLimit)
		if err != nil {
			s.logMiss(gctx, "attractions", err)
			return nil
		}
		area.attractions = mapVenues(raw)
		return nil
	})
	_ = g.Wait() // goroutines never return errors; failures degrade above

	return area
}

func (s *AnalysisService) logMiss(ctx context.Context, endpoint string, err error) {
	log.Warn().Err(err).Str("endpoint", endpoint).Msg("area fetch failed, scoring on empty results")
	if lerr := s.repo.LogMiss(ctx, endpoint, 0, err.Error()); lerr != nil {
		log.Error().Err(lerr).Msg("log miss failed")
	}
}

func (s *AnalysisService) buildInsight(coord domain.Coordinate, area areaData, targets []string, bt domain.BusinessType) domain.LocationInsight {
	footTraffic := scoring.FootTraffic(coord, area.all)
	competition := scoring.AnalyzeCompetition(s.rules, coord, area.competitors, bt)
	profile := scoring.ProfileDemographics(s.rules, area.all)
	gaps := scoring.FindGaps(s.rules, area.all, bt)

	// the upstream "near" search can return hits outside the area
	attractions := make([]string, 0, 5)
	for _, v := range scoring.WithinRadius(coord, area.attractions, areaRadius) {
		if len(attractions) == 5 {
			break
		}
		attractions = append(attractions, v.Name)
	}

	return domain.LocationInsight{
		Coord:              coord,
		FootTraffic:        footTraffic,
		CompetitionDensity: competition.DensityScore,
		DemographicMatch:   scoring.DemographicMatch(profile, targets),
		OptimalHours:       s.rules.Hours(bt),
		CategoryGaps:       gaps,
		NearbyAttractions:  attractions,
		RiskFactors:        scoring.RiskFactors(competition, profile, footTraffic),
	}
}
