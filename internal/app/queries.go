package app

import (
	"context"
	"fmt"
	"time"

	"streetscout/internal/domain"
	"streetscout/internal/scoring"
)

type QueryService struct {
	repo     domain.AnalysisRepository
	places   domain.PlaceDataSource
	cache    domain.Cache
	rules    scoring.Rules
	cacheTTL time.Duration
}

func NewQueryService(r domain.AnalysisRepository, p domain.PlaceDataSource, c domain.Cache, rules scoring.Rules, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, places: p, cache: c, rules: rules, cacheTTL: ttl}
}

func (s *QueryService) GetAnalysis(ctx context.Context, id string) (domain.Analysis, error) {
	key := "analysis:" + id
	var a domain.Analysis
	if ok, _ := s.cache.Get(ctx, key, &a); ok {
		return a, nil
	}
	a, err := s.repo.GetAnalysis(ctx, id)
	if err != nil {
		return domain.Analysis{}, err
	}
	_ = s.cache.Set(ctx, key, a, int(s.cacheTTL.Seconds()))
	return a, nil
}

// PlaceWithTips fetches place details plus tips and summarizes tip sentiment.
func (s *QueryService) PlaceWithTips(ctx context.Context, id string) (domain.PlaceView, error) {
	key := "place:" + id
	var pv domain.PlaceView
	if ok, _ := s.cache.Get(ctx, key, &pv); ok {
		return pv, nil
	}

	details, err := s.places.PlaceDetails(ctx, id)
	if err != nil {
		return domain.PlaceView{}, fmt.Errorf("place %s: %w", id, err)
	}

	// Tips are best-effort; a place without tips still renders.
	var tips []string
	if rawTips, terr := s.places.PlaceTips(ctx, id); terr == nil {
		tips = mapTips(rawTips)
	}

	score, positives, negatives := scoring.TipSentiment(s.rules, tips)
	pv = domain.PlaceView{
		Venue:          mapVenue(details),
		Tips:           tips,
		SentimentScore: score,
		Positives:      positives,
		Negatives:      negatives,
	}
	_ = s.cache.Set(ctx, key, pv, int(s.cacheTTL.Seconds()))
	return pv, nil
}
