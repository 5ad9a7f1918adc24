package scoring_test

import (
	"testing"

	"streetscout/internal/scoring"
)

func TestTipSentiment_NoTipsIsNeutral(t *testing.T) {
	score, pos, neg := scoring.TipSentiment(scoring.DefaultRules(), nil)
	if score != 0.5 || pos != nil || neg != nil {
		t.Fatalf("got %f %v %v, want neutral 0.5 with no keywords", score, pos, neg)
	}
}

func TestTipSentiment_PositiveTips(t *testing.T) {
	tips := []string{
		"Great coffee and friendly staff, love this place",
		"The pastries are fresh and delicious",
	}
	score, pos, neg := scoring.TipSentiment(scoring.DefaultRules(), tips)
	if score <= 0.5 {
		t.Fatalf("score = %f, want > 0.5 for positive tips", score)
	}
	if len(pos) == 0 {
		t.Fatalf("expected positive keywords, got none")
	}
	if len(neg) != 0 {
		t.Fatalf("unexpected negative keywords: %v", neg)
	}
}

func TestTipSentiment_NegativeTips(t *testing.T) {
	tips := []string{"Terrible service, rude staff and dirty tables. Avoid."}
	score, _, neg := scoring.TipSentiment(scoring.DefaultRules(), tips)
	if score >= 0.5 {
		t.Fatalf("score = %f, want < 0.5 for negative tips", score)
	}
	if len(neg) == 0 {
		t.Fatalf("expected negative keywords, got none")
	}
}

func TestTipSentiment_MixedTipIsNeutralish(t *testing.T) {
	// One positive hit and one negative hit cancel within a tip.
	tips := []string{"good food but slow"}
	score, pos, neg := scoring.TipSentiment(scoring.DefaultRules(), tips)
	if score != 0.5 {
		t.Fatalf("score = %f, want 0.5", score)
	}
	if len(pos) != 0 || len(neg) != 0 {
		t.Fatalf("neutral tip should emit no keywords, got %v %v", pos, neg)
	}
}
