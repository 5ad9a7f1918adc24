package scoring_test

import (
	"testing"

	"streetscout/internal/domain"
	"streetscout/internal/scoring"
)

func catVenue(id string, price *int, cats ...string) domain.Venue {
	return domain.Venue{ID: id, Categories: cats, Price: price}
}

func TestProfileDemographics_AffluenceDefaultsToMidRange(t *testing.T) {
	p := scoring.ProfileDemographics(scoring.DefaultRules(), []domain.Venue{
		catVenue("a", nil, "Cafe"),
	})
	if p.Affluence != 2 {
		t.Fatalf("affluence = %f, want default 2", p.Affluence)
	}
}

func TestProfileDemographics_AffluenceIsMeanPrice(t *testing.T) {
	p := scoring.ProfileDemographics(scoring.DefaultRules(), []domain.Venue{
		catVenue("a", pi(1), "Cafe"),
		catVenue("b", pi(4), "Restaurant"),
		catVenue("c", nil, "Bar"), // no price, excluded from the mean
	})
	if p.Affluence != 2.5 {
		t.Fatalf("affluence = %f, want 2.5", p.Affluence)
	}
}

func TestProfileDemographics_IndicatorCounts(t *testing.T) {
	p := scoring.ProfileDemographics(scoring.DefaultRules(), []domain.Venue{
		catVenue("a", nil, "Park", "Coffee Shop"),
		catVenue("b", nil, "Park"),
		catVenue("c", nil, "Hotel Bar"),
		catVenue("d", nil, "Museum"),
	})
	// family: Park x2
	if p.FamilyFriendly != 2 {
		t.Fatalf("family = %d, want 2", p.FamilyFriendly)
	}
	// professional: Coffee Shop x1 + Hotel Bar x1 ("bar")
	if p.YoungProfessional != 2 {
		t.Fatalf("professional = %d, want 2", p.YoungProfessional)
	}
	// tourist: Hotel Bar x1 ("hotel") + Museum x1
	if p.TouristArea != 2 {
		t.Fatalf("tourist = %d, want 2", p.TouristArea)
	}
}

func TestProfileDemographics_DominantTop5FirstSeenTieBreak(t *testing.T) {
	p := scoring.ProfileDemographics(scoring.DefaultRules(), []domain.Venue{
		catVenue("a", nil, "Cafe", "Bar", "Gym", "Park", "Museum", "Bakery"),
		catVenue("b", nil, "Cafe", "Cafe"),
	})
	if len(p.Dominant) != 5 {
		t.Fatalf("dominant has %d entries, want 5", len(p.Dominant))
	}
	if p.Dominant[0].Name != "Cafe" || p.Dominant[0].Count != 3 {
		t.Fatalf("top category = %+v, want Cafe x3", p.Dominant[0])
	}
	// Remaining all have count 1; order must follow first appearance.
	want := []string{"Bar", "Gym", "Park", "Museum"}
	for i, name := range want {
		if p.Dominant[i+1].Name != name {
			t.Fatalf("dominant[%d] = %s, want %s (first-seen tie-break)", i+1, p.Dominant[i+1].Name, name)
		}
	}
}

func TestProfileDemographics_Empty(t *testing.T) {
	p := scoring.ProfileDemographics(scoring.DefaultRules(), nil)
	if p.Affluence != 2 || p.FamilyFriendly != 0 || len(p.Dominant) != 0 {
		t.Fatalf("unexpected empty profile: %+v", p)
	}
}
