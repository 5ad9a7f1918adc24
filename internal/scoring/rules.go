package scoring

import "streetscout/internal/domain"

// Rules holds the fixed keyword tables and lookup lists the scoring pipeline
// runs on. Injected so business types can be extended without touching the
// scoring functions; treat a Rules value as immutable once built.
type Rules struct {
	// CompetitorKeywords classify a venue as a competitor when any keyword
	// appears (case-insensitive) in a category name or the venue name.
	CompetitorKeywords map[domain.BusinessType][]string

	// CompetitorQueries are the upstream search terms used to pull candidate
	// competitors for a business type.
	CompetitorQueries map[domain.BusinessType]string

	// EssentialCategories is the per-type checklist diffed against observed
	// categories; misses are reported as market gaps.
	EssentialCategories map[domain.BusinessType][]string

	// Demographic indicator keyword sets. Matches are counted, not scored.
	FamilyKeywords       []string
	ProfessionalKeywords []string
	TouristKeywords      []string

	// OptimalHours is a fixed per-type table. Hour prediction from observed
	// venue schedules never shipped; this preserves the table behavior.
	OptimalHours map[domain.BusinessType][]string

	// SetupBase is the unconditional setup checklist per business type.
	SetupBase map[domain.BusinessType][]string

	// Sentiment lexicon for tip polarity scoring.
	PositiveWords []string
	NegativeWords []string
}

func DefaultRules() Rules {
	return Rules{
		CompetitorKeywords: map[domain.BusinessType][]string{
			domain.FoodTruck:     {"food", "restaurant", "cafe", "truck"},
			domain.Retail:        {"shop", "store", "boutique", "market"},
			domain.Service:       {"salon", "repair", "cleaning", "consultation"},
			domain.Entertainment: {"music", "art", "performance", "event"},
		},
		CompetitorQueries: map[domain.BusinessType]string{
			domain.FoodTruck:     "food truck restaurant fast food",
			domain.Retail:        "shop store boutique retail",
			domain.Service:       "salon service repair",
			domain.Entertainment: "entertainment music art event",
		},
		EssentialCategories: map[domain.BusinessType][]string{
			domain.FoodTruck:     {"Coffee Shop", "Fast Food", "Grocery Store", "Bakery"},
			domain.Retail:        {"Clothing Store", "Electronics Store", "Bookstore", "Pharmacy"},
			domain.Service:       {"Hair Salon", "Laundry", "Bank", "Post Office"},
			domain.Entertainment: {"Cinema", "Bar", "Gym", "Park"},
		},
		FamilyKeywords:       []string{"park", "playground", "school", "family", "kids"},
		ProfessionalKeywords: []string{"office", "coworking", "coffee", "gym", "bar"},
		TouristKeywords:      []string{"museum", "tourist", "hotel", "attraction", "landmark"},
		OptimalHours: map[domain.BusinessType][]string{
			domain.FoodTruck:     {"11:00-14:00", "17:00-21:00"},
			domain.Retail:        {"09:00-18:00"},
			domain.Service:       {"09:00-17:00"},
			domain.Entertainment: {"18:00-23:00"},
		},
		SetupBase: map[domain.BusinessType][]string{
			domain.FoodTruck: {
				"Food service permits and licenses",
				"Mobile kitchen equipment",
				"Generator or power source",
			},
			domain.Retail: {
				"Temporary retail permit",
				"Display fixtures and signage",
				"Point-of-sale system",
			},
			domain.Service: {
				"Trade license and insurance",
				"Appointment booking setup",
			},
			domain.Entertainment: {
				"Event and noise permits",
				"Sound and staging equipment",
			},
		},
		PositiveWords: []string{
			"great", "good", "amazing", "excellent", "love", "best", "delicious",
			"friendly", "clean", "fresh", "awesome", "perfect", "recommend",
		},
		NegativeWords: []string{
			"bad", "terrible", "awful", "worst", "dirty", "rude", "slow",
			"expensive", "overpriced", "avoid", "disappointing", "cold",
		},
	}
}

// CompetitorQuery returns the upstream search term for a business type.
func (r Rules) CompetitorQuery(bt domain.BusinessType) string {
	if q, ok := r.CompetitorQueries[bt]; ok {
		return q
	}
	return "business"
}

// Hours returns the fixed operating-hours table entry for a business type.
func (r Rules) Hours(bt domain.BusinessType) []string {
	if h, ok := r.OptimalHours[bt]; ok {
		return h
	}
	return []string{"09:00-17:00"}
}
