package scoring

import (
	"sort"
	"strings"

	"streetscout/internal/domain"
)

// ProfileDemographics infers area demographics from the category mix of
// nearby venues. Affluence is the mean reported price level, defaulting to 2
// (mid-range) when no venue reports one. The three indicator values are raw
// category-frequency counts.
func ProfileDemographics(r Rules, venues []domain.Venue) domain.DemographicProfile {
	counts := map[string]int{}
	var order []string // first-seen order, for stable tie-breaks
	var priceSum, priced int

	for _, v := range venues {
		for _, cat := range v.Categories {
			if _, seen := counts[cat]; !seen {
				order = append(order, cat)
			}
			counts[cat]++
		}
		if v.Price != nil {
			priceSum += *v.Price
			priced++
		}
	}

	affluence := 2.0
	if priced > 0 {
		affluence = float64(priceSum) / float64(priced)
	}

	dominant := make([]domain.CategoryCount, 0, len(order))
	for _, name := range order {
		dominant = append(dominant, domain.CategoryCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(dominant, func(i, j int) bool { return dominant[i].Count > dominant[j].Count })
	if len(dominant) > 5 {
		dominant = dominant[:5]
	}

	return domain.DemographicProfile{
		Affluence:         affluence,
		FamilyFriendly:    countMatching(counts, r.FamilyKeywords),
		YoungProfessional: countMatching(counts, r.ProfessionalKeywords),
		TouristArea:       countMatching(counts, r.TouristKeywords),
		Dominant:          dominant,
	}
}

// countMatching sums the frequencies of categories whose name contains any of
// the keywords.
func countMatching(counts map[string]int, keywords []string) int {
	total := 0
	for cat, freq := range counts {
		low := strings.ToLower(cat)
		for _, kw := range keywords {
			if strings.Contains(low, kw) {
				total += freq
				break
			}
		}
	}
	return total
}
