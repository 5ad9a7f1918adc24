package scoring

import (
	"strings"

	"streetscout/internal/domain"
)

// FindGaps diffs the business type's essential-category checklist against the
// categories observed nearby. A checklist item counts as present when its
// lowercase form appears as a substring of any observed category name; only
// that direction is checked. Misses come back in checklist order.
func FindGaps(r Rules, venues []domain.Venue, bt domain.BusinessType) []string {
	observed := map[string]struct{}{}
	for _, v := range venues {
		for _, cat := range v.Categories {
			observed[strings.ToLower(cat)] = struct{}{}
		}
	}

	var gaps []string
	for _, item := range r.EssentialCategories[bt] {
		low := strings.ToLower(item)
		found := false
		for cat := range observed {
			if strings.Contains(cat, low) {
				found = true
				break
			}
		}
		if !found {
			gaps = append(gaps, item)
		}
	}
	return gaps
}
