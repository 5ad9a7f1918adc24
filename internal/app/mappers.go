package app

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"streetscout/internal/domain"
)

/********** alias registry (single source of truth) **********/

var venueAliases = map[string][]string{
	"id":         {"fsq_id", "fsq_place_id", "id"},
	"name":       {"name"},
	"lat":        {"geocodes.main.latitude", "latitude", "lat", "location.lat"},
	"lng":        {"geocodes.main.longitude", "longitude", "lng", "lon", "location.lng"},
	"rating":     {"rating", "rating.value", "score"},
	"popularity": {"popularity", "stats.popularity"},
	"price":      {"price", "price_tier", "price.tier"},
	"tip":        {"text", "tip", "comment", "body"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, key string) string {
	for _, p := range venueAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// getIntFlexible: int from several paths (float64/int/string).
func getIntFlexible(m map[string]any, paths ...string) *int {
	if f := getFloatFlexible(m, paths...); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

/********** venue mapper **********/

// mapVenue converts one raw place payload into a Venue. Categories come from
// the categories[].name shape the places API uses; plain string lists are
// accepted too for older payload variants.
func mapVenue(p map[string]any) domain.Venue {
	raw, err := json.Marshal(p)
	if err != nil {
		log.Error().Err(err).Str("context", "mapVenue").Msg("failed to marshal place payload")
	}

	var cats []string
	if rawCats, ok := lookupAny(p, "categories").([]any); ok {
		for _, it := range rawCats {
			switch t := it.(type) {
			case string:
				if t != "" {
					cats = append(cats, t)
				}
			case map[string]any:
				if n, ok := t["name"].(string); ok && n != "" {
					cats = append(cats, n)
				}
			}
		}
	}

	coord := domain.Coordinate{}
	if lat := getFloatFlexible(p, venueAliases["lat"]...); lat != nil {
		coord.Lat = *lat
	}
	if lng := getFloatFlexible(p, venueAliases["lng"]...); lng != nil {
		coord.Lng = *lng
	}

	return domain.Venue{
		ID:         firstNonEmptyAlias(p, "id"),
		Name:       firstNonEmptyAlias(p, "name"),
		Categories: cats,
		Coord:      coord,
		Rating:     getFloatFlexible(p, venueAliases["rating"]...),
		Popularity: getFloatFlexible(p, venueAliases["popularity"]...),
		Price:      getIntFlexible(p, venueAliases["price"]...),
		RawJSON:    raw,
	}
}

func mapVenues(in []map[string]any) []domain.Venue {
	out := make([]domain.Venue, 0, len(in))
	for _, p := range in {
		out = append(out, mapVenue(p))
	}
	return out
}

/********** tips mapper **********/

func mapTips(in []map[string]any) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if s := firstNonEmptyAlias(t, "tip"); s != "" {
			out = append(out, s)
		}
	}
	return out
}

/********** location parsing **********/

var coordPattern = regexp.MustCompile(`(-?\d+\.?\d*),\s*(-?\d+\.?\d*)`)

// parseCoordinate extracts "lat,lng" from free-form location text.
func parseCoordinate(location string) (domain.Coordinate, bool) {
	m := coordPattern.FindStringSubmatch(location)
	if m == nil {
		return domain.Coordinate{}, false
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	lng, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return domain.Coordinate{}, false
	}
	return domain.Coordinate{Lat: lat, Lng: lng}, true
}
