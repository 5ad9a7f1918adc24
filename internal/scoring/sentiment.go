package scoring

import "strings"

// TipSentiment scores place tips with a polarity lexicon. Per tip, polarity is
// (positive-negative)/(positive+negative) word hits; the mean over tips is
// rescaled from [-1,1] to [0,1]. No tips scores a neutral 0.5. The returned
// word lists are the lexicon hits from clearly positive (>0.1) and clearly
// negative (<-0.1) tips, deduplicated in first-seen order.
func TipSentiment(r Rules, tips []string) (float64, []string, []string) {
	if len(tips) == 0 {
		return 0.5, nil, nil
	}

	var sum float64
	var positives, negatives []string
	seenPos := map[string]struct{}{}
	seenNeg := map[string]struct{}{}

	for _, tip := range tips {
		low := strings.ToLower(tip)
		posHits := lexiconHits(low, r.PositiveWords)
		negHits := lexiconHits(low, r.NegativeWords)

		total := len(posHits) + len(negHits)
		polarity := 0.0
		if total > 0 {
			polarity = float64(len(posHits)-len(negHits)) / float64(total)
		}
		sum += polarity

		if polarity > 0.1 {
			for _, w := range posHits {
				if _, ok := seenPos[w]; !ok {
					seenPos[w] = struct{}{}
					positives = append(positives, w)
				}
			}
		} else if polarity < -0.1 {
			for _, w := range negHits {
				if _, ok := seenNeg[w]; !ok {
					seenNeg[w] = struct{}{}
					negatives = append(negatives, w)
				}
			}
		}
	}

	avg := sum / float64(len(tips))
	return (avg + 1) / 2, positives, negatives
}

func lexiconHits(text string, words []string) []string {
	var hits []string
	for _, w := range words {
		if strings.Contains(text, w) {
			hits = append(hits, w)
		}
	}
	return hits
}
