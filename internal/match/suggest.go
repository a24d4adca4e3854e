package match

import (
	"sort"
)

// DefaultThreshold is the minimum similarity a candidate needs to be
// suggested.
const DefaultThreshold = 0.5

// Suggest returns up to limit candidates most similar to key, best first.
// Candidates scoring below threshold or identical to key are dropped.
// Ties keep the order of candidates.
func Suggest(key string, candidates []string, limit int, threshold float64) []string {
	if limit <= 0 || key == "" {
		return nil
	}

	type scored struct {
		name  string
		score float64
		pos   int
	}

	norm := NormalizeIdent(key)

	var ranked []scored

	for i, c := range candidates {
		if c == key {
			continue
		}

		score := Similarity(norm, NormalizeIdent(c))
		if score < threshold {
			continue
		}

		ranked = append(ranked, scored{name: c, score: score, pos: i})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}

	return out
}
