package database

import "sort"

// Match pairs a stored record with its similarity score against a query.
// Score is 1 - cosine distance, so higher means closer.
type Match struct {
	Record FaceRecord
	Score  float64
}

// RankMatches scans candidates linearly and returns every record whose
// cosine distance to query is strictly below threshold, sorted by
// descending score. The scan is exact on purpose: every candidate is
// compared, no index is consulted. Candidates with an empty or
// dimension-mismatched embedding are skipped rather than failing the
// whole search.
//
// The result is never truncated here; limits are the caller's concern so
// that "all qualifying matches, ranked" stays the whole contract.
func RankMatches(query []float32, candidates []FaceRecord, threshold float64) []Match {
	var matches []Match
	for _, c := range candidates {
		if len(c.Embedding) == 0 || len(c.Embedding) != len(query) {
			continue
		}
		d := CosineDistance(query, c.Embedding)
		if d < threshold {
			matches = append(matches, Match{Record: c, Score: 1 - d})
		}
	}

	// Stable keeps scan order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}
