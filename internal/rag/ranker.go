package rag

import (
	"fmt"
	"sort"

	"minibrain/internal/storage"
	"minibrain/internal/vector"
)

// Rank scores every candidate against query, keeps those at or above the
// threshold and returns at most policy.TopK of them, best first.
// Equal scores keep their input order, so recency breaks ties.
func Rank(query []float32, candidates []storage.NoteVector, policy Policy) ([]ScoredNote, error) {
	scored := make([]ScoredNote, 0, len(candidates))
	for _, c := range candidates {
		score, err := vector.Dot(query, c.Embedding)
		if err != nil {
			return nil, fmt.Errorf("failed to score note %s: %w", c.ID, err)
		}
		if score < policy.Threshold {
			continue
		}
		scored = append(scored, ScoredNote{ID: c.ID, Title: c.Title, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if policy.TopK >= 0 && len(scored) > policy.TopK {
		scored = scored[:policy.TopK]
	}

	return scored, nil
}
