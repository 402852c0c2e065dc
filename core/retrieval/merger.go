package retrieval

import (
	"sort"

	"github.com/google/uuid"

	"github.com/siherrmann/docsearch/model"
)

// Merge consolidates candidates into one result per source document.
// The best-scoring candidate of a document becomes the primary, the
// rest stay available as additional matches with their own scores and
// context. Result order follows the order of each document's best
// candidate, so a sorted candidate list yields sorted results.
func Merge(candidates []*model.Candidate) []*model.MergedResult {
	var order []uuid.UUID
	groups := make(map[uuid.UUID][]*model.Candidate)

	for _, candidate := range candidates {
		rid := candidate.Chunk.DocumentRID
		if _, seen := groups[rid]; !seen {
			order = append(order, rid)
		}
		groups[rid] = append(groups[rid], candidate)
	}

	results := make([]*model.MergedResult, 0, len(order))
	for _, rid := range order {
		group := groups[rid]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Score > group[j].Score })

		results = append(results, &model.MergedResult{
			Primary:           group[0],
			AdditionalMatches: group[1:],
			TotalMatches:      len(group),
		})
	}

	return results
}
