package index

import (
	"math"
	"sort"
	"strings"
)

const (
	keywordWeight    = 0.3
	phraseBonus      = 0.5
	lengthBonus      = 0.1
	lengthBonusChars = 100
)

// KeywordScore computes the lexical relevance of a chunk: 0.3 per
// keyword occurrence, +0.5 when the full query appears verbatim, +0.1
// for matched chunks over 100 characters, capped at 1.0. The verbatim
// bonus needs at least two keywords, for a single keyword it would
// only double-count the occurrence score. With no meaningful keywords
// the score degrades to the verbatim check alone.
func KeywordScore(content string, queryText string, keywords []string) float64 {
	lower := strings.ToLower(content)
	phrase := strings.ToLower(strings.TrimSpace(queryText))

	score := 0.0
	matched := false

	for _, keyword := range keywords {
		count := strings.Count(lower, keyword)
		if count > 0 {
			matched = true
		}
		score += keywordWeight * float64(count)
	}

	if phrase != "" && strings.Contains(lower, phrase) {
		if len(keywords) > 1 {
			score += phraseBonus
			matched = true
		} else if len(keywords) == 0 {
			score = phraseBonus
			matched = true
		}
	}

	if matched && len(content) > lengthBonusChars {
		score += lengthBonus
	}
	if score > 1.0 {
		score = 1.0
	}

	return score
}

// CosineScore maps the cosine similarity of two vectors into [0,1],
// monotonic in the similarity: opposite vectors score 0, orthogonal
// 0.5, identical 1.
func CosineScore(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	cosine := dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
	return (1 + cosine) / 2
}

// SortHits orders hits by score descending with deterministic
// tie-breaks: ascending document RID, then ascending chunk sequence
func SortHits(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		a, b := hits[i].Chunk, hits[j].Chunk
		if a.DocumentRID != b.DocumentRID {
			return strings.Compare(a.DocumentRID.String(), b.DocumentRID.String()) < 0
		}
		return a.Sequence < b.Sequence
	})
}
