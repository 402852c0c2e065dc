package index

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siherrmann/docsearch/model"
)

func TestKeywordScore(t *testing.T) {
	t.Run("Occurrence score per keyword", func(t *testing.T) {
		score := KeywordScore("The vacation policy covers all employees.", "vacation policy", []string{"vacation", "policy"})

		// 2 occurrences at 0.3 each plus the verbatim phrase bonus
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("Repeated keyword counts every occurrence", func(t *testing.T) {
		score := KeywordScore("policy text", "policy", []string{"policy"})
		higher := KeywordScore("policy policy text", "policy", []string{"policy"})

		assert.Greater(t, higher, score)
	})

	t.Run("Single keyword gets no phrase bonus", func(t *testing.T) {
		score := KeywordScore("The policy is strict.", "policy", []string{"policy"})

		assert.InDelta(t, 0.3, score, 1e-9)
	})

	t.Run("No keywords degrades to verbatim check", func(t *testing.T) {
		match := KeywordScore("Go to HR for details.", "to HR", []string{})
		miss := KeywordScore("Go to finance for details.", "to HR", []string{})

		assert.InDelta(t, 0.5, match, 1e-9)
		assert.Equal(t, 0.0, miss)
	})

	t.Run("Length bonus only for matched long chunks", func(t *testing.T) {
		long := "The vacation policy grants twenty five days per year. " + strings.Repeat("More detail follows here. ", 3)
		require.Greater(t, len(long), 100)

		matched := KeywordScore(long, "vacation", []string{"vacation"})
		unmatched := KeywordScore(strings.Repeat("Unrelated content here. ", 6), "vacation", []string{"vacation"})

		assert.InDelta(t, 0.4, matched, 1e-9)
		assert.Equal(t, 0.0, unmatched)
	})

	t.Run("Score is capped at one", func(t *testing.T) {
		content := strings.Repeat("vacation policy ", 20)

		score := KeywordScore(content, "vacation policy", []string{"vacation", "policy"})

		assert.Equal(t, 1.0, score)
	})

	t.Run("Matching is case insensitive", func(t *testing.T) {
		score := KeywordScore("VACATION Policy overview", "vacation policy", []string{"vacation", "policy"})

		assert.Greater(t, score, 0.0)
	})
}

func TestCosineScore(t *testing.T) {
	t.Run("Identical vectors score one", func(t *testing.T) {
		a := []float32{0.5, 0.5, 0.5}

		assert.InDelta(t, 1.0, CosineScore(a, a), 1e-6)
	})

	t.Run("Opposite vectors score zero", func(t *testing.T) {
		a := []float32{1, 0, 0}
		b := []float32{-1, 0, 0}

		assert.InDelta(t, 0.0, CosineScore(a, b), 1e-6)
	})

	t.Run("Orthogonal vectors score half", func(t *testing.T) {
		a := []float32{1, 0}
		b := []float32{0, 1}

		assert.InDelta(t, 0.5, CosineScore(a, b), 1e-6)
	})

	t.Run("Mismatched dimensions score zero", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineScore([]float32{1, 0}, []float32{1, 0, 0}))
	})

	t.Run("Zero vector scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineScore([]float32{0, 0}, []float32{1, 0}))
	})
}

func TestSortHits(t *testing.T) {
	t.Run("Orders by score descending", func(t *testing.T) {
		docRID := uuid.New()
		hits := []Hit{
			{Chunk: &model.Chunk{DocumentRID: docRID, Sequence: 1}, Score: 0.4},
			{Chunk: &model.Chunk{DocumentRID: docRID, Sequence: 2}, Score: 0.9},
			{Chunk: &model.Chunk{DocumentRID: docRID, Sequence: 3}, Score: 0.6},
		}

		SortHits(hits)

		assert.Equal(t, 0.9, hits[0].Score)
		assert.Equal(t, 0.6, hits[1].Score)
		assert.Equal(t, 0.4, hits[2].Score)
	})

	t.Run("Ties break on document RID then sequence", func(t *testing.T) {
		ridA := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
		ridB := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
		hits := []Hit{
			{Chunk: &model.Chunk{DocumentRID: ridB, Sequence: 1}, Score: 0.5},
			{Chunk: &model.Chunk{DocumentRID: ridA, Sequence: 2}, Score: 0.5},
			{Chunk: &model.Chunk{DocumentRID: ridA, Sequence: 1}, Score: 0.5},
		}

		SortHits(hits)

		assert.Equal(t, ridA, hits[0].Chunk.DocumentRID)
		assert.Equal(t, 1, hits[0].Chunk.Sequence)
		assert.Equal(t, 2, hits[1].Chunk.Sequence)
		assert.Equal(t, ridB, hits[2].Chunk.DocumentRID)
	})
}
