package retrieval

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siherrmann/docsearch/index"
	"github.com/siherrmann/docsearch/model"
)

type mockGenerator struct {
	answer string
	err    error
	prompt string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompt = prompt
	return m.answer, m.err
}

func ragQuery(t *testing.T, text string) *model.Query {
	t.Helper()
	query, err := model.NewQuery(text, model.QueryModeRAG)
	require.NoError(t, err)
	return query
}

func TestSynthesize(t *testing.T) {
	ctx := context.Background()

	t.Run("No candidates yield the fixed no-match answer", func(t *testing.T) {
		synthesizer := NewSynthesizer(index.NewMemory(), testLogger())

		answer, err := synthesizer.Synthesize(ctx, ragQuery(t, "vacation policy"), nil)

		require.NoError(t, err)
		assert.Equal(t, NoMatchAnswer, answer.Answer)
		assert.NotNil(t, answer.Sources)
		assert.Empty(t, answer.Sources)
	})

	t.Run("Extractive answer attributes each source", func(t *testing.T) {
		idx := index.NewMemory()
		doc := indexedDocument(t, idx, "handbook.txt",
			"The vacation policy grants 25 days per year.")
		synthesizer := NewSynthesizer(idx, testLogger())

		candidates := []*model.Candidate{{
			Chunk: &model.Chunk{
				DocumentRID: doc.RID,
				Content:     "The vacation policy grants 25 days per year.",
				Page:        2,
				Sequence:    1,
			},
			Score: 0.8,
		}}

		answer, err := synthesizer.Synthesize(ctx, ragQuery(t, "vacation policy"), candidates)

		require.NoError(t, err)
		assert.Contains(t, answer.Answer, "From handbook.txt (Page 2):")
		assert.Contains(t, answer.Answer, "The vacation policy grants 25 days per year.")
	})

	t.Run("Sources mirror every candidate", func(t *testing.T) {
		idx := index.NewMemory()
		doc := indexedDocument(t, idx, "handbook.txt",
			"First policy sentence goes here.",
			"Second policy sentence goes here.",
			"Third policy sentence goes here.",
			"Fourth policy sentence goes here.",
			"Fifth policy sentence goes here.")
		synthesizer := NewSynthesizer(idx, testLogger())

		// More candidates than the prose uses
		var candidates []*model.Candidate
		for i := 1; i <= 5; i++ {
			candidates = append(candidates, &model.Candidate{
				Chunk: &model.Chunk{
					DocumentRID: doc.RID,
					Content:     fmt.Sprintf("Policy sentence number %d goes here.", i),
					Page:        1,
					Sequence:    i,
				},
				Score: 1.0 - float64(i)*0.1,
			})
		}

		answer, err := synthesizer.Synthesize(ctx, ragQuery(t, "policy sentence"), candidates)

		require.NoError(t, err)
		require.Len(t, answer.Sources, 5)
		for i, source := range answer.Sources {
			assert.Equal(t, "handbook.txt", source.Filename)
			assert.Equal(t, i+1, source.Sequence)
		}
		// Prose only covers the top three
		assert.Equal(t, 2, strings.Count(answer.Answer, "\n\n"))
	})

	t.Run("Summary query produces a bulleted digest", func(t *testing.T) {
		idx := index.NewMemory()
		doc := indexedDocument(t, idx, "handbook.txt",
			"Short intro. The travel policy reimburses economy class flights for all trips.")
		synthesizer := NewSynthesizer(idx, testLogger())

		query, err := model.NewQuery("Summarize the travel policy", model.QueryModeSummary)
		require.NoError(t, err)

		candidates := []*model.Candidate{{
			Chunk: &model.Chunk{
				DocumentRID: doc.RID,
				Content:     "Short intro. The travel policy reimburses economy class flights for all trips.",
				Page:        1,
				Sequence:    1,
			},
			Score: 0.7,
		}}

		answer, err := synthesizer.Synthesize(ctx, query, candidates)

		require.NoError(t, err)
		assert.Contains(t, answer.Answer, "Summary of the most relevant passages:")
		assert.Contains(t, answer.Answer, "- The travel policy reimburses economy class flights for all trips. (handbook.txt)")
	})

	t.Run("Generator replaces the prose but not the sources", func(t *testing.T) {
		idx := index.NewMemory()
		doc := indexedDocument(t, idx, "handbook.txt",
			"The vacation policy grants 25 days per year.")
		synthesizer := NewSynthesizer(idx, testLogger())
		generator := &mockGenerator{answer: "Employees get 25 vacation days per year."}
		synthesizer.SetGenerator(generator)

		candidates := []*model.Candidate{{
			Chunk: &model.Chunk{
				DocumentRID: doc.RID,
				Content:     "The vacation policy grants 25 days per year.",
				Page:        1,
				Sequence:    1,
			},
			Score: 0.8,
		}}

		answer, err := synthesizer.Synthesize(ctx, ragQuery(t, "vacation policy"), candidates)

		require.NoError(t, err)
		assert.Equal(t, "Employees get 25 vacation days per year.", answer.Answer)
		require.Len(t, answer.Sources, 1)
		assert.Equal(t, "handbook.txt", answer.Sources[0].Filename)
		assert.Contains(t, generator.prompt, "Question: vacation policy")
		assert.Contains(t, generator.prompt, "handbook.txt")
	})

	t.Run("Generator failure keeps the extractive answer", func(t *testing.T) {
		idx := index.NewMemory()
		doc := indexedDocument(t, idx, "handbook.txt",
			"The vacation policy grants 25 days per year.")
		synthesizer := NewSynthesizer(idx, testLogger())
		synthesizer.SetGenerator(&mockGenerator{err: fmt.Errorf("model overloaded")})

		candidates := []*model.Candidate{{
			Chunk: &model.Chunk{
				DocumentRID: doc.RID,
				Content:     "The vacation policy grants 25 days per year.",
				Page:        1,
				Sequence:    1,
			},
			Score: 0.8,
		}}

		answer, err := synthesizer.Synthesize(ctx, ragQuery(t, "vacation policy"), candidates)

		require.NoError(t, err)
		assert.Contains(t, answer.Answer, "From handbook.txt (Page 1):")
	})

	t.Run("Unknown document falls back to the RID", func(t *testing.T) {
		synthesizer := NewSynthesizer(index.NewMemory(), testLogger())
		chunk := model.NewChunk(model.NewDocument("gone.txt", 1).RID, "Relevant policy content here.", 1, 1)

		candidates := []*model.Candidate{{Chunk: chunk, Score: 0.5}}

		answer, err := synthesizer.Synthesize(ctx, ragQuery(t, "policy"), candidates)

		require.NoError(t, err)
		require.Len(t, answer.Sources, 1)
		assert.Equal(t, chunk.DocumentRID.String(), answer.Sources[0].Filename)
	})
}
