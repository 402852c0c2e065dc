package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siherrmann/docsearch/extract"
	"github.com/siherrmann/docsearch/model"
)

func singlePage() []extract.PageBoundary {
	return []extract.PageBoundary{{Page: 1, Start: 0}}
}

func TestSentenceChunker(t *testing.T) {
	chunker := SentenceChunker()

	t.Run("Valid chunking with multiple sentences", func(t *testing.T) {
		text := "This is sentence one. This is sentence two. This is sentence three."

		segments, err := chunker(text, singlePage())

		require.NoError(t, err)
		require.Len(t, segments, 3)
		assert.Equal(t, "This is sentence one.", segments[0].Content)
		assert.Equal(t, "This is sentence two.", segments[1].Content)
		assert.Equal(t, "This is sentence three.", segments[2].Content)
	})

	t.Run("Offsets are strictly increasing", func(t *testing.T) {
		text := "First sentence here. Second sentence here. Third sentence here."

		segments, err := chunker(text, singlePage())

		require.NoError(t, err)
		for i := 1; i < len(segments); i++ {
			assert.Greater(t, segments[i].Start, segments[i-1].Start)
		}
	})

	t.Run("Discards segments shorter than ten characters", func(t *testing.T) {
		text := "Short. This sentence is long enough to keep."

		segments, err := chunker(text, singlePage())

		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.Equal(t, "This sentence is long enough to keep.", segments[0].Content)
	})

	t.Run("Normalizes internal whitespace", func(t *testing.T) {
		text := "This  sentence\nhas   uneven\twhitespace inside."

		segments, err := chunker(text, singlePage())

		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.Equal(t, "This sentence has uneven whitespace inside.", segments[0].Content)
	})

	t.Run("Trailing text without punctuation is kept", func(t *testing.T) {
		text := "A complete sentence here. And a trailing fragment without an end"

		segments, err := chunker(text, singlePage())

		require.NoError(t, err)
		require.Len(t, segments, 2)
		assert.Equal(t, "And a trailing fragment without an end", segments[1].Content)
	})

	t.Run("Question and exclamation marks terminate sentences", func(t *testing.T) {
		text := "Is this a question? This is an exclamation!"

		segments, err := chunker(text, singlePage())

		require.NoError(t, err)
		require.Len(t, segments, 2)
	})

	t.Run("Error with no extractable text", func(t *testing.T) {
		_, err := chunker("   \n\t ", singlePage())

		assert.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNoExtractableText)
	})

	t.Run("Error with only short fragments", func(t *testing.T) {
		_, err := chunker("Hi. Ok. No.", singlePage())

		assert.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNoExtractableText)
	})

	t.Run("Page resolved from boundary offsets", func(t *testing.T) {
		text := "Sentence on page one.\nSentence on page two."
		pages := []extract.PageBoundary{
			{Page: 1, Start: 0},
			{Page: 2, Start: 22},
		}

		segments, err := chunker(text, pages)

		require.NoError(t, err)
		require.Len(t, segments, 2)
		assert.Equal(t, 1, segments[0].Page)
		assert.Equal(t, 2, segments[1].Page)
	})
}

func TestSectionLabel(t *testing.T) {
	t.Run("First segment gets introduction", func(t *testing.T) {
		assert.Equal(t, "introduction", sectionLabel(0, 10))
	})

	t.Run("Last segment gets appendix", func(t *testing.T) {
		assert.Equal(t, "appendix", sectionLabel(9, 10))
	})

	t.Run("Middle segment gets policy", func(t *testing.T) {
		assert.Equal(t, "policy", sectionLabel(5, 10))
	})

	t.Run("Single segment document", func(t *testing.T) {
		assert.Equal(t, "introduction", sectionLabel(0, 1))
	})
}
