package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/siherrmann/docsearch/index"
	"github.com/siherrmann/docsearch/model"
)

// NoMatchAnswer is the fixed answer returned when no evidence exists
const NoMatchAnswer = "No matching information found in the indexed documents."

// maxProseCandidates is the number of top candidates used in the
// generated prose. The sources list always covers every candidate.
const maxProseCandidates = 3

// Synthesizer turns top candidates into a structured answer with
// per-source citations. Without a generator the answer is purely
// extractive: quoted sentences attributed to their documents.
type Synthesizer struct {
	index     index.Index
	generator Generator
	log       *slog.Logger
}

// NewSynthesizer creates a new answer synthesizer
func NewSynthesizer(idx index.Index, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{
		index: idx,
		log:   logger,
	}
}

// SetGenerator enables language-model answer generation. The generator
// only replaces the prose, sources and fallbacks stay extractive.
func (s *Synthesizer) SetGenerator(generator Generator) {
	s.generator = generator
}

// Synthesize produces a grounded answer from the candidates. Zero
// candidates yield the fixed no-match answer with an empty source
// list, never an error.
func (s *Synthesizer) Synthesize(ctx context.Context, query *model.Query, candidates []*model.Candidate) (*model.RAGAnswer, error) {
	if len(candidates) == 0 {
		return &model.RAGAnswer{Answer: NoMatchAnswer, Sources: []model.Source{}}, nil
	}

	sources := make([]model.Source, 0, len(candidates))
	for _, candidate := range candidates {
		sources = append(sources, model.Source{
			Filename: s.filename(ctx, candidate),
			Page:     candidate.Chunk.Page,
			Sequence: candidate.Chunk.Sequence,
			Score:    candidate.Score,
		})
	}

	top := candidates
	if len(top) > maxProseCandidates {
		top = top[:maxProseCandidates]
	}

	var answer string
	if IsSummaryQuery(query.Text) {
		answer = s.summaryAnswer(ctx, top)
	} else {
		answer = s.extractiveAnswer(ctx, query, top)
	}

	if s.generator != nil {
		generated, err := s.generate(ctx, query, top)
		if err != nil {
			s.log.Warn("Answer generation failed, using extractive answer",
				slog.String("error", err.Error()))
		} else if generated != "" {
			answer = generated
		}
	}

	return &model.RAGAnswer{Answer: answer, Sources: sources}, nil
}

// summaryAnswer produces a bulleted digest: the longest sentence of
// each top candidate, cited with its source filename
func (s *Synthesizer) summaryAnswer(ctx context.Context, top []*model.Candidate) string {
	lines := []string{"Summary of the most relevant passages:"}
	for _, candidate := range top {
		sentence := LongestSentence(candidate.Chunk.Content)
		if sentence == "" {
			sentence = candidate.Chunk.Content
		}
		lines = append(lines, fmt.Sprintf("- %s (%s)", sentence, s.filename(ctx, candidate)))
	}
	return strings.Join(lines, "\n")
}

// extractiveAnswer produces one attributed paragraph per top
// candidate, quoting the sentence most relevant to the query
func (s *Synthesizer) extractiveAnswer(ctx context.Context, query *model.Query, top []*model.Candidate) string {
	keywords := query.Keywords()

	paragraphs := make([]string, 0, len(top))
	for _, candidate := range top {
		sentence := ExtractRelevantSentence(query.Text, keywords, candidate.Chunk.Content)
		if sentence == "" {
			sentence = candidate.Chunk.Content
		}
		if !strings.HasSuffix(sentence, ".") && !strings.HasSuffix(sentence, "!") && !strings.HasSuffix(sentence, "?") {
			sentence += "."
		}
		paragraphs = append(paragraphs, fmt.Sprintf("From %s (Page %d): %s",
			s.filename(ctx, candidate), candidate.Chunk.Page, sentence))
	}
	return strings.Join(paragraphs, "\n\n")
}

// generate asks the configured language model for prose grounded in
// the top candidates
func (s *Synthesizer) generate(ctx context.Context, query *model.Query, top []*model.Candidate) (string, error) {
	var contextParts []string
	for i, candidate := range top {
		contextParts = append(contextParts, fmt.Sprintf(
			"Document %d: %s\nRelevance Score: %.4f\nContent: %s",
			i+1, s.filename(ctx, candidate), candidate.Score, candidate.Chunk.Content,
		))
	}

	prompt := fmt.Sprintf(`You are a helpful assistant that answers questions based on the provided document context.

Context from documents:
%s

Question: %s

Instructions:
1. Answer the question based ONLY on the information provided in the context above
2. If the context doesn't contain enough information to answer the question, clearly state this
3. Cite the source documents when possible
4. Be accurate and concise
5. If multiple documents provide conflicting information, mention this

Answer:`, strings.Join(contextParts, "\n\n---\n\n"), query.Text)

	return s.generator.Generate(ctx, prompt)
}

// filename resolves the source filename of a candidate's document
func (s *Synthesizer) filename(ctx context.Context, candidate *model.Candidate) string {
	doc, err := s.index.Document(ctx, candidate.Chunk.DocumentRID)
	if err != nil {
		return candidate.Chunk.DocumentRID.String()
	}
	return doc.Filename
}
