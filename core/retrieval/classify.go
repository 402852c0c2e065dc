package retrieval

import (
	"strings"
	"unicode"
)

// interrogativePrefixes mark queries asking for a specific fact
var interrogativePrefixes = []string{
	"what is", "what are", "how many", "how much", "when", "where", "who",
}

// factualTerms are measure and quantity nouns that mark a query as factual
var factualTerms = []string{
	"cost", "price", "amount", "percentage", "rate", "frequency", "duration",
	"length", "weight", "height", "distance", "temperature", "size", "speed",
}

// summaryTerms mark queries asking for an overview instead of a fact
var summaryTerms = []string{"summary", "summarize", "summarise", "overview", "main points"}

// semanticVariations maps domain keywords to terms treated as
// equivalent during sentence matching
var semanticVariations = map[string][]string{
	"policy":   {"guideline", "rule", "procedure", "standard"},
	"cost":     {"price", "fee", "expense", "charge"},
	"begin":    {"start", "commence", "initiate"},
	"end":      {"finish", "complete", "conclude"},
	"employee": {"staff", "worker", "personnel"},
	"vacation": {"leave", "holiday", "time off"},
	"salary":   {"pay", "wage", "compensation"},
	"deadline": {"due date", "cutoff"},
	"require":  {"must", "mandatory", "obligated"},
}

// IsFactualQuery reports whether the query asks for a specific fact:
// it contains a digit, starts with an interrogative, or mentions a
// measure noun
func IsFactualQuery(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, r := range lower {
		if unicode.IsDigit(r) {
			return true
		}
	}
	for _, prefix := range interrogativePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	for _, term := range factualTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// IsSummaryQuery reports whether the query asks for an overview
func IsSummaryQuery(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range summaryTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// SplitSentences splits text into trimmed sentences on terminal
// punctuation, keeping the punctuation
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if sentence := strings.TrimSpace(text[start : i+1]); sentence != "" {
				sentences = append(sentences, sentence)
			}
			start = i + 1
		}
	}
	if sentence := strings.TrimSpace(text[start:]); sentence != "" {
		sentences = append(sentences, sentence)
	}
	return sentences
}

// LongestSentence returns the longest sentence of the text, ties
// broken by first occurrence
func LongestSentence(text string) string {
	longest := ""
	for _, sentence := range SplitSentences(text) {
		if len(sentence) > len(longest) {
			longest = sentence
		}
	}
	return longest
}

// ExtractRelevantSentence returns the sentence of content most
// relevant to the query: a sentence containing the full query text
// wins, otherwise the sentence matching the most keywords or their
// semantic variations. Returns an empty string when no sentence
// matches at all.
func ExtractRelevantSentence(queryText string, keywords []string, content string) string {
	phrase := strings.ToLower(strings.TrimSpace(queryText))

	best := ""
	bestMatches := 0
	for _, sentence := range SplitSentences(content) {
		lower := strings.ToLower(sentence)
		if phrase != "" && strings.Contains(lower, phrase) {
			return sentence
		}

		matches := 0
		for _, keyword := range keywords {
			if sentenceMatchesKeyword(lower, keyword) {
				matches++
			}
		}
		if matches > bestMatches {
			best = sentence
			bestMatches = matches
		}
	}

	return best
}

// sentenceMatchesKeyword checks the keyword and its semantic
// variations against the lowercased sentence
func sentenceMatchesKeyword(lowerSentence, keyword string) bool {
	if strings.Contains(lowerSentence, keyword) {
		return true
	}
	for _, variation := range semanticVariations[keyword] {
		if strings.Contains(lowerSentence, variation) {
			return true
		}
	}
	return false
}
