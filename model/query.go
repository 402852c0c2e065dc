package model

import (
	"fmt"
	"strings"

	"github.com/siherrmann/docsearch/helper"
)

type QueryMode string

const (
	QueryModeSearch  QueryMode = "search"
	QueryModeRAG     QueryMode = "rag"
	QueryModeSummary QueryMode = "summary"
)

// Query is an ephemeral value describing a single retrieval request
type Query struct {
	Text string    `json:"text"`
	Mode QueryMode `json:"mode"`
}

// NewQuery validates the raw text and mode and returns a query.
// Blank text is rejected with ErrEmptyQuery, unknown modes with
// ErrUnsupportedMode.
func NewQuery(text string, mode QueryMode) (*Query, error) {
	if strings.TrimSpace(text) == "" {
		return nil, helper.NewError("validate query", ErrEmptyQuery)
	}
	switch mode {
	case QueryModeSearch, QueryModeRAG, QueryModeSummary:
	default:
		return nil, helper.NewError("validate query", fmt.Errorf("%w: %q", ErrUnsupportedMode, mode))
	}
	return &Query{Text: strings.TrimSpace(text), Mode: mode}, nil
}

// Keywords returns the lowercased whitespace-split tokens of the query
// text with more than two characters. Shorter tokens carry no lexical
// signal and are dropped.
func (q *Query) Keywords() []string {
	var keywords []string
	for _, token := range strings.Fields(strings.ToLower(q.Text)) {
		token = strings.Trim(token, `.,!?;:"'()`)
		if len(token) > 2 {
			keywords = append(keywords, token)
		}
	}
	return keywords
}
