package models

// MatchType classifies how an item matched a query.
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchFuzzy   MatchType = "fuzzy"
	MatchPartial MatchType = "partial"
	MatchNone    MatchType = "none"
)

// SearchResult is a single ranked hit. Results are created fresh per query
// and never mutated after construction.
type SearchResult struct {
	Item           *SearchableItem `json:"item"`
	MatchScore     float64         `json:"match_score"`
	RelevanceScore float64         `json:"relevance_score"`
	MatchType      MatchType       `json:"match_type"`
	Query          string          `json:"query"`
}

// HighlightSpan is one run of text, flagged when it matched a query word.
// Rendering (markup, styling) is left entirely to the presentation layer.
type HighlightSpan struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}
