// Package search provides the query orchestrator: debouncing, matching,
// scoring, filtering, caching, suggestions, and highlighting over an
// in-memory corpus.
package search

import (
	"time"

	"github.com/hyperjump/mitsuke/internal/analytics"
	"github.com/hyperjump/mitsuke/internal/match"
)

// Option defaults.
const (
	DefaultDebounce   = 150 * time.Millisecond
	DefaultMaxResults = 50
	DefaultCacheSize  = 256
)

// Options configures an Engine. Start from DefaultOptions and override.
type Options struct {
	// Debounce is the quiet period before a Search call executes. Zero or
	// negative disables debouncing.
	Debounce time.Duration
	// MaxResults truncates the ranked result list.
	MaxResults int
	// FuzzyThreshold is the minimum per-word similarity for a fuzzy match.
	FuzzyThreshold float64
	// EnableHighlighting turns Highlight into a real tokenizer; when false it
	// returns the input as a single unmatched span.
	EnableHighlighting bool
	// EnableAnalytics records queries and clicks and feeds popularity back
	// into scoring.
	EnableAnalytics bool
	// CacheSize bounds the LRU query result cache.
	CacheSize int
	// AnalyticsStore persists analytics state; nil keeps it in memory.
	AnalyticsStore analytics.Store
}

// DefaultOptions returns the standard engine configuration.
func DefaultOptions() Options {
	return Options{
		Debounce:           DefaultDebounce,
		MaxResults:         DefaultMaxResults,
		FuzzyThreshold:     match.DefaultFuzzyThreshold,
		EnableHighlighting: true,
		EnableAnalytics:    true,
		CacheSize:          DefaultCacheSize,
	}
}

// normalized fills invalid numeric fields with defaults.
func (o Options) normalized() Options {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.FuzzyThreshold <= 0 || o.FuzzyThreshold > 1 {
		o.FuzzyThreshold = match.DefaultFuzzyThreshold
	}
	if o.CacheSize <= 0 {
		o.CacheSize = DefaultCacheSize
	}
	return o
}
