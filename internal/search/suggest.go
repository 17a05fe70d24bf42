package search

import (
	"strings"

	"github.com/hyperjump/mitsuke/internal/index"
)

// Suggest returns autocomplete candidates containing the query: titles first,
// then tags, then categories, deduplicated case-insensitively, in corpus
// insertion order with their originally stored casing.
func (e *Engine) Suggest(query string, limit int) []string {
	queryNorm := index.Normalize(query)
	if queryNorm == "" || limit <= 0 {
		return nil
	}

	e.mu.RLock()
	idx := e.idx
	e.mu.RUnlock()

	seen := make(map[string]struct{})
	suggestions := make([]string, 0, limit)
	add := func(candidate string) bool {
		if candidate == "" || !strings.Contains(strings.ToLower(candidate), queryNorm) {
			return false
		}
		key := strings.ToLower(candidate)
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, candidate)
		return len(suggestions) >= limit
	}

	for i := range idx.Items {
		if add(idx.Items[i].Title) {
			return suggestions
		}
	}
	for i := range idx.Items {
		for _, tag := range idx.Items[i].Tags {
			if add(tag) {
				return suggestions
			}
		}
	}
	for i := range idx.Items {
		if add(idx.Items[i].Category) {
			return suggestions
		}
	}
	return suggestions
}
