package match

import (
	"strings"

	"github.com/hyperjump/mitsuke/internal/models"
)

// DefaultFuzzyThreshold is the minimum per-word similarity for a fuzzy hit.
const DefaultFuzzyThreshold = 0.6

// Matcher evaluates a normalized query against normalized item text.
// Stages run in priority order: exact, then fuzzy, then partial; the first
// stage producing a positive score wins.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a Matcher with the given fuzzy similarity threshold.
// Thresholds outside (0, 1] fall back to the default.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultFuzzyThreshold
	}
	return &Matcher{threshold: threshold}
}

// Match runs all three stages and returns the match score (0..1) and type.
// A zero score means the item is excluded from results.
func (m *Matcher) Match(queryNorm, itemText string) (float64, models.MatchType) {
	if m.Exact(queryNorm, itemText) {
		return 1.0, models.MatchExact
	}
	if score := m.Fuzzy(queryNorm, itemText); score > 0 {
		return score, models.MatchFuzzy
	}
	if score := m.Partial(queryNorm, itemText); score > 0 {
		return score, models.MatchPartial
	}
	return 0, models.MatchNone
}

// Exact reports whether itemText contains the whole normalized query.
func (m *Matcher) Exact(queryNorm, itemText string) bool {
	return queryNorm != "" && strings.Contains(itemText, queryNorm)
}

// Fuzzy computes the fuzzy match score: for each query word, the best
// similarity across all item words; words at or above the threshold count as
// matched. The score is the average similarity of matched words divided by
// the total query word count, so unmatched words drag the score down.
func (m *Matcher) Fuzzy(queryNorm, itemText string) float64 {
	queryWords := strings.Fields(queryNorm)
	itemWords := strings.Fields(itemText)
	if len(queryWords) == 0 || len(itemWords) == 0 {
		return 0
	}

	var matched int
	var total float64
	for _, qw := range queryWords {
		best := 0.0
		for _, iw := range itemWords {
			if sim := WordSimilarity(qw, iw); sim > best {
				best = sim
				if best == 1.0 {
					break
				}
			}
		}
		if best >= m.threshold {
			matched++
			total += best
		}
	}
	if matched == 0 {
		return 0
	}
	return (total / float64(matched)) / float64(len(queryWords))
}

// Partial counts query words appearing literally anywhere in itemText and
// returns the matched fraction.
func (m *Matcher) Partial(queryNorm, itemText string) float64 {
	queryWords := strings.Fields(queryNorm)
	if len(queryWords) == 0 {
		return 0
	}
	var matched int
	for _, qw := range queryWords {
		if strings.Contains(itemText, qw) {
			matched++
		}
	}
	return float64(matched) / float64(len(queryWords))
}
