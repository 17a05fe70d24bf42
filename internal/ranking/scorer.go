package ranking

import (
	"strings"
	"time"

	"github.com/hyperjump/mitsuke/internal/models"
)

// Popularity supplies cumulative click counts per item, typically backed by
// the analytics recorder. Implementations must be safe for concurrent reads.
type Popularity interface {
	Clicks(itemID string) int
}

// NoPopularity is a Popularity that reports zero clicks for every item.
type NoPopularity struct{}

// Clicks always returns 0.
func (NoPopularity) Clicks(string) int { return 0 }

// Scorer computes the final relevance score for a matched item.
type Scorer struct {
	weights *Weights
	now     func() time.Time
}

// NewScorer creates a Scorer. A nil weights uses DefaultWeights.
func NewScorer(weights *Weights) *Scorer {
	if weights == nil {
		weights = DefaultWeights()
	}
	return &Scorer{weights: weights, now: time.Now}
}

// WithClock overrides the time source, for deterministic recency tests.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// Score computes the relevance score for item against the normalized query.
// Field-match bonuses accumulate first; a fuzzy match demotes that subtotal
// once; type weight, popularity, and recency are added afterwards. The result
// is never negative.
func (s *Scorer) Score(item *models.SearchableItem, queryNorm string, matchType models.MatchType, pop Popularity) float64 {
	w := s.weights
	score := 0.0

	title := strings.ToLower(item.Title)
	if queryNorm != "" && strings.Contains(title, queryNorm) {
		score += w.TitleContains
		if strings.HasPrefix(title, queryNorm) {
			score += w.TitlePrefix
		}
	}
	if queryNorm != "" && strings.Contains(strings.ToLower(item.Description), queryNorm) {
		score += w.Description
	}
	if queryNorm != "" && strings.Contains(strings.ToLower(item.Body), queryNorm) {
		score += w.Body
	}
	for _, tag := range item.Tags {
		if queryNorm != "" && strings.Contains(strings.ToLower(tag), queryNorm) {
			score += w.TagMatch
		}
	}

	if matchType == models.MatchFuzzy {
		score *= w.FuzzyMultiplier
	}

	score += w.TypeWeights[item.Type]

	if pop == nil {
		pop = NoPopularity{}
	}
	popularity := float64(pop.Clicks(item.ID)) * w.ClickWeight
	if popularity > w.PopularityCap {
		popularity = w.PopularityCap
	}
	score += popularity

	if item.CreatedAt != nil {
		age := s.now().Sub(*item.CreatedAt)
		if age >= 0 && age <= w.RecencyWindow {
			score += w.RecencyBonus
		}
	}

	if score < 0 {
		return 0
	}
	return score
}
