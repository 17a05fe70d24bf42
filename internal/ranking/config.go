// Package ranking converts raw match signals plus item metadata into a single
// relevance score used for ordering results.
package ranking

import (
	"time"

	"github.com/hyperjump/mitsuke/internal/models"
)

// Weights holds every scoring constant. All contributions are additive except
// the fuzzy multiplier, which demotes the field-match subtotal once.
type Weights struct {
	TitleContains    float64
	TitlePrefix      float64
	Description      float64
	Body             float64
	TagMatch         float64
	FuzzyMultiplier  float64
	TypeWeights      map[models.ItemType]float64
	ClickWeight      float64
	PopularityCap    float64
	RecencyBonus     float64
	RecencyWindow    time.Duration
}

// DefaultWeights returns the standard scoring constants.
func DefaultWeights() *Weights {
	return &Weights{
		TitleContains:   100,
		TitlePrefix:     50,
		Description:     50,
		Body:            25,
		TagMatch:        30,
		FuzzyMultiplier: 0.8,
		TypeWeights: map[models.ItemType]float64{
			models.TypeCatalogEntry: 20,
			models.TypeTaxonomyNode: 15,
			models.TypeStaticPage:   10,
			models.TypeArticle:      5,
		},
		ClickWeight:   2,
		PopularityCap: 20,
		RecencyBonus:  10,
		RecencyWindow: 30 * 24 * time.Hour,
	}
}
