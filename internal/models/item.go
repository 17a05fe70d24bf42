// Package models defines core data structures for searchable items, filters, and search results.
package models

import (
	"fmt"
	"time"
)

// ItemType is the closed set of content kinds the engine indexes.
type ItemType string

const (
	TypeCatalogEntry ItemType = "catalog-entry"
	TypeTaxonomyNode ItemType = "taxonomy-node"
	TypeStaticPage   ItemType = "static-page"
	TypeArticle      ItemType = "article"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case TypeCatalogEntry, TypeTaxonomyNode, TypeStaticPage, TypeArticle:
		return true
	}
	return false
}

// SearchableItem is a single unit of content supplied to the engine.
// The engine never mutates items; the corpus is replaced wholesale on update.
type SearchableItem struct {
	ID          string     `json:"id"`
	Type        ItemType   `json:"type"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Body        string     `json:"body,omitempty"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Category    string     `json:"category,omitempty"`
	Subcategory string     `json:"subcategory,omitempty"`
	Author      string     `json:"author,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Validate checks the invariants required for an item to be indexed.
// Items failing validation are skipped at index time, never fatal to a build.
// An unknown Type is not a validation error; it simply contributes no type
// weight during scoring.
func (it *SearchableItem) Validate() error {
	if it.ID == "" {
		return fmt.Errorf("item missing id")
	}
	return nil
}
