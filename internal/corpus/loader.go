// Package corpus loads searchable items from a JSON source file and reloads
// them on change.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hyperjump/mitsuke/internal/models"
)

// Load reads a JSON array of searchable items from path. Item-level
// validation happens at index time; Load only cares about file shape.
func Load(path string) ([]models.SearchableItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	var items []models.SearchableItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse corpus: %w", err)
	}
	return items, nil
}
