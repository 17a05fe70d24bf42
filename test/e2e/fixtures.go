package e2e

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperjump/mitsuke/internal/models"
)

// WriteCorpusFile marshals items to a corpus JSON file under dir and returns
// the file path. The file has the same shape the corpus loader expects.
func WriteCorpusFile(dir string, items []models.SearchableItem) (string, error) {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal corpus: %w", err)
	}
	path := filepath.Join(dir, "corpus.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write corpus file: %w", err)
	}
	return path, nil
}
