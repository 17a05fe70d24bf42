package index

import (
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/mitsuke/internal/models"
)

// N-gram lengths extracted from each normalized word.
const (
	minGram = 2
	maxGram = 3
)

// minWordLen is the shortest word that contributes n-grams. Two-character
// words contribute their single 2-gram so items whose only words are that
// short still reach the fuzzy stage.
const minWordLen = 2

// Index holds the inverted structures derived from one corpus snapshot.
// It is built once, never patched, and replaced wholesale on corpus update.
// Per-key id lists preserve corpus scan order.
type Index struct {
	// Items is the validated corpus snapshot in scan order.
	Items []models.SearchableItem

	ByType     map[string][]string
	ByCategory map[string][]string
	ByTag      map[string][]string
	ByAuthor   map[string][]string

	// FullText maps item id to its normalized concatenated searchable text.
	FullText map[string]string

	// NGrams maps a 2- or 3-character substring to the ids whose text
	// contains it. Duplicate ids from repeated grams are acceptable.
	NGrams map[string][]string
}

// Build constructs an Index from corpus in a single synchronous pass.
// Items that fail validation are skipped with a diagnostic; a skipped item
// never aborts the build. When two items carry the same id the first
// occurrence wins and the rest are skipped. Build is deterministic: the same corpus always
// produces identical index content.
func Build(corpus []models.SearchableItem, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	idx := &Index{
		Items:      make([]models.SearchableItem, 0, len(corpus)),
		ByType:     make(map[string][]string),
		ByCategory: make(map[string][]string),
		ByTag:      make(map[string][]string),
		ByAuthor:   make(map[string][]string),
		FullText:   make(map[string]string, len(corpus)),
		NGrams:     make(map[string][]string),
	}

	seen := make(map[string]struct{}, len(corpus))
	for i := range corpus {
		item := corpus[i]
		if err := item.Validate(); err != nil {
			logger.Warn("skipping invalid item", zap.Int("position", i), zap.Error(err))
			continue
		}
		if _, dup := seen[item.ID]; dup {
			logger.Warn("skipping item with duplicate id", zap.Int("position", i), zap.String("item_id", item.ID))
			continue
		}
		seen[item.ID] = struct{}{}
		idx.Items = append(idx.Items, item)

		// Attribute keys keep original casing for display; tags are
		// lower-cased for case-insensitive lookup.
		if item.Type != "" {
			idx.ByType[string(item.Type)] = append(idx.ByType[string(item.Type)], item.ID)
		}
		if item.Category != "" {
			idx.ByCategory[item.Category] = append(idx.ByCategory[item.Category], item.ID)
		}
		if item.Author != "" {
			idx.ByAuthor[item.Author] = append(idx.ByAuthor[item.Author], item.ID)
		}
		for _, tag := range item.Tags {
			key := strings.ToLower(tag)
			idx.ByTag[key] = append(idx.ByTag[key], item.ID)
		}

		text := ExtractSearchableText(&item)
		idx.FullText[item.ID] = text
		for gram := range wordGrams(text) {
			idx.NGrams[gram] = append(idx.NGrams[gram], item.ID)
		}
	}
	return idx
}

// Len returns the number of indexed items.
func (idx *Index) Len() int { return len(idx.Items) }

// FuzzyCandidates returns the set of item ids sharing at least one n-gram
// with any word of the normalized query. Used to prune the fuzzy matching
// stage; exact and partial matching always consult the full text directly.
func (idx *Index) FuzzyCandidates(queryNorm string) map[string]struct{} {
	candidates := make(map[string]struct{})
	for gram := range wordGrams(queryNorm) {
		for _, id := range idx.NGrams[gram] {
			candidates[id] = struct{}{}
		}
	}
	return candidates
}

// wordGrams returns the set of 2- and 3-grams across the whitespace-delimited
// words of normalized text. Single-character words contribute nothing.
func wordGrams(text string) map[string]struct{} {
	grams := make(map[string]struct{})
	for _, word := range strings.Fields(text) {
		if len(word) < minWordLen {
			continue
		}
		for n := minGram; n <= maxGram; n++ {
			for i := 0; i+n <= len(word); i++ {
				grams[word[i:i+n]] = struct{}{}
			}
		}
	}
	return grams
}
