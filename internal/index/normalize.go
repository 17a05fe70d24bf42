// Package index builds the derived, read-only-after-build inverted indexes
// over a corpus of searchable items.
package index

import (
	"strings"
	"unicode"

	"github.com/hyperjump/mitsuke/internal/models"
)

// Normalize lowercases s, strips everything outside alphanumerics and
// whitespace, collapses whitespace runs to single spaces, and trims the
// result. It is pure and total: any input yields a (possibly empty) string.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// ExtractSearchableText concatenates every free-text field of item and
// normalizes the result as a single unit. Deterministic: field order is fixed.
func ExtractSearchableText(item *models.SearchableItem) string {
	parts := []string{
		item.Title,
		item.Description,
		item.Body,
		item.Excerpt,
		item.Author,
		item.Brand,
	}
	parts = append(parts, item.Tags...)
	return Normalize(strings.Join(parts, " "))
}
