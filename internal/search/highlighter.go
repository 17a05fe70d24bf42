package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hyperjump/mitsuke/internal/index"
	"github.com/hyperjump/mitsuke/internal/models"
)

// Highlight splits text into spans, flagging every occurrence of each query
// word. The engine emits no markup; rendering belongs to the presentation
// layer. With highlighting disabled or an empty query, the whole text comes
// back as a single unmatched span.
func (e *Engine) Highlight(text, query string) []models.HighlightSpan {
	if text == "" {
		return nil
	}
	queryNorm := index.Normalize(query)
	if !e.opts.EnableHighlighting || queryNorm == "" {
		return []models.HighlightSpan{{Text: text}}
	}
	return highlightSpans(text, strings.Fields(queryNorm))
}

type interval struct{ start, end int }

// highlightSpans finds case-insensitive occurrences of each word in text,
// merges overlapping regions, and emits alternating spans. Lowercasing can
// change a rune's byte length, so matches are located in a lowered copy and
// mapped back to rune boundaries of the original before slicing.
func highlightSpans(text string, words []string) []models.HighlightSpan {
	lower, starts := foldCase(text)
	var hits []interval
	for _, word := range words {
		if word == "" {
			continue
		}
		for from := 0; ; {
			i := strings.Index(lower[from:], word)
			if i < 0 {
				break
			}
			at := from + i
			from = at + len(word)
			if h := (interval{starts[at], starts[from]}); h.end > h.start {
				hits = append(hits, h)
			}
		}
	}
	if len(hits) == 0 {
		return []models.HighlightSpan{{Text: text}}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })
	merged := hits[:1]
	for _, h := range hits[1:] {
		if last := &merged[len(merged)-1]; h.start <= last.end {
			if h.end > last.end {
				last.end = h.end
			}
		} else {
			merged = append(merged, h)
		}
	}

	spans := make([]models.HighlightSpan, 0, 2*len(merged)+1)
	pos := 0
	for _, h := range merged {
		if h.start > pos {
			spans = append(spans, models.HighlightSpan{Text: text[pos:h.start]})
		}
		spans = append(spans, models.HighlightSpan{Text: text[h.start:h.end], Match: true})
		pos = h.end
	}
	if pos < len(text) {
		spans = append(spans, models.HighlightSpan{Text: text[pos:]})
	}
	return spans
}

// foldCase lowercases text rune by rune and returns, for every byte offset of
// the lowered copy (end offset included), the starting offset in text of the
// rune covering it.
func foldCase(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	starts := make([]int, 0, len(text)+1)
	for i, r := range text {
		lr := unicode.ToLower(r)
		for n := utf8.RuneLen(lr); n > 0; n-- {
			starts = append(starts, i)
		}
		b.WriteRune(lr)
	}
	starts = append(starts, len(text))
	return b.String(), starts
}
