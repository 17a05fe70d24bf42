package search

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/hyperjump/mitsuke/internal/models"
)

func TestHighlight_SingleWord(t *testing.T) {
	e := newTestEngine(t)
	got := e.Highlight("Korean Glass Skin Set", "glass")
	want := []models.HighlightSpan{
		{Text: "Korean "},
		{Text: "Glass", Match: true},
		{Text: " Skin Set"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Highlight() = %v, want %v", got, want)
	}
}

func TestHighlight_MultipleWordsAndOccurrences(t *testing.T) {
	e := newTestEngine(t)
	got := e.Highlight("glass on glass, skin deep", "glass skin")

	var rebuilt strings.Builder
	matches := 0
	for _, span := range got {
		rebuilt.WriteString(span.Text)
		if span.Match {
			matches++
		}
	}
	if rebuilt.String() != "glass on glass, skin deep" {
		t.Errorf("spans must reassemble the input, got %q", rebuilt.String())
	}
	if matches != 3 {
		t.Errorf("matched spans = %d, want 3", matches)
	}
}

func TestHighlight_OverlappingWordsMerge(t *testing.T) {
	e := newTestEngine(t)
	// "glasses" and "glass" overlap; the merged region is one span.
	got := e.Highlight("my glasses", "glasses glass")
	want := []models.HighlightSpan{
		{Text: "my "},
		{Text: "glasses", Match: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Highlight() = %v, want %v", got, want)
	}
}

func TestHighlight_NoMatch(t *testing.T) {
	e := newTestEngine(t)
	got := e.Highlight("plain text", "zzz")
	if !reflect.DeepEqual(got, []models.HighlightSpan{{Text: "plain text"}}) {
		t.Errorf("Highlight() = %v", got)
	}
}

func TestHighlight_EmptyInputs(t *testing.T) {
	e := newTestEngine(t)
	if got := e.Highlight("", "glass"); got != nil {
		t.Errorf("empty text should yield nil, got %v", got)
	}
	got := e.Highlight("some text", "")
	if !reflect.DeepEqual(got, []models.HighlightSpan{{Text: "some text"}}) {
		t.Errorf("empty query should yield one unmatched span, got %v", got)
	}
}

func TestHighlight_CaseFoldGrowsBytes(t *testing.T) {
	e := newTestEngine(t)
	// U+023A lowercases to U+2C65, which is one byte longer in UTF-8, so
	// offsets found in the lowered text do not line up with the original.
	got := e.Highlight("Ⱥbc skin", "skin")

	var rebuilt strings.Builder
	matched := ""
	for _, span := range got {
		rebuilt.WriteString(span.Text)
		if span.Match {
			matched = span.Text
		}
	}
	if rebuilt.String() != "Ⱥbc skin" {
		t.Errorf("spans must reassemble the input, got %q", rebuilt.String())
	}
	if matched != "skin" {
		t.Errorf("matched span = %q, want %q", matched, "skin")
	}
}

func TestHighlight_CaseFoldShrinksBytes(t *testing.T) {
	e := newTestEngine(t)
	// U+0130 lowercases to plain "i", one byte shorter.
	got := e.Highlight("İstanbul skin guide", "skin")

	var rebuilt strings.Builder
	for _, span := range got {
		if !utf8.ValidString(span.Text) {
			t.Errorf("span %q splits a rune", span.Text)
		}
		rebuilt.WriteString(span.Text)
	}
	if rebuilt.String() != "İstanbul skin guide" {
		t.Errorf("spans must reassemble the input, got %q", rebuilt.String())
	}
}

func TestHighlight_Disabled(t *testing.T) {
	opts := testOptions()
	opts.EnableHighlighting = false
	e := New(testCorpus(), opts, zap.NewNop())
	defer e.Close()

	got := e.Highlight("Korean Glass Skin Set", "glass")
	if !reflect.DeepEqual(got, []models.HighlightSpan{{Text: "Korean Glass Skin Set"}}) {
		t.Errorf("disabled highlighting should return one unmatched span, got %v", got)
	}
}
