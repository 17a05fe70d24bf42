package search

import (
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/mitsuke/internal/models"
)

func TestSuggest_SourceOrder(t *testing.T) {
	corpus := []models.SearchableItem{
		{ID: "1", Title: "Glass Skin Set", Category: "Glassware", Tags: []string{"glass care"}},
		{ID: "2", Title: "Window Glass", Tags: []string{"stained glass"}},
	}
	e := New(corpus, testOptions(), zap.NewNop())
	defer e.Close()

	got := e.Suggest("glass", 10)
	want := []string{
		"Glass Skin Set",
		"Window Glass",
		"glass care",
		"stained glass",
		"Glassware",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %v, want %v", got, want)
	}
}

func TestSuggest_Deduplicates(t *testing.T) {
	corpus := []models.SearchableItem{
		{ID: "1", Title: "Korean Skincare", Tags: []string{"korean skincare"}},
		{ID: "2", Title: "Korean Skincare"},
	}
	e := New(corpus, testOptions(), zap.NewNop())
	defer e.Close()

	got := e.Suggest("korean", 10)
	// The tag duplicates the title case-insensitively and is dropped;
	// original casing of the first occurrence is kept.
	if !reflect.DeepEqual(got, []string{"Korean Skincare"}) {
		t.Errorf("Suggest() = %v", got)
	}
}

func TestSuggest_Limit(t *testing.T) {
	e := newTestEngine(t)
	if got := e.Suggest("s", 2); len(got) != 2 {
		t.Errorf("Suggest with limit 2 returned %d entries", len(got))
	}
}

func TestSuggest_EmptyQuery(t *testing.T) {
	e := newTestEngine(t)
	if got := e.Suggest("", 10); got != nil {
		t.Errorf("Suggest(\"\") = %v, want nil", got)
	}
	if got := e.Suggest("glass", 0); got != nil {
		t.Errorf("Suggest with limit 0 = %v, want nil", got)
	}
}

func TestSuggest_NoMatches(t *testing.T) {
	e := newTestEngine(t)
	if got := e.Suggest("zzzzzz", 10); len(got) != 0 {
		t.Errorf("Suggest() = %v, want empty", got)
	}
}
