package index

import (
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/mitsuke/internal/models"
)

func testCorpus() []models.SearchableItem {
	return []models.SearchableItem{
		{ID: "p1", Type: models.TypeCatalogEntry, Title: "Korean Glass Skin Set", Category: "Skincare", Tags: []string{"Skincare", "Korean"}},
		{ID: "p2", Type: models.TypeCatalogEntry, Title: "Vitamin C Serum", Category: "Skincare", Author: "Dr. Lee", Tags: []string{"serum"}},
		{ID: "a1", Type: models.TypeArticle, Title: "Morning Routine Guide", Author: "Dr. Lee"},
	}
}

func TestBuild_Maps(t *testing.T) {
	idx := Build(testCorpus(), zap.NewNop())

	if idx.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", idx.Len())
	}
	if got := idx.ByType["catalog-entry"]; !reflect.DeepEqual(got, []string{"p1", "p2"}) {
		t.Errorf("ByType[catalog-entry] = %v", got)
	}
	if got := idx.ByCategory["Skincare"]; !reflect.DeepEqual(got, []string{"p1", "p2"}) {
		t.Errorf("ByCategory preserves display casing and scan order: %v", got)
	}
	if got := idx.ByAuthor["Dr. Lee"]; !reflect.DeepEqual(got, []string{"p2", "a1"}) {
		t.Errorf("ByAuthor[Dr. Lee] = %v", got)
	}
	// Tags are keyed lower-cased.
	if got := idx.ByTag["korean"]; !reflect.DeepEqual(got, []string{"p1"}) {
		t.Errorf("ByTag[korean] = %v", got)
	}
	if _, ok := idx.ByTag["Korean"]; ok {
		t.Error("tag keys must be lower-cased")
	}
	if idx.FullText["p1"] == "" {
		t.Error("FullText missing for p1")
	}
}

func TestBuild_SkipsInvalidItems(t *testing.T) {
	corpus := []models.SearchableItem{
		{Title: "no id, skipped"},
		{ID: "ok"},
	}
	idx := Build(corpus, zap.NewNop())
	if idx.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", idx.Len())
	}
	if idx.Items[0].ID != "ok" {
		t.Errorf("surviving item = %q", idx.Items[0].ID)
	}
}

func TestBuild_SkipsDuplicateIDs(t *testing.T) {
	corpus := []models.SearchableItem{
		{ID: "p1", Type: models.TypeCatalogEntry, Title: "Korean Glass Skin Set"},
		{ID: "p1", Type: models.TypeCatalogEntry, Title: "Counterfeit Cleanser"},
	}
	idx := Build(corpus, zap.NewNop())

	if idx.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", idx.Len())
	}
	if idx.Items[0].Title != "Korean Glass Skin Set" {
		t.Errorf("first occurrence must win, got %q", idx.Items[0].Title)
	}
	if text := idx.FullText["p1"]; !strings.Contains(text, "glass") {
		t.Errorf("FullText[p1] = %q, want the first item's text", text)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	corpus := testCorpus()
	a := Build(corpus, zap.NewNop())
	b := Build(corpus, zap.NewNop())

	if !reflect.DeepEqual(a.ByType, b.ByType) ||
		!reflect.DeepEqual(a.ByCategory, b.ByCategory) ||
		!reflect.DeepEqual(a.ByTag, b.ByTag) ||
		!reflect.DeepEqual(a.ByAuthor, b.ByAuthor) ||
		!reflect.DeepEqual(a.FullText, b.FullText) {
		t.Error("two builds of the same corpus differ")
	}
	for gram, ids := range a.NGrams {
		if !reflect.DeepEqual(ids, b.NGrams[gram]) {
			t.Fatalf("NGrams[%q] differs between builds: %v vs %v", gram, ids, b.NGrams[gram])
		}
	}
}

func TestBuild_EmptyCorpus(t *testing.T) {
	idx := Build(nil, zap.NewNop())
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
	if idx.FuzzyCandidates("anything") == nil {
		t.Error("FuzzyCandidates should return an empty, non-nil set")
	}
}

func TestWordGrams(t *testing.T) {
	grams := wordGrams("shoe ab x")
	// "ab" contributes its single 2-gram; "x" contributes nothing.
	for _, want := range []string{"sh", "ho", "oe", "sho", "hoe", "ab"} {
		if _, ok := grams[want]; !ok {
			t.Errorf("missing gram %q", want)
		}
	}
	if _, ok := grams["x"]; ok {
		t.Error("single-character words must not contribute grams")
	}
}

func TestFuzzyCandidates(t *testing.T) {
	idx := Build(testCorpus(), zap.NewNop())

	// "galss" shares the gram "ss" with "glass" in p1's text.
	cands := idx.FuzzyCandidates("galss")
	if _, ok := cands["p1"]; !ok {
		t.Error("p1 should be a fuzzy candidate for 'galss'")
	}

	cands = idx.FuzzyCandidates("xq")
	if len(cands) != 0 {
		t.Errorf("no candidates expected for a 2-letter junk query, got %v", cands)
	}
}
