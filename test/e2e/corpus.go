// Package e2e provides end-to-end tests with a generated corpus and multiple queries.
package e2e

import (
	"fmt"
	"strings"
	"time"

	"github.com/hyperjump/mitsuke/internal/models"
)

// QueryCase defines a query and the item ID(s) that must appear in search
// results. At least one of ExpectedItemIDs must be present.
type QueryCase struct {
	Query           string
	ExpectedItemIDs []string
	Description     string
}

// Corpus holds items and query test cases for E2E tests.
type Corpus struct {
	Items      []models.SearchableItem
	Cases      []QueryCase
	TotalItems int
	TotalCases int
}

// topic is one corpus seed: a title carrying a unique signature phrase, plus
// descriptive text that repeats the phrase so exact queries hit reliably.
type topic struct {
	typ         models.ItemType
	title       string
	description string
	category    string
	tags        []string
	author      string
}

// BuildCorpus returns a corpus of 100 items with varied content types and
// multiple query test cases. Each topic has a unique signature phrase so
// queries can assert the correct item is returned.
func BuildCorpus() *Corpus {
	items := buildItems(100)
	cases := buildQueryCases(items)
	return &Corpus{
		Items:      items,
		Cases:      cases,
		TotalItems: len(items),
		TotalCases: len(cases),
	}
}

func buildItems(n int) []models.SearchableItem {
	topics := []topic{
		{models.TypeCatalogEntry, "Hyaluronic Acid Serum", "Hyaluronic acid serum hydrates deeply. A lightweight hyaluronic acid serum for all skin types.", "Skincare", []string{"serum", "hydrating"}, ""},
		{models.TypeCatalogEntry, "Vitamin C Brightening Cream", "Vitamin C brightening cream evens tone. The vitamin C brightening cream fades dark spots.", "Skincare", []string{"cream", "brightening"}, ""},
		{models.TypeCatalogEntry, "Retinol Night Treatment", "Retinol night treatment renews skin overnight. Retinol night treatment reduces fine lines.", "Skincare", []string{"retinol", "anti-aging"}, ""},
		{models.TypeCatalogEntry, "Niacinamide Pore Refiner", "Niacinamide pore refiner minimizes pores. Niacinamide pore refiner balances oil production.", "Skincare", []string{"niacinamide", "pores"}, ""},
		{models.TypeCatalogEntry, "Glass Skin Essence", "Glass skin essence delivers luminous hydration. Glass skin essence is a Korean beauty staple.", "Skincare", []string{"essence", "korean"}, ""},
		{models.TypeCatalogEntry, "Centella Calming Toner", "Centella calming toner soothes redness. Centella calming toner is gentle on sensitive skin.", "Skincare", []string{"toner", "sensitive"}, ""},
		{models.TypeCatalogEntry, "Snail Mucin Repair Gel", "Snail mucin repair gel restores the moisture barrier. Snail mucin repair gel absorbs fast.", "Skincare", []string{"mucin", "repair"}, ""},
		{models.TypeCatalogEntry, "Mineral Sunscreen Fluid", "Mineral sunscreen fluid protects with zinc oxide. Mineral sunscreen fluid leaves no white cast.", "Suncare", []string{"sunscreen", "mineral"}, ""},
		{models.TypeCatalogEntry, "Tinted Lip Balm", "Tinted lip balm adds a sheer wash of color. Tinted lip balm nourishes with shea butter.", "Makeup", []string{"lip", "balm"}, ""},
		{models.TypeCatalogEntry, "Volumizing Mascara", "Volumizing mascara builds dramatic lashes. Volumizing mascara resists smudging all day.", "Makeup", []string{"mascara", "eyes"}, ""},
		{models.TypeCatalogEntry, "Matte Liquid Lipstick", "Matte liquid lipstick lasts through meals. Matte liquid lipstick comes in twelve shades.", "Makeup", []string{"lipstick", "matte"}, ""},
		{models.TypeCatalogEntry, "Dewy Cushion Foundation", "Dewy cushion foundation gives buildable coverage. Dewy cushion foundation includes a refill.", "Makeup", []string{"foundation", "cushion"}, ""},
		{models.TypeCatalogEntry, "Argan Hair Oil", "Argan hair oil tames frizz and adds shine. Argan hair oil is cold-pressed and unrefined.", "Haircare", []string{"hair", "oil"}, ""},
		{models.TypeCatalogEntry, "Scalp Exfoliating Scrub", "Scalp exfoliating scrub clears buildup. Scalp exfoliating scrub uses sea salt crystals.", "Haircare", []string{"scalp", "scrub"}, ""},
		{models.TypeCatalogEntry, "Keratin Repair Mask", "Keratin repair mask strengthens damaged strands. Keratin repair mask works in ten minutes.", "Haircare", []string{"keratin", "mask"}, ""},
		{models.TypeCatalogEntry, "Bamboo Cotton Rounds", "Bamboo cotton rounds are washable and reusable. Bamboo cotton rounds replace disposables.", "Accessories", []string{"reusable", "eco"}, ""},
		{models.TypeCatalogEntry, "Jade Facial Roller", "Jade facial roller depuffs in the morning. Jade facial roller pairs well with facial oil.", "Accessories", []string{"tools", "jade"}, ""},
		{models.TypeCatalogEntry, "Silk Pillowcase", "Silk pillowcase reduces friction on skin and hair. Silk pillowcase comes in four colors.", "Accessories", []string{"silk", "sleep"}, ""},
		{models.TypeCatalogEntry, "Vegan Collagen Gummies", "Vegan collagen gummies support skin elasticity. Vegan collagen gummies taste like peach.", "Wellness", []string{"vegan", "supplement"}, ""},
		{models.TypeCatalogEntry, "Probiotic Cleansing Bar", "Probiotic cleansing bar respects the skin microbiome. Probiotic cleansing bar is fragrance free.", "Skincare", []string{"cleanser", "probiotic"}, ""},
		{models.TypeTaxonomyNode, "Korean Skincare", "Korean skincare routines layer hydration. Browse the Korean skincare collection.", "Skincare", []string{"korean"}, ""},
		{models.TypeTaxonomyNode, "Clean Beauty", "Clean beauty products avoid controversial ingredients. Browse the clean beauty collection.", "Skincare", []string{"clean"}, ""},
		{models.TypeTaxonomyNode, "Summer Essentials", "Summer essentials cover sun and after-sun care. Browse the summer essentials collection.", "Suncare", []string{"summer"}, ""},
		{models.TypeTaxonomyNode, "Bridal Edit", "Bridal edit gathers long-wear makeup picks. Browse the bridal edit collection.", "Makeup", []string{"bridal"}, ""},
		{models.TypeStaticPage, "Shipping and Returns", "Shipping and returns policy explains delivery windows. Shipping and returns covers refunds.", "", []string{"policy"}, ""},
		{models.TypeStaticPage, "Ingredient Glossary", "Ingredient glossary defines every active we use. Ingredient glossary is updated quarterly.", "", []string{"ingredients"}, ""},
		{models.TypeStaticPage, "Loyalty Program", "Loyalty program members earn points per purchase. Loyalty program tiers unlock free samples.", "", []string{"rewards"}, ""},
		{models.TypeStaticPage, "Store Locator", "Store locator lists every retail counter. Store locator supports postcode lookup.", "", []string{"stores"}, ""},
		{models.TypeArticle, "Building a Minimalist Routine", "Building a minimalist routine with three steps. A minimalist routine saves money and shelf space.", "Guides", []string{"routine", "minimalist"}, "Mina Park"},
		{models.TypeArticle, "Decoding Sunscreen Labels", "Decoding sunscreen labels like SPF and PA ratings. Decoding sunscreen labels helps you choose.", "Guides", []string{"sunscreen", "education"}, "Yuki Tanaka"},
		{models.TypeArticle, "Double Cleansing Explained", "Double cleansing explained for oily and dry skin. Double cleansing explained step by step.", "Guides", []string{"cleansing", "korean"}, "Mina Park"},
		{models.TypeArticle, "Winter Barrier Repair", "Winter barrier repair for flaky cheeks. Winter barrier repair relies on ceramides.", "Guides", []string{"winter", "barrier"}, "Sol Jeong"},
		{models.TypeArticle, "Retinoid Beginner Mistakes", "Retinoid beginner mistakes and how to avoid purging. Retinoid beginner mistakes are common.", "Guides", []string{"retinol", "education"}, "Yuki Tanaka"},
		{models.TypeArticle, "Fragrance Free Favorites", "Fragrance free favorites for reactive skin. Fragrance free favorites picked by our editors.", "Guides", []string{"sensitive", "fragrance-free"}, "Sol Jeong"},
		{models.TypeCatalogEntry, "Charcoal Clay Mask", "Charcoal clay mask draws out impurities. Charcoal clay mask suits combination skin.", "Skincare", []string{"mask", "charcoal"}, ""},
		{models.TypeCatalogEntry, "Peptide Eye Cream", "Peptide eye cream firms the under-eye area. Peptide eye cream reduces puffiness.", "Skincare", []string{"eye", "peptide"}, ""},
		{models.TypeCatalogEntry, "Rosewater Facial Mist", "Rosewater facial mist refreshes makeup midday. Rosewater facial mist is steam distilled.", "Skincare", []string{"mist", "rose"}, ""},
		{models.TypeCatalogEntry, "Exfoliating Acid Pads", "Exfoliating acid pads combine AHA and BHA. Exfoliating acid pads smooth texture weekly.", "Skincare", []string{"exfoliant", "acids"}, ""},
		{models.TypeCatalogEntry, "Overnight Sleeping Pack", "Overnight sleeping pack seals in moisture. Overnight sleeping pack works while you rest.", "Skincare", []string{"mask", "korean"}, ""},
		{models.TypeCatalogEntry, "Brow Sculpting Gel", "Brow sculpting gel sets hairs all day. Brow sculpting gel comes in four tints.", "Makeup", []string{"brow", "gel"}, ""},
	}

	now := time.Now()
	out := make([]models.SearchableItem, 0, n)
	appendItem := func(i int, t topic, title string) {
		// Stagger creation dates: every third item is recent, the rest age
		// out past the recency window.
		age := 45 * 24 * time.Hour
		if i%3 == 0 {
			age = time.Duration(i%20) * 24 * time.Hour
		}
		created := now.Add(-age)
		out = append(out, models.SearchableItem{
			ID:          fmt.Sprintf("e2e-item-%03d", i+1),
			Type:        t.typ,
			Title:       title,
			Description: t.description,
			Category:    t.category,
			Tags:        t.tags,
			Author:      t.author,
			CreatedAt:   &created,
		})
	}
	for i := 0; i < n && i < len(topics); i++ {
		appendItem(i, topics[i], topics[i].title)
	}
	// If we need more than len(topics), duplicate with different IDs.
	for len(out) < n {
		i := len(out)
		t := topics[i%len(topics)]
		appendItem(i, t, fmt.Sprintf("%s (%d)", t.title, i+1))
	}
	return out
}

func buildQueryCases(items []models.SearchableItem) []QueryCase {
	if len(items) == 0 {
		return nil
	}
	// Each query targets a signature phrase that appears in exactly one topic.
	phrases := []string{
		"hyaluronic acid serum", "vitamin c brightening", "retinol night treatment", "niacinamide pore refiner",
		"glass skin essence", "centella calming toner", "snail mucin repair", "mineral sunscreen fluid",
		"tinted lip balm", "volumizing mascara", "matte liquid lipstick", "dewy cushion foundation",
		"argan hair oil", "scalp exfoliating scrub", "keratin repair mask", "bamboo cotton rounds",
		"jade facial roller", "silk pillowcase", "vegan collagen gummies", "probiotic cleansing bar",
		"korean skincare", "clean beauty", "summer essentials", "bridal edit",
		"shipping and returns", "ingredient glossary", "loyalty program", "store locator",
		"minimalist routine", "decoding sunscreen labels", "double cleansing explained", "winter barrier repair",
		"retinoid beginner mistakes", "fragrance free favorites", "charcoal clay mask", "peptide eye cream",
		"rosewater facial mist", "exfoliating acid pads", "overnight sleeping pack", "brow sculpting gel",
	}
	var cases []QueryCase
	used := make(map[string]bool)
	for _, p := range phrases {
		for i := range items {
			it := &items[i]
			if containsPhrase(it, p) && !used[it.ID] {
				cases = append(cases, QueryCase{
					Query:           p,
					ExpectedItemIDs: []string{it.ID},
					Description:     fmt.Sprintf("query %q should return item %s", p, it.ID),
				})
				used[it.ID] = true
				break
			}
		}
	}
	return cases
}

func containsPhrase(it *models.SearchableItem, phrase string) bool {
	title := strings.ToLower(it.Title)
	desc := strings.ToLower(it.Description)
	p := strings.ToLower(phrase)
	return strings.Contains(title, p) || strings.Contains(desc, p)
}
