package models

import (
	"sort"
	"strings"
	"time"
)

// FilterAll is the wildcard filter value meaning "no constraint".
const FilterAll = "all"

// DateRange is a coarse recency bucket used for filtering by creation time.
type DateRange string

const (
	RangeAny   DateRange = ""
	RangeDay   DateRange = "day"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
	RangeYear  DateRange = "year"
)

// window returns the bucket duration, or 0 for "any".
func (r DateRange) window() time.Duration {
	switch r {
	case RangeDay:
		return 24 * time.Hour
	case RangeWeek:
		return 7 * 24 * time.Hour
	case RangeMonth:
		return 30 * 24 * time.Hour
	case RangeYear:
		return 365 * 24 * time.Hour
	}
	return 0
}

// Filters restricts a result set after ranking. All set fields are AND-combined;
// an empty or "all" field imposes no constraint.
type Filters struct {
	Type     string    `json:"type,omitempty"`
	Category string    `json:"category,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
	Author   string    `json:"author,omitempty"`
	Range    DateRange `json:"range,omitempty"`
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f.Type == "" && f.Category == "" && len(f.Tags) == 0 && f.Author == "" && f.Range == RangeAny
}

func unconstrained(v string) bool {
	return v == "" || strings.EqualFold(v, FilterAll)
}

// Match reports whether item passes every set filter, evaluated at now.
func (f Filters) Match(item *SearchableItem, now time.Time) bool {
	if !unconstrained(f.Type) && !strings.EqualFold(string(item.Type), f.Type) {
		return false
	}
	if !unconstrained(f.Category) && !strings.EqualFold(item.Category, f.Category) {
		return false
	}
	if !unconstrained(f.Author) &&
		!strings.Contains(strings.ToLower(item.Author), strings.ToLower(f.Author)) {
		return false
	}
	for _, want := range f.Tags {
		if unconstrained(want) {
			continue
		}
		found := false
		for _, tag := range item.Tags {
			if strings.EqualFold(tag, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if w := f.Range.window(); w > 0 {
		if item.CreatedAt == nil || now.Sub(*item.CreatedAt) > w {
			return false
		}
	}
	return true
}

// Key returns a stable serialization of the filter set for cache keying.
// Tag order does not affect the key.
func (f Filters) Key() string {
	tags := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		tags = append(tags, strings.ToLower(t))
	}
	sort.Strings(tags)
	var b strings.Builder
	b.WriteString(strings.ToLower(f.Type))
	b.WriteByte('|')
	b.WriteString(strings.ToLower(f.Category))
	b.WriteByte('|')
	b.WriteString(strings.Join(tags, ","))
	b.WriteByte('|')
	b.WriteString(strings.ToLower(f.Author))
	b.WriteByte('|')
	b.WriteString(string(f.Range))
	return b.String()
}
