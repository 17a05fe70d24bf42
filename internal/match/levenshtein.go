// Package match determines per-item match existence and raw match quality
// via exact substring, edit-distance fuzzy, and partial word-overlap matching.
package match

import "strings"

// LevenshteinDistance calculates the minimum number of single-character edits
// (insertions, deletions, or substitutions) required to change one string into another.
// This is a pure function with no side effects.
func LevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Convert to runes for proper Unicode handling
	runesA := []rune(a)
	runesB := []rune(b)
	lenA := len(runesA)
	lenB := len(runesB)

	// Two rows of the DP table are enough
	prev := make([]int, lenB+1)
	curr := make([]int, lenB+1)

	for j := 0; j <= lenB; j++ {
		prev[j] = j
	}

	for i := 1; i <= lenA; i++ {
		curr[0] = i
		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[lenB]
}

// WordSimilarity returns a 0..1 similarity between a query word and a target
// word: 1.0 when the target contains the query word as a substring, otherwise
// 1 - distance/max(len) over the edit distance.
func WordSimilarity(queryWord, targetWord string) float64 {
	if queryWord == "" || targetWord == "" {
		return 0
	}
	if strings.Contains(targetWord, queryWord) {
		return 1.0
	}
	longest := max(len([]rune(queryWord)), len([]rune(targetWord)))
	dist := LevenshteinDistance(queryWord, targetWord)
	return 1.0 - float64(dist)/float64(longest)
}
