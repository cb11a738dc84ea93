package extract

import (
	"regexp"
	"strings"
)

var (
	parenUnitRe  = regexp.MustCompile(`\([^)]*\)`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanLabel normalizes a raw row or column label before matching: strips
// parenthesized unit suffixes such as "($mm)" or "(USD thousands)",
// lower-cases, and collapses internal whitespace. Pure and idempotent.
func CleanLabel(label string) string {
	s := parenUnitRe.ReplaceAllString(label, " ")
	s = strings.ToLower(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Similarity returns a normalized edit-distance ratio between two strings in
// [0,1]: 1.0 for identical strings, 0.0 for entirely dissimilar ones. The
// ratio is 1 - dist/maxLen over runes, so it is symmetric and deterministic.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// levenshtein computes edit distance with a rolling single-row buffer.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur := i
		diag := prev[0]
		prev[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			next := diag + cost
			if prev[j]+1 < next {
				next = prev[j] + 1
			}
			if cur+1 < next {
				next = cur + 1
			}
			diag = prev[j]
			prev[j] = next
			cur = next
		}
	}
	return prev[len(b)]
}
