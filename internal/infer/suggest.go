package infer

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldKey canonicalizes a name for distance comparison: NFC-normalize then
// lower-case, so "café" and "CAFÉ" (in either normal form) compare as the
// same candidate (teacher: internal/lexer/normalize.go does the same NFC
// pass at the lexer boundary; here it is reused at the suggestion boundary).
var foldCaser = cases.Fold()

func foldKey(s string) string {
	return foldCaser.String(norm.NFC.String(s))
}

// suggestNames returns up to three candidates within threshold edit
// distance of name, closest first, for an UndefinedVariable
// "did you mean" hint. threshold <= 0 disables suggestions.
func suggestNames(name string, candidates []string, threshold int) []string {
	if threshold <= 0 {
		return nil
	}
	key := foldKey(name)
	type scored struct {
		name string
		dist int
	}
	var scoredCandidates []scored
	for _, c := range candidates {
		d := levenshtein(key, foldKey(c))
		if d <= threshold {
			scoredCandidates = append(scoredCandidates, scored{c, d})
		}
	}
	sort.SliceStable(scoredCandidates, func(i, j int) bool {
		if scoredCandidates[i].dist != scoredCandidates[j].dist {
			return scoredCandidates[i].dist < scoredCandidates[j].dist
		}
		return scoredCandidates[i].name < scoredCandidates[j].name
	})
	out := make([]string, 0, 3)
	for i := 0; i < len(scoredCandidates) && i < 3; i++ {
		out = append(out, scoredCandidates[i].name)
	}
	return out
}

// levenshtein computes classic single-character-edit distance between two
// strings, operating over runes so multi-byte identifiers cost one edit per
// character rather than per byte.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
