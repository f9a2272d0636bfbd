// pattern: Functional Core

// Package fuzzy ranks candidate strings against a typed query.
package fuzzy

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	sfuzzy "github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Match is a candidate that survived filtering.
type Match struct {
	Index int // position in the candidate slice
	Score int // higher is better; zero for the empty query
}

// Matcher scores candidates with subsequence matching. Matching ignores
// diacritics and is case-insensitive unless the query contains an
// upper-case letter (smart case).
type Matcher struct {
	smartCase bool
}

// NewMatcher returns a smart-case matcher.
func NewMatcher() *Matcher {
	return &Matcher{smartCase: true}
}

// Filter returns the candidates matching query, best first. Ties keep
// candidate order. The query is split on whitespace and a candidate must
// match every word, in any order; its score is the sum of the word scores.
// An empty or blank query returns every candidate in order.
func (m *Matcher) Filter(query string, candidates []string) []Match {
	words := strings.Fields(fold(query))
	if len(words) == 0 {
		all := make([]Match, len(candidates))
		for i := range candidates {
			all[i] = Match{Index: i}
		}
		return all
	}

	normalized := make([]string, len(candidates))
	for i, c := range candidates {
		normalized[i] = fold(c)
	}

	scores := make(map[int]int, len(candidates))
	hits := make(map[int]int, len(candidates))
	for _, word := range words {
		caseSensitive := m.smartCase && hasUpper(word)
		for _, f := range sfuzzy.Find(word, normalized) {
			if caseSensitive && !isSubsequence(word, normalized[f.Index]) {
				continue
			}
			scores[f.Index] += f.Score
			hits[f.Index]++
		}
	}

	out := make([]Match, 0, len(hits))
	for i, n := range hits {
		if n == len(words) {
			out = append(out, Match{Index: i, Score: scores[i]})
		}
	}

	slices.SortFunc(out, func(a, b Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return out
}

// fold strips combining marks after canonical decomposition so that "é"
// matches "e".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// isSubsequence reports whether every rune of needle appears in haystack
// in order, compared exactly.
func isSubsequence(needle, haystack string) bool {
	n := []rune(needle)
	i := 0
	for _, r := range haystack {
		if i == len(n) {
			break
		}
		if r == n[i] {
			i++
		}
	}
	return i == len(n)
}
