// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MatchTier orders how a book matched a query. Higher is better.
type MatchTier int

const (
	TierNone MatchTier = iota
	TierFuzzy
	TierSubstring
	TierExact
)

func (t MatchTier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierSubstring:
		return "substring"
	case TierFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// Match is one ranked search hit.
type Match struct {
	Book  Book
	Index int // position in the collection
	Tier  MatchTier
	Score float64 // 0-1, meaningful within a tier
}

// Searcher ranks books against a free-text query.
//
// Title and author are normalised (accents dropped, case folded, whitespace
// collapsed). A field equal to the query is an exact hit, a field
// containing it is a substring hit. Otherwise the query is compared with
// the whole field and with every run of field words as long as the query;
// the best indel ratio 2*LCS/(len(a)+len(b)) at or above Threshold is a
// fuzzy hit. An ISBN equal to the trimmed query is always exact.
//
// Hits are ordered by tier, then score, then collection order.
type Searcher struct {
	Threshold float64
}

// Search returns the matching books, best first. An empty query returns
// every book in stored order.
func (s Searcher) Search(books []Book, query string) []Book {
	matches := s.Rank(books, query)
	out := make([]Book, len(matches))
	for i, m := range matches {
		out[i] = m.Book
	}
	return out
}

// Rank is Search with tier and score attached.
func (s Searcher) Rank(books []Book, query string) []Match {
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultSearchThreshold
	}

	q := Normalize(query)
	if q == "" {
		all := make([]Match, len(books))
		for i, b := range books {
			all[i] = Match{Book: b, Index: i, Tier: TierExact, Score: 1}
		}
		return all
	}
	isbn := strings.TrimSpace(query)
	qWords := strings.Fields(q)

	var matches []Match
	for i, b := range books {
		m := Match{Book: b, Index: i}
		if b.ISBN != "" && b.ISBN == isbn {
			m.Tier, m.Score = TierExact, 1
		} else {
			for _, field := range []string{b.Title, b.Author} {
				tier, score := scoreField(q, qWords, field, threshold)
				if tier > m.Tier || (tier == m.Tier && score > m.Score) {
					m.Tier, m.Score = tier, score
				}
			}
		}
		if m.Tier != TierNone {
			matches = append(matches, m)
		}
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		if a.Tier != b.Tier {
			return int(b.Tier) - int(a.Tier)
		}
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return matches
}

func scoreField(q string, qWords []string, field string, threshold float64) (MatchTier, float64) {
	f := Normalize(field)
	if f == "" {
		return TierNone, 0
	}
	if f == q {
		return TierExact, 1
	}
	if strings.Contains(f, q) {
		// Shorter fields are closer to what was asked for.
		return TierSubstring, float64(utf8.RuneCountInString(q)) / float64(utf8.RuneCountInString(f))
	}

	best := Similarity(q, f)
	words := strings.Fields(f)
	n := len(qWords)
	for i := 0; i+n <= len(words); i++ {
		if sim := Similarity(q, strings.Join(words[i:i+n], " ")); sim > best {
			best = sim
		}
	}
	if best >= threshold {
		return TierFuzzy, best
	}
	return TierNone, 0
}

// Similarity is the indel ratio of a and b: 1 for equal strings, 0 when
// they share no characters.
func Similarity(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(edlib.LCS(a, b)) / float64(total)
}

// Normalize folds case and accents and collapses whitespace.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(cases.Fold().String(stripped)), " ")
}

// WordOverlap is the Jaccard index of the word sets of a and b, ignoring
// punctuation and words shorter than three letters.
func WordOverlap(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, Normalize(s))

	set := make(map[string]bool)
	for _, w := range strings.Fields(clean) {
		if utf8.RuneCountInString(w) > 2 {
			set[w] = true
		}
	}
	return set
}
