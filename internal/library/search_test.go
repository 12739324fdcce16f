// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(books []Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestSearchSubstringBeforeFuzzy(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(Book{Title: "Doon", ISBN: "1"}))
	require.NoError(t, s.Add(Book{Title: "Dune", ISBN: "2"}))

	assert.Equal(t, []string{"Dune", "Doon"}, titles(s.Search("Dune")))
}

func TestSearchRankTiers(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(Book{Title: "Doon", ISBN: "1"}))
	require.NoError(t, s.Add(Book{Title: "Dune Messiah", ISBN: "2"}))
	require.NoError(t, s.Add(Book{Title: "Dune", ISBN: "3"}))

	matches := s.Rank("dune")
	require.Len(t, matches, 3)
	assert.Equal(t, TierExact, matches[0].Tier)
	assert.Equal(t, "Dune", matches[0].Book.Title)
	assert.Equal(t, TierSubstring, matches[1].Tier)
	assert.Equal(t, "Dune Messiah", matches[1].Book.Title)
	assert.Equal(t, TierFuzzy, matches[2].Tier)
	assert.InDelta(t, 0.5, matches[2].Score, 1e-9)
	assert.Equal(t, 0, matches[2].Index)
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	s := filledStore(t)
	assert.Equal(t, s.List(), s.Search(""))
	assert.Equal(t, s.List(), s.Search("   "))
}

func TestSearchNoMatch(t *testing.T) {
	s := filledStore(t)
	assert.Empty(t, s.Search("zzzz"))
	assert.Empty(t, NewStore().Search("dune"))
}

func TestSearchIsDeterministic(t *testing.T) {
	s := filledStore(t)
	require.NoError(t, s.Add(Book{Title: "Dune Messiah", Author: "Frank Herbert", ISBN: "x"}))

	first := s.Search("herbert")
	second := s.Search("herbert")
	assert.Equal(t, first, second)
	// Equal scores keep collection order.
	assert.Equal(t, []string{"Dune", "Dune Messiah"}, titles(first))
}

func TestSearchCaseAndAccentInsensitive(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(Book{Title: "Les Misérables", Author: "Victor Hugo", ISBN: "1"}))

	assert.Len(t, s.Search("MISERABLES"), 1)
	assert.Len(t, s.Search("les   misérables"), 1)
}

func TestSearchMatchesAuthorWithTypo(t *testing.T) {
	s := filledStore(t)

	got := s.Rank("tolkein")
	require.Len(t, got, 1)
	assert.Equal(t, "The Hobbit", got[0].Book.Title)
	assert.Equal(t, TierFuzzy, got[0].Tier)
}

func TestSearchISBNExact(t *testing.T) {
	s := filledStore(t)

	got := s.Rank(" 9780451524935 ")
	require.NotEmpty(t, got)
	assert.Equal(t, "1984", got[0].Book.Title)
	assert.Equal(t, TierExact, got[0].Tier)
}

func TestSearchThresholdIsConfigurable(t *testing.T) {
	books := []Book{{Title: "Doon", ISBN: "1"}}

	assert.Len(t, Searcher{Threshold: 0.5}.Search(books, "dune"), 1)
	assert.Empty(t, Searcher{Threshold: 0.6}.Search(books, "dune"))

	strict := NewStore(WithSearchThreshold(0.9))
	require.NoError(t, strict.Add(books[0]))
	assert.Empty(t, strict.Search("dune"))
	assert.Equal(t, 0.9, strict.Threshold())
}

func TestSearchResultsDoNotAliasStore(t *testing.T) {
	s := filledStore(t)
	got := s.Search("dune")
	require.NotEmpty(t, got)
	got[0].Title = "changed"
	assert.Equal(t, "Dune", s.List()[0].Title)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("dune", "dune"))
	assert.Equal(t, 0.0, Similarity("abcd", "wxyz"))
	assert.InDelta(t, 0.5, Similarity("dune", "doon"), 1e-9)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "les miserables", Normalize("  Les\tMisérables "))
	assert.Equal(t, "strasse", Normalize("STRASSE"))
	assert.Equal(t, "", Normalize(" \n "))
}

func TestWordOverlap(t *testing.T) {
	assert.Equal(t, 1.0, WordOverlap("The Lord of the Rings", "the lord of the rings!"))
	assert.InDelta(t, 0.5, WordOverlap("Dune Messiah", "Dune"), 1e-9)
	assert.Equal(t, 0.0, WordOverlap("a b", "c d"))
}
