// Package suggest offers "did you mean" suggestions for mistyped protocol
// tokens: command names, and the IUPAC/DNA letters a KMER or QKMER
// validation error rejected. Ground truth: nothing in the teacher does
// this (its commands are a flat, unforgiving switch), but derekparker/trie
// is part of the retrieved pack specifically for its FuzzySearch method,
// so this package gives it a home on the one user-facing edge where a
// typo-tolerant suggestion is actually useful — a rejected command or
// k-mer letter.
package suggest

import (
	"sort"

	"github.com/derekparker/trie"
)

// Suggester answers "did you mean" queries against a fixed vocabulary.
type Suggester struct {
	t *trie.Trie
}

// New builds a Suggester over vocabulary (command names, or valid k-mer
// alphabet letters).
func New(vocabulary []string) *Suggester {
	t := trie.New()
	for _, word := range vocabulary {
		t.Add(word, struct{}{})
	}
	return &Suggester{t: t}
}

// Commands is the vocabulary internal/kmerdb registers a Suggester with:
// every recognized wire command.
var Commands = []string{
	"PING", "ECHO",
	"KADD", "KGET", "KPREFIX", "KMATCH", "KRANGE", "KDUMP",
	"CATALOG",
}

// Bases is the vocabulary for correcting a single rejected KMER letter:
// the plain DNA alphabet.
var Bases = []string{"a", "c", "g", "t"}

// QueryBases is the vocabulary for correcting a single rejected QKMER
// letter: DNA plus the IUPAC ambiguity codes.
var QueryBases = []string{"a", "c", "g", "t", "r", "y", "k", "m", "s", "w", "b", "d", "h", "v", "n"}

// Suggest returns up to n near matches for word, closest first. An exact
// match in the vocabulary returns no suggestions (there's nothing to
// correct).
func (s *Suggester) Suggest(word string, n int) []string {
	if _, ok := s.t.Find(word); ok {
		return nil
	}

	matches := s.t.FuzzySearch(word)
	sort.Slice(matches, func(i, j int) bool {
		return len(matches[i]) < len(matches[j])
	})

	if len(matches) > n {
		matches = matches[:n]
	}
	return matches
}
