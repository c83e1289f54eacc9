package kmer

import (
	"errors"
	"fmt"
)

// ErrWindowTooLarge is returned when windowSize exceeds either the
// sequence length or MaxLength.
var ErrWindowTooLarge = fmt.Errorf("kmer: window size exceeds sequence length or %d", MaxLength)

// ErrWindowNotPositive is returned for a non-positive windowSize.
var ErrWindowNotPositive = errors.New("kmer: window size must be positive")

// GenerateKMers slides a window of windowSize bases across dna and returns
// every k-mer it covers, in order (ground truth: kmer.c:generate_kmers,
// a set-returning function there; here a plain slice is the idiomatic
// Go shape since there's no equivalent of Postgres's per-call SRF protocol
// to emulate). dna is unbounded in length — windowSize, not len(dna), is
// what's capped at MaxLength.
func GenerateKMers(dna DNA, windowSize int) ([]KMer, error) {
	if windowSize <= 0 {
		return nil, ErrWindowNotPositive
	}
	if windowSize > MaxLength || windowSize > len(dna) {
		return nil, ErrWindowTooLarge
	}

	count := len(dna) - windowSize + 1
	out := make([]KMer, count)
	for i := 0; i < count; i++ {
		window := make(KMer, windowSize)
		copy(window, dna[i:i+windowSize])
		out[i] = window
	}
	return out, nil
}
