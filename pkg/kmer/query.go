package kmer

import "fmt"

// QKMer is a validated IUPAC query k-mer: 1..MaxLength bytes, each a plain
// DNA base or one of the ambiguity codes r, y, k, m, s, w, b, d, h, v, n.
//
// 'u' is accepted by neither the plain nor ambiguity alphabets here:
// stored k-mers are DNA, never RNA, so a byte that can only ever mean
// "uracil" could never match anything and is rejected up front rather than
// silently matching nothing (resolves the ambiguity the distilled spec
// left open; ground truth kmer.h:match never special-cases 'u' either,
// consistent with it never appearing in a valid pattern).
type QKMer []byte

// ParseQueryKMer lowercases and validates s as a query k-mer (ground
// truth: kmer.c:qkmer_in).
func ParseQueryKMer(s string) (QKMer, error) {
	if len(s) == 0 {
		return nil, ErrEmpty
	}
	if len(s) > MaxLength {
		return nil, ErrTooLong
	}
	out := make(QKMer, len(s))
	for i := 0; i < len(s); i++ {
		c := lower(s[i])
		if !validQueryByte(c) {
			return nil, &InvalidBaseError{Offset: i, Byte: s[i]}
		}
		out[i] = c
	}
	return out, nil
}

func (q QKMer) String() string {
	return string(q)
}

func (q QKMer) Len() int {
	return len(q)
}

// Matches reports whether q, read as an IUPAC pattern, matches k exactly:
// same length, and every position's ambiguity code admits the
// corresponding base (ground truth: kmer.c:kmer_query / kmer_containing).
func (q QKMer) Matches(k KMer) bool {
	if len(q) != len(k) {
		return false
	}
	for i := range q {
		if !match(q[i], k[i]) {
			return false
		}
	}
	return true
}

// match is the one-byte IUPAC primitive, duplicated from pkg/trie.Match so
// this package has no dependency on the index core: the two are kept
// manually in sync because they express the same fixed biological table,
// not index-specific logic.
func match(pattern, nucleotide byte) bool {
	if pattern == nucleotide || pattern == 'n' {
		return true
	}
	switch pattern {
	case 'r':
		return nucleotide == 'a' || nucleotide == 'g'
	case 'y':
		return nucleotide == 'c' || nucleotide == 't'
	case 'k':
		return nucleotide == 'g' || nucleotide == 't'
	case 'm':
		return nucleotide == 'a' || nucleotide == 'c'
	case 's':
		return nucleotide == 'g' || nucleotide == 'c'
	case 'w':
		return nucleotide == 'a' || nucleotide == 't'
	case 'b':
		return nucleotide == 'c' || nucleotide == 'g' || nucleotide == 't'
	case 'd':
		return nucleotide == 'a' || nucleotide == 'g' || nucleotide == 't'
	case 'h':
		return nucleotide == 'a' || nucleotide == 'c' || nucleotide == 't'
	case 'v':
		return nucleotide == 'a' || nucleotide == 'c' || nucleotide == 'g'
	default:
		return false
	}
}

// ValidationError wraps a position-tagged parse failure with the original
// input, for callers that want to echo it back verbatim. The parsers in
// this package return the bare error and do not wrap it in a
// ValidationError.
type ValidationError struct {
	Input string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("kmer: %q: %v", e.Input, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
