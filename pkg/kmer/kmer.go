// Package kmer provides the scalar DNA k-mer and IUPAC query-k-mer types
// that pkg/trie indexes, along with the parsing, comparison and generation
// helpers a caller needs to work with them (spec §2).
package kmer

import (
	"errors"
	"fmt"
	"hash/fnv"
)

// MaxLength is the longest k-mer this package accepts, matching the
// storage ceiling of the original extension (kmer.h:MAX_KMER_LENGTH).
const MaxLength = 32

var (
	// ErrEmpty is returned for a zero-length sequence; k-mers must hold at
	// least one base.
	ErrEmpty = errors.New("kmer: sequence must not be empty")

	// ErrTooLong is returned for a sequence longer than MaxLength.
	ErrTooLong = fmt.Errorf("kmer: sequence longer than %d bases", MaxLength)
)

// InvalidBaseError reports a byte outside the expected alphabet, with the
// offset it occurred at.
type InvalidBaseError struct {
	Offset int
	Byte   byte
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("kmer: invalid base %q at offset %d", e.Byte, e.Offset)
}

// KMer is a validated DNA k-mer: 1..MaxLength bytes, each one of a, c, g, t.
type KMer []byte

// ParseKMer lowercases and validates s as a DNA k-mer (ground truth:
// kmer.h:validate_sequence plus kmer.c's MAX_KMER_LENGTH check on kmer_in).
func ParseKMer(s string) (KMer, error) {
	if len(s) == 0 {
		return nil, ErrEmpty
	}
	if len(s) > MaxLength {
		return nil, ErrTooLong
	}
	out := make(KMer, len(s))
	for i := 0; i < len(s); i++ {
		c := lower(s[i])
		switch c {
		case 'a', 'c', 'g', 't':
			out[i] = c
		default:
			return nil, &InvalidBaseError{Offset: i, Byte: s[i]}
		}
	}
	return out, nil
}

// String renders the k-mer back as lowercase text.
func (k KMer) String() string {
	return string(k)
}

// Len returns the number of bases in k.
func (k KMer) Len() int {
	return len(k)
}

// Equal reports whether k and other are the identical sequence.
func (k KMer) Equal(other KMer) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// StartsWith reports whether prefix is a byte-prefix of k (ground truth:
// kmer.c:kmer_starts_with).
func (k KMer) StartsWith(prefix KMer) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

// HasPrefix is the commutative counterpart of StartsWith: it reports
// whether k is a prefix of longer, i.e. longer.StartsWith(k).
func (k KMer) HasPrefix(longer KMer) bool {
	return longer.StartsWith(k)
}

// Compare orders k against other by byte value, with the shorter of two
// otherwise-equal sequences sorting first (spec §2 "order").
func (k KMer) Compare(other KMer) int {
	n := len(k)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if k[i] != other[i] {
			if k[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return len(k) - len(other)
}

// Hash computes a content hash of k suitable for a hash-based secondary
// index or dedup set (supplements kmer.c:kmer_hash, which defers to
// Postgres's internal hash_any; fnv-1a is this repo's ordinary stand-in,
// see internal/audit for its other use).
func (k KMer) Hash() uint64 {
	h := fnv.New64a()
	h.Write(k)
	return h.Sum64()
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// isAmbiguityCode reports whether c is one of the degenerate IUPAC
// ambiguity letters this package understands (spec §2), i.e. anything
// besides the four plain bases.
func isAmbiguityCode(c byte) bool {
	switch c {
	case 'r', 'y', 'k', 'm', 's', 'w', 'b', 'd', 'h', 'v', 'n':
		return true
	default:
		return false
	}
}

// validQueryByte reports whether c is valid inside a QKMer: a plain base or
// an ambiguity code. 'u' is deliberately excluded; see QKMer's doc comment.
func validQueryByte(c byte) bool {
	switch c {
	case 'a', 'c', 'g', 't':
		return true
	default:
		return isAmbiguityCode(c)
	}
}
