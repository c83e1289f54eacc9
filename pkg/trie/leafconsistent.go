package trie

import (
	"bytes"
	"fmt"
)

// LeafConsistentIn is the state presented at one leaf tuple during a scan:
// its residual suffix, the level it sits at, the path reconstructed down
// to it, and the scan's key list.
type LeafConsistentIn struct {
	LeafDatum          Value
	Level              int
	ReconstructedValue Value
	ScanKeys           []ScanKey
}

type LeafConsistentOut struct {
	Matches   bool
	LeafValue Value
	Recheck   bool
}

// LeafConsistent rebuilds the full indexed value from the reconstructed
// path plus the leaf's residual, tests it against every scan key, and
// reports whether the leaf qualifies (spec §4.6; ground truth
// kmer_spgist.c:kmer_leaf_consistent, extended to Lt/Le/Gt/Ge).
//
// Because the full value is rebuilt exactly rather than approximated,
// Recheck is always false: nothing about this index's leaf match is ever
// speculative.
func LeafConsistent(in LeafConsistentIn) LeafConsistentOut {
	assertf(len(in.ReconstructedValue) == in.Level,
		"reconstructed value length %d does not match level %d", len(in.ReconstructedValue), in.Level)

	full := make(Value, in.Level+len(in.LeafDatum))
	copy(full, in.ReconstructedValue)
	copy(full[in.Level:], in.LeafDatum)

	matches := true
	for _, sk := range in.ScanKeys {
		if !leafScanKeyMatches(sk, full) {
			matches = false
			break
		}
	}

	return LeafConsistentOut{
		Matches:   matches,
		LeafValue: full,
		Recheck:   false,
	}
}

func leafScanKeyMatches(sk ScanKey, full Value) bool {
	switch sk.Strategy {
	case Eq:
		return bytes.Equal(full, sk.Arg)
	case Lt:
		return compareFull(full, sk.Arg) < 0
	case Le:
		return compareFull(full, sk.Arg) <= 0
	case Gt:
		return compareFull(full, sk.Arg) > 0
	case Ge:
		return compareFull(full, sk.Arg) >= 0
	case Prefix:
		return len(full) >= len(sk.Arg) && bytes.Equal(full[:len(sk.Arg)], sk.Arg)
	case Contains:
		if len(sk.Arg) != len(full) {
			return false
		}
		for i := range sk.Arg {
			if !Match(sk.Arg[i], full[i]) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("trie: unrecognized scan strategy %v", sk.Strategy))
	}
}
