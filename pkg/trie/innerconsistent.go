package trie

import (
	"bytes"
	"fmt"
)

// InnerConsistentIn is the state presented at one inner node during a scan:
// the path reconstructed so far (always exactly Level bytes long), the
// node itself, and the scan's key list.
type InnerConsistentIn struct {
	ReconstructedValue Value
	Level              int
	HasPrefix          bool
	Prefix             Value
	NodeLabels         []Label
	ScanKeys           []ScanKey
}

// InnerConsistentChild is one child the scan should continue into: which
// index, how many more bytes of path that consumes, and the reconstructed
// path up to (and including) that child's label.
type InnerConsistentChild struct {
	NodeN              int
	LevelAdd           int
	ReconstructedValue Value
}

type InnerConsistentOut struct {
	Children []InnerConsistentChild
}

// InnerConsistent decides, for every child of one inner node, whether any
// value under it could still satisfy every scan key, by testing the path
// reconstructed as far as that child against each key (spec §4.5; ground
// truth kmer_spgist.c:kmer_inner_consistent, extended to the Lt/Le/Gt/Ge
// strategies spec.md requires beyond what the original covers).
func InnerConsistent(in InnerConsistentIn) InnerConsistentOut {
	assertf(len(in.ReconstructedValue) == in.Level,
		"reconstructed value length %d does not match level %d", len(in.ReconstructedValue), in.Level)

	maxLen := in.Level
	if in.HasPrefix {
		maxLen += len(in.Prefix)
	}
	maxLen++

	trial := make(Value, maxLen)
	copy(trial, in.ReconstructedValue)
	if in.HasPrefix {
		copy(trial[in.Level:], in.Prefix)
	}

	var out InnerConsistentOut
	for i, nodeChar := range in.NodeLabels {
		var thisLen int
		if nodeChar < 0 {
			thisLen = maxLen - 1
		} else {
			trial[maxLen-1] = byte(nodeChar)
			thisLen = maxLen
		}

		path := trial[:thisLen]
		ok := true
		for _, sk := range in.ScanKeys {
			if !innerScanKeyAllows(sk, path) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		out.Children = append(out.Children, InnerConsistentChild{
			NodeN:              i,
			LevelAdd:           thisLen - in.Level,
			ReconstructedValue: FormValue(path),
		})
	}
	return out
}

// innerScanKeyAllows reports whether some value extending path could still
// satisfy sk; path is a reconstructed prefix, not a complete k-mer.
func innerScanKeyAllows(sk ScanKey, path Value) bool {
	n := len(sk.Arg)
	if len(path) < n {
		n = len(path)
	}

	switch sk.Strategy {
	case Eq:
		return bytes.Equal(path[:n], sk.Arg[:n]) && len(sk.Arg) >= len(path)
	case Lt, Le:
		return bytes.Compare(path[:n], sk.Arg[:n]) <= 0
	case Gt, Ge:
		return bytes.Compare(path[:n], sk.Arg[:n]) >= 0
	case Prefix:
		return bytes.Equal(path[:n], sk.Arg[:n])
	case Contains:
		if len(sk.Arg) < len(path) {
			return false
		}
		for j := 0; j < n; j++ {
			if !Match(sk.Arg[j], path[j]) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("trie: unrecognized scan strategy %v", sk.Strategy))
	}
}

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("trie: invariant violated: "+format, args...))
	}
}
