package trie

import (
	"bytes"
	"fmt"
)

// bucketCapacity bounds how many leaf tuples Tree lets accumulate at one
// position before it invokes PickSplit to turn them into a proper inner
// node. Nothing in the callback contract mandates a particular threshold
// — a real host is free to pick its own page-fill policy — so this is a
// driver-level constant, not part of the indexed semantics.
const bucketCapacity = 4

// Tree is a minimal in-memory host for the five callbacks above: something
// a real SP-GiST engine would provide (page allocation, tuple storage,
// WAL) but that this package has no external stand-in for. It exists so
// the callbacks can be exercised end to end, not as a claim that this is
// how a production index would be paged or persisted.
type Tree struct {
	root nodeChild
}

// NewTree returns an empty Tree.
func NewTree() *Tree {
	return &Tree{}
}

// Insert adds v to the tree. Duplicate values are preserved as distinct
// leaves (spec §8 "duplicate keys").
func (t *Tree) Insert(v Value) {
	t.root = insertAt(t.root, FormValue(v), 0)
}

// Scan returns every stored value satisfying every key in keys (an AND of
// qualifiers). An empty key list returns every stored value (spec §8
// "total coverage").
func (t *Tree) Scan(keys []ScanKey) []Value {
	var out []Value
	var walk func(c nodeChild, level int, reconstructed Value)
	walk = func(c nodeChild, level int, reconstructed Value) {
		switch n := c.(type) {
		case nil:
			return
		case []LeafNode:
			for _, leaf := range n {
				res := LeafConsistent(LeafConsistentIn{
					LeafDatum:          leaf.Residual,
					Level:              level,
					ReconstructedValue: reconstructed,
					ScanKeys:           keys,
				})
				if res.Matches {
					out = append(out, res.LeafValue)
				}
			}
		case *InnerNode:
			ic := InnerConsistent(InnerConsistentIn{
				ReconstructedValue: reconstructed,
				Level:              level,
				HasPrefix:          n.HasPrefix,
				Prefix:             n.Prefix,
				NodeLabels:         n.Labels,
				ScanKeys:           keys,
			})
			for _, ch := range ic.Children {
				walk(n.Children[ch.NodeN], level+ch.LevelAdd, ch.ReconstructedValue)
			}
		default:
			panic(fmt.Sprintf("trie: unexpected node child type %T", c))
		}
	}
	walk(t.root, 0, nil)
	return out
}

// insertAt routes full (the complete, untrimmed value being inserted) into
// c, the node child currently occupying the given level, returning the
// (possibly new) child that should replace it.
func insertAt(c nodeChild, full Value, level int) nodeChild {
	switch n := c.(type) {
	case nil:
		return []LeafNode{{Residual: FormValue(full[level:])}}

	case []LeafNode:
		updated := append(append([]LeafNode{}, n...), LeafNode{Residual: FormValue(full[level:])})
		if len(updated) <= bucketCapacity || leavesAllEqual(updated) {
			return updated
		}
		return buildChild(updated)

	case *InnerNode:
		out := Choose(ChooseIn{
			Datum:      full,
			Level:      level,
			HasPrefix:  n.HasPrefix,
			Prefix:     n.Prefix,
			NodeLabels: n.Labels,
		})

		switch out.ResultType {
		case ChooseMatchNode:
			idx := out.MatchNode.NodeN
			n.Children[idx] = insertAt(n.Children[idx], full, level+out.MatchNode.LevelAdd)
			return n

		case ChooseAddNode:
			idx := out.AddNode.NodeN
			n.Labels = insertLabelAt(n.Labels, idx, out.AddNode.NodeLabel)
			n.Children = insertChildAt(n.Children, idx, nil)
			return insertAt(n, full, level)

		case ChooseSplitTuple:
			res := out.SplitTuple
			// Placeholder prefix: Choose's all-the-same path (choose_test.go:101
			// exercises it directly), never produced by this driver since it
			// never hands Choose an all-the-same node tuple to split.
			if res.PrefixNodeLabels[0] == LabelPlaceholder {
				upper := &InnerNode{
					HasPrefix: n.HasPrefix,
					Prefix:    n.Prefix,
					Labels:    []Label{LabelPlaceholder},
					Children:  []nodeChild{n},
				}
				n.HasPrefix = false
				n.Prefix = nil
				return insertAt(upper, full, level)
			}

			upper := &InnerNode{
				HasPrefix: res.PrefixHasPrefix,
				Prefix:    res.PrefixPrefix,
				Labels:    append([]Label{}, res.PrefixNodeLabels...),
				Children:  []nodeChild{n},
			}
			n.HasPrefix = res.PostfixHasPrefix
			n.Prefix = res.PostfixPrefix
			return insertAt(upper, full, level)

		default:
			panic(fmt.Sprintf("trie: choose returned unknown result type %v", out.ResultType))
		}

	default:
		panic(fmt.Sprintf("trie: unexpected node child type %T", c))
	}
}

// buildChild turns a batch of colocated leaves into either a plain leaf
// chain (if the batch is small, or PickSplit can't usefully divide it — all
// residuals identical, or every value lands under one label) or a fresh
// inner node built recursively from PickSplit's output.
func buildChild(leaves []LeafNode) nodeChild {
	if len(leaves) <= bucketCapacity || leavesAllEqual(leaves) {
		return leaves
	}

	datums := make([]Value, len(leaves))
	for i, l := range leaves {
		datums[i] = l.Residual
	}

	ps := PickSplit(PickSplitIn{Datums: datums})
	if len(ps.NodeLabels) <= 1 {
		return leaves
	}

	groups := make([][]LeafNode, len(ps.NodeLabels))
	for i := range leaves {
		idx := ps.MapTuplesToNodes[i]
		groups[idx] = append(groups[idx], LeafNode{Residual: ps.LeafResiduals[i]})
	}

	children := make([]nodeChild, len(ps.NodeLabels))
	for i, g := range groups {
		children[i] = buildChild(g)
	}

	return &InnerNode{
		HasPrefix: ps.HasPrefix,
		Prefix:    ps.Prefix,
		Labels:    ps.NodeLabels,
		Children:  children,
	}
}

func leavesAllEqual(leaves []LeafNode) bool {
	for i := 1; i < len(leaves); i++ {
		if !bytes.Equal(leaves[0].Residual, leaves[i].Residual) {
			return false
		}
	}
	return true
}
