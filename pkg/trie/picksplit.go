package trie

import "sort"

// PickSplitIn is a batch of leaf values currently sharing one position that
// the host wants turned into a proper inner node.
type PickSplitIn struct {
	Datums []Value
}

// PickSplitOut is the inner node PickSplit built, plus the per-input
// routing: MapTuplesToNodes[i] says which entry of NodeLabels input i now
// lives under, and LeafResiduals[i] is the new (shorter) leaf value it
// should be stored with.
type PickSplitOut struct {
	HasPrefix        bool
	Prefix           Value
	NodeLabels       []Label
	MapTuplesToNodes []int
	LeafResiduals    []Value
}

// PickSplit finds the longest prefix common to every input, then groups
// the inputs by the byte (or terminal sentinel) immediately following that
// prefix, producing one sorted label per distinct group (spec §4.4; ground
// truth kmer_spgist.c:kmer_picksplit).
func PickSplit(in PickSplitIn) PickSplitOut {
	n := len(in.Datums)

	commonLen := len(in.Datums[0])
	for i := 1; i < n && commonLen > 0; i++ {
		c := commonPrefix(in.Datums[0], in.Datums[i])
		if c < commonLen {
			commonLen = c
		}
	}

	out := PickSplitOut{}
	if commonLen > 0 {
		out.HasPrefix = true
		out.Prefix = FormValue(in.Datums[0][:commonLen])
	}

	type branch struct {
		c   Label
		idx int
	}
	branches := make([]branch, n)
	for i, d := range in.Datums {
		if commonLen < len(d) {
			branches[i] = branch{c: Label(d[commonLen]), idx: i}
		} else {
			branches[i] = branch{c: LabelTerminal, idx: i}
		}
	}
	sort.SliceStable(branches, func(i, j int) bool { return branches[i].c < branches[j].c })

	out.NodeLabels = make([]Label, 0, n)
	out.MapTuplesToNodes = make([]int, n)
	out.LeafResiduals = make([]Value, n)

	for i, b := range branches {
		if i == 0 || b.c != branches[i-1].c {
			out.NodeLabels = append(out.NodeLabels, b.c)
		}
		d := in.Datums[b.idx]
		var residual Value
		if commonLen < len(d) {
			residual = FormValue(d[commonLen+1:])
		}
		out.LeafResiduals[b.idx] = residual
		out.MapTuplesToNodes[b.idx] = len(out.NodeLabels) - 1
	}

	return out
}
