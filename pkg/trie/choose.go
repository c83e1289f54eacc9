package trie

// ChooseResult distinguishes the three actions Choose can ask the host to
// take (spec §4.3).
type ChooseResult int

const (
	ChooseMatchNode ChooseResult = iota
	ChooseAddNode
	ChooseSplitTuple
)

// ChooseIn is the state Choose is asked to descend through: the full,
// never-trimmed value being inserted, how many of its leading bytes have
// already been consumed by ancestors, and the inner node sitting at the
// current position.
type ChooseIn struct {
	Datum      Value
	Level      int
	HasPrefix  bool
	Prefix     Value
	NodeLabels []Label
	AllTheSame bool
}

// MatchNodeResult says which existing child to descend into, how many more
// bytes of Datum that consumes, and what residual would be stored if this
// turns out to terminate in a leaf at that child.
type MatchNodeResult struct {
	NodeN     int
	LevelAdd  int
	RestDatum Value
}

// AddNodeResult says which label is missing and where it belongs in the
// sorted label list.
type AddNodeResult struct {
	NodeLabel Label
	NodeN     int
}

// SplitTupleResult describes the two-level replacement for the current
// node: an upper tuple with exactly one labeled child, beneath which the
// original node is relocated (with its own prefix shortened, or dropped
// entirely in the all-the-same case).
type SplitTupleResult struct {
	PrefixHasPrefix  bool
	PrefixPrefix     Value
	PrefixNodeLabels []Label
	ChildNodeN       int
	PostfixHasPrefix bool
	PostfixPrefix    Value
}

// ChooseOut carries exactly one of the three result shapes, selected by
// ResultType.
type ChooseOut struct {
	ResultType ChooseResult
	MatchNode  MatchNodeResult
	AddNode    AddNodeResult
	SplitTuple SplitTupleResult
}

// Choose decides, for one inner node, how the value being inserted should
// be routed: down an existing child, down a newly added child, or via a
// restructuring split of the node itself (spec §4.3; ground truth
// kmer_spgist.c:kmer_choose).
func Choose(in ChooseIn) ChooseOut {
	inSize := len(in.Datum)
	var nodeChar Label
	commonLen := 0

	if in.HasPrefix {
		rest := in.Datum[in.Level:]
		commonLen = commonPrefix(rest, in.Prefix)

		if commonLen < len(in.Prefix) {
			// The value diverges from this node's prefix partway through
			// it: split the node into an upper tuple holding the shared
			// part and a lower tuple (the original node, relocated) that
			// holds what's left.
			var upperHasPrefix bool
			var upperPrefix Value
			if commonLen > 0 {
				upperHasPrefix = true
				upperPrefix = FormValue(in.Prefix[:commonLen])
			}

			splitLabel := Label(in.Prefix[commonLen])

			var postfixHasPrefix bool
			var postfixPrefix Value
			if len(in.Prefix)-commonLen > 1 {
				postfixHasPrefix = true
				postfixPrefix = FormValue(in.Prefix[commonLen+1:])
			}

			return ChooseOut{
				ResultType: ChooseSplitTuple,
				SplitTuple: SplitTupleResult{
					PrefixHasPrefix:  upperHasPrefix,
					PrefixPrefix:     upperPrefix,
					PrefixNodeLabels: []Label{splitLabel},
					ChildNodeN:       0,
					PostfixHasPrefix: postfixHasPrefix,
					PostfixPrefix:    postfixPrefix,
				},
			}
		}

		if inSize-in.Level > commonLen {
			nodeChar = Label(in.Datum[in.Level+commonLen])
		} else {
			nodeChar = LabelTerminal
		}
	} else {
		if inSize > in.Level {
			nodeChar = Label(in.Datum[in.Level])
		} else {
			nodeChar = LabelTerminal
		}
	}

	idx, found := searchLabel(in.NodeLabels, nodeChar)
	if found {
		levelAdd := commonLen
		if nodeChar >= 0 {
			levelAdd++
		}
		rest := FormValue(in.Datum[in.Level+levelAdd:])
		return ChooseOut{
			ResultType: ChooseMatchNode,
			MatchNode: MatchNodeResult{
				NodeN:     idx,
				LevelAdd:  levelAdd,
				RestDatum: rest,
			},
		}
	}

	if in.AllTheSame {
		// Every label already present is indistinguishable from what we'd
		// need to add; wrap the node in a placeholder-labeled upper tuple
		// instead of growing past a distinguishable label set (spec §3
		// invariant 4).
		return ChooseOut{
			ResultType: ChooseSplitTuple,
			SplitTuple: SplitTupleResult{
				PrefixHasPrefix:  in.HasPrefix,
				PrefixPrefix:     in.Prefix,
				PrefixNodeLabels: []Label{LabelPlaceholder},
				ChildNodeN:       0,
				PostfixHasPrefix: false,
			},
		}
	}

	return ChooseOut{
		ResultType: ChooseAddNode,
		AddNode: AddNodeResult{
			NodeLabel: nodeChar,
			NodeN:     idx,
		},
	}
}
