package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickSplitCommonPrefixAndBranches(t *testing.T) {
	out := PickSplit(PickSplitIn{Datums: []Value{
		Value("acgta"),
		Value("acgtc"),
		Value("acgga"),
	}})
	assert.True(t, out.HasPrefix)
	assert.Equal(t, Value("acg"), out.Prefix)
	// branch bytes after "acg" are: t, t, g -> two distinct labels
	assert.Equal(t, []Label{Label('g'), Label('t')}, out.NodeLabels)

	for i, d := range []Value{Value("acgta"), Value("acgtc"), Value("acgga")} {
		node := out.NodeLabels[out.MapTuplesToNodes[i]]
		assert.Equal(t, Label(d[3]), node)
	}
}

func TestPickSplitTerminalAmongLonger(t *testing.T) {
	out := PickSplit(PickSplitIn{Datums: []Value{
		Value("ac"),
		Value("acg"),
		Value("act"),
	}})
	assert.True(t, out.HasPrefix)
	assert.Equal(t, Value("ac"), out.Prefix)
	assert.Equal(t, []Label{LabelTerminal, Label('g'), Label('t')}, out.NodeLabels)
	assert.Empty(t, out.LeafResiduals[0])
}

func TestPickSplitSingleDatum(t *testing.T) {
	out := PickSplit(PickSplitIn{Datums: []Value{Value("acgt")}})
	assert.True(t, out.HasPrefix)
	assert.Equal(t, Value("acgt"), out.Prefix)
	assert.Equal(t, []Label{LabelTerminal}, out.NodeLabels)
	assert.Empty(t, out.LeafResiduals[0])
}

func TestPickSplitNoCommonPrefix(t *testing.T) {
	out := PickSplit(PickSplitIn{Datums: []Value{
		Value("aaaa"),
		Value("cccc"),
		Value("gggg"),
		Value("tttt"),
	}})
	assert.False(t, out.HasPrefix)
	assert.Empty(t, out.Prefix)
	assert.Equal(t, []Label{Label('a'), Label('c'), Label('g'), Label('t')}, out.NodeLabels)
	for i, d := range []Value{Value("aaaa"), Value("cccc"), Value("gggg"), Value("tttt")} {
		assert.Equal(t, Value(d[1:]), out.LeafResiduals[i])
	}
}
