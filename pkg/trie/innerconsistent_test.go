package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInnerConsistentNoScanKeysKeepsEveryChild(t *testing.T) {
	out := InnerConsistent(InnerConsistentIn{
		Level:      0,
		HasPrefix:  false,
		NodeLabels: []Label{Label('a'), Label('c'), Label('g'), Label('t')},
	})
	assert.Len(t, out.Children, 4)
}

func TestInnerConsistentPrefixStrategyPrunesDivergentChildren(t *testing.T) {
	out := InnerConsistent(InnerConsistentIn{
		Level:      0,
		HasPrefix:  true,
		Prefix:     Value("ac"),
		NodeLabels: []Label{Label('g'), Label('t')},
		ScanKeys:   []ScanKey{{Strategy: Prefix, Arg: Value("acg")}},
	})
	assert.Len(t, out.Children, 1)
	assert.Equal(t, 0, out.Children[0].NodeN)
	assert.Equal(t, Value("acg"), out.Children[0].ReconstructedValue)
}

func TestInnerConsistentEqPrunesWhenPathAlreadyDiverges(t *testing.T) {
	labels := []Label{Label('a'), Label('c'), Label('g'), Label('t')}
	out := InnerConsistent(InnerConsistentIn{
		Level:      0,
		HasPrefix:  false,
		NodeLabels: labels,
		ScanKeys:   []ScanKey{{Strategy: Eq, Arg: Value("gattaca")}},
	})
	assert.Len(t, out.Children, 1)
	assert.Equal(t, Label('g'), labels[out.Children[0].NodeN])
}

func TestInnerConsistentContainsRespectsAmbiguityCode(t *testing.T) {
	out := InnerConsistent(InnerConsistentIn{
		Level:      0,
		HasPrefix:  false,
		NodeLabels: []Label{Label('a'), Label('c'), Label('g'), Label('t')},
		ScanKeys:   []ScanKey{{Strategy: Contains, Arg: Value("rcgt")}}, // r = a or g
	})
	var kept []Label
	for _, ch := range out.Children {
		kept = append(kept, []Label{Label('a'), Label('c'), Label('g'), Label('t')}[ch.NodeN])
	}
	assert.ElementsMatch(t, []Label{Label('a'), Label('g')}, kept)
}

func TestInnerConsistentGeDropsChildrenBelowBound(t *testing.T) {
	out := InnerConsistent(InnerConsistentIn{
		Level:      0,
		HasPrefix:  false,
		NodeLabels: []Label{Label('a'), Label('c'), Label('g'), Label('t')},
		ScanKeys:   []ScanKey{{Strategy: Ge, Arg: Value("g")}},
	})
	var kept []Label
	for _, ch := range out.Children {
		kept = append(kept, []Label{Label('a'), Label('c'), Label('g'), Label('t')}[ch.NodeN])
	}
	assert.ElementsMatch(t, []Label{Label('g'), Label('t')}, kept)
}

func TestInnerConsistentTerminalChildReconstructsWithoutExtraByte(t *testing.T) {
	out := InnerConsistent(InnerConsistentIn{
		ReconstructedValue: Value("ac"),
		Level:              2,
		HasPrefix:          false,
		NodeLabels:         []Label{LabelTerminal, Label('g')},
	})
	assert.Len(t, out.Children, 2)
	assert.Equal(t, Value("ac"), out.Children[0].ReconstructedValue)
	assert.Equal(t, 0, out.Children[0].LevelAdd)
	assert.Equal(t, Value("acg"), out.Children[1].ReconstructedValue)
	assert.Equal(t, 1, out.Children[1].LevelAdd)
}
