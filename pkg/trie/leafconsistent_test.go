package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeafConsistentReconstructsFullValue(t *testing.T) {
	out := LeafConsistent(LeafConsistentIn{
		LeafDatum:          Value("gt"),
		Level:              2,
		ReconstructedValue: Value("ac"),
	})
	assert.Equal(t, Value("acgt"), out.LeafValue)
	assert.True(t, out.Matches)
	assert.False(t, out.Recheck)
}

func TestLeafConsistentEqRequiresFullEquality(t *testing.T) {
	base := LeafConsistentIn{LeafDatum: Value("gt"), Level: 2, ReconstructedValue: Value("ac")}
	base.ScanKeys = []ScanKey{{Strategy: Eq, Arg: Value("acgt")}}
	assert.True(t, LeafConsistent(base).Matches)

	base.ScanKeys = []ScanKey{{Strategy: Eq, Arg: Value("acgg")}}
	assert.False(t, LeafConsistent(base).Matches)

	base.ScanKeys = []ScanKey{{Strategy: Eq, Arg: Value("acg")}}
	assert.False(t, LeafConsistent(base).Matches)
}

func TestLeafConsistentOrderStrategies(t *testing.T) {
	in := LeafConsistentIn{LeafDatum: Value("gt"), Level: 2, ReconstructedValue: Value("ac")}
	// full value is "acgt"
	assert.True(t, LeafConsistent(withKeys(in, ScanKey{Strategy: Lt, Arg: Value("acgu")})).Matches)
	assert.False(t, LeafConsistent(withKeys(in, ScanKey{Strategy: Lt, Arg: Value("acgt")})).Matches)
	assert.True(t, LeafConsistent(withKeys(in, ScanKey{Strategy: Le, Arg: Value("acgt")})).Matches)
	assert.True(t, LeafConsistent(withKeys(in, ScanKey{Strategy: Gt, Arg: Value("acg")})).Matches)
	assert.False(t, LeafConsistent(withKeys(in, ScanKey{Strategy: Gt, Arg: Value("acgt")})).Matches)
	assert.True(t, LeafConsistent(withKeys(in, ScanKey{Strategy: Ge, Arg: Value("acgt")})).Matches)
}

func withKeys(in LeafConsistentIn, keys ...ScanKey) LeafConsistentIn {
	in.ScanKeys = keys
	return in
}

func TestLeafConsistentPrefixStrategy(t *testing.T) {
	in := LeafConsistentIn{LeafDatum: Value("gtaa"), Level: 2, ReconstructedValue: Value("ac")}
	assert.True(t, LeafConsistent(withKeys(in, ScanKey{Strategy: Prefix, Arg: Value("acgt")})).Matches)
	assert.False(t, LeafConsistent(withKeys(in, ScanKey{Strategy: Prefix, Arg: Value("acgg")})).Matches)
	assert.False(t, LeafConsistent(withKeys(in, ScanKey{Strategy: Prefix, Arg: Value("acgtaaaaaaa")})).Matches)
}

func TestLeafConsistentContainsStrategyExactLength(t *testing.T) {
	in := LeafConsistentIn{LeafDatum: Value("gt"), Level: 2, ReconstructedValue: Value("ac")}
	assert.True(t, LeafConsistent(withKeys(in, ScanKey{Strategy: Contains, Arg: Value("acrt")})).Matches)
	assert.False(t, LeafConsistent(withKeys(in, ScanKey{Strategy: Contains, Arg: Value("acr")})).Matches)
	assert.False(t, LeafConsistent(withKeys(in, ScanKey{Strategy: Contains, Arg: Value("accc")})).Matches)
}
