package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kmerbase/kmertrie/pkg/trie"
)

func TestVerifyMatchesWhenCountsAgree(t *testing.T) {
	tr := trie.NewTree()
	tr.Insert(trie.Value("acgt"))
	tr.Insert(trie.Value("gcta"))
	tr.Insert(trie.Value("tttt"))

	r := Verify("reads", tr, 3)
	assert.True(t, r.OK)
	assert.Equal(t, 3, r.ScannedN)
	assert.Equal(t, 0, r.Duplicates)
}

func TestVerifyDetectsMismatch(t *testing.T) {
	tr := trie.NewTree()
	tr.Insert(trie.Value("acgt"))

	r := Verify("reads", tr, 2)
	assert.False(t, r.OK)
}

func TestVerifyCountsDuplicates(t *testing.T) {
	tr := trie.NewTree()
	tr.Insert(trie.Value("acgt"))
	tr.Insert(trie.Value("acgt"))
	tr.Insert(trie.Value("gcta"))

	r := Verify("reads", tr, 3)
	assert.True(t, r.OK)
	assert.Equal(t, 1, r.Duplicates)
}

func TestDigestsAreSortedAndCountDuplicates(t *testing.T) {
	values := []trie.Value{trie.Value("acgt"), trie.Value("acgt"), trie.Value("gcta")}
	digests := Digests(values)
	assert.Len(t, digests, 3)
	for i := 1; i < len(digests); i++ {
		assert.LessOrEqual(t, digests[i-1], digests[i])
	}
}
