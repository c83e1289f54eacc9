package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kmerbase/kmertrie/pkg/trie"
)

func TestScanCachePutGet(t *testing.T) {
	c, err := NewScanCache(8)
	assert.NoError(t, err)

	key := ScanKeyCacheKey{Index: "reads", Strategy: trie.Eq, Arg: "acgt"}
	c.Put(key, []trie.Value{trie.Value("acgt")})

	got, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, []trie.Value{trie.Value("acgt")}, got)
}

func TestScanCacheMiss(t *testing.T) {
	c, err := NewScanCache(8)
	assert.NoError(t, err)
	_, ok := c.Get(ScanKeyCacheKey{Index: "reads", Strategy: trie.Eq, Arg: "acgt"})
	assert.False(t, ok)
}

func TestScanCacheInvalidateIndex(t *testing.T) {
	c, err := NewScanCache(8)
	assert.NoError(t, err)

	k1 := ScanKeyCacheKey{Index: "reads", Strategy: trie.Eq, Arg: "acgt"}
	k2 := ScanKeyCacheKey{Index: "controls", Strategy: trie.Eq, Arg: "acgt"}
	c.Put(k1, []trie.Value{trie.Value("acgt")})
	c.Put(k2, []trie.Value{trie.Value("acgt")})

	c.InvalidateIndex("reads")

	_, ok := c.Get(k1)
	assert.False(t, ok)
	_, ok = c.Get(k2)
	assert.True(t, ok)
}

func TestLastIndexSetGetForget(t *testing.T) {
	l := NewLastIndex()
	_, ok := l.Get(1)
	assert.False(t, ok)

	l.Set(1, "reads")
	got, ok := l.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "reads", got)

	l.Forget(1)
	_, ok = l.Get(1)
	assert.False(t, ok)
}
