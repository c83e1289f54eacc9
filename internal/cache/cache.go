// Package cache layers two read-path optimizations in front of pkg/trie,
// never inside it (the core stays pure, per spec.md §9): an LRU of recent
// scan results, and a lock-free map of each connection's last-used index
// name, which lets a command omit the index name.
package cache

import (
	"fmt"

	"github.com/alphadose/haxmap"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kmerbase/kmertrie/pkg/trie"
)

// ScanKeyCacheKey identifies a cached scan by the index it ran against and
// the qualifiers it ran with.
type ScanKeyCacheKey struct {
	Index    string
	Strategy trie.Strategy
	Arg      string
}

func (k ScanKeyCacheKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Index, k.Strategy, k.Arg)
}

// ScanCache caches the result of recent scans, invalidated wholesale for an
// index whenever that index receives an insert (a scan result only holds
// while the index it came from hasn't changed).
type ScanCache struct {
	lru *lru.Cache[ScanKeyCacheKey, []trie.Value]
}

// NewScanCache returns a cache holding up to size recent scan results.
func NewScanCache(size int) (*ScanCache, error) {
	l, err := lru.New[ScanKeyCacheKey, []trie.Value](size)
	if err != nil {
		return nil, err
	}
	return &ScanCache{lru: l}, nil
}

// Get returns a cached scan result, if present.
func (c *ScanCache) Get(key ScanKeyCacheKey) ([]trie.Value, bool) {
	return c.lru.Get(key)
}

// Put stores a scan result under key, evicting the least-recently-used
// entry if the cache is full.
func (c *ScanCache) Put(key ScanKeyCacheKey, result []trie.Value) {
	c.lru.Add(key, result)
}

// InvalidateIndex drops every cached result for the given index name,
// since any one of them could now be stale.
func (c *ScanCache) InvalidateIndex(indexName string) {
	for _, key := range c.lru.Keys() {
		if key.Index == indexName {
			c.lru.Remove(key)
		}
	}
}

// LastIndex is a lock-free cache of each session's most recently used
// catalog index name, keyed by connection ID, so a command against the
// same index can leave the name out. It holds names only; the index itself
// is still looked up in the catalog on every command.
type LastIndex struct {
	m *haxmap.Map[uint64, string]
}

// NewLastIndex returns an empty LastIndex cache.
func NewLastIndex() *LastIndex {
	return &LastIndex{m: haxmap.New[uint64, string]()}
}

// Set records name as connID's most recently used index.
func (l *LastIndex) Set(connID uint64, name string) {
	l.m.Set(connID, name)
}

// Get returns the index name last used by connID, if any.
func (l *LastIndex) Get(connID uint64) (string, bool) {
	return l.m.Get(connID)
}

// Forget drops connID's entry, called when the connection closes.
func (l *LastIndex) Forget(connID uint64) {
	l.m.Del(connID)
}
