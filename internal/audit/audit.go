// Package audit backs the "verify" subcommand: it walks an index's full,
// unbounded scan (spec.md §8 "total coverage"), checks the number of
// values found against the number the caller says it inserted, and counts
// duplicate values by content hash. The report carries counts only; it
// does not list which values are missing or extra. Digests returns the
// ordered digest list for a set of values. Ground truth: no example repo has an
// equivalent debug pass, but google/btree sits unused in the pack
// otherwise, and an ordered set is exactly its job.
package audit

import (
	"fmt"

	"github.com/google/btree"

	"github.com/kmerbase/kmertrie/pkg/kmer"
	"github.com/kmerbase/kmertrie/pkg/trie"
)

// digest is one leaf's fingerprint: its content hash, plus an ordinal that
// keeps otherwise-identical duplicate k-mers from colliding into one
// btree entry (so duplicate leaves are counted, not deduplicated away).
type digest struct {
	hash    uint64
	ordinal int
}

func lessDigest(a, b digest) bool {
	if a.hash != b.hash {
		return a.hash < b.hash
	}
	return a.ordinal < b.ordinal
}

// Report is the outcome of verifying one index.
type Report struct {
	IndexName   string
	ScannedN    int
	InsertedN   int
	Duplicates  int
	OK          bool
}

func (r Report) String() string {
	status := "OK"
	if !r.OK {
		status = "MISMATCH"
	}
	return fmt.Sprintf("%s: scanned=%d inserted=%d duplicates=%d [%s]",
		r.IndexName, r.ScannedN, r.InsertedN, r.Duplicates, status)
}

// Verify scans every value in tree (an unbounded scan) and cross-checks
// the count against insertedN, the number of values the caller recorded
// having inserted (cmd/kmerd's verify passes the snapshot's record count
// for the index). Multiplicity is tracked via
// an ordered digest set keyed on content hash: a hash colliding with an
// already-seen ordinal for a value that turns out to be a genuine
// duplicate (not a hash collision) is expected and fine, since each
// inserted copy gets the next ordinal in scan order.
func Verify(indexName string, tree *trie.Tree, insertedN int) Report {
	digests := btree.NewG(32, lessDigest)

	values := tree.Scan(nil)
	byHash := map[uint64]int{}
	for _, v := range values {
		h := kmer.KMer(v).Hash()
		ordinal := byHash[h]
		byHash[h] = ordinal + 1
		digests.ReplaceOrInsert(digest{hash: h, ordinal: ordinal})
	}

	duplicates := 0
	for _, count := range byHash {
		if count > 1 {
			duplicates += count - 1
		}
	}

	return Report{
		IndexName:  indexName,
		ScannedN:   len(values),
		InsertedN:  insertedN,
		Duplicates: duplicates,
		OK:         len(values) == insertedN,
	}
}

// Digests walks the ordered digest set built for values, lowest hash
// first. cmd/kmerd's verify subcommand does not call it; only the
// package's tests do.
func Digests(values []trie.Value) []uint64 {
	digests := btree.NewG(32, lessDigest)
	byHash := map[uint64]int{}
	for _, v := range values {
		h := kmer.KMer(v).Hash()
		ordinal := byHash[h]
		byHash[h] = ordinal + 1
		digests.ReplaceOrInsert(digest{hash: h, ordinal: ordinal})
	}

	var out []uint64
	digests.Ascend(func(d digest) bool {
		out = append(out, d.hash)
		return true
	})
	return out
}
