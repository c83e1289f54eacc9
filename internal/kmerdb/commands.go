package kmerdb

import (
	"path/filepath"
	"strings"

	"github.com/kmerbase/kmertrie/internal/cache"
	"github.com/kmerbase/kmertrie/internal/kmerdb/resp3"
	"github.com/kmerbase/kmertrie/pkg/kmer"
	"github.com/kmerbase/kmertrie/pkg/trie"
)

// handlePing and handleEcho are carried over unchanged from
// app/diyredis/session.go: there's no domain reason to drop two commands
// this cheap, and they're handy for a health check.
func handlePing(_ *Session, _ []string, enc *resp3.Encoder) {
	enc.WriteSimpleStr("PONG")
}

func handleEcho(_ *Session, args []string, enc *resp3.Encoder) {
	if len(args) != 1 {
		enc.WriteError("ERR ECHO takes exactly one argument")
		return
	}
	enc.WriteBulkStr(args[0])
}

// resolveIndex returns the index name a command should run against,
// falling back to the session's last-used index (Server.LastIdx) when the
// caller omits it, so repeated commands against the same index don't have
// to keep repeating its name.
func resolveIndex(s *Session, args []string, minArgsWithIndex int) (indexName string, rest []string, ok bool) {
	if len(args) >= minArgsWithIndex {
		s.server.LastIdx.Set(s.id, args[0])
		return args[0], args[1:], true
	}
	if len(args) == minArgsWithIndex-1 {
		if name, found := s.server.LastIdx.Get(s.id); found {
			return name, args, true
		}
	}
	return "", nil, false
}

func handleKAdd(s *Session, args []string, enc *resp3.Encoder) {
	indexName, rest, ok := resolveIndex(s, args, 2)
	if !ok || len(rest) != 1 {
		enc.WriteError("ERR usage: KADD <index> <kmer>")
		return
	}

	k, err := kmer.ParseKMer(rest[0])
	if err != nil {
		enc.WriteError("ERR " + s.server.annotateKMerError(rest[0], err))
		return
	}

	idx := s.server.Catalog.GetOrCreate(indexName, defaultSnapshotPath(s, indexName))
	idx.Insert(trie.Value(k))
	s.server.Cache.InvalidateIndex(indexName)
	enc.WriteSimpleStr("OK")
}

func handleKGet(s *Session, args []string, enc *resp3.Encoder) {
	indexName, rest, ok := resolveIndex(s, args, 2)
	if !ok || len(rest) != 1 {
		enc.WriteError("ERR usage: KGET <index> <kmer>")
		return
	}
	k, err := kmer.ParseKMer(rest[0])
	if err != nil {
		enc.WriteError("ERR " + s.server.annotateKMerError(rest[0], err))
		return
	}
	runCachedScan(s, indexName, trie.Eq, trie.Value(k), enc)
}

func handleKPrefix(s *Session, args []string, enc *resp3.Encoder) {
	indexName, rest, ok := resolveIndex(s, args, 2)
	if !ok || len(rest) != 1 {
		enc.WriteError("ERR usage: KPREFIX <index> <prefix>")
		return
	}
	k, err := kmer.ParseKMer(rest[0])
	if err != nil {
		enc.WriteError("ERR " + s.server.annotateKMerError(rest[0], err))
		return
	}
	runCachedScan(s, indexName, trie.Prefix, trie.Value(k), enc)
}

func handleKMatch(s *Session, args []string, enc *resp3.Encoder) {
	indexName, rest, ok := resolveIndex(s, args, 2)
	if !ok || len(rest) != 1 {
		enc.WriteError("ERR usage: KMATCH <index> <qkmer>")
		return
	}
	q, err := kmer.ParseQueryKMer(rest[0])
	if err != nil {
		enc.WriteError("ERR " + s.server.annotateQueryKMerError(rest[0], err))
		return
	}
	runCachedScan(s, indexName, trie.Contains, trie.Value(q), enc)
}

func handleKRange(s *Session, args []string, enc *resp3.Encoder) {
	indexName, rest, ok := resolveIndex(s, args, 3)
	if !ok || len(rest) != 2 {
		enc.WriteError("ERR usage: KRANGE <index> <low> <high>")
		return
	}
	low, err := kmer.ParseKMer(rest[0])
	if err != nil {
		enc.WriteError("ERR " + s.server.annotateKMerError(rest[0], err))
		return
	}
	high, err := kmer.ParseKMer(rest[1])
	if err != nil {
		enc.WriteError("ERR " + s.server.annotateKMerError(rest[1], err))
		return
	}

	idx, err := s.server.Catalog.Get(indexName)
	if err != nil {
		enc.WriteArrHeader(0)
		return
	}
	values := idx.Tree.Scan([]trie.ScanKey{
		{Strategy: trie.Ge, Arg: trie.Value(low)},
		{Strategy: trie.Le, Arg: trie.Value(high)},
	})
	writeValues(enc, values)
}

func handleKDump(s *Session, args []string, enc *resp3.Encoder) {
	path := filepath.Join(s.server.Config.SnapshotDir, s.server.Config.SnapshotFile)
	if len(args) == 1 {
		path = args[0]
	}
	if err := s.server.Dump(path); err != nil {
		enc.WriteError("ERR " + err.Error())
		return
	}
	enc.WriteSimpleStr("OK")
}

func handleCatalog(s *Session, args []string, enc *resp3.Encoder) {
	if len(args) == 0 || !strings.EqualFold(args[0], "LIST") {
		enc.WriteError("ERR usage: CATALOG LIST [prefix]")
		return
	}
	prefix := ""
	if len(args) > 1 {
		prefix = args[1]
	}
	enc.WriteBulkStrArr(s.server.Catalog.List(prefix))
}

func runCachedScan(s *Session, indexName string, strategy trie.Strategy, arg trie.Value, enc *resp3.Encoder) {
	key := cache.ScanKeyCacheKey{Index: indexName, Strategy: strategy, Arg: string(arg)}
	if values, ok := s.server.Cache.Get(key); ok {
		writeValues(enc, values)
		return
	}

	idx, err := s.server.Catalog.Get(indexName)
	if err != nil {
		enc.WriteArrHeader(0)
		return
	}
	values := idx.Tree.Scan([]trie.ScanKey{{Strategy: strategy, Arg: arg}})
	s.server.Cache.Put(key, values)
	writeValues(enc, values)
}

func writeValues(enc *resp3.Encoder, values []trie.Value) {
	enc.WriteArrHeader(len(values))
	for _, v := range values {
		enc.WriteBulkStr(string(v))
	}
}

func defaultSnapshotPath(s *Session, indexName string) string {
	return filepath.Join(s.server.Config.SnapshotDir, indexName+".kdb")
}
