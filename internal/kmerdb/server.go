// Package kmerdb is the wire-protocol front end: a RESP server exposing
// KADD/KGET/KPREFIX/KMATCH/KRANGE/KDUMP/CATALOG over TCP, plus the PING/
// ECHO pair carried over from the protocol's origin. Ground truth:
// flonle-diy-redis's app/diyredis package (server.go's listener loop,
// session.go's per-connection command switch, resp.go's wire codec) —
// kept in shape, generalized from a flat key/value store to a catalog of
// named k-mer indexes.
package kmerdb

import (
	"errors"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/kmerbase/kmertrie/internal/cache"
	"github.com/kmerbase/kmertrie/internal/catalog"
	"github.com/kmerbase/kmertrie/internal/config"
	"github.com/kmerbase/kmertrie/internal/snapshot"
	"github.com/kmerbase/kmertrie/internal/suggest"
	"github.com/kmerbase/kmertrie/pkg/kmer"
)

// Server owns the catalog of named indexes and the caches and
// suggestion vocabularies every Session shares.
type Server struct {
	Config     *config.Config
	Catalog    *catalog.Catalog
	Cache      *cache.ScanCache
	LastIdx    *cache.LastIndex
	Commands   *suggest.Suggester
	Bases      *suggest.Suggester
	QueryBases *suggest.Suggester
	Log        *logrus.Logger

	listener net.Listener
	wg       sync.WaitGroup
	nextID   uint64
}

// NewServer wires a Server's catalog, caches, and suggestion vocabularies
// from cfg. Passing a nil log defaults to logrus's standard logger.
func NewServer(cfg *config.Config, log *logrus.Logger) (*Server, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	scanCache, err := cache.NewScanCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Server{
		Config:     cfg,
		Catalog:    catalog.New(),
		Cache:      scanCache,
		LastIdx:    cache.NewLastIndex(),
		Commands:   suggest.New(suggest.Commands),
		Bases:      suggest.New(suggest.Bases),
		QueryBases: suggest.New(suggest.QueryBases),
		Log:        log,
	}, nil
}

// annotateKMerError appends a "did you mean" suggestion to err's message
// when it's an invalid-base error the plain-DNA vocabulary can correct.
func (s *Server) annotateKMerError(input string, err error) string {
	return annotateWithSuggestion(s.Bases, input, err)
}

// annotateQueryKMerError is annotateKMerError's counterpart for QKMER
// input, correcting against the DNA-plus-IUPAC-ambiguity-code vocabulary.
func (s *Server) annotateQueryKMerError(input string, err error) string {
	return annotateWithSuggestion(s.QueryBases, input, err)
}

func annotateWithSuggestion(suggester *suggest.Suggester, input string, err error) string {
	var badByte *kmer.InvalidBaseError
	if !errors.As(err, &badByte) {
		return err.Error()
	}
	letter := strings.ToLower(string(badByte.Byte))
	matches := suggester.Suggest(letter, 1)
	if len(matches) == 0 {
		return err.Error()
	}
	return err.Error() + " (did you mean '" + matches[0] + "'?)"
}

// LoadSnapshot restores every index recorded in the snapshot file at path
// into the catalog. A missing file is not an error: a fresh server simply
// starts with an empty catalog, matching the teacher's LoadRdb treating a
// missing RDB file as a no-op rather than a fatal error.
func (s *Server) LoadSnapshot(path string) error {
	indexes, err := snapshot.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, idx := range indexes {
		index := s.Catalog.GetOrCreate(idx.Name, "")
		for _, v := range idx.Values {
			index.Insert(v)
		}
		s.Log.WithFields(logrus.Fields{"index": idx.Name, "count": len(idx.Values)}).Info("restored index from snapshot")
	}
	return nil
}

// Dump flushes every catalog index's full content to path as a single
// snapshot file.
func (s *Server) Dump(path string) error {
	indexes := s.Catalog.All()
	data := make([]snapshot.IndexData, 0, len(indexes))
	for _, idx := range indexes {
		data = append(data, snapshot.IndexData{
			Name:   idx.Name,
			Values: idx.Tree.Scan(nil),
		})
	}
	return snapshot.Save(path, data)
}

// Listen binds Config.ListenAddr, ready for Serve to accept on. Split from
// Serve so a caller (or a test binding an ephemeral ":0" port) can learn
// the bound address via Addr before the accept loop starts.
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.Config.ListenAddr)
	if err != nil {
		return err
	}
	s.listener = listener
	return nil
}

// ListenAndServe binds Config.ListenAddr and serves connections until
// Close is called.
func (s *Server) ListenAndServe() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	return s.Serve()
}

// Serve accepts and handles connections on a listener already bound by
// Listen, until Close is called.
func (s *Server) Serve() error {
	s.Log.WithField("addr", s.listener.Addr().String()).Info("kmerdb listening")

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			s.Log.WithError(err).Error("accept failed")
			return err
		}

		sess := s.newSession(conn)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			sess.HandleCommands()
		}()
	}
}

// Addr returns the address the server is listening on. It's only valid
// after Listen (or ListenAndServe) has bound its listener, which matters for tests
// that bind an ephemeral port (":0") and need to learn what it resolved
// to.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close stops accepting new connections. It does not close the
// connections of in-flight sessions; each keeps running until its client
// disconnects.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) newSession(conn net.Conn) *Session {
	id := atomic.AddUint64(&s.nextID, 1)
	return &Session{
		id:     id,
		server: s,
		conn:   conn,
		log: s.Log.WithFields(logrus.Fields{
			"session":     id,
			"remote_addr": conn.RemoteAddr().String(),
		}),
	}
}
