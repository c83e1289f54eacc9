package kmerdb

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"

	dtrie "github.com/dghubble/trie"
	"github.com/sirupsen/logrus"

	"github.com/kmerbase/kmertrie/internal/kmerdb/resp3"
)

// handlerFunc answers one command's arguments (excluding the command name
// itself) by writing a reply into enc.
type handlerFunc func(s *Session, args []string, enc *resp3.Encoder)

// dispatch maps upper-cased command names to handlers via a rune trie —
// ground truth: the teacher's own streams/streams_test.go benchmarks
// dghubble/trie's RuneTrie as a Put/Get lookup structure; here it backs
// real command dispatch instead of a benchmark fixture.
var dispatch = newDispatch()

func newDispatch() *dtrie.RuneTrie {
	t := &dtrie.RuneTrie{}
	t.Put("PING", handlerFunc(handlePing))
	t.Put("ECHO", handlerFunc(handleEcho))
	t.Put("KADD", handlerFunc(handleKAdd))
	t.Put("KGET", handlerFunc(handleKGet))
	t.Put("KPREFIX", handlerFunc(handleKPrefix))
	t.Put("KMATCH", handlerFunc(handleKMatch))
	t.Put("KRANGE", handlerFunc(handleKRange))
	t.Put("KDUMP", handlerFunc(handleKDump))
	t.Put("CATALOG", handlerFunc(handleCatalog))
	return t
}

// Session is one client connection's handling loop. Ground truth:
// app/diyredis/session.go's Session type and HandleCommands loop, kept in
// shape and generalized from a flat key/value switch to a dispatch-trie
// lookup over the k-mer command set.
type Session struct {
	id     uint64
	server *Server
	conn   net.Conn
	log    *logrus.Entry

	// The session's most recently used index name, which lets a command
	// omit the index name, is not a field here: it lives in Server.LastIdx
	// (internal/cache), keyed by this session's id.
}

// HandleCommands reads and answers commands off the connection until it's
// closed or reading from it fails. A malformed command gets an error reply
// and the loop goes on reading.
func (s *Session) HandleCommands() {
	defer s.conn.Close()
	defer s.server.LastIdx.Forget(s.id)

	reader := bufio.NewReader(s.conn)
	enc := &resp3.Encoder{}

	for {
		cmd, err := ParseCommand(reader)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return
			}
			var netErr net.Error
			if errors.As(err, &netErr) {
				// The connection itself failed; nothing more can be read.
				return
			}
			s.log.WithError(err).Warn("malformed command")
			enc.WriteError("ERR " + err.Error())
			s.write(enc)
			continue
		}
		if len(cmd) == 0 {
			continue
		}

		name := strings.ToUpper(cmd[0])
		v := dispatch.Get(name)
		if v == nil {
			enc.WriteError("ERR unknown command '" + cmd[0] + "'" + suggestionSuffix(s.server.Commands, name))
			s.write(enc)
			continue
		}

		s.log.WithField("cmd", name).Debug("handling command")
		v.(handlerFunc)(s, cmd[1:], enc)
		s.write(enc)
	}
}

func (s *Session) write(enc *resp3.Encoder) {
	if _, err := s.conn.Write([]byte(enc.StringAndReset())); err != nil {
		s.log.WithError(err).Warn("write failed")
	}
}

func suggestionSuffix(suggester interface {
	Suggest(word string, n int) []string
}, word string) string {
	matches := suggester.Suggest(word, 1)
	if len(matches) == 0 {
		return ""
	}
	return " (did you mean '" + matches[0] + "'?)"
}
