package kmerdb

import (
	"bufio"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmerbase/kmertrie/internal/config"
)

func startTestServer(t *testing.T) (*Server, net.Conn) {
	t.Helper()

	cfg := config.Default()
	cfg.ListenAddr = "127.0.0.1:0"
	cfg.SnapshotDir = t.TempDir()

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	srv, err := NewServer(cfg, log)
	require.NoError(t, err)
	require.NoError(t, srv.Listen())

	go srv.Serve()
	t.Cleanup(func() { srv.Close() })

	conn, err := net.DialTimeout("tcp", srv.Addr().String(), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return srv, conn
}

// sendCmd writes a RESP array command and returns the decoded reply.
func sendCmd(t *testing.T, conn net.Conn, args ...string) any {
	t.Helper()

	var buf []byte
	buf = append(buf, []byte(fmt.Sprintf("*%d\r\n", len(args)))...)
	for _, a := range args {
		buf = append(buf, []byte(fmt.Sprintf("$%d\r\n%s\r\n", len(a), a))...)
	}
	_, err := conn.Write(buf)
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	reply, err := readReply(bufio.NewReader(conn))
	require.NoError(t, err)
	return reply
}

func readReply(r *bufio.Reader) (any, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	line = line[:len(line)-2]

	switch line[0] {
	case '+':
		return line[1:], nil
	case '-':
		return fmt.Errorf("%s", line[1:]), nil
	case ':':
		n, err := strconv.Atoi(line[1:])
		return n, err
	case '$':
		n, err := strconv.Atoi(line[1:])
		if err != nil || n < 0 {
			return nil, err
		}
		buf := make([]byte, n+2)
		if _, err := r.Read(buf); err != nil {
			return nil, err
		}
		return string(buf[:n]), nil
	case '*':
		n, err := strconv.Atoi(line[1:])
		if err != nil {
			return nil, err
		}
		out := make([]any, n)
		for i := 0; i < n; i++ {
			v, err := readReply(r)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected reply prefix %q", line[0])
	}
}

func TestPingPong(t *testing.T) {
	_, conn := startTestServer(t)
	assert.Equal(t, "PONG", sendCmd(t, conn, "PING"))
}

func TestEcho(t *testing.T) {
	_, conn := startTestServer(t)
	assert.Equal(t, "hello", sendCmd(t, conn, "ECHO", "hello"))
}

func TestKAddThenKGet(t *testing.T) {
	_, conn := startTestServer(t)

	assert.Equal(t, "OK", sendCmd(t, conn, "KADD", "reads", "acgt"))
	got := sendCmd(t, conn, "KGET", "reads", "acgt")
	assert.Equal(t, []any{"acgt"}, got)

	got = sendCmd(t, conn, "KGET", "reads", "gggg")
	assert.Equal(t, []any{}, got)
}

func TestKAddReusesLastIndex(t *testing.T) {
	_, conn := startTestServer(t)

	assert.Equal(t, "OK", sendCmd(t, conn, "KADD", "reads", "acgt"))
	got := sendCmd(t, conn, "KGET", "acgt")
	assert.Equal(t, []any{"acgt"}, got)
}

func TestKPrefixScan(t *testing.T) {
	_, conn := startTestServer(t)

	sendCmd(t, conn, "KADD", "reads", "acgt")
	sendCmd(t, conn, "KADD", "reads", "acgg")
	sendCmd(t, conn, "KADD", "reads", "ttgg")

	got := sendCmd(t, conn, "KPREFIX", "reads", "ac")
	list := got.([]any)
	assert.Len(t, list, 2)
}

func TestKMatchAmbiguityCode(t *testing.T) {
	_, conn := startTestServer(t)

	sendCmd(t, conn, "KADD", "reads", "acgt")
	sendCmd(t, conn, "KADD", "reads", "tcgt")

	got := sendCmd(t, conn, "KMATCH", "reads", "rcgt")
	list := got.([]any)
	assert.ElementsMatch(t, []any{"acgt"}, list)
}

func TestKRange(t *testing.T) {
	_, conn := startTestServer(t)

	sendCmd(t, conn, "KADD", "reads", "aaaa")
	sendCmd(t, conn, "KADD", "reads", "cccc")
	sendCmd(t, conn, "KADD", "reads", "gggg")
	sendCmd(t, conn, "KADD", "reads", "tttt")

	got := sendCmd(t, conn, "KRANGE", "reads", "caaa", "gttt")
	list := got.([]any)
	assert.ElementsMatch(t, []any{"cccc", "gggg"}, list)
}

func TestCatalogList(t *testing.T) {
	_, conn := startTestServer(t)

	sendCmd(t, conn, "KADD", "reads", "acgt")
	sendCmd(t, conn, "KADD", "probes", "gggg")

	got := sendCmd(t, conn, "CATALOG", "LIST")
	assert.ElementsMatch(t, []any{"probes", "reads"}, got)
}

func TestUnknownCommandSuggestsCorrection(t *testing.T) {
	_, conn := startTestServer(t)

	got := sendCmd(t, conn, "KGT", "reads", "acgt")
	err, ok := got.(error)
	require.True(t, ok)
	assert.Contains(t, err.Error(), "KGET")
}

func TestInvalidKMerSuggestsBase(t *testing.T) {
	_, conn := startTestServer(t)

	got := sendCmd(t, conn, "KADD", "reads", "acgz")
	err, ok := got.(error)
	require.True(t, ok)
	assert.Contains(t, err.Error(), "invalid base")
}

func TestKDumpAndReload(t *testing.T) {
	srv, conn := startTestServer(t)

	sendCmd(t, conn, "KADD", "reads", "acgt")
	sendCmd(t, conn, "KADD", "reads", "gcta")

	assert.Equal(t, "OK", sendCmd(t, conn, "KDUMP"))

	path := filepath.Join(srv.Config.SnapshotDir, srv.Config.SnapshotFile)
	reloaded, err := NewServer(config.Default(), nil)
	require.NoError(t, err)
	require.NoError(t, reloaded.LoadSnapshot(path))

	idx, err := reloaded.Catalog.Get("reads")
	require.NoError(t, err)
	assert.Len(t, idx.Tree.Scan(nil), 2)
}
