// Package snapshot persists one or more named k-mer indexes to disk and
// reloads them. Ground truth: flonle-diy-redis's rdb.go (on-disk format:
// opcodes, length-prefixed records, LZF compression, CRC64 trailer) and
// crc64/ (the trailer checksum itself).
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	lzf "github.com/zhuyie/golzf"

	"github.com/kmerbase/kmertrie/internal/kmerdb/crc64"
	"github.com/kmerbase/kmertrie/pkg/trie"
)

// magic identifies a snapshot file; version lets a future format change be
// detected before it's misread as this one.
var magic = []byte("KMERSNAP")

const formatVersion byte = 1

const (
	opCodeIndex byte = 1
	opCodeEOF   byte = 255
)

var (
	// ErrBadMagic is returned by Load when the file doesn't start with the
	// expected magic bytes.
	ErrBadMagic = errors.New("snapshot: not a kmer snapshot file")
	// ErrChecksumMismatch is returned by Load when the trailing CRC64
	// doesn't match the file's contents.
	ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")
)

// IndexData is one named index's full, flushed leaf set, ready to be
// written to or read from a snapshot file.
type IndexData struct {
	Name   string
	Values []trie.Value
}

// Save writes indexes to path as a single snapshot file: a header, one
// length-prefixed, LZF-compressed record per index, an EOF opcode, and a
// trailing CRC64 checksum over every byte written before it. Ground truth:
// flonle-diy-redis's rdb.go opcode table and readCompressedStr/
// readLengthEnc pair — Save is this package's write-side counterpart,
// which the teacher's own RDB loader never needed since it only reads
// RDB files produced by real Redis.
func Save(path string, indexes []IndexData) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h := crc64.New()
	w := io.MultiWriter(f, h)
	bw := bufio.NewWriter(w)

	if _, err := bw.Write(magic); err != nil {
		return err
	}
	if err := bw.WriteByte(formatVersion); err != nil {
		return err
	}

	for _, idx := range indexes {
		if err := writeIndexRecord(bw, idx); err != nil {
			return fmt.Errorf("snapshot: writing index %q: %w", idx.Name, err)
		}
	}

	if err := bw.WriteByte(opCodeEOF); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	var trailer [8]byte
	binary.LittleEndian.PutUint64(trailer[:], h.Sum64())
	if _, err := f.Write(trailer[:]); err != nil {
		return err
	}
	return f.Sync()
}

func writeIndexRecord(w *bufio.Writer, idx IndexData) error {
	if err := w.WriteByte(opCodeIndex); err != nil {
		return err
	}
	if err := writeLenPrefixed(w, []byte(idx.Name)); err != nil {
		return err
	}

	var raw []byte
	for _, v := range idx.Values {
		var lenbuf [4]byte
		binary.LittleEndian.PutUint32(lenbuf[:], uint32(len(v)))
		raw = append(raw, lenbuf[:]...)
		raw = append(raw, v...)
	}

	compressed, ok := compress(raw)
	if !ok {
		// Incompressible (or empty) payload: store raw, flagged by a
		// compressed length equal to the uncompressed length.
		if err := writeUint32(w, uint32(len(idx.Values))); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(len(raw))); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(len(raw))); err != nil {
			return err
		}
		_, err := w.Write(raw)
		return err
	}

	if err := writeUint32(w, uint32(len(idx.Values))); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(raw))); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(compressed))); err != nil {
		return err
	}
	_, err := w.Write(compressed)
	return err
}

// compress LZF-compresses raw, returning ok=false when the result wouldn't
// be smaller (golzf's Compress errors in that case rather than growing the
// output, matching the classic LZF contract).
func compress(raw []byte) ([]byte, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	out := make([]byte, len(raw))
	n, err := lzf.Compress(raw, out)
	if err != nil || n == 0 || n >= len(raw) {
		return nil, false
	}
	return out[:n], true
}

func writeLenPrefixed(w *bufio.Writer, b []byte) error {
	if err := writeUint32(w, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func writeUint32(w *bufio.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// Load reads a snapshot file written by Save, verifying its trailing
// CRC64 checksum before returning the decoded indexes.
func Load(path string) ([]IndexData, error) {
	data, err := readWholeFile(path)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func decode(data []byte) ([]IndexData, error) {
	if len(data) < len(magic)+1+8 {
		return nil, ErrBadMagic
	}
	for i, m := range magic {
		if data[i] != m {
			return nil, ErrBadMagic
		}
	}

	body := data[:len(data)-8]
	trailer := data[len(data)-8:]
	if crc64.Checksum(body) != binary.LittleEndian.Uint64(trailer) {
		return nil, ErrChecksumMismatch
	}

	r := bufio.NewReader(bytes.NewReader(body[len(magic)+1:]))

	var out []IndexData
	for {
		opCode, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("snapshot: truncated before EOF opcode: %w", err)
		}
		if opCode == opCodeEOF {
			return out, nil
		}
		if opCode != opCodeIndex {
			return nil, fmt.Errorf("snapshot: unknown opcode %d", opCode)
		}

		idx, err := readIndexRecord(r)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
}

func readIndexRecord(r *bufio.Reader) (IndexData, error) {
	name, err := readLenPrefixed(r)
	if err != nil {
		return IndexData{}, err
	}

	count, err := readUint32(r)
	if err != nil {
		return IndexData{}, err
	}
	rawLen, err := readUint32(r)
	if err != nil {
		return IndexData{}, err
	}
	compressedLen, err := readUint32(r)
	if err != nil {
		return IndexData{}, err
	}

	compressed := make([]byte, compressedLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return IndexData{}, err
	}

	var raw []byte
	if compressedLen == rawLen {
		raw = compressed
	} else {
		raw = make([]byte, rawLen)
		if _, err := lzf.Decompress(compressed, raw); err != nil {
			return IndexData{}, fmt.Errorf("snapshot: decompressing index %q: %w", string(name), err)
		}
	}

	values := make([]trie.Value, 0, count)
	off := 0
	for i := uint32(0); i < count; i++ {
		if off+4 > len(raw) {
			return IndexData{}, fmt.Errorf("snapshot: index %q truncated", string(name))
		}
		vlen := int(binary.LittleEndian.Uint32(raw[off : off+4]))
		off += 4
		if off+vlen > len(raw) {
			return IndexData{}, fmt.Errorf("snapshot: index %q truncated value", string(name))
		}
		values = append(values, trie.FormValue(raw[off:off+vlen]))
		off += vlen
	}

	return IndexData{Name: string(name), Values: values}, nil
}

func readLenPrefixed(r *bufio.Reader) ([]byte, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func readUint32(r *bufio.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}
