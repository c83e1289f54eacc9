// Package resp3 is a small RESP3 encoder: append-only methods onto a
// reusable byte buffer. Ground truth: flonle-diy-redis's
// app/diyredis/resp3/encode.go, extended with WriteSimpleStr/WriteError/
// WriteInt/WriteBulkStrArr since internal/kmerdb needs more reply shapes
// than the teacher's stream-entry encoder did.
package resp3

import (
	"strconv"
	"unsafe"
)

const (
	simpleStrPrefix = '+'
	simpleErrPrefix = '-'
	numberPrefix    = ':'
	bulkStrPrefix   = '$'
	arrPrefix       = '*'
	nullType        = '_'
	CRLF            = "\r\n"
)

var nullSlice = []byte("_\r\n")

// Encoder accumulates a RESP3 reply into Buf. The zero value is ready to
// use.
type Encoder struct {
	Buf []byte
}

func (e *Encoder) Reset() { e.Buf = nil }

// WriteNull writes a RESP3 null.
func (e *Encoder) WriteNull() {
	e.Buf = append(e.Buf, nullSlice...)
}

// WriteSimpleStr writes a RESP simple string (+OK\r\n style). val must not
// contain \r or \n.
func (e *Encoder) WriteSimpleStr(val string) {
	e.Buf = append(e.Buf, simpleStrPrefix)
	e.Buf = append(e.Buf, val...)
	e.Buf = append(e.Buf, CRLF...)
}

// WriteError writes a RESP error reply.
func (e *Encoder) WriteError(msg string) {
	e.Buf = append(e.Buf, simpleErrPrefix)
	e.Buf = append(e.Buf, msg...)
	e.Buf = append(e.Buf, CRLF...)
}

// WriteInt writes a RESP integer reply.
func (e *Encoder) WriteInt(n int) {
	e.Buf = append(e.Buf, numberPrefix)
	e.Buf = append(e.Buf, strconv.Itoa(n)...)
	e.Buf = append(e.Buf, CRLF...)
}

func (e *Encoder) WriteBulkStr(val string) {
	e.Buf = append(e.Buf, bulkStrPrefix)
	e.Buf = append(e.Buf, strconv.Itoa(len(val))...)
	e.Buf = append(e.Buf, CRLF...)
	e.Buf = append(e.Buf, val...)
	e.Buf = append(e.Buf, CRLF...)
}

// WriteArrHeader starts an array reply of length arrLen. The caller writes
// the arrLen elements itself.
func (e *Encoder) WriteArrHeader(arrLen int) {
	e.Buf = append(e.Buf, arrPrefix)
	e.Buf = append(e.Buf, strconv.Itoa(arrLen)...)
	e.Buf = append(e.Buf, CRLF...)
}

// WriteBulkStrArr writes a complete array of bulk strings.
func (e *Encoder) WriteBulkStrArr(vals []string) {
	e.WriteArrHeader(len(vals))
	for _, v := range vals {
		e.WriteBulkStr(v)
	}
}

// StringAndReset returns the buffer as a string sharing the underlying
// array (no copy) and resets the encoder. The caller must not retain the
// string past the next write.
func (e *Encoder) StringAndReset() (str string) {
	str = unsafe.String(unsafe.SliceData(e.Buf), len(e.Buf))
	e.Reset()
	return str
}
