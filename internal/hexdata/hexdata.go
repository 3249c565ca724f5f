// Package hexdata decodes the hexadecimal text RTF uses for picture and
// embedded object data.
//
// Picture bodies (\pict) and object data (\objdata) are usually written as
// hex digits rather than \bin payloads. They reach a parser delegate as
// ordinary text, possibly split across several text events and broken by
// line breaks. A [Writer] decodes such text incrementally:
//
//	dec := hexdata.NewWriter(file)
//	dec.Write([]byte("89504e47"))
//	dec.Write([]byte("0d0a"))
//	err := dec.Close()
package hexdata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidDigit is returned for bytes that are neither hex digits nor
// whitespace.
var ErrInvalidDigit = errors.New("hexdata: invalid hex digit")

// Writer decodes hex digits written to it and writes the bytes to an
// underlying writer. Whitespace is ignored. A digit pair may be split
// across calls to Write.
type Writer struct {
	w    io.Writer
	high byte
	half bool
	n    int64
	buf  []byte
}

// NewWriter returns a Writer that decodes into w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, buf: make([]byte, 0, 512)}
}

// Write decodes p. It reports len(p) on success; on error the number of
// bytes consumed before the offending byte.
func (d *Writer) Write(p []byte) (int, error) {
	d.buf = d.buf[:0]
	for i, c := range p {
		if isWhitespace(c) {
			continue
		}
		v, ok := digit(c)
		if !ok {
			if err := d.flush(); err != nil {
				return i, err
			}
			return i, fmt.Errorf("%w: %q", ErrInvalidDigit, c)
		}

		if !d.half {
			d.high, d.half = v, true
			continue
		}
		d.buf = append(d.buf, d.high<<4|v)
		d.half = false

		if len(d.buf) == cap(d.buf) {
			if err := d.flush(); err != nil {
				return i, err
			}
		}
	}
	return len(p), d.flush()
}

// Close writes a dangling digit as the high nibble of a final byte. It does
// not close the underlying writer.
func (d *Writer) Close() error {
	if !d.half {
		return nil
	}
	d.half = false
	d.buf = append(d.buf[:0], d.high<<4)
	return d.flush()
}

// Decoded returns the number of bytes written to the underlying writer.
func (d *Writer) Decoded() int64 {
	return d.n
}

func (d *Writer) flush() error {
	if len(d.buf) == 0 {
		return nil
	}
	n, err := d.w.Write(d.buf)
	d.n += int64(n)
	d.buf = d.buf[:0]
	return err
}

// Decode decodes a complete hex string.
func Decode(data []byte) ([]byte, error) {
	var out bytes.Buffer
	d := NewWriter(&out)
	if _, err := d.Write(data); err != nil {
		return nil, err
	}
	if err := d.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func digit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	default:
		return 0, false
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f'
}
