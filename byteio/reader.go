// Package byteio provides a positioned, side-effect-free reader over an
// immutable byte slab, used by the rest of this module to decode
// regulation-defined binary layouts without each codec re-implementing its
// own bounds checking.
package byteio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInsufficientBytes is returned whenever a read requests more bytes than
// remain in the reader's window.
var ErrInsufficientBytes = errors.New("byteio: insufficient bytes")

// Reader is a positioned view over a byte slab. The zero value is not
// usable; construct one with New.
//
// A Reader never mutates the underlying slab, only its own position. A
// sub-reader created with Sub is an independent view: once created, reading
// from it has no effect on the parent's position, which has already been
// advanced by the sub-reader's window length.
type Reader struct {
	buf []byte
	pos int
}

// New returns a Reader over buf, starting at position 0.
func New(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Position returns the number of bytes already consumed.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// EOF reports whether the reader has no bytes left.
func (r *Reader) EOF() bool {
	return r.Remaining() <= 0
}

// ReadUint8 reads one big-endian byte.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads a 2-byte big-endian unsigned integer.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadUint32 reads a 4-byte big-endian unsigned integer.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadExact reads and returns exactly n bytes, advancing the position by n.
// The returned slice aliases the underlying buffer and must not be mutated.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, fmt.Errorf("%w: want %d, have %d at position %d", ErrInsufficientBytes, n, r.Remaining(), r.pos)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Sub returns a new Reader windowed over the next n bytes of r, and advances
// r by exactly n bytes regardless of how much the returned reader is
// eventually read. It fails if n exceeds the bytes remaining in r.
func (r *Reader) Sub(n int) (*Reader, error) {
	b, err := r.ReadExact(n)
	if err != nil {
		return nil, err
	}
	return &Reader{buf: b}, nil
}

// Peek returns the next n bytes without advancing the position. It fails if
// n exceeds the bytes remaining.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, fmt.Errorf("%w: want %d, have %d at position %d", ErrInsufficientBytes, n, r.Remaining(), r.pos)
	}
	return r.buf[r.pos : r.pos+n], nil
}

// Snapshot returns an opaque marker of the current position, for use with
// Restore when an optional field must be attempted and rolled back on
// failure (see the "attempt-and-save-position" pattern used throughout the
// dd package for best-effort tail-optional fields).
func (r *Reader) Snapshot() int {
	return r.pos
}

// Restore rewinds the reader to a position previously returned by Snapshot.
func (r *Reader) Restore(mark int) {
	r.pos = mark
}
