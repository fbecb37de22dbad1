// Package wire provides the low-level byte handling of the archive format:
// a write buffer that grows by exactly the bytes requested and a read cursor
// that cannot move past the end of its input.
//
// All multi-byte integers are big-endian.
package wire

import "encoding/binary"

// Buffer is a growable output buffer.
//
// Growth is explicit: callers Reserve the size of the record they are about
// to append, and the backing array is reallocated to exactly the required
// capacity when the current one is too small. Appends within a reservation
// never reallocate.
type Buffer struct {
	b []byte
}

// NewBuffer returns an empty buffer with the given initial capacity.
// Negative capacities are treated as zero.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{b: make([]byte, 0, capacity)}
}

// Reserve ensures at least n more bytes can be appended without reallocation.
func (b *Buffer) Reserve(n int) {
	if n <= cap(b.b)-len(b.b) {
		return
	}
	grown := make([]byte, len(b.b), len(b.b)+n)
	copy(grown, b.b)
	b.b = grown
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(c byte) error {
	b.Reserve(1)
	b.b = append(b.b, c)
	return nil
}

// WriteUint32 appends v as four big-endian bytes.
func (b *Buffer) WriteUint32(v uint32) {
	b.Reserve(4)
	b.b = binary.BigEndian.AppendUint32(b.b, v)
}

// Write appends p. It always returns len(p), nil.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Reserve(len(p))
	b.b = append(b.b, p...)
	return len(p), nil
}

// WriteBlock appends p as a sub-block: a four-byte length followed by p.
// The caller must ensure len(p) fits in a uint32.
func (b *Buffer) WriteBlock(p []byte) {
	b.Reserve(4 + len(p))
	b.WriteUint32(uint32(len(p))) //nolint:gosec // length validated by caller
	b.b = append(b.b, p...)
}

// Bytes returns the written bytes. The slice aliases the buffer and is only
// valid until the next write.
func (b *Buffer) Bytes() []byte {
	return b.b
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int {
	return len(b.b)
}

// Cap returns the capacity of the backing array.
func (b *Buffer) Cap() int {
	return cap(b.b)
}
