package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/meigma/trico/internal/tricotype"
)

// Cursor reads from an immutable byte slice.
//
// Every read is bounds-checked: a fixed-size field that extends past the end
// fails with ErrUnexpectedEOF, and a sub-block whose declared length exceeds
// the remaining input fails with ErrCorruptLength. Returned slices alias the
// input and must not be modified.
type Cursor struct {
	data []byte
	off  int
}

// NewCursor returns a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.off
}

// Exhausted reports whether all input has been consumed.
func (c *Cursor) Exhausted() bool {
	return c.off >= len(c.data)
}

// Byte reads one byte.
func (c *Cursor) Byte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, fmt.Errorf("%w: reading byte at offset %d", tricotype.ErrUnexpectedEOF, c.off)
	}
	v := c.data[c.off]
	c.off++
	return v, nil
}

// Uint32 reads a big-endian uint32.
func (c *Cursor) Uint32() (uint32, error) {
	v, err := c.PeekUint32()
	if err != nil {
		return 0, err
	}
	c.off += 4
	return v, nil
}

// PeekUint32 reads a big-endian uint32 without consuming it.
func (c *Cursor) PeekUint32() (uint32, error) {
	if c.Remaining() < 4 {
		return 0, fmt.Errorf("%w: reading uint32 at offset %d", tricotype.ErrUnexpectedEOF, c.off)
	}
	return binary.BigEndian.Uint32(c.data[c.off:]), nil
}

// Next consumes and returns the next n bytes.
func (c *Cursor) Next(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			tricotype.ErrUnexpectedEOF, n, c.off, c.Remaining())
	}
	p := c.data[c.off : c.off+n : c.off+n]
	c.off += n
	return p, nil
}

// Block reads a length-prefixed sub-block and returns its payload.
func (c *Cursor) Block() ([]byte, error) {
	n, err := c.blockLen()
	if err != nil {
		return nil, err
	}
	p := c.data[c.off : c.off+n : c.off+n]
	c.off += n
	return p, nil
}

// SkipBlock consumes a length-prefixed sub-block without returning it.
func (c *Cursor) SkipBlock() error {
	n, err := c.blockLen()
	if err != nil {
		return err
	}
	c.off += n
	return nil
}

// blockLen reads a sub-block length and validates it against the input.
func (c *Cursor) blockLen() (int, error) {
	start := c.off
	length, err := c.Uint32()
	if err != nil {
		return 0, err
	}
	if uint64(length) > uint64(c.Remaining()) {
		c.off = start
		return 0, fmt.Errorf("%w: sub-block at offset %d declares %d bytes, %d remain",
			tricotype.ErrCorruptLength, start, length, c.Remaining())
	}
	return int(length), nil
}
