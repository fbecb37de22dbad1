package predict

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/meigma/trico/internal/tricotype"
)

// MaxHashBits is the largest table exponent the block header can describe.
const MaxHashBits = 30

// Default table exponents.
const (
	DefaultHash1Bits32 = 4
	DefaultHash2Bits32 = 10
	DefaultHash1Bits64 = 20
	DefaultHash2Bits64 = 20
)

const headerSize = 5

type word interface {
	~uint32 | ~uint64
}

// NormalizeHashBits rounds a table exponent down to an even number and
// clamps it to MaxHashBits, matching what the block header can record.
func NormalizeHashBits(b uint) uint {
	if b > MaxHashBits {
		b = MaxHashBits
	}
	return b &^ 1
}

// denseTableLimit is the table size up to which tables are always
// allocated in full.
const denseTableLimit = 1 << 16

// table is a zero-initialized array of 2^bits entries. A table much larger
// than the number of values to code is kept sparse, so a header asking for
// 2^30 entries costs memory proportional to the values actually coded.
type table[T word] struct {
	dense  []T
	sparse map[T]T
}

func newTable[T word](bits uint, count int) table[T] {
	size := uint64(1) << bits
	if size <= denseTableLimit || size <= 2*uint64(count) { //nolint:gosec // count is non-negative
		return table[T]{dense: make([]T, size)}
	}
	return table[T]{sparse: make(map[T]T)}
}

func (t *table[T]) get(i T) T {
	if t.dense != nil {
		return t.dense[i]
	}
	return t.sparse[i]
}

func (t *table[T]) set(i, v T) {
	if t.dense != nil {
		t.dense[i] = v
		return
	}
	t.sparse[i] = v
}

// state is the prediction state shared by encoder and decoder. Both sides
// call predictions and then update for every value, in the same order, so
// their tables never diverge.
type state[T word] struct {
	table1 table[T] // last value seen at a history hash
	table2 table[T] // last stride seen at a history hash
	mask1  T
	mask2  T
	bits1  uint
	bits2  uint
	width  uint
	hash1  T
	hash2  T
	last   T
}

func newState[T word](width, bits1, bits2 uint, count int) *state[T] {
	return &state[T]{
		table1: newTable[T](bits1, count),
		table2: newTable[T](bits2, count),
		mask1:  T(1)<<bits1 - 1,
		mask2:  T(1)<<bits2 - 1,
		bits1:  bits1,
		bits2:  bits2,
		width:  width,
	}
}

// predictions returns the FCM and DFCM predictions for the next value.
func (s *state[T]) predictions() (fcm, dfcm T) {
	return s.table1.get(s.hash1), s.last + s.table2.get(s.hash2)
}

// update records v as the value just coded.
func (s *state[T]) update(v T) {
	s.table1.set(s.hash1, v)
	s.hash1 = ((s.hash1 << s.bits1) ^ (v >> (s.width - s.bits1))) & s.mask1

	stride := v - s.last
	s.table2.set(s.hash2, stride)
	s.hash2 = ((s.hash2 << (s.bits2 / 2)) ^ (stride >> (s.width - s.bits2))) & s.mask2
	s.last = v
}

func appendHeader(dst []byte, bits1, bits2 uint, n int) []byte {
	if uint64(n) > tricotype.MaxElements {
		panic(fmt.Sprintf("predict: %d values exceed the block element limit", n))
	}
	dst = append(dst, byte((bits1>>1)<<4|(bits2>>1)))
	return binary.BigEndian.AppendUint32(dst, uint32(n)) //nolint:gosec // checked above
}

// header is the decoded block header.
type header struct {
	bits1 uint
	bits2 uint
	count int
}

func readHeader(src []byte) (header, error) {
	if len(src) < headerSize {
		return header{}, fmt.Errorf("%w: predictor block of %d bytes is shorter than its header",
			tricotype.ErrUnexpectedEOF, len(src))
	}
	return header{
		bits1: uint(src[0]>>4) << 1,
		bits2: uint(src[0]&15) << 1,
		count: int(binary.BigEndian.Uint32(src[1:headerSize])),
	}, nil
}

// checkCount rejects element counts the payload cannot possibly encode,
// before the output is allocated.
func checkCount(count, groupSize, codeBytes, payload int) error {
	groups := (count + groupSize - 1) / groupSize
	if groups > payload/codeBytes {
		return fmt.Errorf("%w: predictor block declares %d values but carries only %d bytes",
			tricotype.ErrCorruptLength, count, payload)
	}
	return nil
}

// byteLen returns the number of significant bytes in x.
func byteLen(x uint64) int {
	return (bits.Len64(x) + 7) / 8
}

// appendResidual appends the low n bytes of x, most significant first.
func appendResidual(dst []byte, x uint64, n int) []byte {
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(x>>(8*i)))
	}
	return dst
}

// readResidual reads an n-byte big-endian residual at src[pos:].
func readResidual(src []byte, pos, n int) (uint64, error) {
	if n > len(src)-pos {
		return 0, fmt.Errorf("%w: residual of %d bytes at offset %d runs past the block",
			tricotype.ErrUnexpectedEOF, n, pos+headerSize)
	}
	var x uint64
	for _, b := range src[pos : pos+n] {
		x = x<<8 | uint64(b)
	}
	return x, nil
}

// Count returns the element count recorded in a block header without
// decoding the block.
func Count(src []byte) (int, error) {
	h, err := readHeader(src)
	if err != nil {
		return 0, err
	}
	return h.count, nil
}
