// Package sizing provides safe size arithmetic and conversions to prevent overflow.
package sizing

import (
	"math"
	"math/bits"
)

// ToInt converts a uint64 to int, returning overflowErr if it doesn't fit.
func ToInt(size uint64, overflowErr error) (int, error) {
	if size > uint64(math.MaxInt) {
		return 0, overflowErr
	}
	return int(size), nil
}

// ToUint32 converts a non-negative int to uint32, returning overflowErr if it doesn't fit.
func ToUint32(n int, overflowErr error) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, overflowErr
	}
	return uint32(n), nil
}

// MulInt multiplies two non-negative ints, returning overflowErr if the
// product does not fit in an int.
func MulInt(a, b int, overflowErr error) (int, error) {
	if a < 0 || b < 0 {
		return 0, overflowErr
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 {
		return 0, overflowErr
	}
	return ToInt(lo, overflowErr)
}
