// Package plane transposes interleaved arrays (array of structs) into
// independent component planes (struct of arrays) and back.
//
// Vector arrays are split by component (x/y/z, u/v) so the value predictor
// sees one smooth sequence per axis. Integer arrays are split by byte
// position so the byte compressor sees the slowly varying high bytes
// separately from the noisy low bytes.
//
// Every function returns freshly allocated, exactly sized slices and is
// defined for empty input.
package plane

import (
	"fmt"
	"unsafe"
)

// Split3 splits an interleaved xyz array into three planes.
// It panics if len(v) is not a multiple of 3.
func Split3[T any](v []T) (x, y, z []T) {
	if len(v)%3 != 0 {
		panic(fmt.Sprintf("plane: Split3 length %d is not a multiple of 3", len(v)))
	}
	n := len(v) / 3
	x = make([]T, n)
	y = make([]T, n)
	z = make([]T, n)
	for i := range n {
		x[i] = v[3*i]
		y[i] = v[3*i+1]
		z[i] = v[3*i+2]
	}
	return x, y, z
}

// Merge3 interleaves three planes of equal length into an xyz array.
// It panics if the plane lengths differ.
func Merge3[T any](x, y, z []T) []T {
	if len(x) != len(y) || len(x) != len(z) {
		panic(fmt.Sprintf("plane: Merge3 plane lengths differ: %d, %d, %d", len(x), len(y), len(z)))
	}
	v := make([]T, 3*len(x))
	for i := range x {
		v[3*i] = x[i]
		v[3*i+1] = y[i]
		v[3*i+2] = z[i]
	}
	return v
}

// Split2 splits an interleaved uv array into two planes.
// It panics if len(v) is odd.
func Split2[T any](v []T) (u, w []T) {
	if len(v)%2 != 0 {
		panic(fmt.Sprintf("plane: Split2 length %d is not a multiple of 2", len(v)))
	}
	n := len(v) / 2
	u = make([]T, n)
	w = make([]T, n)
	for i := range n {
		u[i] = v[2*i]
		w[i] = v[2*i+1]
	}
	return u, w
}

// Merge2 interleaves two planes of equal length into a uv array.
// It panics if the plane lengths differ.
func Merge2[T any](u, w []T) []T {
	if len(u) != len(w) {
		panic(fmt.Sprintf("plane: Merge2 plane lengths differ: %d, %d", len(u), len(w)))
	}
	v := make([]T, 2*len(u))
	for i := range u {
		v[2*i] = u[i]
		v[2*i+1] = w[i]
	}
	return v
}

// Unsigned is the set of multi-byte integer types that can be split into
// byte planes.
type Unsigned interface {
	~uint16 | ~uint32 | ~uint64
}

// Width returns the number of byte planes SplitBytes produces for T.
func Width[T Unsigned]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// SplitBytes splits values into Width[T]() byte planes. Plane i holds the
// byte at little-endian position i of every value.
func SplitBytes[T Unsigned](values []T) [][]byte {
	k := Width[T]()
	planes := make([][]byte, k)
	for i := range planes {
		planes[i] = make([]byte, len(values))
	}
	for j, v := range values {
		u := uint64(v)
		for i := range k {
			planes[i][j] = byte(u >> (8 * i))
		}
	}
	return planes
}

// MergeBytes reassembles values from byte planes produced by SplitBytes.
// It panics if the number of planes is not Width[T]() or the plane lengths
// differ.
func MergeBytes[T Unsigned](planes [][]byte) []T {
	k := Width[T]()
	if len(planes) != k {
		panic(fmt.Sprintf("plane: MergeBytes got %d planes, want %d", len(planes), k))
	}
	n := len(planes[0])
	for i, p := range planes {
		if len(p) != n {
			panic(fmt.Sprintf("plane: MergeBytes plane %d has length %d, want %d", i, len(p), n))
		}
	}
	values := make([]T, n)
	for j := range values {
		var u uint64
		for i := range k {
			u |= uint64(planes[i][j]) << (8 * i)
		}
		values[j] = T(u)
	}
	return values
}
