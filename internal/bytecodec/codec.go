// Package bytecodec provides the general-purpose byte compressors used for
// integer byte planes and byte attributes.
//
// The codec used to write an archive is not recorded in it, so a reader must
// be configured with the same codec as the writer. LZ4 is the default.
package bytecodec

import (
	"fmt"
	"math"
	"slices"

	"github.com/meigma/trico/internal/tricotype"
)

// Codec compresses and decompresses independent blocks of bytes.
//
// Implementations are safe for concurrent use.
type Codec interface {
	// Name returns the name ByName resolves to this codec.
	Name() string

	// MaxEncodedLen returns an upper bound on the compressed size of n bytes.
	MaxEncodedLen(n int) int

	// MaxDecodedLen returns an upper bound on the number of bytes a block
	// of n compressed bytes can decode to. Decoders reject expected sizes
	// above it before allocating.
	MaxDecodedLen(n int) int

	// Compress returns the compressed form of src.
	Compress(src []byte) ([]byte, error)

	// Decompress returns the size bytes encoded in src. It fails with
	// ErrDecompression if src does not decode to exactly size bytes.
	Decompress(src []byte, size int) ([]byte, error)
}

// Codec names.
const (
	NameLZ4    = "lz4"
	NameZstd   = "zstd"
	NameSnappy = "snappy"
)

// Default returns the default codec.
func Default() Codec {
	return LZ4()
}

// Names returns the names ByName accepts.
func Names() []string {
	return []string{NameLZ4, NameZstd, NameSnappy}
}

// ByName returns the codec with the given name, using default settings.
func ByName(name string) (Codec, error) {
	switch name {
	case NameLZ4, "":
		return LZ4(), nil
	case NameZstd:
		return Zstd(), nil
	case NameSnappy:
		return Snappy(), nil
	default:
		return nil, fmt.Errorf("%w: unknown byte codec %q (want one of %v)",
			tricotype.ErrInvalidInput, name, Names())
	}
}

// Valid reports whether name is accepted by ByName.
func Valid(name string) bool {
	return name == "" || slices.Contains(Names(), name)
}

// decodeEmpty handles the zero-length block shared by all codecs: empty
// input encodes as an empty block and an empty block decodes to nothing.
func decodeEmpty(name string, src []byte, size int) (done bool, err error) {
	if len(src) != 0 && size != 0 {
		return false, nil
	}
	if len(src) == 0 && size == 0 {
		return true, nil
	}
	return true, fmt.Errorf("%w: %s: %d compressed bytes for %d expected bytes",
		tricotype.ErrDecompression, name, len(src), size)
}

func sizeMismatch(name string, got, want int) error {
	return fmt.Errorf("%w: %s: got %d uncompressed bytes, expected %d",
		tricotype.ErrDecompression, name, got, want)
}

// expansionBound returns n*ratio+slack, saturating at math.MaxInt.
func expansionBound(n, ratio, slack int) int {
	if n > (math.MaxInt-slack)/ratio {
		return math.MaxInt
	}
	return n*ratio + slack
}
