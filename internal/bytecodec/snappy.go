package bytecodec

import (
	"fmt"

	"github.com/golang/snappy"

	"github.com/meigma/trico/internal/tricotype"
)

type snappyCodec struct{}

// Snappy returns a codec producing snappy block-format data.
func Snappy() Codec {
	return snappyCodec{}
}

func (snappyCodec) Name() string { return NameSnappy }

func (snappyCodec) MaxEncodedLen(n int) int {
	return snappy.MaxEncodedLen(n)
}

// MaxDecodedLen allows 64 output bytes per input byte; a snappy copy
// element of at most 64 bytes takes at least two bytes to encode.
func (snappyCodec) MaxDecodedLen(n int) int {
	return expansionBound(n, 64, 64)
}

func (snappyCodec) Compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}
	if snappy.MaxEncodedLen(len(src)) < 0 {
		return nil, fmt.Errorf("%w: snappy: block of %d bytes is too large", tricotype.ErrInvalidInput, len(src))
	}
	return snappy.Encode(nil, src), nil
}

func (snappyCodec) Decompress(src []byte, size int) ([]byte, error) {
	if done, err := decodeEmpty(NameSnappy, src, size); done {
		return []byte{}, err
	}
	// The length preamble is checked before the output is allocated.
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return nil, fmt.Errorf("%w: snappy: %w", tricotype.ErrDecompression, err)
	}
	if n != size {
		return nil, sizeMismatch(NameSnappy, n, size)
	}
	dst, err := snappy.Decode(make([]byte, size), src)
	if err != nil {
		return nil, fmt.Errorf("%w: snappy: %w", tricotype.ErrDecompression, err)
	}
	return dst, nil
}
