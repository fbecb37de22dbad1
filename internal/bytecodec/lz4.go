package bytecodec

import (
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/meigma/trico/internal/tricotype"
)

type lz4Codec struct{}

// LZ4 returns a codec producing raw LZ4 blocks.
func LZ4() Codec {
	return lz4Codec{}
}

func (lz4Codec) Name() string { return NameLZ4 }

func (lz4Codec) MaxEncodedLen(n int) int {
	return lz4.CompressBlockBound(n)
}

// MaxDecodedLen allows 255 output bytes per input byte, the limit set by
// LZ4's match length extension bytes.
func (lz4Codec) MaxDecodedLen(n int) int {
	return expansionBound(n, 255, 64)
}

func (lz4Codec) Compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}
	// A destination of CompressBlockBound bytes always holds the block, so
	// CompressBlock never reports incompressible input as 0.
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := lz4.CompressBlock(src, dst, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4: compress: %w", err)
	}
	return dst[:n:n], nil
}

func (lz4Codec) Decompress(src []byte, size int) ([]byte, error) {
	if done, err := decodeEmpty(NameLZ4, src, size); done {
		return []byte{}, err
	}
	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %w", tricotype.ErrDecompression, err)
	}
	if n != size {
		return nil, sizeMismatch(NameLZ4, n, size)
	}
	return dst, nil
}
