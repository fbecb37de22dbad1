package bytecodec

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/meigma/trico/internal/tricotype"
)

// ZstdOption configures the zstd codec.
type ZstdOption func(*zstdConfig)

type zstdConfig struct {
	level     zstd.EncoderLevel
	maxMemory uint64
	lowmem    bool
}

// WithZstdLevel sets the encoder level. The default is zstd.SpeedDefault.
func WithZstdLevel(level zstd.EncoderLevel) ZstdOption {
	return func(c *zstdConfig) {
		c.level = level
	}
}

// WithZstdMaxDecoderMemory caps the memory a decoder may allocate for one
// block. Zero uses the library default.
func WithZstdMaxDecoderMemory(n uint64) ZstdOption {
	return func(c *zstdConfig) {
		c.maxMemory = n
	}
}

// WithZstdLowmem makes decoders trade speed for lower memory use.
func WithZstdLowmem(b bool) ZstdOption {
	return func(c *zstdConfig) {
		c.lowmem = b
	}
}

type zstdCodec struct {
	cfg     zstdConfig
	encoder func() (*zstd.Encoder, error)
	pool    *decoderPool
}

// Zstd returns a codec producing single zstd frames.
func Zstd(opts ...ZstdOption) Codec {
	cfg := zstdConfig{level: zstd.SpeedDefault}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &zstdCodec{
		cfg: cfg,
		encoder: sync.OnceValues(func() (*zstd.Encoder, error) {
			return zstd.NewWriter(nil,
				zstd.WithEncoderLevel(cfg.level),
				zstd.WithLowerEncoderMem(true))
		}),
		pool: newDecoderPool(cfg.maxMemory, cfg.lowmem),
	}
}

func (*zstdCodec) Name() string { return NameZstd }

// MaxEncodedLen follows the ZSTD_COMPRESSBOUND formula of the reference
// implementation.
func (*zstdCodec) MaxEncodedLen(n int) int {
	bound := n + n>>8
	if n < 128<<10 {
		bound += (128<<10 - n) >> 11
	}
	return bound
}

// MaxDecodedLen allows one full 128 KiB block per four input bytes, the
// size of the smallest RLE block.
func (*zstdCodec) MaxDecodedLen(n int) int {
	return expansionBound(n, 32<<10, 128<<10)
}

func (c *zstdCodec) Compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}
	enc, err := c.encoder()
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	return enc.EncodeAll(src, make([]byte, 0, c.MaxEncodedLen(len(src)))), nil
}

func (c *zstdCodec) Decompress(src []byte, size int) ([]byte, error) {
	if done, err := decodeEmpty(NameZstd, src, size); done {
		return []byte{}, err
	}

	var h zstd.Header
	if err := h.Decode(src); err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", tricotype.ErrDecompression, err)
	}
	if h.HasFCS && h.FrameContentSize != uint64(size) { //nolint:gosec // size is non-negative
		return nil, fmt.Errorf("%w: zstd: frame holds %d bytes, expected %d",
			tricotype.ErrDecompression, h.FrameContentSize, size)
	}

	dec, release, err := c.pool.get()
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer release()

	dst, err := dec.DecodeAll(src, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", tricotype.ErrDecompression, err)
	}
	if len(dst) != size {
		return nil, sizeMismatch(NameZstd, len(dst), size)
	}
	return dst, nil
}
