package trico

import (
	"log/slog"

	"github.com/meigma/trico/internal/bytecodec"
	"github.com/meigma/trico/internal/predict"
	"github.com/meigma/trico/internal/stream"
	"github.com/meigma/trico/internal/tricotype"
)

// Option configures a Writer or a Reader. Options that only apply to one
// side are ignored by the other.
type Option func(*config)

type config struct {
	initialCapacity int
	floatBits       [2]uint
	doubleBits      [2]uint
	codec           bytecodec.Codec
	concurrency     int
	maxElements     uint64
	logger          *slog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		initialCapacity: tricotype.FileHeaderSize,
		floatBits:       [2]uint{predict.DefaultHash1Bits32, predict.DefaultHash2Bits32},
		doubleBits:      [2]uint{predict.DefaultHash1Bits64, predict.DefaultHash2Bits64},
		codec:           bytecodec.Default(),
		concurrency:     1,
		maxElements:     tricotype.MaxElements,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c *config) streamOptions() []stream.Option {
	return []stream.Option{
		stream.WithCodec(c.codec),
		stream.WithHashBits32(c.floatBits[0], c.floatBits[1]),
		stream.WithHashBits64(c.doubleBits[0], c.doubleBits[1]),
		stream.WithConcurrency(c.concurrency),
		stream.WithLogger(c.logger),
	}
}

// WithInitialCapacity sets the initial capacity of a Writer's buffer
// (default: the 8-byte file header). Writer only.
func WithInitialCapacity(n int) Option {
	return func(c *config) {
		c.initialCapacity = max(n, tricotype.FileHeaderSize)
	}
}

// WithFloatHashBits sets the predictor table exponents for float32 streams
// (default: 4 and 10). Exponents are rounded down to even and clamped to 30.
// Writer only; readers take the exponents from the data.
func WithFloatHashBits(hash1, hash2 uint) Option {
	return func(c *config) {
		c.floatBits = [2]uint{predict.NormalizeHashBits(hash1), predict.NormalizeHashBits(hash2)}
	}
}

// WithDoubleHashBits sets the predictor table exponents for float64 streams
// (default: 20 and 20). Exponents are rounded down to even and clamped to 30.
// Writer only.
func WithDoubleHashBits(hash1, hash2 uint) Option {
	return func(c *config) {
		c.doubleBits = [2]uint{predict.NormalizeHashBits(hash1), predict.NormalizeHashBits(hash2)}
	}
}

// WithByteCodec sets the codec for integer byte planes and byte attributes
// (default: LZ4). A nil codec keeps the default. Readers must use the codec
// the archive was written with.
func WithByteCodec(codec ByteCodec) Option {
	return func(c *config) {
		if codec != nil {
			c.codec = codec
		}
	}
}

// WithConcurrency sets how many planes of one stream may be coded in
// parallel (default: 1). Values < 1 are treated as 1. The archive bytes do
// not depend on this setting.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = max(n, 1)
	}
}

// WithMaxElements limits the element count a Reader accepts for a single
// stream. Larger counts fail with ErrCorruptLength before any allocation.
// Set limit to 0 to use the format maximum. Reader only.
func WithMaxElements(limit uint64) Option {
	return func(c *config) {
		if limit == 0 || limit > tricotype.MaxElements {
			limit = tricotype.MaxElements
		}
		c.maxElements = limit
	}
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func (c *config) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}
