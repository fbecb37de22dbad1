// Package stream encodes the value arrays of one archive stream into its
// sub-blocks and decodes them back.
//
// Floating-point arrays are split into component planes (x/y/z or u/v) and
// each plane is coded with the value predictor. Integer arrays are split into
// little-endian byte planes and each plane is coded with a byte codec. Byte
// arrays go to the byte codec directly. Planes are independent and may be
// coded in parallel; the output does not depend on the concurrency.
package stream

import (
	"log/slog"

	"github.com/meigma/trico/internal/bytecodec"
	"github.com/meigma/trico/internal/predict"
)

// parallelMinValues is the smallest array that is worth fanning out
// across goroutines. Below it, coding the planes serially is faster.
const parallelMinValues = 16 << 10

// Option configures an Encoder or Decoder.
type Option func(*config)

type config struct {
	codec       bytecodec.Codec
	bits32      [2]uint
	bits64      [2]uint
	concurrency int
	logger      *slog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		codec:       bytecodec.Default(),
		bits32:      [2]uint{predict.DefaultHash1Bits32, predict.DefaultHash2Bits32},
		bits64:      [2]uint{predict.DefaultHash1Bits64, predict.DefaultHash2Bits64},
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithCodec sets the byte codec for integer planes. Nil keeps the default.
func WithCodec(c bytecodec.Codec) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.codec = c
		}
	}
}

// WithHashBits32 sets the predictor table exponents for 32-bit values.
func WithHashBits32(hash1, hash2 uint) Option {
	return func(cfg *config) {
		cfg.bits32 = [2]uint{predict.NormalizeHashBits(hash1), predict.NormalizeHashBits(hash2)}
	}
}

// WithHashBits64 sets the predictor table exponents for 64-bit values.
func WithHashBits64(hash1, hash2 uint) Option {
	return func(cfg *config) {
		cfg.bits64 = [2]uint{predict.NormalizeHashBits(hash1), predict.NormalizeHashBits(hash2)}
	}
}

// WithConcurrency sets how many planes may be coded at once.
// Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(cfg *config) {
		cfg.concurrency = max(n, 1)
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

func (c *config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(slog.DiscardHandler)
}
