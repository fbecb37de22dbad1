package stream

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/meigma/trico/internal/plane"
	"github.com/meigma/trico/internal/predict"
	"github.com/meigma/trico/internal/tricotype"
)

// Encoder turns value arrays into sub-blocks.
type Encoder struct {
	cfg config
}

// NewEncoder creates an Encoder.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{cfg: newConfig(opts)}
}

// EncodeFloat32 splits values into components planes and codes each plane
// with the 32-bit predictor.
func (e *Encoder) EncodeFloat32(values []float32, components int) ([][]byte, error) {
	if err := checkShape(len(values), components); err != nil {
		return nil, err
	}
	words := make([]uint32, len(values))
	for i, v := range values {
		words[i] = math.Float32bits(v)
	}
	planes := splitPlanes(words, components)
	blocks := make([][]byte, len(planes))
	err := e.cfg.each(len(planes), len(values), func(i int) error {
		blocks[i] = predict.Compress32(planes[i], e.cfg.bits32[0], e.cfg.bits32[1])
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.logPlanes(len(values), blocks)
	return blocks, nil
}

// EncodeFloat64 splits values into components planes and codes each plane
// with the 64-bit predictor.
func (e *Encoder) EncodeFloat64(values []float64, components int) ([][]byte, error) {
	if err := checkShape(len(values), components); err != nil {
		return nil, err
	}
	words := make([]uint64, len(values))
	for i, v := range values {
		words[i] = math.Float64bits(v)
	}
	planes := splitPlanes(words, components)
	blocks := make([][]byte, len(planes))
	err := e.cfg.each(len(planes), len(values), func(i int) error {
		blocks[i] = predict.Compress64(planes[i], e.cfg.bits64[0], e.cfg.bits64[1])
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.logPlanes(len(values), blocks)
	return blocks, nil
}

// EncodeUint16 codes values as two byte planes.
func (e *Encoder) EncodeUint16(values []uint16) ([][]byte, error) {
	return encodeBytePlanes(e, values)
}

// EncodeUint32 codes values as four byte planes.
func (e *Encoder) EncodeUint32(values []uint32) ([][]byte, error) {
	return encodeBytePlanes(e, values)
}

// EncodeUint64 codes values as eight byte planes.
func (e *Encoder) EncodeUint64(values []uint64) ([][]byte, error) {
	return encodeBytePlanes(e, values)
}

// EncodeBytes codes values as a single block.
func (e *Encoder) EncodeBytes(values []byte) ([][]byte, error) {
	block, err := e.cfg.codec.Compress(values)
	if err != nil {
		return nil, fmt.Errorf("compress byte block: %w", err)
	}
	return [][]byte{block}, nil
}

func encodeBytePlanes[T plane.Unsigned](e *Encoder, values []T) ([][]byte, error) {
	if uint64(len(values)) > tricotype.MaxElements {
		return nil, fmt.Errorf("%w: %d values exceed the block limit", tricotype.ErrInvalidInput, len(values))
	}
	planes := plane.SplitBytes(values)
	blocks := make([][]byte, len(planes))
	err := e.cfg.each(len(planes), len(values), func(i int) error {
		block, err := e.cfg.codec.Compress(planes[i])
		if err != nil {
			return fmt.Errorf("compress byte plane %d: %w", i, err)
		}
		blocks[i] = block
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.logPlanes(len(values), blocks)
	return blocks, nil
}

func (e *Encoder) logPlanes(values int, blocks [][]byte) {
	logger := e.cfg.log()
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	sizes := make([]int, len(blocks))
	for i, b := range blocks {
		sizes[i] = len(b)
	}
	logger.Debug("encoded planes", "values", values, "plane_bytes", sizes)
}
