package stream

import (
	"fmt"
	"math"

	"github.com/meigma/trico/internal/plane"
	"github.com/meigma/trico/internal/predict"
	"github.com/meigma/trico/internal/tricotype"
)

// Decoder turns sub-blocks back into value arrays.
type Decoder struct {
	cfg config
}

// NewDecoder creates a Decoder. Its codec must match the one the blocks
// were encoded with.
func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{cfg: newConfig(opts)}
}

// DecodeFloat32 decodes n values stored as components predictor planes.
func (d *Decoder) DecodeFloat32(blocks [][]byte, n, components int) ([]float32, error) {
	per, err := planeLen(blocks, n, components)
	if err != nil {
		return nil, err
	}
	planes := make([][]uint32, len(blocks))
	err = d.cfg.each(len(blocks), n, func(i int) error {
		if err := checkPlaneCount(blocks[i], i, per); err != nil {
			return err
		}
		words, err := predict.Decompress32(blocks[i])
		if err != nil {
			return fmt.Errorf("decode plane %d: %w", i, err)
		}
		planes[i] = words
		return nil
	})
	if err != nil {
		return nil, err
	}
	words := mergePlanes(planes)
	out := make([]float32, len(words))
	for i, w := range words {
		out[i] = math.Float32frombits(w)
	}
	return out, nil
}

// DecodeFloat64 decodes n values stored as components predictor planes.
func (d *Decoder) DecodeFloat64(blocks [][]byte, n, components int) ([]float64, error) {
	per, err := planeLen(blocks, n, components)
	if err != nil {
		return nil, err
	}
	planes := make([][]uint64, len(blocks))
	err = d.cfg.each(len(blocks), n, func(i int) error {
		if err := checkPlaneCount(blocks[i], i, per); err != nil {
			return err
		}
		words, err := predict.Decompress64(blocks[i])
		if err != nil {
			return fmt.Errorf("decode plane %d: %w", i, err)
		}
		planes[i] = words
		return nil
	})
	if err != nil {
		return nil, err
	}
	words := mergePlanes(planes)
	out := make([]float64, len(words))
	for i, w := range words {
		out[i] = math.Float64frombits(w)
	}
	return out, nil
}

// DecodeUint16 decodes n values stored as two byte planes.
func (d *Decoder) DecodeUint16(blocks [][]byte, n int) ([]uint16, error) {
	return decodeBytePlanes[uint16](d, blocks, n)
}

// DecodeUint32 decodes n values stored as four byte planes.
func (d *Decoder) DecodeUint32(blocks [][]byte, n int) ([]uint32, error) {
	return decodeBytePlanes[uint32](d, blocks, n)
}

// DecodeUint64 decodes n values stored as eight byte planes.
func (d *Decoder) DecodeUint64(blocks [][]byte, n int) ([]uint64, error) {
	return decodeBytePlanes[uint64](d, blocks, n)
}

// DecodeBytes decodes n bytes stored as a single block.
func (d *Decoder) DecodeBytes(blocks [][]byte, n int) ([]byte, error) {
	if len(blocks) != 1 {
		return nil, fmt.Errorf("%w: %d blocks for a byte stream", tricotype.ErrCorruptLength, len(blocks))
	}
	return d.decompress(blocks[0], 0, n)
}

func decodeBytePlanes[T plane.Unsigned](d *Decoder, blocks [][]byte, n int) ([]T, error) {
	if k := plane.Width[T](); len(blocks) != k {
		return nil, fmt.Errorf("%w: %d byte planes, want %d", tricotype.ErrCorruptLength, len(blocks), k)
	}
	planes := make([][]byte, len(blocks))
	err := d.cfg.each(len(blocks), n, func(i int) error {
		p, err := d.decompress(blocks[i], i, n)
		if err != nil {
			return err
		}
		planes[i] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plane.MergeBytes[T](planes), nil
}

// decompress decodes one byte plane of exactly n bytes. Sizes the block
// cannot possibly expand to are rejected before allocating.
func (d *Decoder) decompress(block []byte, i, n int) ([]byte, error) {
	if n < 0 || (n > 0 && n > d.cfg.codec.MaxDecodedLen(len(block))) {
		return nil, fmt.Errorf("%w: byte plane %d of %d bytes cannot hold %d values",
			tricotype.ErrCorruptLength, i, len(block), n)
	}
	p, err := d.cfg.codec.Decompress(block, n)
	if err != nil {
		return nil, fmt.Errorf("decode byte plane %d: %w", i, err)
	}
	return p, nil
}

// planeLen validates the block count and returns the number of values in
// each plane.
func planeLen(blocks [][]byte, n, components int) (int, error) {
	if len(blocks) != components {
		return 0, fmt.Errorf("%w: %d planes, want %d", tricotype.ErrCorruptLength, len(blocks), components)
	}
	if err := checkShape(n, components); err != nil {
		return 0, fmt.Errorf("%w: %w", tricotype.ErrCorruptLength, err)
	}
	return n / components, nil
}

// checkPlaneCount compares a predictor block's header against the count
// the stream declares before the block is decoded.
func checkPlaneCount(block []byte, i, want int) error {
	got, err := predict.Count(block)
	if err != nil {
		return fmt.Errorf("decode plane %d: %w", i, err)
	}
	if got != want {
		return fmt.Errorf("%w: plane %d holds %d values, stream declares %d",
			tricotype.ErrCorruptLength, i, got, want)
	}
	return nil
}
