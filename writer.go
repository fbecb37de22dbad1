package trico

import (
	_ "crypto/sha256" // registers sha256 for digest.FromBytes
	"fmt"
	"log/slog"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/trico/internal/sizing"
	"github.com/meigma/trico/internal/stream"
	"github.com/meigma/trico/internal/tricotype"
	"github.com/meigma/trico/internal/wire"
)

// Writer builds an archive in memory. Each Write method appends one stream.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	buf     *wire.Buffer
	enc     *stream.Encoder
	logger  *slog.Logger
	closed  bool
	streams int
}

// NewWriter creates a Writer and writes the file header.
func NewWriter(opts ...Option) *Writer {
	cfg := newConfig(opts)
	w := &Writer{
		buf:    wire.NewBuffer(cfg.initialCapacity),
		enc:    stream.NewEncoder(cfg.streamOptions()...),
		logger: cfg.log(),
	}
	w.buf.Reserve(tricotype.FileHeaderSize)
	_, _ = w.buf.Write([]byte(tricotype.Magic)) //nolint:errcheck // Buffer.Write never fails
	w.buf.WriteUint32(tricotype.Version)
	return w
}

// Version returns the format version of the archive.
func (w *Writer) Version() uint32 {
	return tricotype.Version
}

// WriteVertices appends vertex positions as interleaved x, y, z float32 values.
func (w *Writer) WriteVertices(positions []float32) error {
	return w.writeFloat32(tricotype.StreamVertexFloat, positions)
}

// WriteVerticesDouble appends vertex positions as interleaved x, y, z float64 values.
func (w *Writer) WriteVerticesDouble(positions []float64) error {
	return w.writeFloat64(tricotype.StreamVertexDouble, positions)
}

// WriteTriangles appends triangle vertex indices, three per triangle.
func (w *Writer) WriteTriangles(indices []uint32) error {
	return w.write(tricotype.StreamTriangleUint32, len(indices), func() ([][]byte, error) {
		return w.enc.EncodeUint32(indices)
	})
}

// WriteTrianglesLong appends 64-bit triangle vertex indices, three per triangle.
func (w *Writer) WriteTrianglesLong(indices []uint64) error {
	return w.write(tricotype.StreamTriangleUint64, len(indices), func() ([][]byte, error) {
		return w.enc.EncodeUint64(indices)
	})
}

// WriteNormals appends normals as interleaved x, y, z float32 values, one
// normal per vertex or per triangle.
func (w *Writer) WriteNormals(b Binding, normals []float32) error {
	t, err := bound(b, tricotype.StreamNormalPerVertexFloat, tricotype.StreamNormalPerTriangleFloat)
	if err != nil {
		return err
	}
	return w.writeFloat32(t, normals)
}

// WriteNormalsDouble appends normals as interleaved x, y, z float64 values.
func (w *Writer) WriteNormalsDouble(b Binding, normals []float64) error {
	t, err := bound(b, tricotype.StreamNormalPerVertexDouble, tricotype.StreamNormalPerTriangleDouble)
	if err != nil {
		return err
	}
	return w.writeFloat64(t, normals)
}

// WriteUV appends texture coordinates as interleaved u, v float32 values.
// Per-vertex data holds one pair per vertex; per-triangle data holds one
// pair per triangle corner, so six values per triangle.
func (w *Writer) WriteUV(b Binding, uv []float32) error {
	t, err := bound(b, tricotype.StreamUVPerVertexFloat, tricotype.StreamUVPerTriangleFloat)
	if err != nil {
		return err
	}
	return w.writeFloat32(t, uv)
}

// WriteUVDouble appends texture coordinates as interleaved u, v float64 values.
func (w *Writer) WriteUVDouble(b Binding, uv []float64) error {
	t, err := bound(b, tricotype.StreamUVPerVertexDouble, tricotype.StreamUVPerTriangleDouble)
	if err != nil {
		return err
	}
	return w.writeFloat64(t, uv)
}

// WriteColors appends packed RGBA colors, one per vertex or per triangle.
func (w *Writer) WriteColors(b Binding, colors []uint32) error {
	t, err := bound(b, tricotype.StreamColorPerVertex, tricotype.StreamColorPerTriangle)
	if err != nil {
		return err
	}
	return w.write(t, len(colors), func() ([][]byte, error) {
		return w.enc.EncodeUint32(colors)
	})
}

// WriteAttributesFloat appends a generic float32 attribute array.
func (w *Writer) WriteAttributesFloat(values []float32) error {
	return w.writeFloat32(tricotype.StreamAttributeFloat, values)
}

// WriteAttributesDouble appends a generic float64 attribute array.
func (w *Writer) WriteAttributesDouble(values []float64) error {
	return w.writeFloat64(tricotype.StreamAttributeDouble, values)
}

// WriteAttributesUint8 appends a generic byte attribute array.
func (w *Writer) WriteAttributesUint8(values []uint8) error {
	return w.write(tricotype.StreamAttributeUint8, len(values), func() ([][]byte, error) {
		return w.enc.EncodeBytes(values)
	})
}

// WriteAttributesUint16 appends a generic uint16 attribute array.
func (w *Writer) WriteAttributesUint16(values []uint16) error {
	return w.write(tricotype.StreamAttributeUint16, len(values), func() ([][]byte, error) {
		return w.enc.EncodeUint16(values)
	})
}

// WriteAttributesUint32 appends a generic uint32 attribute array.
func (w *Writer) WriteAttributesUint32(values []uint32) error {
	return w.write(tricotype.StreamAttributeUint32, len(values), func() ([][]byte, error) {
		return w.enc.EncodeUint32(values)
	})
}

// WriteAttributesUint64 appends a generic uint64 attribute array.
func (w *Writer) WriteAttributesUint64(values []uint64) error {
	return w.write(tricotype.StreamAttributeUint64, len(values), func() ([][]byte, error) {
		return w.enc.EncodeUint64(values)
	})
}

// Close finishes the archive. Later writes fail with ErrClosed; Bytes, Len
// and Digest remain usable. Close is idempotent.
func (w *Writer) Close() error {
	if !w.closed {
		w.closed = true
		w.logger.Debug("archive closed", "streams", w.streams, "bytes", w.buf.Len())
	}
	return nil
}

// Bytes returns the archive written so far. The slice aliases the Writer's
// buffer and is only valid until the next write.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the size of the archive written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Digest returns the sha256 digest of the archive written so far.
func (w *Writer) Digest() digest.Digest {
	return digest.FromBytes(w.buf.Bytes())
}

func (w *Writer) writeFloat32(t tricotype.StreamType, values []float32) error {
	return w.write(t, len(values), func() ([][]byte, error) {
		return w.enc.EncodeFloat32(values, t.Layout().Components)
	})
}

func (w *Writer) writeFloat64(t tricotype.StreamType, values []float64) error {
	return w.write(t, len(values), func() ([][]byte, error) {
		return w.enc.EncodeFloat64(values, t.Layout().Components)
	})
}

// write validates the array length, encodes the sub-blocks and appends the
// stream record. The buffer grows by exactly the size of the record.
func (w *Writer) write(t tricotype.StreamType, n int, encode func() ([][]byte, error)) error {
	if w.closed {
		return ErrClosed
	}
	perElement := t.Layout().Values
	if n%perElement != 0 {
		return fmt.Errorf("%w: %s: %d values is not a multiple of %d",
			ErrInvalidInput, t, n, perElement)
	}
	count, err := sizing.ToUint32(n/perElement, ErrInvalidInput)
	if err != nil {
		return fmt.Errorf("%w: %s: %d elements exceed the format limit", err, t, n/perElement)
	}

	blocks, err := encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", t, err)
	}

	size := tricotype.StreamHeaderSize
	for _, b := range blocks {
		if uint64(len(b)) > tricotype.MaxElements {
			return fmt.Errorf("%w: %s: sub-block of %d bytes exceeds the format limit",
				ErrInvalidInput, t, len(b))
		}
		size += tricotype.BlockHeaderSize + len(b)
	}

	w.buf.Reserve(size)
	_ = w.buf.WriteByte(byte(t)) //nolint:errcheck // Buffer.WriteByte never fails
	w.buf.WriteUint32(count)
	for _, b := range blocks {
		w.buf.WriteBlock(b)
	}
	w.streams++

	w.logger.Debug("stream written", "type", t, "count", count, "bytes", size)
	return nil
}

// bound picks the stream type for a binding.
func bound(b Binding, perVertex, perTriangle tricotype.StreamType) (tricotype.StreamType, error) {
	switch b {
	case tricotype.PerVertex:
		return perVertex, nil
	case tricotype.PerTriangle:
		return perTriangle, nil
	default:
		return tricotype.StreamEmpty, fmt.Errorf("%w: unknown binding %d", ErrInvalidInput, b)
	}
}
