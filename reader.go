package trico

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/meigma/trico/internal/sizing"
	"github.com/meigma/trico/internal/stream"
	"github.com/meigma/trico/internal/tricotype"
	"github.com/meigma/trico/internal/wire"
)

// Reader reads the streams of an archive in order.
//
// After any error other than a *StreamTypeError the Reader is poisoned:
// NextStreamType reports StreamEmpty and every later call returns the same
// error, which Err also reports.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	cur         *wire.Cursor
	dec         *stream.Decoder
	logger      *slog.Logger
	maxElements uint64
	version     uint32
	next        StreamType
	err         error
}

// StreamInfo describes one stream of an archive.
type StreamInfo struct {
	// Type is the stream type.
	Type StreamType

	// Count is the element count: vertices, triangles, or values for
	// attributes.
	Count int

	// Offset is the position of the stream's tag byte in the archive.
	Offset int

	// Size is the encoded size of the stream including its header.
	Size int
}

// NewReader validates the file header of data and positions the Reader on
// the first stream. The Reader borrows data; it must not be modified while
// the Reader is in use.
func NewReader(data []byte, opts ...Option) (*Reader, error) {
	cfg := newConfig(opts)
	cur := wire.NewCursor(data)

	magic, err := cur.Next(len(tricotype.Magic))
	if err != nil || string(magic) != tricotype.Magic {
		return nil, fmt.Errorf("%w: missing %q signature", ErrInvalidFormat, tricotype.Magic)
	}
	version, err := cur.Uint32()
	if err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version != tricotype.Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, version)
	}

	r := &Reader{
		cur:         cur,
		dec:         stream.NewDecoder(cfg.streamOptions()...),
		logger:      cfg.log(),
		maxElements: cfg.maxElements,
		version:     version,
	}
	if err := r.advance(); err != nil {
		return nil, err
	}
	return r, nil
}

// Version returns the format version of the archive.
func (r *Reader) Version() uint32 {
	return r.version
}

// NextStreamType returns the type of the pending stream, or StreamEmpty at
// the end of the archive or after an error.
func (r *Reader) NextStreamType() StreamType {
	if r.err != nil {
		return StreamEmpty
	}
	return r.next
}

// Err returns the error that poisoned the Reader, if any.
func (r *Reader) Err() error {
	return r.err
}

// Close releases the data. Later calls fail with ErrClosed.
func (r *Reader) Close() error {
	r.cur = nil
	r.err = ErrClosed
	r.next = StreamEmpty
	return nil
}

// PendingCount returns the element count of the pending stream without
// consuming it.
func (r *Reader) PendingCount() (int, error) {
	return r.peekCount("PendingCount", nil)
}

// VertexCount returns the number of vertices in the pending vertex stream.
func (r *Reader) VertexCount() (int, error) {
	return r.peekCount("VertexCount", tricotype.CategoryVertex.StreamTypes())
}

// TriangleCount returns the number of triangles in the pending triangle stream.
func (r *Reader) TriangleCount() (int, error) {
	return r.peekCount("TriangleCount", tricotype.CategoryTriangle.StreamTypes())
}

// NormalCount returns the number of normals in the pending normal stream.
func (r *Reader) NormalCount() (int, error) {
	return r.peekCount("NormalCount", tricotype.CategoryNormal.StreamTypes())
}

// UVCount returns the element count of the pending UV stream: vertices for
// per-vertex UVs, triangles for per-triangle UVs.
func (r *Reader) UVCount() (int, error) {
	return r.peekCount("UVCount", tricotype.CategoryUV.StreamTypes())
}

// ColorCount returns the number of colors in the pending color stream.
func (r *Reader) ColorCount() (int, error) {
	return r.peekCount("ColorCount", tricotype.CategoryColor.StreamTypes())
}

// AttributeCount returns the number of values in the pending attribute stream.
func (r *Reader) AttributeCount() (int, error) {
	return r.peekCount("AttributeCount", tricotype.CategoryAttribute.StreamTypes())
}

// ReadVertices reads a float32 vertex stream as interleaved x, y, z values.
func (r *Reader) ReadVertices() ([]float32, error) {
	v, _, err := readFloat32(r, "ReadVertices", tricotype.StreamVertexFloat)
	return v, err
}

// ReadVerticesDouble reads a float64 vertex stream as interleaved x, y, z values.
func (r *Reader) ReadVerticesDouble() ([]float64, error) {
	v, _, err := readFloat64(r, "ReadVerticesDouble", tricotype.StreamVertexDouble)
	return v, err
}

// ReadTriangles reads a uint32 triangle stream, three indices per triangle.
func (r *Reader) ReadTriangles() ([]uint32, error) {
	v, _, err := readInts(r, "ReadTriangles", (*stream.Decoder).DecodeUint32, tricotype.StreamTriangleUint32)
	return v, err
}

// ReadTrianglesLong reads a uint64 triangle stream, three indices per triangle.
func (r *Reader) ReadTrianglesLong() ([]uint64, error) {
	v, _, err := readInts(r, "ReadTrianglesLong", (*stream.Decoder).DecodeUint64, tricotype.StreamTriangleUint64)
	return v, err
}

// ReadNormals reads a float32 normal stream and reports its binding.
func (r *Reader) ReadNormals() ([]float32, Binding, error) {
	return readFloat32(r, "ReadNormals",
		tricotype.StreamNormalPerVertexFloat, tricotype.StreamNormalPerTriangleFloat)
}

// ReadNormalsDouble reads a float64 normal stream and reports its binding.
func (r *Reader) ReadNormalsDouble() ([]float64, Binding, error) {
	return readFloat64(r, "ReadNormalsDouble",
		tricotype.StreamNormalPerVertexDouble, tricotype.StreamNormalPerTriangleDouble)
}

// ReadUV reads a float32 UV stream as interleaved u, v values and reports
// its binding.
func (r *Reader) ReadUV() ([]float32, Binding, error) {
	return readFloat32(r, "ReadUV",
		tricotype.StreamUVPerVertexFloat, tricotype.StreamUVPerTriangleFloat)
}

// ReadUVDouble reads a float64 UV stream and reports its binding.
func (r *Reader) ReadUVDouble() ([]float64, Binding, error) {
	return readFloat64(r, "ReadUVDouble",
		tricotype.StreamUVPerVertexDouble, tricotype.StreamUVPerTriangleDouble)
}

// ReadColors reads a packed RGBA color stream and reports its binding.
func (r *Reader) ReadColors() ([]uint32, Binding, error) {
	return readInts(r, "ReadColors", (*stream.Decoder).DecodeUint32,
		tricotype.StreamColorPerVertex, tricotype.StreamColorPerTriangle)
}

// ReadAttributesFloat reads a float32 attribute stream.
func (r *Reader) ReadAttributesFloat() ([]float32, error) {
	v, _, err := readFloat32(r, "ReadAttributesFloat", tricotype.StreamAttributeFloat)
	return v, err
}

// ReadAttributesDouble reads a float64 attribute stream.
func (r *Reader) ReadAttributesDouble() ([]float64, error) {
	v, _, err := readFloat64(r, "ReadAttributesDouble", tricotype.StreamAttributeDouble)
	return v, err
}

// ReadAttributesUint8 reads a byte attribute stream.
func (r *Reader) ReadAttributesUint8() ([]uint8, error) {
	v, _, err := readInts(r, "ReadAttributesUint8", (*stream.Decoder).DecodeBytes, tricotype.StreamAttributeUint8)
	return v, err
}

// ReadAttributesUint16 reads a uint16 attribute stream.
func (r *Reader) ReadAttributesUint16() ([]uint16, error) {
	v, _, err := readInts(r, "ReadAttributesUint16", (*stream.Decoder).DecodeUint16, tricotype.StreamAttributeUint16)
	return v, err
}

// ReadAttributesUint32 reads a uint32 attribute stream.
func (r *Reader) ReadAttributesUint32() ([]uint32, error) {
	v, _, err := readInts(r, "ReadAttributesUint32", (*stream.Decoder).DecodeUint32, tricotype.StreamAttributeUint32)
	return v, err
}

// ReadAttributesUint64 reads a uint64 attribute stream.
func (r *Reader) ReadAttributesUint64() ([]uint64, error) {
	v, _, err := readInts(r, "ReadAttributesUint64", (*stream.Decoder).DecodeUint64, tricotype.StreamAttributeUint64)
	return v, err
}

// SkipNextStream consumes the pending stream without decoding it.
func (r *Reader) SkipNextStream() error {
	_, err := r.skip()
	return err
}

// Streams returns an iterator over the remaining streams. Each stream is
// skipped, not decoded. Iteration stops after the first error.
func (r *Reader) Streams() iter.Seq2[StreamInfo, error] {
	return func(yield func(StreamInfo, error) bool) {
		for r.NextStreamType() != StreamEmpty {
			info, err := r.skip()
			if err != nil {
				yield(info, err)
				return
			}
			if !yield(info, nil) {
				return
			}
		}
		if r.err != nil && !errors.Is(r.err, ErrClosed) {
			yield(StreamInfo{}, r.err)
		}
	}
}

func readFloat32(r *Reader, op string, want ...StreamType) ([]float32, Binding, error) {
	return readStream(r, op, want, func(blocks [][]byte, n int, l tricotype.Layout) ([]float32, error) {
		return r.dec.DecodeFloat32(blocks, n, l.Components)
	})
}

func readFloat64(r *Reader, op string, want ...StreamType) ([]float64, Binding, error) {
	return readStream(r, op, want, func(blocks [][]byte, n int, l tricotype.Layout) ([]float64, error) {
		return r.dec.DecodeFloat64(blocks, n, l.Components)
	})
}

func readInts[T any](r *Reader, op string, decode func(*stream.Decoder, [][]byte, int) ([]T, error), want ...StreamType) ([]T, Binding, error) {
	return readStream(r, op, want, func(blocks [][]byte, n int, _ tricotype.Layout) ([]T, error) {
		return decode(r.dec, blocks, n)
	})
}

// readStream consumes the pending stream if its type is one of want and
// decodes it. A type mismatch consumes nothing.
func readStream[T any](r *Reader, op string, want []StreamType, decode func([][]byte, int, tricotype.Layout) ([]T, error)) ([]T, Binding, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	t := r.next
	if !slices.Contains(want, t) {
		return nil, 0, &StreamTypeError{Op: op, Want: want, Got: t}
	}

	start := r.cur.Offset() - 1
	count, blocks, err := r.consume(t)
	if err != nil {
		return nil, 0, r.fail(err)
	}
	l := t.Layout()
	n, err := sizing.MulInt(count, l.Values, ErrAllocation)
	if err != nil {
		return nil, 0, r.fail(fmt.Errorf("%s: %w", t, err))
	}
	values, err := decode(blocks, n, l)
	if err != nil {
		return nil, 0, r.fail(fmt.Errorf("decode %s at offset %d: %w", t, start, err))
	}

	r.logger.Debug("stream read", "type", t, "count", count, "bytes", r.cur.Offset()-start)
	if err := r.advance(); err != nil {
		// The stream itself decoded; the error is reported by later calls.
		r.logger.Debug("invalid stream after read", "error", err)
	}
	return values, l.Binding, nil
}

func (r *Reader) peekCount(op string, want []StreamType) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.next == StreamEmpty || (want != nil && !slices.Contains(want, r.next)) {
		return 0, &StreamTypeError{Op: op, Want: want, Got: r.next}
	}
	count, err := r.cur.PeekUint32()
	if err != nil {
		return 0, r.fail(fmt.Errorf("read %s count: %w", r.next, err))
	}
	return int(count), nil
}

// skip consumes the pending stream's bytes and describes it.
func (r *Reader) skip() (StreamInfo, error) {
	if r.err != nil {
		return StreamInfo{}, r.err
	}
	t := r.next
	if t == StreamEmpty {
		return StreamInfo{}, &StreamTypeError{Op: "SkipNextStream", Got: t}
	}

	info := StreamInfo{Type: t, Offset: r.cur.Offset() - 1}
	count, err := r.cur.Uint32()
	if err != nil {
		return info, r.fail(fmt.Errorf("read %s count: %w", t, err))
	}
	info.Count = int(count)
	for i := range t.SubBlocks() {
		if err := r.cur.SkipBlock(); err != nil {
			return info, r.fail(fmt.Errorf("skip %s sub-block %d: %w", t, i, err))
		}
	}
	info.Size = r.cur.Offset() - info.Offset

	r.logger.Debug("stream skipped", "type", t, "count", count, "bytes", info.Size)
	if err := r.advance(); err != nil {
		r.logger.Debug("invalid stream after skip", "error", err)
	}
	return info, nil
}

// consume reads the element count and sub-blocks of a stream of type t.
// The sub-blocks alias the input.
func (r *Reader) consume(t StreamType) (int, [][]byte, error) {
	count, err := r.cur.Uint32()
	if err != nil {
		return 0, nil, fmt.Errorf("read %s count: %w", t, err)
	}
	if uint64(count) > r.maxElements {
		return 0, nil, fmt.Errorf("%w: %s declares %d elements, limit is %d",
			ErrCorruptLength, t, count, r.maxElements)
	}
	blocks := make([][]byte, t.SubBlocks())
	for i := range blocks {
		if blocks[i], err = r.cur.Block(); err != nil {
			return 0, nil, fmt.Errorf("read %s sub-block %d: %w", t, i, err)
		}
	}
	return int(count), blocks, nil
}

// advance reads the next tag byte, or records the end of the archive.
func (r *Reader) advance() error {
	if r.cur.Exhausted() {
		r.next = StreamEmpty
		return nil
	}
	tag, err := r.cur.Byte()
	if err != nil {
		return r.fail(err)
	}
	t := StreamType(tag)
	if !t.Valid() {
		r.next = StreamEmpty
		return r.fail(fmt.Errorf("%w: unknown stream tag %d at offset %d",
			ErrInvalidFormat, tag, r.cur.Offset()-1))
	}
	r.next = t
	return nil
}

// fail poisons the Reader with err and returns it.
func (r *Reader) fail(err error) error {
	r.err = err
	r.next = StreamEmpty
	return err
}
