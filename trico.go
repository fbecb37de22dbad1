package trico

import (
	"github.com/meigma/trico/internal/bytecodec"
	"github.com/meigma/trico/internal/tricotype"
)

// Re-export types from internal/tricotype for the public API.
type (
	// StreamType identifies the kind of a stream. Its value is the tag byte
	// stored in the archive.
	StreamType = tricotype.StreamType

	// Binding says whether normals, UVs or colors are stored per vertex or
	// per triangle.
	Binding = tricotype.Binding

	// Category groups the stream types describing one mesh property.
	Category = tricotype.Category

	// ByteCodec compresses integer byte planes and byte attributes.
	ByteCodec = bytecodec.Codec

	// ZstdOption configures the zstd byte codec.
	ZstdOption = bytecodec.ZstdOption
)

// Stream types.
const (
	StreamEmpty                   = tricotype.StreamEmpty
	StreamVertexFloat             = tricotype.StreamVertexFloat
	StreamVertexDouble            = tricotype.StreamVertexDouble
	StreamTriangleUint32          = tricotype.StreamTriangleUint32
	StreamTriangleUint64          = tricotype.StreamTriangleUint64
	StreamUVPerVertexFloat        = tricotype.StreamUVPerVertexFloat
	StreamUVPerVertexDouble       = tricotype.StreamUVPerVertexDouble
	StreamUVPerTriangleFloat      = tricotype.StreamUVPerTriangleFloat
	StreamUVPerTriangleDouble     = tricotype.StreamUVPerTriangleDouble
	StreamNormalPerVertexFloat    = tricotype.StreamNormalPerVertexFloat
	StreamNormalPerVertexDouble   = tricotype.StreamNormalPerVertexDouble
	StreamNormalPerTriangleFloat  = tricotype.StreamNormalPerTriangleFloat
	StreamNormalPerTriangleDouble = tricotype.StreamNormalPerTriangleDouble
	StreamColorPerVertex          = tricotype.StreamColorPerVertex
	StreamColorPerTriangle        = tricotype.StreamColorPerTriangle
	StreamAttributeFloat          = tricotype.StreamAttributeFloat
	StreamAttributeDouble         = tricotype.StreamAttributeDouble
	StreamAttributeUint8          = tricotype.StreamAttributeUint8
	StreamAttributeUint16         = tricotype.StreamAttributeUint16
	StreamAttributeUint32         = tricotype.StreamAttributeUint32
	StreamAttributeUint64         = tricotype.StreamAttributeUint64
)

// Bindings.
const (
	PerVertex   = tricotype.PerVertex
	PerTriangle = tricotype.PerTriangle
)

// Categories.
const (
	CategoryNone      = tricotype.CategoryNone
	CategoryVertex    = tricotype.CategoryVertex
	CategoryTriangle  = tricotype.CategoryTriangle
	CategoryUV        = tricotype.CategoryUV
	CategoryNormal    = tricotype.CategoryNormal
	CategoryColor     = tricotype.CategoryColor
	CategoryAttribute = tricotype.CategoryAttribute
)

// FormatVersion is the archive version written by NewWriter and the only
// version NewReader accepts.
const FormatVersion = tricotype.Version

// Archive is the behavior shared by Writer and Reader.
type Archive interface {
	// Version returns the archive format version.
	Version() uint32

	// Close finishes the archive. Later writes or reads fail with ErrClosed.
	Close() error
}

var (
	_ Archive = (*Writer)(nil)
	_ Archive = (*Reader)(nil)
)

// Byte codecs.
var (
	// LZ4 returns the default byte codec, raw LZ4 blocks.
	LZ4 = bytecodec.LZ4

	// Snappy returns a byte codec producing snappy blocks.
	Snappy = bytecodec.Snappy

	// Zstd returns a byte codec producing zstd frames.
	Zstd = bytecodec.Zstd

	// WithZstdLevel sets the zstd encoder level.
	WithZstdLevel = bytecodec.WithZstdLevel

	// WithZstdMaxDecoderMemory limits the memory a zstd decoder may use.
	WithZstdMaxDecoderMemory = bytecodec.WithZstdMaxDecoderMemory

	// ByteCodecByName returns the codec named "lz4", "zstd" or "snappy".
	ByteCodecByName = bytecodec.ByName
)
