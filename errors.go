package trico

import "github.com/meigma/trico/internal/tricotype"

// Errors re-exported from internal/tricotype.
var (
	// ErrInvalidFormat is returned when the data is not a trico archive, has
	// an unsupported version, or contains an unknown stream tag.
	ErrInvalidFormat = tricotype.ErrInvalidFormat

	// ErrUnexpectedEOF is returned when a field or sub-block extends past
	// the end of the data.
	ErrUnexpectedEOF = tricotype.ErrUnexpectedEOF

	// ErrWrongStreamType is returned when a read or count asks for a stream
	// type other than the pending one. The returned error is a
	// *StreamTypeError.
	ErrWrongStreamType = tricotype.ErrWrongStreamType

	// ErrAllocation is returned when a size computation overflows.
	ErrAllocation = tricotype.ErrAllocation

	// ErrCorruptLength is returned when a declared length or element count
	// is inconsistent with the data.
	ErrCorruptLength = tricotype.ErrCorruptLength

	// ErrDecompression is returned when a byte plane fails to decompress.
	ErrDecompression = tricotype.ErrDecompression

	// ErrClosed is returned when using a closed Writer or Reader.
	ErrClosed = tricotype.ErrClosed

	// ErrInvalidInput is returned when an array passed to a Writer has an
	// invalid length or binding.
	ErrInvalidInput = tricotype.ErrInvalidInput
)

// StreamTypeError reports a request for a stream type that is not pending.
type StreamTypeError = tricotype.StreamTypeError
