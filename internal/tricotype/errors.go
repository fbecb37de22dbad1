package tricotype

import (
	"errors"
	"fmt"
)

// Sentinel errors for archive operations.
var (
	// ErrInvalidFormat is returned when the input is not a trico archive
	// or contains a stream tag this version does not understand.
	ErrInvalidFormat = errors.New("trico: invalid format")

	// ErrUnexpectedEOF is returned when a field or sub-block extends past
	// the end of the input.
	ErrUnexpectedEOF = errors.New("trico: unexpected end of data")

	// ErrWrongStreamType is returned when the caller asks for a stream type
	// other than the one pending.
	ErrWrongStreamType = errors.New("trico: wrong stream type")

	// ErrAllocation is returned when a size computation does not fit in memory.
	ErrAllocation = errors.New("trico: allocation failure")

	// ErrCorruptLength is returned when a declared length or element count
	// is inconsistent with the remaining input.
	ErrCorruptLength = errors.New("trico: corrupt length")

	// ErrDecompression is returned when a byte plane fails to decompress.
	ErrDecompression = errors.New("trico: decompression failed")

	// ErrClosed is returned when writing to a closed archive.
	ErrClosed = errors.New("trico: archive closed")

	// ErrInvalidInput is returned when caller-provided arrays have an
	// invalid shape.
	ErrInvalidInput = errors.New("trico: invalid input")
)

// StreamTypeError reports a read or count request for a stream type
// that is not the pending one.
type StreamTypeError struct {
	Op   string
	Want []StreamType
	Got  StreamType
}

func (e *StreamTypeError) Error() string {
	switch len(e.Want) {
	case 0:
		return fmt.Sprintf("trico: %s: pending stream is %s", e.Op, e.Got)
	case 1:
		return fmt.Sprintf("trico: %s: pending stream is %s, want %s", e.Op, e.Got, e.Want[0])
	default:
		return fmt.Sprintf("trico: %s: pending stream is %s, want one of %v", e.Op, e.Got, e.Want)
	}
}

// Unwrap makes StreamTypeError match ErrWrongStreamType.
func (e *StreamTypeError) Unwrap() error {
	return ErrWrongStreamType
}
