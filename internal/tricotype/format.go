// Package tricotype holds the types, constants and sentinel errors shared by
// the archive, the stream codecs and the public trico package.
package tricotype

// Magic is the four-byte signature at the start of every archive.
const Magic = "Trco"

// Version is the format version written by this package.
const Version uint32 = 0

// Header sizes in bytes.
const (
	FileHeaderSize   = 8 // magic + version
	StreamHeaderSize = 5 // tag + element count
	BlockHeaderSize  = 4 // compressed length
)

// MaxElements is the largest element count a stream header can carry.
const MaxElements = 1<<32 - 1
