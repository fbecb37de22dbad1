// Package platform loads archive files into memory, memory-mapping them
// where the operating system supports it.
package platform

import "errors"

// ErrTooLarge is returned when a file does not fit in the address space.
var ErrTooLarge = errors.New("platform: file too large to map")

// Mapping is a read-only view of a file's contents.
type Mapping struct {
	data   []byte
	mapped bool
}

// Bytes returns the file contents. The slice must not be modified and is
// invalid after Close.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Mapped reports whether the contents are backed by a memory map rather
// than a heap copy.
func (m *Mapping) Mapped() bool {
	return m.mapped
}
