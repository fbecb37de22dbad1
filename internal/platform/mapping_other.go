//go:build !unix

package platform

import "os"

// Open reads the file at path into memory.
func Open(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data}, nil
}

// Close releases the contents.
func (m *Mapping) Close() error {
	m.data = nil
	return nil
}
