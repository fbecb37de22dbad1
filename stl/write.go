package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// Write writes m as binary STL. Triangles without normals get a zero normal.
func Write(w io.Writer, m *Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	var header [headerSize + 4]byte
	copy(header[:], "binary STL")
	binary.LittleEndian.PutUint32(header[headerSize:], uint32(m.TriangleCount())) //nolint:gosec // checked by Validate
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("write stl header: %w", err)
	}

	var rec [triangleSize]byte
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(rec[off:], math.Float32bits(v))
	}
	for t := range m.TriangleCount() {
		clear(rec[:])
		if len(m.Normals) != 0 {
			for k := range 3 {
				put(4*k, m.Normals[3*t+k])
			}
		}
		for c := range 3 {
			v := int(m.Triangles[3*t+c])
			for k := range 3 {
				put(12+12*c+4*k, m.Vertices[3*v+k])
			}
		}
		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("write stl triangle %d: %w", t, err)
		}
	}
	return bw.Flush()
}

// WriteFile writes m as binary STL to path.
func WriteFile(path string, m *Mesh) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, m)
}
