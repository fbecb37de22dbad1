package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

const (
	headerSize   = 80
	triangleSize = 50
)

// Read parses a binary or ASCII STL file.
func Read(r io.Reader) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stl: %w", err)
	}
	return Parse(data)
}

// ReadFile parses the STL file at path.
func ReadFile(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses STL data. Data whose size matches the triangle count in a
// binary header is binary, otherwise data starting with "solid" is ASCII.
func Parse(data []byte) (*Mesh, error) {
	if isBinary(data) {
		return parseBinary(data)
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseASCII(data)
	}
	return nil, fmt.Errorf("%w: neither binary nor ASCII STL", ErrInvalid)
}

func isBinary(data []byte) bool {
	if len(data) < headerSize+4 {
		return false
	}
	n := uint64(binary.LittleEndian.Uint32(data[headerSize:]))
	return uint64(len(data)) == headerSize+4+n*triangleSize
}

func parseBinary(data []byte) (*Mesh, error) {
	n := int(binary.LittleEndian.Uint32(data[headerSize:]))
	w := newWelder(n)
	body := data[headerSize+4:]
	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(body[off:]))
	}
	for t := range n {
		off := t * triangleSize
		w.normal(f(off), f(off+4), f(off+8))
		for c := range 3 {
			p := off + 12 + 12*c
			w.corner(f(p), f(p+4), f(p+8))
		}
	}
	return &w.mesh, nil
}

func parseASCII(data []byte) (*Mesh, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Split(bufio.ScanWords)

	var (
		w       = newWelder(len(data) / 256)
		corners int
		facet   int
	)
	floats := func(what string) (x, y, z float32, err error) {
		var v [3]float32
		for i := range v {
			if !sc.Scan() {
				return 0, 0, 0, fmt.Errorf("%w: truncated %s", ErrInvalid, what)
			}
			f, err := strconv.ParseFloat(sc.Text(), 32)
			if err != nil {
				return 0, 0, 0, fmt.Errorf("%w: %s component %q: %w", ErrInvalid, what, sc.Text(), err)
			}
			v[i] = float32(f)
		}
		return v[0], v[1], v[2], nil
	}

	for sc.Scan() {
		switch sc.Text() {
		case "facet":
			if !sc.Scan() || sc.Text() != "normal" {
				return nil, fmt.Errorf("%w: facet %d has no normal", ErrInvalid, facet)
			}
			x, y, z, err := floats("normal")
			if err != nil {
				return nil, err
			}
			w.normal(x, y, z)
			corners = 0
		case "vertex":
			x, y, z, err := floats("vertex")
			if err != nil {
				return nil, err
			}
			if corners == 3 {
				return nil, fmt.Errorf("%w: facet %d has more than three vertices", ErrInvalid, facet)
			}
			w.corner(x, y, z)
			corners++
		case "endfacet":
			if corners != 3 {
				return nil, fmt.Errorf("%w: facet %d has %d vertices", ErrInvalid, facet, corners)
			}
			facet++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if len(w.mesh.Triangles) != len(w.mesh.Normals) {
		return nil, fmt.Errorf("%w: unterminated facet", ErrInvalid)
	}
	return &w.mesh, nil
}
