// Package stl reads and writes STL triangle meshes.
//
// STL stores every triangle with its own three corner positions. Read welds
// corners with bit-identical positions into shared vertices so the mesh can
// be stored as an indexed vertex and triangle list.
package stl

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is returned when data is neither a binary nor an ASCII STL file.
var ErrInvalid = errors.New("stl: invalid data")

// Mesh is an indexed triangle mesh.
type Mesh struct {
	// Vertices holds x, y, z per vertex.
	Vertices []float32

	// Triangles holds three vertex indices per triangle.
	Triangles []uint32

	// Normals holds x, y, z per triangle. It may be empty.
	Normals []float32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

// Validate checks array shapes and that every index refers to a vertex.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %d vertex values is not a multiple of 3", ErrInvalid, len(m.Vertices))
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalid, len(m.Triangles))
	}
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Triangles) {
		return fmt.Errorf("%w: %d normal values for %d triangles", ErrInvalid, len(m.Normals), m.TriangleCount())
	}
	if uint64(m.TriangleCount()) > math.MaxUint32 {
		return fmt.Errorf("%w: too many triangles", ErrInvalid)
	}
	n := uint64(m.VertexCount())
	for i, v := range m.Triangles {
		if uint64(v) >= n {
			return fmt.Errorf("%w: index %d at position %d is out of range for %d vertices", ErrInvalid, v, i, n)
		}
	}
	return nil
}

// welder builds an indexed mesh from triangle soup.
type welder struct {
	mesh  Mesh
	index map[[3]uint32]uint32
}

func newWelder(triangles int) *welder {
	return &welder{
		mesh: Mesh{
			Vertices:  make([]float32, 0, 3*triangles/2),
			Triangles: make([]uint32, 0, 3*triangles),
			Normals:   make([]float32, 0, 3*triangles),
		},
		index: make(map[[3]uint32]uint32, triangles/2),
	}
}

// corner adds a triangle corner, reusing an existing vertex when its
// position matches bit for bit.
func (w *welder) corner(x, y, z float32) {
	key := [3]uint32{math.Float32bits(x), math.Float32bits(y), math.Float32bits(z)}
	i, ok := w.index[key]
	if !ok {
		i = uint32(len(w.mesh.Vertices) / 3) //nolint:gosec // bounded by the triangle count check
		w.index[key] = i
		w.mesh.Vertices = append(w.mesh.Vertices, x, y, z)
	}
	w.mesh.Triangles = append(w.mesh.Triangles, i)
}

func (w *welder) normal(x, y, z float32) {
	w.mesh.Normals = append(w.mesh.Normals, x, y, z)
}
