// Package testutil provides deterministic mesh fixtures for tests.
package testutil

import (
	"math"
	"math/rand/v2"
)

// Mesh is an indexed triangle mesh with per-vertex attributes.
type Mesh struct {
	Vertices  []float32 // x, y, z per vertex
	Triangles []uint32  // three vertex indices per triangle
	Normals   []float32 // x, y, z per vertex
	UV        []float32 // u, v per vertex
	Colors    []uint32  // packed RGBA per vertex
}

// VertexCount returns the number of vertices.
func (m Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// TriangleCount returns the number of triangles.
func (m Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

// Grid returns a wavy height field of nx by ny quads, two triangles each.
func Grid(nx, ny int) Mesh {
	var m Mesh
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			x := float64(i) / float64(max(nx, 1))
			y := float64(j) / float64(max(ny, 1))
			z := 0.1 * math.Sin(6*x) * math.Cos(4*y)
			m.Vertices = append(m.Vertices, float32(x), float32(y), float32(z))

			// analytic normal of the height field
			dx := 0.6 * math.Cos(6*x) * math.Cos(4*y)
			dy := -0.4 * math.Sin(6*x) * math.Sin(4*y)
			l := math.Sqrt(dx*dx + dy*dy + 1)
			m.Normals = append(m.Normals, float32(-dx/l), float32(-dy/l), float32(1/l))

			m.UV = append(m.UV, float32(x), float32(y))
			m.Colors = append(m.Colors, uint32(x*255)<<24|uint32(y*255)<<16|0x80<<8|0xFF)
		}
	}
	row := uint32(nx + 1) //nolint:gosec // fixture sizes are small
	for j := range uint32(ny) { //nolint:gosec // fixture sizes are small
		for i := range uint32(nx) { //nolint:gosec // fixture sizes are small
			a := j*row + i
			b, c, d := a+1, a+row, a+row+1
			m.Triangles = append(m.Triangles, a, b, d, a, d, c)
		}
	}
	return m
}

// PerTriangleUV returns one u, v pair per triangle corner of m.
func (m Mesh) PerTriangleUV() []float32 {
	out := make([]float32, 0, 2*len(m.Triangles))
	for _, v := range m.Triangles {
		out = append(out, m.UV[2*v], m.UV[2*v+1])
	}
	return out
}

// FaceNormals returns one unit normal per triangle of m.
func (m Mesh) FaceNormals() []float32 {
	out := make([]float32, 0, len(m.Triangles))
	for t := 0; t < len(m.Triangles); t += 3 {
		a, b, c := m.Triangles[t], m.Triangles[t+1], m.Triangles[t+2]
		var e1, e2 [3]float64
		for k := range 3 {
			e1[k] = float64(m.Vertices[3*b+uint32(k)] - m.Vertices[3*a+uint32(k)]) //nolint:gosec // k < 3
			e2[k] = float64(m.Vertices[3*c+uint32(k)] - m.Vertices[3*a+uint32(k)]) //nolint:gosec // k < 3
		}
		n := [3]float64{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if l == 0 {
			l = 1
		}
		out = append(out, float32(n[0]/l), float32(n[1]/l), float32(n[2]/l))
	}
	return out
}

// Float32s returns n noisy samples of a smooth signal.
func Float32s(seed uint64, n int) []float32 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(float64(i)*0.01)*100 + rng.NormFloat64()*0.01)
	}
	return out
}

// Float64s returns n noisy samples of a smooth signal.
func Float64s(seed uint64, n int) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Cos(float64(i)*0.003)*1e4 + rng.NormFloat64()*1e-6
	}
	return out
}

// Uint32s returns n random values below limit.
func Uint32s(seed uint64, n int, limit uint32) []uint32 {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	out := make([]uint32, n)
	for i := range out {
		out[i] = rng.Uint32N(limit)
	}
	return out
}
