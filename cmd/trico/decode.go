package main

import (
	"fmt"
	"math"

	"github.com/meigma/trico"
	"github.com/meigma/trico/internal/platform"
	"github.com/meigma/trico/stl"
)

func (c *command) decode() error {
	if err := c.want(2, "in.trc out.stl"); err != nil {
		return err
	}
	in, out := c.args[0], c.args[1]

	m, err := platform.Open(in)
	if err != nil {
		return err
	}
	defer m.Close()

	opts, err := c.cfg.options(c.logger)
	if err != nil {
		return err
	}
	r, err := trico.NewReader(m.Bytes(), opts...)
	if err != nil {
		return fmt.Errorf("open %s: %w", in, err)
	}
	defer r.Close()

	mesh, err := readMesh(r)
	if err != nil {
		return fmt.Errorf("decode %s: %w", in, err)
	}
	if err := stl.WriteFile(out, mesh); err != nil {
		return err
	}
	c.logger.Info("decoded",
		"input", in,
		"output", out,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(),
		"mapped", m.Mapped())
	return nil
}

// readMesh collects the first vertex, triangle and per-triangle normal
// streams of r. Other streams are skipped.
func readMesh(r *trico.Reader) (*stl.Mesh, error) {
	mesh := &stl.Mesh{}
	var haveVertices, haveTriangles bool
	for {
		var err error
		switch t := r.NextStreamType(); {
		case t == trico.StreamEmpty:
			if err := r.Err(); err != nil {
				return nil, err
			}
			if !haveVertices || !haveTriangles {
				return nil, fmt.Errorf("%w: archive has no vertex or triangle stream", stl.ErrInvalid)
			}
			return mesh, nil
		case t == trico.StreamVertexFloat && !haveVertices:
			mesh.Vertices, err = r.ReadVertices()
			haveVertices = true
		case t == trico.StreamVertexDouble && !haveVertices:
			var v []float64
			v, err = r.ReadVerticesDouble()
			mesh.Vertices = narrow(v)
			haveVertices = true
		case t == trico.StreamTriangleUint32 && !haveTriangles:
			mesh.Triangles, err = r.ReadTriangles()
			haveTriangles = true
		case t == trico.StreamTriangleUint64 && !haveTriangles:
			var v []uint64
			v, err = r.ReadTrianglesLong()
			if err == nil {
				mesh.Triangles, err = narrowIndices(v)
			}
			haveTriangles = true
		case t == trico.StreamNormalPerTriangleFloat && mesh.Normals == nil:
			mesh.Normals, _, err = r.ReadNormals()
		case t == trico.StreamNormalPerTriangleDouble && mesh.Normals == nil:
			var v []float64
			v, _, err = r.ReadNormalsDouble()
			mesh.Normals = narrow(v)
		default:
			err = r.SkipNextStream()
		}
		if err != nil {
			return nil, err
		}
	}
}

func narrowIndices(v []uint64) ([]uint32, error) {
	out := make([]uint32, len(v))
	for i, x := range v {
		if x > math.MaxUint32 {
			return nil, fmt.Errorf("%w: vertex index %d does not fit in STL", stl.ErrInvalid, x)
		}
		out[i] = uint32(x)
	}
	return out, nil
}
