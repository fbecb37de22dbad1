package main

import (
	"fmt"
	"os"
	"time"

	"github.com/meigma/trico"
	"github.com/meigma/trico/stl"
)

func (c *command) encode() error {
	if err := c.want(2, "in.stl out.trc"); err != nil {
		return err
	}
	in, out := c.args[0], c.args[1]

	start := time.Now()
	mesh, err := stl.ReadFile(in)
	if err != nil {
		return err
	}
	opts, err := c.cfg.options(c.logger)
	if err != nil {
		return err
	}

	w := trico.NewWriter(opts...)
	if err := writeMesh(w, mesh, c.cfg.Double, !c.cfg.SkipNormals); err != nil {
		return fmt.Errorf("encode %s: %w", in, err)
	}
	if err := w.Close(); err != nil {
		return err
	}
	if err := os.WriteFile(out, w.Bytes(), 0o644); err != nil { //nolint:gosec // archives are not secret
		return err
	}

	raw := 4 * (len(mesh.Vertices) + len(mesh.Triangles) + len(mesh.Normals))
	c.logger.Info("encoded",
		"input", in,
		"output", out,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(),
		"raw_bytes", raw,
		"bytes", w.Len(),
		"codec", c.cfg.Codec,
		"elapsed", time.Since(start))
	fmt.Fprintln(c.stdout, w.Digest())
	return nil
}

func writeMesh(w *trico.Writer, mesh *stl.Mesh, double, normals bool) error {
	if double {
		if err := w.WriteVerticesDouble(widen(mesh.Vertices)); err != nil {
			return err
		}
	} else if err := w.WriteVertices(mesh.Vertices); err != nil {
		return err
	}
	if err := w.WriteTriangles(mesh.Triangles); err != nil {
		return err
	}
	if !normals || len(mesh.Normals) == 0 {
		return nil
	}
	if double {
		return w.WriteNormalsDouble(trico.PerTriangle, widen(mesh.Normals))
	}
	return w.WriteNormals(trico.PerTriangle, mesh.Normals)
}

func widen(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

func narrow(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
