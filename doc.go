// Package trico provides a lossless compressed container for 3D mesh data.
//
// An archive holds a sequence of typed streams: vertex positions, triangle
// indices, normals, UV coordinates, colors and generic attributes. Each
// stream is split into component planes which are compressed independently.
// Floating-point planes are coded with an FCM/DFCM value predictor that
// works on the raw bit patterns, so NaN payloads and signed zeros survive.
// Integer planes are split into byte planes and compressed with a general
// purpose byte codec (LZ4 by default).
//
// # Writing
//
//	w := trico.NewWriter()
//	if err := w.WriteVertices(positions); err != nil {
//	    return err
//	}
//	if err := w.WriteTriangles(indices); err != nil {
//	    return err
//	}
//	w.Close()
//	data := w.Bytes()
//
// # Reading
//
// Streams are read in the order they were written. The reader exposes the
// type of the pending stream so callers can dispatch on it:
//
//	r, err := trico.NewReader(data)
//	if err != nil {
//	    return err
//	}
//	for r.NextStreamType() != trico.StreamEmpty {
//	    switch r.NextStreamType() {
//	    case trico.StreamVertexFloat:
//	        positions, err = r.ReadVertices()
//	    case trico.StreamTriangleUint32:
//	        indices, err = r.ReadTriangles()
//	    default:
//	        err = r.SkipNextStream()
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//	if err := r.Err(); err != nil {
//	    return err
//	}
//
// # Byte codecs
//
// The byte codec is not recorded in the archive. A Reader must be created
// with the same [WithByteCodec] setting as the Writer that produced the data.
//
// # Format
//
// An archive starts with the magic "Trco" and a big-endian uint32 version.
// Each stream is a tag byte, a big-endian uint32 element count and a fixed
// number of sub-blocks, each prefixed with its big-endian uint32 length.
package trico
