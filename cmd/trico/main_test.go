package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/trico"
	"github.com/meigma/trico/internal/testutil"
	"github.com/meigma/trico/stl"
)

func writeGridSTL(t *testing.T, dir string) (string, *stl.Mesh) {
	t.Helper()

	grid := testutil.Grid(10, 7)
	mesh := &stl.Mesh{
		Vertices:  grid.Vertices,
		Triangles: grid.Triangles,
		Normals:   grid.FaceNormals(),
	}
	path := filepath.Join(dir, "grid.stl")
	require.NoError(t, stl.WriteFile(path, mesh))

	// Welding on read yields the canonical mesh to compare against.
	canonical, err := stl.ReadFile(path)
	require.NoError(t, err)
	return path, canonical
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		nil,
		{"-codec", "zstd"},
		{"-codec", "snappy", "-concurrency", "4"},
		{"-double"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			in, want := writeGridSTL(t, dir)
			archive := filepath.Join(dir, "grid.trc")
			out := filepath.Join(dir, "out.stl")

			var stdout, stderr bytes.Buffer
			encodeArgs := append(append([]string{"encode"}, args...), in, archive)
			require.NoError(t, run(encodeArgs, &stdout, &stderr), stderr.String())
			assert.True(t, strings.HasPrefix(stdout.String(), "sha256:"))
			assert.Contains(t, stderr.String(), "encoded")

			var decodeArgs []string
			if len(args) > 0 && args[0] == "-codec" {
				decodeArgs = append(decodeArgs, args[:2]...)
			}
			decodeArgs = append(append([]string{"decode"}, decodeArgs...), archive, out)
			require.NoError(t, run(decodeArgs, &stdout, &stderr), stderr.String())

			got, err := stl.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in, _ := writeGridSTL(t, dir)
	archive := filepath.Join(dir, "grid.trc")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"encode", in, archive}, &stdout, &stderr))

	stdout.Reset()
	require.NoError(t, run([]string{"inspect", archive}, &stdout, &stderr))
	out := stdout.String()
	assert.Contains(t, out, "version 0")
	assert.Contains(t, out, "vertex-float")
	assert.Contains(t, out, "triangle-uint32")
	assert.Contains(t, out, "normal-triangle-float")
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	config := filepath.Join(dir, "trico.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`
codec: zstd
float_hash_bits: [8, 12]
concurrency: 2
skip_normals: true
log_level: debug
`), 0o600))

	cfg, err := loadConfig(config)
	require.NoError(t, err)
	assert.Equal(t, "zstd", cfg.Codec)
	assert.Equal(t, []uint{8, 12}, cfg.FloatHashBits)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.True(t, cfg.SkipNormals)

	in, _ := writeGridSTL(t, dir)
	archive := filepath.Join(dir, "grid.trc")
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"encode", "-config", config, in, archive}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "stream written")

	data, err := os.ReadFile(archive)
	require.NoError(t, err)
	r, err := trico.NewReader(data, trico.WithByteCodec(trico.Zstd()))
	require.NoError(t, err)
	var types []trico.StreamType
	for info, err := range r.Streams() {
		require.NoError(t, err)
		types = append(types, info.Type)
	}
	assert.Equal(t, []trico.StreamType{trico.StreamVertexFloat, trico.StreamTriangleUint32}, types)
}

func TestConfigErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown codec", "codec: brotli\n"},
		{"hash bits", "float_hash_bits: [1, 2, 3]\n"},
		{"log level", "log_level: loud\n"},
		{"syntax", "codec: [\n"},
	}
	for _, tt := range tests {
		path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))
		_, err := loadConfig(path)
		require.Error(t, err, tt.name)
	}
}

func TestUsageErrors(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	require.ErrorIs(t, run(nil, &stdout, &stderr), errUsage)
	require.ErrorIs(t, run([]string{"compress"}, &stdout, &stderr), errUsage)
	require.ErrorIs(t, run([]string{"encode", "only-one"}, &stdout, &stderr), errUsage)
	require.ErrorIs(t, run([]string{"inspect"}, &stdout, &stderr), errUsage)
	require.Error(t, run([]string{"encode", "-codec", "gzip", "a", "b"}, &stdout, &stderr))
}

func TestDecodeRejectsNonArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in, _ := writeGridSTL(t, dir)
	var stdout, stderr bytes.Buffer
	err := run([]string{"decode", in, filepath.Join(dir, "out.stl")}, &stdout, &stderr)
	require.ErrorIs(t, err, trico.ErrInvalidFormat)
}
