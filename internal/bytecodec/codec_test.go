package bytecodec

import (
	"bytes"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/trico/internal/tricotype"
)

func allCodecs() []Codec {
	return []Codec{
		LZ4(),
		Zstd(),
		Zstd(WithZstdLevel(zstd.SpeedBestCompression), WithZstdLowmem(true)),
		Snappy(),
	}
}

func inputs() map[string][]byte {
	rng := rand.New(rand.NewPCG(1, 2))
	random := make([]byte, 10_000)
	for i := range random {
		random[i] = byte(rng.Uint32())
	}
	return map[string][]byte{
		"empty":    {},
		"one":      {42},
		"zeros":    make([]byte, 65_536),
		"repeated": bytes.Repeat([]byte("vertex plane "), 500),
		"random":   random,
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range allCodecs() {
		for name, in := range inputs() {
			t.Run(c.Name()+"/"+name, func(t *testing.T) {
				t.Parallel()

				enc, err := c.Compress(in)
				require.NoError(t, err)
				assert.LessOrEqual(t, len(enc), c.MaxEncodedLen(len(in)))

				got, err := c.Decompress(enc, len(in))
				require.NoError(t, err)
				assert.Equal(t, len(in), len(got))
				assert.True(t, bytes.Equal(in, got))
			})
		}
	}
}

func TestCompressesRedundantInput(t *testing.T) {
	t.Parallel()

	in := make([]byte, 65_536)
	for _, c := range allCodecs() {
		enc, err := c.Compress(in)
		require.NoError(t, err, c.Name())
		assert.Less(t, len(enc), len(in)/10, c.Name())
	}
}

func TestDecompressWrongSize(t *testing.T) {
	t.Parallel()

	in := bytes.Repeat([]byte{1, 2, 3, 4}, 256)
	for _, c := range allCodecs() {
		t.Run(c.Name(), func(t *testing.T) {
			t.Parallel()

			enc, err := c.Compress(in)
			require.NoError(t, err)

			_, err = c.Decompress(enc, len(in)-1)
			require.ErrorIs(t, err, tricotype.ErrDecompression)

			_, err = c.Decompress(enc, len(in)+1)
			require.ErrorIs(t, err, tricotype.ErrDecompression)

			_, err = c.Decompress(enc, 0)
			require.ErrorIs(t, err, tricotype.ErrDecompression)

			_, err = c.Decompress(nil, 16)
			require.ErrorIs(t, err, tricotype.ErrDecompression)
		})
	}
}

func TestDecompressGarbage(t *testing.T) {
	t.Parallel()

	garbage := []byte{0xFF, 0xFE, 0xFD, 0xFC, 0xFB, 0xFA, 0xF9, 0xF8}
	for _, c := range allCodecs() {
		_, err := c.Decompress(garbage, 1024)
		require.ErrorIs(t, err, tricotype.ErrDecompression, c.Name())
	}
}

func TestConcurrentUse(t *testing.T) {
	t.Parallel()

	in := bytes.Repeat([]byte("concurrent plane data "), 1000)
	for _, c := range allCodecs() {
		enc, err := c.Compress(in)
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make(chan error, 16)
		for range 16 {
			wg.Go(func() {
				got, err := c.Decompress(enc, len(in))
				if err == nil && !bytes.Equal(got, in) {
					err = assert.AnError
				}
				errs <- err
			})
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err, c.Name())
		}
	}
}

func TestByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", NameLZ4, false},
		{"lz4", NameLZ4, false},
		{"zstd", NameZstd, false},
		{"snappy", NameSnappy, false},
		{"gzip", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := ByName(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, tricotype.ErrInvalidInput)
				assert.False(t, Valid(tt.name))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Name())
			assert.True(t, Valid(tt.name))
		})
	}

	assert.Equal(t, NameLZ4, Default().Name())
}

func BenchmarkCompress(b *testing.B) {
	in := bytes.Repeat([]byte{0, 0, 1, 0, 0, 2, 0, 0, 3}, 1<<14)
	for _, c := range allCodecs() {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(in)))
			for b.Loop() {
				if _, err := c.Compress(in); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func TestMaxDecodedLen(t *testing.T) {
	t.Parallel()

	in := make([]byte, 1<<20)
	for _, c := range allCodecs() {
		enc, err := c.Compress(in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, c.MaxDecodedLen(len(enc)), len(in), c.Name())
		assert.Positive(t, c.MaxDecodedLen(1<<62), c.Name())
	}
}
