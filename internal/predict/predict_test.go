package predict

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/trico/internal/tricotype"
)

func float32Bits(v []float32) []uint32 {
	out := make([]uint32, len(v))
	for i, f := range v {
		out[i] = math.Float32bits(f)
	}
	return out
}

func float64Bits(v []float64) []uint64 {
	out := make([]uint64, len(v))
	for i, f := range v {
		out[i] = math.Float64bits(f)
	}
	return out
}

// sequences returns word sequences that exercise both predictors.
func sequences32(rng *rand.Rand, n int) map[string][]uint32 {
	random := make([]uint32, n)
	smooth := make([]float32, n)
	repeating := make([]uint32, n)
	stride := make([]uint32, n)
	for i := range n {
		random[i] = rng.Uint32()
		smooth[i] = float32(math.Sin(float64(i)*0.01)) * 100
		repeating[i] = uint32(i % 5)
		stride[i] = 1000 + 3*uint32(i)
	}
	return map[string][]uint32{
		"random":    random,
		"smooth":    float32Bits(smooth),
		"repeating": repeating,
		"stride":    stride,
	}
}

func TestRoundTrip32(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	for _, n := range []int{0, 1, 2, 3, 7, 8, 9, 15, 16, 17, 100, 4097} {
		for name, values := range sequences32(rng, n) {
			for _, bits := range [][2]uint{{4, 10}, {0, 0}, {16, 16}, {30, 30}} {
				block := Compress32(values, bits[0], bits[1])
				assert.LessOrEqual(t, len(block), MaxCompressedLen32(n))

				got, err := Decompress32(block)
				require.NoError(t, err, "%s n=%d bits=%v", name, n, bits)
				assert.Equal(t, values, got, "%s n=%d bits=%v", name, n, bits)
			}
		}
	}
}

func TestRoundTrip64(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(13, 17))
	for _, n := range []int{0, 1, 2, 3, 4, 5, 64, 1001} {
		random := make([]uint64, n)
		smooth := make([]float64, n)
		stride := make([]uint64, n)
		for i := range n {
			random[i] = rng.Uint64()
			smooth[i] = math.Cos(float64(i)*0.001) * 1e6
			stride[i] = 1 << 40 * uint64(i)
		}
		for name, values := range map[string][]uint64{
			"random": random,
			"smooth": float64Bits(smooth),
			"stride": stride,
		} {
			for _, bits := range [][2]uint{{20, 20}, {0, 0}, {4, 10}} {
				block := Compress64(values, bits[0], bits[1])
				assert.LessOrEqual(t, len(block), MaxCompressedLen64(n))

				got, err := Decompress64(block)
				require.NoError(t, err, "%s n=%d bits=%v", name, n, bits)
				assert.Equal(t, values, got, "%s n=%d bits=%v", name, n, bits)
			}
		}
	}
}

func TestSingleFloatRoundTrip(t *testing.T) {
	t.Parallel()

	values := float32Bits([]float32{3.14})
	got, err := Decompress32(Compress32(values, DefaultHash1Bits32, DefaultHash2Bits32))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, float32(3.14), math.Float32frombits(got[0]))
}

func TestNaNBitPatternsRoundTrip(t *testing.T) {
	t.Parallel()

	f32 := []uint32{0x7fc00000, 0x7fc00001, 0xffc00000, 0x7f800001, 0x7f800000, 0x80000000, 0}
	got32, err := Decompress32(Compress32(f32, 4, 10))
	require.NoError(t, err)
	assert.Equal(t, f32, got32)

	f64 := []uint64{0x7ff8000000000000, 0x7ff8000000000001, 0xfff0000000000001, 0x8000000000000000}
	got64, err := Decompress64(Compress64(f64, 20, 20))
	require.NoError(t, err)
	assert.Equal(t, f64, got64)
}

func TestGoldenBlock32(t *testing.T) {
	t.Parallel()

	block := Compress32(float32Bits([]float32{1}), 4, 10)
	want := []byte{
		0x25,                   // hash exponents 4 and 10
		0x00, 0x00, 0x00, 0x01, // count
		0x24, 0x92, 0x4C, // code 4 for the value, code 1 padding for the rest
		0x3F, 0x80, 0x00, 0x00, // residual1 == value
		0, 0, 0, 0, 0, 0, 0, // padding residuals
	}
	assert.Equal(t, want, block)
}

func TestGoldenBlock64(t *testing.T) {
	t.Parallel()

	block := Compress64(float64Bits([]float64{1}), 20, 20)
	want := []byte{
		0xAA,
		0x00, 0x00, 0x00, 0x01,
		0x18,
		0x3F, 0xF0, 0, 0, 0, 0, 0, 0,
		0,
	}
	assert.Equal(t, want, block)
}

func TestTrailingZeroResidual32(t *testing.T) {
	t.Parallel()

	// With the top hash bits of x clear, every repeat of x after the first
	// is predicted exactly and stored as code 0 with no residual bytes.
	const x = 0x00ABCDEF
	for n := 1; n <= 2*groupSize32+1; n++ {
		values := make([]uint32, n)
		for i := range values {
			values[i] = x
		}
		block := Compress32(values, 4, 10)

		groups := (n + groupSize32 - 1) / groupSize32
		padding := groups*groupSize32 - n
		assert.Len(t, block, headerSize+groups*codeBytes32+3+padding, "n=%d", n)

		got, err := Decompress32(block)
		require.NoError(t, err, "n=%d", n)
		assert.Equal(t, values, got, "n=%d", n)
	}
}

func TestTrailingZeroResidual64(t *testing.T) {
	t.Parallel()

	const x = 0xABCDEF
	for n := 1; n <= 5; n++ {
		values := make([]uint64, n)
		for i := range values {
			values[i] = x
		}
		block := Compress64(values, 20, 20)

		groups := (n + groupSize64 - 1) / groupSize64
		padding := groups*groupSize64 - n
		assert.Len(t, block, headerSize+groups*codeBytes64+3+padding, "n=%d", n)

		got, err := Decompress64(block)
		require.NoError(t, err, "n=%d", n)
		assert.Equal(t, values, got, "n=%d", n)
	}
}

func TestDecodeIsDrivenByCount(t *testing.T) {
	t.Parallel()

	// The second entry is a code-1 residual of zero, the same bytes as
	// padding. The count says it is data, so it must be decoded.
	block := []byte{
		0x25,
		0x00, 0x00, 0x00, 0x02,
		0x24, 0x92, 0x49, // all codes 1
		0x05, 0x00, // two residuals
		0, 0, 0, 0, 0, 0, // padding
	}
	got, err := Decompress32(block)
	require.NoError(t, err)
	assert.Equal(t, []uint32{5, 5}, got)

	// Padding residual bytes beyond the count are never read.
	got, err = Decompress32(block[:10])
	require.NoError(t, err)
	assert.Equal(t, []uint32{5, 5}, got)
}

func TestHashBitsNormalization(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint(4), NormalizeHashBits(5))
	assert.Equal(t, uint(30), NormalizeHashBits(31))
	assert.Equal(t, uint(30), NormalizeHashBits(1000))
	assert.Equal(t, uint(0), NormalizeHashBits(1))

	values := []uint32{1, 2, 3, 4, 5}
	block := Compress32(values, 99, 31)
	assert.Equal(t, byte(0xFF), block[0])
	got, err := Decompress32(block)
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestStridePredictorIsUsed(t *testing.T) {
	t.Parallel()

	values := make([]uint32, 64)
	for i := range values {
		values[i] = 0x40000000 + uint32(i)*0x1234
	}
	block := Compress32(values, 4, 10)
	// Once the stride table is warm every value costs about one byte plus
	// its code bits; the raw size is four bytes per value.
	assert.Less(t, len(block), 2*len(values))
}

func TestMonotonicCompressionRatio(t *testing.T) {
	t.Parallel()

	const n = 10_000
	coords := make([]float32, n)
	for i := range coords {
		coords[i] = float32(i) * 0.5
	}
	block := Compress32(float32Bits(coords), DefaultHash1Bits32, DefaultHash2Bits32)
	assert.Less(t, len(block), 4*n)

	doubles := make([]float64, n)
	for i := range doubles {
		doubles[i] = float64(i) * 0.25
	}
	block64 := Compress64(float64Bits(doubles), DefaultHash1Bits64, DefaultHash2Bits64)
	assert.Less(t, len(block64), 8*n)
}

func TestDecompressErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		block   []byte
		wantErr error
	}{
		{"empty", nil, tricotype.ErrUnexpectedEOF},
		{"short header", []byte{0x25, 0, 0}, tricotype.ErrUnexpectedEOF},
		{"count without payload", []byte{0x25, 0, 0, 0, 1}, tricotype.ErrCorruptLength},
		{"huge count", []byte{0x25, 0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0}, tricotype.ErrCorruptLength},
		{"missing residual", []byte{0x25, 0, 0, 0, 1, 0x24, 0x92, 0x4C, 0x3F}, tricotype.ErrUnexpectedEOF},
		{"missing second group codes", []byte{
			0x25, 0, 0, 0, 9,
			0x24, 0x92, 0x49, 0, 0, 0, 0, 0, 0, 0, 0,
			0x24,
		}, tricotype.ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decompress32(tt.block)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Decompress64([]byte{0xAA, 0, 0, 0, 3, 0x00})
	require.ErrorIs(t, err, tricotype.ErrCorruptLength)
	_, err = Decompress64([]byte{0xAA, 0, 0, 0, 1, 0x08, 1, 2})
	require.ErrorIs(t, err, tricotype.ErrUnexpectedEOF)
}

func TestTruncatedBlocksNeverPanic(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(21, 22))
	values := sequences32(rng, 37)["smooth"]
	block := Compress32(values, 4, 10)
	for i := range len(block) {
		got, err := Decompress32(block[:i])
		if err == nil {
			assert.Equal(t, values, got, "prefix %d decoded to different values", i)
		}
	}

	values64 := float64Bits([]float64{1.5, 2.5, 3.5, -7})
	block64 := Compress64(values64, 20, 20)
	for i := range len(block64) {
		got, err := Decompress64(block64[:i])
		if err == nil {
			assert.Equal(t, values64, got)
		}
	}
}

func TestLargeTablesStaySparseForSmallBlocks(t *testing.T) {
	t.Parallel()

	// A 2^30 entry table would need gigabytes; a short block must not
	// allocate it.
	block := Compress64([]uint64{42, 43}, 30, 30)
	got, err := Decompress64(block)
	require.NoError(t, err)
	assert.Equal(t, []uint64{42, 43}, got)
}

func BenchmarkCompress32(b *testing.B) {
	values := make([]uint32, 1<<16)
	for i := range values {
		values[i] = math.Float32bits(float32(math.Sin(float64(i) * 0.001)))
	}
	b.ReportAllocs()
	b.SetBytes(int64(4 * len(values)))
	for b.Loop() {
		_ = Compress32(values, DefaultHash1Bits32, DefaultHash2Bits32)
	}
}

func BenchmarkDecompress32(b *testing.B) {
	values := make([]uint32, 1<<16)
	for i := range values {
		values[i] = math.Float32bits(float32(math.Sin(float64(i) * 0.001)))
	}
	block := Compress32(values, DefaultHash1Bits32, DefaultHash2Bits32)
	b.ReportAllocs()
	b.SetBytes(int64(4 * len(values)))
	for b.Loop() {
		if _, err := Decompress32(block); err != nil {
			b.Fatal(err)
		}
	}
}

func TestCount(t *testing.T) {
	t.Parallel()

	n, err := Count(Compress32(make([]uint32, 17), 4, 10))
	require.NoError(t, err)
	assert.Equal(t, 17, n)

	n, err = Count(Compress64(nil, 20, 20))
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = Count([]byte{0x25, 0})
	require.ErrorIs(t, err, tricotype.ErrUnexpectedEOF)
}
