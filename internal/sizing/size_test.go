package sizing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOverflow = errors.New("overflow")

func TestToInt(t *testing.T) {
	t.Parallel()

	n, err := ToInt(42, errOverflow)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = ToInt(math.MaxUint64, errOverflow)
	require.ErrorIs(t, err, errOverflow)
}

func TestToUint32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      int
		want    uint32
		wantErr bool
	}{
		{"zero", 0, 0, false},
		{"max", math.MaxUint32, math.MaxUint32, false},
		{"negative", -1, 0, true},
		{"too large", math.MaxUint32 + 1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ToUint32(tt.in, errOverflow)
			if tt.wantErr {
				require.ErrorIs(t, err, errOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMulInt(t *testing.T) {
	t.Parallel()

	p, err := MulInt(3, 7, errOverflow)
	require.NoError(t, err)
	assert.Equal(t, 21, p)

	_, err = MulInt(math.MaxInt, 2, errOverflow)
	require.ErrorIs(t, err, errOverflow)

	_, err = MulInt(-1, 2, errOverflow)
	require.ErrorIs(t, err, errOverflow)
}
