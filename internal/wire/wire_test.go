package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/trico/internal/tricotype"
)

func TestBufferGrowsByExactDelta(t *testing.T) {
	t.Parallel()

	b := NewBuffer(4)
	_, err := b.Write([]byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 4, b.Cap())

	b.Reserve(13)
	assert.Equal(t, 17, b.Cap())
	require.NoError(t, b.WriteByte(5))
	b.WriteUint32(0x01020304)
	b.WriteBlock([]byte{9, 9, 9, 9})
	assert.Equal(t, 17, b.Cap(), "appends inside a reservation must not reallocate")
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 1, 2, 3, 4, 0, 0, 0, 4, 9, 9, 9, 9}, b.Bytes())
}

func TestBufferReserveNoopWhenRoomAvailable(t *testing.T) {
	t.Parallel()

	b := NewBuffer(64)
	b.Reserve(10)
	assert.Equal(t, 64, b.Cap())

	neg := NewBuffer(-5)
	assert.Equal(t, 0, neg.Cap())
}

func TestCursorFields(t *testing.T) {
	t.Parallel()

	c := NewCursor([]byte{7, 0, 0, 1, 0, 0xAA, 0xBB})
	v, err := c.Byte()
	require.NoError(t, err)
	assert.Equal(t, byte(7), v)

	peek, err := c.PeekUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(256), peek)
	assert.Equal(t, 1, c.Offset(), "peek must not consume")

	u, err := c.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(256), u)

	rest, err := c.Next(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, rest)
	assert.True(t, c.Exhausted())

	_, err = c.Byte()
	require.ErrorIs(t, err, tricotype.ErrUnexpectedEOF)
	_, err = c.Uint32()
	require.ErrorIs(t, err, tricotype.ErrUnexpectedEOF)
	_, err = c.Next(1)
	require.ErrorIs(t, err, tricotype.ErrUnexpectedEOF)
}

func TestCursorBlock(t *testing.T) {
	t.Parallel()

	b := NewBuffer(0)
	b.WriteBlock([]byte("abc"))
	b.WriteBlock(nil)

	c := NewCursor(b.Bytes())
	p, err := c.Block()
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), p)

	p, err = c.Block()
	require.NoError(t, err)
	assert.Empty(t, p)
	assert.True(t, c.Exhausted())
}

func TestCursorBlockErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"truncated length", []byte{0, 0, 1}, tricotype.ErrUnexpectedEOF},
		{"length past end", []byte{0, 0, 0, 5, 1, 2}, tricotype.ErrCorruptLength},
		{"huge length", []byte{0xFF, 0xFF, 0xFF, 0xFF}, tricotype.ErrCorruptLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewCursor(tt.data)
			_, err := c.Block()
			require.ErrorIs(t, err, tt.wantErr)

			c = NewCursor(tt.data)
			require.ErrorIs(t, c.SkipBlock(), tt.wantErr)
		})
	}
}

func TestCursorSkipBlock(t *testing.T) {
	t.Parallel()

	c := NewCursor([]byte{0, 0, 0, 2, 1, 2, 3})
	require.NoError(t, c.SkipBlock())
	assert.Equal(t, 6, c.Offset())
	assert.Equal(t, 1, c.Remaining())
}
