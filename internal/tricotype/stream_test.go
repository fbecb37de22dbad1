package tricotype

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubBlocks(t *testing.T) {
	t.Parallel()

	want := map[StreamType]int{
		StreamVertexFloat:             3,
		StreamVertexDouble:            3,
		StreamTriangleUint32:          4,
		StreamTriangleUint64:          8,
		StreamUVPerVertexFloat:        2,
		StreamUVPerVertexDouble:       2,
		StreamUVPerTriangleFloat:      2,
		StreamUVPerTriangleDouble:     2,
		StreamNormalPerVertexFloat:    3,
		StreamNormalPerVertexDouble:   3,
		StreamNormalPerTriangleFloat:  3,
		StreamNormalPerTriangleDouble: 3,
		StreamColorPerVertex:          4,
		StreamColorPerTriangle:        4,
		StreamAttributeFloat:          1,
		StreamAttributeDouble:         1,
		StreamAttributeUint8:          1,
		StreamAttributeUint16:         2,
		StreamAttributeUint32:         4,
		StreamAttributeUint64:         8,
	}
	require.Len(t, want, int(streamTypeCount)-1)
	for s, n := range want {
		assert.True(t, s.Valid(), s.String())
		assert.Equal(t, n, s.SubBlocks(), s.String())
	}
}

func TestTagValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StreamType(1), StreamVertexFloat)
	assert.Equal(t, StreamType(13), StreamColorPerVertex)
	assert.Equal(t, StreamType(20), StreamAttributeUint64)
	assert.False(t, StreamEmpty.Valid())
	assert.False(t, StreamType(21).Valid())
	assert.Equal(t, "unknown", StreamType(200).String())
	assert.Equal(t, Layout{}, StreamType(200).Layout())
}

func TestBindingsAndCategories(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PerTriangle, StreamUVPerTriangleFloat.Binding())
	assert.Equal(t, PerVertex, StreamNormalPerVertexDouble.Binding())
	assert.Equal(t, CategoryColor, StreamColorPerTriangle.Category())
	assert.Equal(t, 6, StreamUVPerTriangleDouble.Layout().Values)
	assert.Equal(t, []StreamType{StreamVertexFloat, StreamVertexDouble}, CategoryVertex.StreamTypes())
	assert.Len(t, CategoryAttribute.StreamTypes(), 6)
	assert.Empty(t, CategoryNone.StreamTypes())
	assert.Equal(t, "per-triangle", PerTriangle.String())
	assert.Equal(t, "normals", CategoryNormal.String())
}

func TestStreamTypeError(t *testing.T) {
	t.Parallel()

	err := error(&StreamTypeError{Op: "ReadVertices", Want: []StreamType{StreamVertexFloat}, Got: StreamTriangleUint32})
	require.ErrorIs(t, err, ErrWrongStreamType)
	assert.Equal(t, "trico: ReadVertices: pending stream is triangle-uint32, want vertex-float", err.Error())

	var typeErr *StreamTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, StreamTriangleUint32, typeErr.Got)

	err = &StreamTypeError{Op: "SkipNextStream", Got: StreamEmpty}
	assert.Equal(t, "trico: SkipNextStream: pending stream is empty", err.Error())
}
