package transpose

import (
	"testing"

	"github.com/katalvlaran/spla/matrix"
	"github.com/katalvlaran/spla/typesys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix_SwapsCoordinates(t *testing.T) {
	in, err := matrix.New(typesys.INT, 2, 3, 0)
	require.NoError(t, err)
	require.NoError(t, in.SetElement(0, 2, int64(9), nil))

	out, err := matrix.New(typesys.INT, 3, 2, 0)
	require.NoError(t, err)
	require.NoError(t, Matrix(out, in, nil, false))

	val, ok, err := out.ExtractElement(2, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(9), val)
}

func TestMatrix_RejectsWrongOutputShape(t *testing.T) {
	in, err := matrix.New(typesys.INT, 2, 3, 0)
	require.NoError(t, err)
	out, err := matrix.New(typesys.INT, 2, 3, 0)
	require.NoError(t, err)
	err = Matrix(out, in, nil, false)
	require.Error(t, err)
}

func TestMatrix_MaskFiltersTransposedPositions(t *testing.T) {
	in, err := matrix.New(typesys.INT, 2, 2, 0)
	require.NoError(t, err)
	require.NoError(t, in.SetElement(0, 1, int64(5), nil))
	require.NoError(t, in.SetElement(1, 0, int64(7), nil))

	mask, err := matrix.New(typesys.INT, 2, 2, 0)
	require.NoError(t, err)
	require.NoError(t, mask.SetElement(1, 0, int64(1), nil)) // only allow output (1,0)

	out, err := matrix.New(typesys.INT, 2, 2, 0)
	require.NoError(t, err)
	require.NoError(t, Matrix(out, in, mask, false))

	_, ok, err := out.ExtractElement(0, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	val, ok, err := out.ExtractElement(1, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(7), val)
}

func TestMatrix_MaskComplementInvertsFilter(t *testing.T) {
	in, err := matrix.New(typesys.INT, 2, 2, 0)
	require.NoError(t, err)
	require.NoError(t, in.SetElement(0, 1, int64(5), nil))
	require.NoError(t, in.SetElement(1, 0, int64(7), nil))

	mask, err := matrix.New(typesys.INT, 2, 2, 0)
	require.NoError(t, err)
	require.NoError(t, mask.SetElement(1, 0, int64(1), nil))

	out, err := matrix.New(typesys.INT, 2, 2, 0)
	require.NoError(t, err)
	require.NoError(t, Matrix(out, in, mask, true))

	val, ok, err := out.ExtractElement(0, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(5), val)

	_, ok, err = out.ExtractElement(1, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}
