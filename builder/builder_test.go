package builder

import (
	"errors"
	"testing"

	"github.com/katalvlaran/spla/typesys"
	"github.com/katalvlaran/spla/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMatrix_Identity(t *testing.T) {
	m, err := BuildMatrix(typesys.INT, 3, 3, 0, nil, Identity())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			val, ok, err := m.ExtractElement(i, j)
			require.NoError(t, err)
			if i == j {
				require.True(t, ok)
				assert.Equal(t, int64(1), val)
			} else {
				assert.False(t, ok)
			}
		}
	}
}

func TestBuildMatrix_IdentityRejectsNonSquare(t *testing.T) {
	_, err := BuildMatrix(typesys.INT, 2, 3, 0, nil, Identity())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestBuildMatrix_Cycle(t *testing.T) {
	m, err := BuildMatrix(typesys.INT, 4, 4, 0, []BuilderOption{WithConstantInt(7)}, Cycle())
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		val, ok, err := m.ExtractElement(i, (i+1)%4)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(7), val)
	}
	assert.EqualValues(t, 4, m.NVals())
}

func TestBuildMatrix_CycleRejectsTooSmall(t *testing.T) {
	_, err := BuildMatrix(typesys.INT, 2, 2, 0, nil, Cycle())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooFewVertices))
}

func TestBuildMatrix_Path(t *testing.T) {
	m, err := BuildMatrix(typesys.INT, 3, 3, 0, nil, Path())
	require.NoError(t, err)
	assert.EqualValues(t, 2, m.NVals())
	_, ok, err := m.ExtractElement(2, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildMatrix_StarIsSymmetric(t *testing.T) {
	m, err := BuildMatrix(typesys.INT, 4, 4, 0, nil, Star())
	require.NoError(t, err)
	for leaf := 1; leaf < 4; leaf++ {
		out, ok, err := m.ExtractElement(0, leaf)
		require.NoError(t, err)
		require.True(t, ok)
		in, ok, err := m.ExtractElement(leaf, 0)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, out, in)
	}
}

func TestBuildMatrix_WheelHasHubAndRim(t *testing.T) {
	m, err := BuildMatrix(typesys.INT, 5, 5, 0, nil, Wheel())
	require.NoError(t, err)
	// hub spokes: 4 leaves x 2 directions = 8; rim cycle over 4 indices = 4.
	assert.EqualValues(t, 12, m.NVals())
}

func TestBuildMatrix_Complete(t *testing.T) {
	m, err := BuildMatrix(typesys.INT, 3, 3, 0, nil, Complete())
	require.NoError(t, err)
	assert.EqualValues(t, 6, m.NVals())
	_, ok, err := m.ExtractElement(1, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildMatrix_Bipartite(t *testing.T) {
	m, err := BuildMatrix(typesys.INT, 5, 5, 0, nil, Bipartite(0, 2, 2, 3))
	require.NoError(t, err)
	assert.EqualValues(t, 6, m.NVals())
	val, ok, err := m.ExtractElement(1, 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), val)
}

func TestBuildMatrix_BipartiteRejectsOutOfBounds(t *testing.T) {
	_, err := BuildMatrix(typesys.INT, 3, 3, 0, nil, Bipartite(2, 2, 2, 2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestBuildMatrix_Grid(t *testing.T) {
	m, err := BuildMatrix(typesys.INT, 6, 6, 0, nil, Grid(2, 3))
	require.NoError(t, err)
	// interior edges: 2 rows x 2 right-edges + 1 row x 3 bottom-edges = 4+3=7, symmetric => 14
	assert.EqualValues(t, 14, m.NVals())
}

func TestBuildMatrix_GridRejectsMismatchedDimension(t *testing.T) {
	_, err := BuildMatrix(typesys.INT, 5, 5, 0, nil, Grid(2, 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestBuildMatrix_RandomSparseFullProbabilityFillsEveryOffDiagonal(t *testing.T) {
	m, err := BuildMatrix(typesys.INT, 3, 3, 0, nil, RandomSparse(1.0))
	require.NoError(t, err)
	assert.EqualValues(t, 6, m.NVals())
}

func TestBuildMatrix_RandomSparseZeroProbabilityIsEmpty(t *testing.T) {
	m, err := BuildMatrix(typesys.INT, 3, 3, 0, nil, RandomSparse(0.0))
	require.NoError(t, err)
	assert.EqualValues(t, 0, m.NVals())
}

func TestBuildMatrix_RandomSparseRejectsMissingRNG(t *testing.T) {
	_, err := BuildMatrix(typesys.INT, 3, 3, 0, nil, RandomSparse(0.5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNeedRandSource))
}

func TestBuildMatrix_RandomSparseIsDeterministicForFixedSeed(t *testing.T) {
	opts := []BuilderOption{WithSeed(42)}
	m1, err := BuildMatrix(typesys.INT, 5, 5, 0, opts, RandomSparse(0.5))
	require.NoError(t, err)
	m2, err := BuildMatrix(typesys.INT, 5, 5, 0, []BuilderOption{WithSeed(42)}, RandomSparse(0.5))
	require.NoError(t, err)
	assert.Equal(t, m1.NVals(), m2.NVals())
}

func TestBuildVector_RoundTrip(t *testing.T) {
	v, err := BuildVector(typesys.INT, 3, nil, func(vv *vector.Vector, cfg *builderConfig) error {
		return vv.SetElement(1, cfg.valueFn(cfg.rng), nil)
	})
	require.NoError(t, err)
	val, ok, err := v.ExtractElement(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, DefaultElementValue, val)
}
