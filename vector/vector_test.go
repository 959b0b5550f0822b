package vector

import (
	"testing"

	"github.com/katalvlaran/spla/typesys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsBadInputs(t *testing.T) {
	_, err := New(nil, 5)
	require.Error(t, err)
	_, err = New(typesys.INT, 0)
	require.Error(t, err)
}

func TestSetElement_ThenExtractElement(t *testing.T) {
	v, err := New(typesys.INT, 10)
	require.NoError(t, err)
	require.NoError(t, v.SetElement(3, int64(42), nil))

	val, ok, err := v.ExtractElement(3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), val)

	_, ok, err = v.ExtractElement(4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetElement_OutOfRange(t *testing.T) {
	v, err := New(typesys.INT, 4)
	require.NoError(t, err)
	err = v.SetElement(10, int64(1), nil)
	require.Error(t, err)
}

func TestSetElement_AccumulatesWithOperator(t *testing.T) {
	v, err := New(typesys.INT, 4)
	require.NoError(t, err)
	require.NoError(t, v.SetElement(1, int64(3), nil))
	require.NoError(t, v.SetElement(1, int64(4), typesys.PlusInt))

	val, ok, err := v.ExtractElement(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(7), val)
}

func TestBuild_CombinesDuplicatesWithAccumulator(t *testing.T) {
	v, err := New(typesys.INT, 4)
	require.NoError(t, err)
	err = v.Build([]int{0, 0, 2}, []interface{}{int64(1), int64(2), int64(9)}, typesys.PlusInt)
	require.NoError(t, err)

	idx, vals, err := v.ExtractTuples()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, idx)
	assert.Equal(t, []interface{}{int64(3), int64(9)}, vals)
}

func TestBuild_RejectsMismatchedLengths(t *testing.T) {
	v, err := New(typesys.INT, 4)
	require.NoError(t, err)
	err = v.Build([]int{0}, []interface{}{int64(1), int64(2)}, nil)
	require.Error(t, err)
}

func TestBuild_RejectsOutOfRangeIndex(t *testing.T) {
	v, err := New(typesys.INT, 4)
	require.NoError(t, err)
	err = v.Build([]int{7}, []interface{}{int64(1)}, nil)
	require.Error(t, err)
}

func TestNVals_ReflectsStoredEntries(t *testing.T) {
	v, err := New(typesys.INT, 5)
	require.NoError(t, err)
	require.NoError(t, v.SetElement(0, int64(1), nil))
	require.NoError(t, v.SetElement(4, int64(2), nil))

	n, err := v.NVals()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestClear_EmptiesVector(t *testing.T) {
	v, err := New(typesys.INT, 5)
	require.NoError(t, err)
	require.NoError(t, v.SetElement(0, int64(1), nil))
	v.Clear()

	n, err := v.NVals()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDup_IsIndependentCopy(t *testing.T) {
	v, err := New(typesys.INT, 5)
	require.NoError(t, err)
	require.NoError(t, v.SetElement(1, int64(5), nil))

	dup, err := v.Dup()
	require.NoError(t, err)
	require.NoError(t, dup.SetElement(2, int64(9), nil))

	_, ok, err := v.ExtractElement(2)
	require.NoError(t, err)
	assert.False(t, ok, "mutating the dup must not affect the original")

	val, ok, err := dup.ExtractElement(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(5), val)
}
