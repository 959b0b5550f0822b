package assign

import (
	"testing"

	"github.com/katalvlaran/spla/typesys"
	"github.com/katalvlaran/spla/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector_UnmaskedAssignsEveryIndex(t *testing.T) {
	out, err := vector.New(typesys.INT, 3)
	require.NoError(t, err)
	require.NoError(t, Vector(out, int64(7), Options{}))

	for i := 0; i < 3; i++ {
		val, ok, err := out.ExtractElement(i)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(7), val)
	}
}

func TestVector_MaskRestrictsWriteSet(t *testing.T) {
	out, err := vector.New(typesys.INT, 3)
	require.NoError(t, err)
	mask, err := vector.New(typesys.INT, 3)
	require.NoError(t, err)
	require.NoError(t, mask.SetElement(1, int64(1), nil))

	require.NoError(t, Vector(out, int64(9), Options{Mask: mask}))

	_, ok, err := out.ExtractElement(0)
	require.NoError(t, err)
	assert.False(t, ok)

	val, ok, err := out.ExtractElement(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(9), val)
}

func TestVector_MaskComplementInvertsWriteSet(t *testing.T) {
	out, err := vector.New(typesys.INT, 3)
	require.NoError(t, err)
	mask, err := vector.New(typesys.INT, 3)
	require.NoError(t, err)
	require.NoError(t, mask.SetElement(1, int64(1), nil))

	require.NoError(t, Vector(out, int64(9), Options{Mask: mask, MaskComplement: true}))

	_, ok, err := out.ExtractElement(1)
	require.NoError(t, err)
	assert.False(t, ok)

	val, ok, err := out.ExtractElement(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(9), val)
}

func TestVector_ReplaceClearsFirst(t *testing.T) {
	out, err := vector.New(typesys.INT, 3)
	require.NoError(t, err)
	require.NoError(t, out.SetElement(2, int64(100), nil))

	require.NoError(t, Vector(out, int64(1), Options{Replace: true}))

	val, ok, err := out.ExtractElement(2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), val, "Replace clears before the new write, not after")
}

func TestVector_AccumulatorCombinesWithExisting(t *testing.T) {
	out, err := vector.New(typesys.INT, 2)
	require.NoError(t, err)
	require.NoError(t, out.SetElement(0, int64(3), nil))

	require.NoError(t, Vector(out, int64(4), Options{Accumulator: typesys.PlusInt}))

	val, ok, err := out.ExtractElement(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(7), val)
}

func TestVector_SelectorSkipsWriteWhenFalse(t *testing.T) {
	out, err := vector.New(typesys.INT, 2)
	require.NoError(t, err)
	isPositive, err := typesys.MakeSelectorOp("is_positive", typesys.INT, "uchar is_positive(long v){return v>0;}",
		func(v interface{}) bool { return v.(int64) > 0 })
	require.NoError(t, err)

	require.NoError(t, Vector(out, int64(-1), Options{Selector: isPositive}))
	_, ok, err := out.ExtractElement(0)
	require.NoError(t, err)
	assert.False(t, ok)
}
