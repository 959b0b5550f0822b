package sparse

import (
	"testing"

	"github.com/katalvlaran/spla/internal/decoration"
	"github.com/katalvlaran/spla/typesys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVecDokToCoo_SortsByIndex(t *testing.T) {
	dok := VecDok{2: int64(20), 0: int64(0), 1: int64(10)}
	out, err := VecDokToCoo(dok, nil)
	require.NoError(t, err)
	coo := out.(VecCoo)
	assert.Equal(t, []int{0, 1, 2}, coo.Idx)
	assert.Equal(t, []interface{}{int64(0), int64(10), int64(20)}, coo.Val)
}

func TestVecCoo_RoundTripsThroughDok(t *testing.T) {
	dok := VecDok{3: int64(1), 5: int64(2)}
	cooAny, err := VecDokToCoo(dok, nil)
	require.NoError(t, err)
	backAny, err := VecCooToDok(cooAny, nil)
	require.NoError(t, err)
	assert.Equal(t, dok, backAny.(VecDok))
}

func TestVecCooToDense_ScattersPresence(t *testing.T) {
	coo := VecCoo{Idx: []int{1, 3}, Val: []interface{}{int64(7), int64(9)}}
	out, err := VecCooToDenseWithLen(5)(coo, nil)
	require.NoError(t, err)
	d := out.(VecDense)
	assert.False(t, d.Present[0])
	assert.True(t, d.Present[1])
	assert.Equal(t, int64(7), d.Val[1])
	assert.True(t, d.Present[3])
	assert.False(t, d.Present[4])
}

func TestVecDenseToCoo_OnlyPresentSlots(t *testing.T) {
	d := NewVecDense(4)
	d.Val[2] = int64(42)
	d.Present[2] = true
	out, err := VecDenseToCoo(d, nil)
	require.NoError(t, err)
	coo := out.(VecCoo)
	assert.Equal(t, []int{2}, coo.Idx)
	assert.Equal(t, []interface{}{int64(42)}, coo.Val)
}

func TestVectorTransitions_WiredIntoCache(t *testing.T) {
	tt := VectorTransitions(4)
	ct := VectorCosts()
	c := decoration.NewCache(tt, ct)
	c.Write(decoration.Dok, VecDok{0: int64(5), 2: int64(9)})

	dense, err := c.GetOrBuild(decoration.Dense, nil)
	require.NoError(t, err)
	d := dense.(VecDense)
	assert.Equal(t, int64(5), d.Val[0])
	assert.Equal(t, int64(9), d.Val[2])
	assert.False(t, d.Present[1])
}

func TestCombine_UsesAccumulatorWhenProvided(t *testing.T) {
	got := Combine(typesys.PlusInt, int64(3), int64(4))
	assert.Equal(t, int64(7), got)
}

func TestCombine_LaterWinsWithoutAccumulator(t *testing.T) {
	got := Combine(nil, int64(3), int64(4))
	assert.Equal(t, int64(4), got)
}
