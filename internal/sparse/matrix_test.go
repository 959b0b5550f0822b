package sparse

import (
	"testing"

	"github.com/katalvlaran/spla/internal/decoration"
	"github.com/katalvlaran/spla/typesys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatDokToCoo_SortsRowMajor(t *testing.T) {
	dok := MatDok{
		{Row: 1, Col: 0}: int64(10),
		{Row: 0, Col: 1}: int64(1),
		{Row: 0, Col: 0}: int64(0),
	}
	out, err := MatDokToCoo(dok, nil)
	require.NoError(t, err)
	coo := out.(MatCoo)
	assert.Equal(t, []int{0, 0, 1}, coo.Row)
	assert.Equal(t, []int{0, 1, 0}, coo.Col)
}

func TestMatCooToCsr_CombinesDuplicatesWithAccumulator(t *testing.T) {
	coo := MatCoo{
		Row: []int{0, 0, 1},
		Col: []int{0, 0, 1},
		Val: []interface{}{int64(2), int64(3), int64(9)},
	}
	out, err := MatCooToCsrWithRows(2)(coo, typesys.PlusInt)
	require.NoError(t, err)
	csr := out.(MatCsr)
	assert.Equal(t, []int{0, 1, 2}, csr.RowPtr)
	assert.Equal(t, []int{0, 1}, csr.ColIdx)
	assert.Equal(t, []interface{}{int64(5), int64(9)}, csr.Val)
}

func TestMatCooToCsr_LaterWinsWithoutAccumulator(t *testing.T) {
	coo := MatCoo{
		Row: []int{0, 0},
		Col: []int{0, 0},
		Val: []interface{}{int64(2), int64(3)},
	}
	out, err := MatCooToCsrWithRows(1)(coo, nil)
	require.NoError(t, err)
	csr := out.(MatCsr)
	assert.Equal(t, []interface{}{int64(3)}, csr.Val)
}

func TestMatCsrToCoo_RoundTrips(t *testing.T) {
	csr := MatCsr{RowPtr: []int{0, 1, 2}, ColIdx: []int{0, 1}, Val: []interface{}{int64(5), int64(9)}}
	out, err := MatCsrToCoo(csr, nil)
	require.NoError(t, err)
	coo := out.(MatCoo)
	assert.Equal(t, []int{0, 1}, coo.Row)
	assert.Equal(t, []int{0, 1}, coo.Col)
}

func TestMatrixTransitions_WiredIntoCache(t *testing.T) {
	tt := MatrixTransitions(2, 2)
	ct := MatrixCosts()
	c := decoration.NewCache(tt, ct)
	c.Write(decoration.Dok, MatDok{{Row: 0, Col: 1}: int64(7)})

	// Rebuilds are single-hop and there is no dok->csr edge, so populate
	// the coo intermediate first.
	_, err := c.GetOrBuild(decoration.Coo, nil)
	require.NoError(t, err)
	csrAny, err := c.GetOrBuild(decoration.Csr, nil)
	require.NoError(t, err)
	csr := csrAny.(MatCsr)
	assert.Equal(t, []int{0, 1, 1}, csr.RowPtr)
	assert.Equal(t, []int{1}, csr.ColIdx)
}

func TestMatDenseToDok_OnlyPresentCells(t *testing.T) {
	d := NewMatDense(2, 2)
	d.Val[1][1] = int64(4)
	d.Present[1][1] = true
	out, err := MatDenseToDok(d, nil)
	require.NoError(t, err)
	dok := out.(MatDok)
	assert.Equal(t, MatDok{{Row: 1, Col: 1}: int64(4)}, dok)
}
