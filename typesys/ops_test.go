package typesys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpBinary_CanApplyBinary(t *testing.T) {
	require.True(t, PlusInt.CanApplyBinary(INT, INT))
	assert.False(t, PlusInt.CanApplyBinary(FLOAT, INT))
}

func TestOpBinary_HostEvaluation(t *testing.T) {
	result := PlusInt.Host(int64(3), int64(4))
	assert.Equal(t, int64(7), result)
}

func TestOpBinary_AssociativeCommutativeFlags(t *testing.T) {
	assert.True(t, PlusInt.Associative)
	assert.True(t, PlusInt.Commutative)
}

func TestOpSelect_CanApplySelect(t *testing.T) {
	isPositive, err := MakeSelectorOp("is_positive", INT, "uchar is_positive(long a){return a>0;}",
		func(v interface{}) bool { return v.(int64) > 0 })
	require.NoError(t, err)
	assert.True(t, isPositive.CanApplySelect(INT))
	assert.True(t, isPositive.Host(int64(5)))
	assert.False(t, isPositive.Host(int64(-5)))
}
