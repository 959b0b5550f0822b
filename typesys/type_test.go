package typesys

import (
	"errors"
	"testing"

	"github.com/katalvlaran/spla/codes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeType_DuplicateIDFails(t *testing.T) {
	resetForTest()
	_, err := MakeType("DUP", 8, "dup", "typedef long T;")
	require.NoError(t, err)

	_, err = MakeType("DUP", 8, "dup", "typedef long T;")
	require.Error(t, err)
	assert.True(t, errors.Is(err, codes.ErrAlreadyExists))
}

func TestFindType_BuiltIns(t *testing.T) {
	resetForTest()
	tp, ok := FindType("INT")
	require.True(t, ok)
	assert.Equal(t, 8, tp.ByteSize)
	assert.Same(t, INT, tp)
}

func TestType_IsStructural(t *testing.T) {
	resetForTest()
	structural, err := MakeType("STRUCT", 0, "struct", "")
	require.NoError(t, err)
	assert.True(t, structural.IsStructural())
	assert.False(t, INT.IsStructural())
}

func TestMakeType_RejectsEmptyID(t *testing.T) {
	_, err := MakeType("", 4, "x", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, codes.ErrInvalidArgument))
}
