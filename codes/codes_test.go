package codes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesSentinel(t *testing.T) {
	err := New(InvalidArgument, "index %d out of range", 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrAborted))
}

func TestError_WrappedStillMatches(t *testing.T) {
	err := New(NoAlgorithm, "mxv: csr x dense")
	wrapped := fmt.Errorf("expr: node 3 failed: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNoAlgorithm))
}

func TestNewCompileError_CarriesDiagnostics(t *testing.T) {
	err := NewCompileError("typedef float T;", "line 1: unexpected token")
	assert.Equal(t, CompileError, err.Kind)
	assert.Contains(t, err.Error(), "unexpected token")
	assert.True(t, errors.Is(err, ErrCompileError))
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		InvalidArgument: "InvalidArgument",
		Aborted:         "Aborted",
		Kind(999):       "Unknown",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}
