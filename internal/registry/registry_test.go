package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/katalvlaran/spla/codes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAlgo struct {
	name      string
	selects   bool
	executed  *[]string
	returnErr error
}

func (f *fakeAlgo) Name() string        { return f.name }
func (f *fakeAlgo) Description() string { return "fake: " + f.name }
func (f *fakeAlgo) Select(Context) bool { return f.selects }
func (f *fakeAlgo) Execute(Context) error {
	*f.executed = append(*f.executed, f.name)
	return f.returnErr
}

func TestDispatch_FirstMatchInRegistrationOrderWins(t *testing.T) {
	var executed []string
	r := New()
	r.Register("mxv", &fakeAlgo{name: "accel", selects: false, executed: &executed})
	r.Register("mxv", &fakeAlgo{name: "cpu-csr", selects: true, executed: &executed})
	r.Register("mxv", &fakeAlgo{name: "cpu-fallback", selects: true, executed: &executed})

	err := r.Dispatch("mxv", Context{Ctx: context.Background()})
	require.NoError(t, err)
	assert.Equal(t, []string{"cpu-csr"}, executed, "only the first matching candidate in registration order should run")
}

func TestDispatch_NoMatchFailsWithNoAlgorithm(t *testing.T) {
	r := New()
	r.Register("mxv", &fakeAlgo{name: "never", selects: false, executed: &[]string{}})

	err := r.Dispatch("mxv", Context{Ctx: context.Background()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, codes.ErrNoAlgorithm))
}

func TestDispatch_EmptyKindFailsWithNoAlgorithm(t *testing.T) {
	r := New()
	err := r.Dispatch("transpose", Context{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, codes.ErrNoAlgorithm))
}

func TestDispatch_PropagatesExecuteError(t *testing.T) {
	boom := codes.New(codes.DeviceError, "kaboom")
	r := New()
	r.Register("mxv", &fakeAlgo{name: "bad", selects: true, executed: &[]string{}, returnErr: boom})

	err := r.Dispatch("mxv", Context{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, codes.ErrDeviceError))
}

func TestCandidates_ReturnsCopyInRegistrationOrder(t *testing.T) {
	r := New()
	r.Register("reduce", &fakeAlgo{name: "a", executed: &[]string{}})
	r.Register("reduce", &fakeAlgo{name: "b", executed: &[]string{}})

	list := r.Candidates("reduce")
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name())
	assert.Equal(t, "b", list[1].Name())

	// mutating the returned slice must not affect the registry.
	list[0] = &fakeAlgo{name: "mutated"}
	assert.Equal(t, "a", r.Candidates("reduce")[0].Name())
}
