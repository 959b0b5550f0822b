package expr

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/registry"
	"github.com/katalvlaran/spla/matrix"
	"github.com/katalvlaran/spla/mxv"
	"github.com/katalvlaran/spla/typesys"
	"github.com/katalvlaran/spla/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *registry.Registry {
	reg := registry.New()
	mxv.Register(reg)
	return reg
}

func TestAddNode_RejectsAfterSubmission(t *testing.T) {
	e := New(newRegistry())
	s, err := typesys.NewScalar(typesys.INT)
	require.NoError(t, err)
	_, err = e.ScalarWriteNode(s, int64(1))
	require.NoError(t, err)

	_, err = Submit(context.Background(), e, SubmitOptions{})
	require.NoError(t, err)

	_, err = e.ScalarWriteNode(s, int64(2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, codes.ErrInvalidState))
}

func TestLink_RejectsSelfLink(t *testing.T) {
	e := New(newRegistry())
	s, err := typesys.NewScalar(typesys.INT)
	require.NoError(t, err)
	id, err := e.ScalarWriteNode(s, int64(1))
	require.NoError(t, err)

	err = e.Link(id, id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, codes.ErrInvalidExpression))
}

func TestLink_RejectsCycle(t *testing.T) {
	e := New(newRegistry())
	s, err := typesys.NewScalar(typesys.INT)
	require.NoError(t, err)
	a, err := e.ScalarWriteNode(s, int64(1))
	require.NoError(t, err)
	b, err := e.ScalarWriteNode(s, int64(2))
	require.NoError(t, err)

	require.NoError(t, e.Link(a, b))
	err = e.Link(b, a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, codes.ErrInvalidExpression))
}

func TestLink_IsIdempotentForDuplicateEdge(t *testing.T) {
	e := New(newRegistry())
	s, err := typesys.NewScalar(typesys.INT)
	require.NoError(t, err)
	a, err := e.ScalarWriteNode(s, int64(1))
	require.NoError(t, err)
	b, err := e.ScalarWriteNode(s, int64(2))
	require.NoError(t, err)

	require.NoError(t, e.Link(a, b))
	require.NoError(t, e.Link(a, b))
	assert.Len(t, e.nodes[a].succs, 1)
}

func TestSubmit_RunsDependentChainInOrder(t *testing.T) {
	e := New(newRegistry())

	a, err := matrix.New(typesys.INT, 2, 2, 0)
	require.NoError(t, err)
	v, err := vector.New(typesys.INT, 2)
	require.NoError(t, err)
	out, err := vector.New(typesys.INT, 2)
	require.NoError(t, err)

	writeA, err := e.MatrixWriteNode(a, []int{0, 1}, []int{0, 1}, []interface{}{int64(2), int64(3)}, Descriptor{})
	require.NoError(t, err)
	writeV, err := e.VectorWriteNode(v, []int{0, 1}, []interface{}{int64(5), int64(7)}, Descriptor{})
	require.NoError(t, err)
	mult, err := e.MxvNode(out, nil, a, v, typesys.PlusInt, typesys.PlusInt, Descriptor{})
	require.NoError(t, err)

	var idxOut []int
	var valsOut []interface{}
	read, err := e.VectorReadNode(out, &idxOut, &valsOut)
	require.NoError(t, err)

	require.NoError(t, e.Link(writeA, mult))
	require.NoError(t, e.Link(writeV, mult))
	require.NoError(t, e.Link(mult, read))

	sub, err := Submit(context.Background(), e, SubmitOptions{})
	require.NoError(t, err)
	require.NoError(t, sub.Wait())
	assert.Equal(t, Evaluated, sub.State())

	require.Len(t, idxOut, 2)
	want := map[int]int64{0: 7, 1: 10}
	for i, idx := range idxOut {
		assert.Equal(t, want[idx], valsOut[i])
	}
}

func TestSubmit_AbortsOnNodeFailureAndSkipsSuccessors(t *testing.T) {
	e := New(newRegistry())

	ranSuccessor := false
	failing, err := e.CallbackNode(func(ctx context.Context) error {
		return errors.New("boom")
	})
	require.NoError(t, err)
	successor, err := e.CallbackNode(func(ctx context.Context) error {
		ranSuccessor = true
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, e.Link(failing, successor))

	sub, err := Submit(context.Background(), e, SubmitOptions{})
	require.NoError(t, err)

	err = sub.Wait()
	require.Error(t, err)
	assert.Equal(t, Aborted, sub.State())
	assert.False(t, ranSuccessor)
}

func TestSubmit_ScalarRoundTrip(t *testing.T) {
	e := New(newRegistry())
	s, err := typesys.NewScalar(typesys.INT)
	require.NoError(t, err)

	write, err := e.ScalarWriteNode(s, int64(42))
	require.NoError(t, err)
	var got interface{}
	read, err := e.ScalarReadNode(s, &got)
	require.NoError(t, err)
	require.NoError(t, e.Link(write, read))

	sub, err := Submit(context.Background(), e, SubmitOptions{})
	require.NoError(t, err)
	require.NoError(t, sub.Wait())
	assert.Equal(t, int64(42), got)
}

func TestSubmit_AbortsOnUnlinkedConcurrentWritesToSameVector(t *testing.T) {
	e := New(newRegistry())
	v, err := vector.New(typesys.INT, 2)
	require.NoError(t, err)

	_, err = e.VectorWriteNode(v, []int{0}, []interface{}{int64(1)}, Descriptor{})
	require.NoError(t, err)
	_, err = e.VectorWriteNode(v, []int{1}, []interface{}{int64(2)}, Descriptor{})
	require.NoError(t, err)

	sub, err := Submit(context.Background(), e, SubmitOptions{})
	require.NoError(t, err)
	err = sub.Wait()
	require.Error(t, err)
	assert.True(t, errors.Is(err, codes.ErrInvalidExpression))
	assert.Equal(t, Aborted, sub.State())

	idx, _, extractErr := v.ExtractTuples()
	require.NoError(t, extractErr)
	assert.Empty(t, idx)
}

func TestSubmit_RejectsWhenNotInDefaultState(t *testing.T) {
	e := New(newRegistry())
	s, err := typesys.NewScalar(typesys.INT)
	require.NoError(t, err)
	_, err = e.ScalarWriteNode(s, int64(1))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	sub, err := Submit(ctx, e, SubmitOptions{})
	require.NoError(t, err)
	require.NoError(t, sub.Wait())

	_, err = Submit(ctx, e, SubmitOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, codes.ErrInvalidState))
}
