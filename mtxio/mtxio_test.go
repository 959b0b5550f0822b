package mtxio

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/katalvlaran/spla/matrix"
	"github.com/katalvlaran/spla/typesys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseInt(field string) (interface{}, error) {
	v, err := strconv.ParseInt(field, 10, 64)
	return v, err
}

func formatInt(v interface{}) string {
	return strconv.FormatInt(v.(int64), 10)
}

func TestRead_TypedRoundTrip(t *testing.T) {
	src := "% a comment\n3 3 2\n1 2 10\n2 3 20\n"
	m, err := Read(strings.NewReader(src), typesys.INT, 0, parseInt, Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, m.NRows())
	assert.Equal(t, 3, m.NCols())
	v, ok, err := m.ExtractElement(0, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(10), v)
	v, ok, err = m.ExtractElement(1, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(20), v)
}

func TestRead_StructuralIgnoresValues(t *testing.T) {
	src := "2 2 1\n1 2 999\n"
	m, err := Read(strings.NewReader(src), typesys.BOOL, 0, nil, Options{IgnoreValues: true})
	require.NoError(t, err)

	v, ok, err := m.ExtractElement(0, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, BoolTrue, v)
}

func TestRead_ForceUndirectedMirrorsEdges(t *testing.T) {
	src := "2 2 1\n1 2\n"
	m, err := Read(strings.NewReader(src), typesys.BOOL, 0, nil, Options{IgnoreValues: true, ForceUndirected: true})
	require.NoError(t, err)

	_, ok, err := m.ExtractElement(0, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = m.ExtractElement(1, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRead_RemoveSelfLoopsDropsDiagonal(t *testing.T) {
	src := "2 2 2\n1 1\n1 2\n"
	m, err := Read(strings.NewReader(src), typesys.BOOL, 0, nil, Options{IgnoreValues: true, RemoveSelfLoops: true})
	require.NoError(t, err)

	assert.Equal(t, int64(1), m.NVals())
}

func TestRead_RejectsOutOfBoundsIndex(t *testing.T) {
	src := "2 2 1\n1 5\n"
	_, err := Read(strings.NewReader(src), typesys.BOOL, 0, nil, Options{IgnoreValues: true})
	require.Error(t, err)
}

func TestRead_RejectsTypedWithoutParser(t *testing.T) {
	src := "2 2 1\n1 2 10\n"
	_, err := Read(strings.NewReader(src), typesys.INT, 0, nil, Options{})
	require.Error(t, err)
}

func TestWrite_RoundTripsThroughRead(t *testing.T) {
	m, err := matrix.New(typesys.INT, 3, 3, 0)
	require.NoError(t, err)
	require.NoError(t, m.Build([]int{0, 1}, []int{1, 2}, []interface{}{int64(7), int64(9)}, nil))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m, formatInt))

	back, err := Read(&buf, typesys.INT, 0, parseInt, Options{})
	require.NoError(t, err)

	v, ok, err := back.ExtractElement(0, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(7), v)
}

func TestWrite_StructuralOmitsValueColumn(t *testing.T) {
	m, err := matrix.New(typesys.BOOL, 2, 2, 0)
	require.NoError(t, err)
	require.NoError(t, m.Build([]int{0}, []int{1}, []interface{}{true}, nil))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m, nil))
	assert.Equal(t, "2 2 1\n1 2\n", buf.String())
}
