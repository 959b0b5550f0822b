package decoration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toyTransitions wires a trivial Dok<->Coo<->Dense triangle over
// map[int]int / [][2]int / []int representations, enough to exercise the
// cache machinery without depending on the real matrix/vector formats.
func toyTransitions() (TransitionTable, CostTable) {
	tt := TransitionTable{}
	ct := CostTable{}

	tt.Register(Dok, Coo, func(src interface{}, _ interface{}) (interface{}, error) {
		m := src.(map[int]int)
		var pairs [][2]int
		for k, v := range m {
			pairs = append(pairs, [2]int{k, v})
		}
		return pairs, nil
	})
	ct.SetCost(Dok, Coo, 1)

	tt.Register(Coo, Dok, func(src interface{}, _ interface{}) (interface{}, error) {
		pairs := src.([][2]int)
		m := make(map[int]int, len(pairs))
		for _, p := range pairs {
			m[p[0]] = p[1]
		}
		return m, nil
	})
	ct.SetCost(Coo, Dok, 1)

	tt.Register(Coo, Dense, func(src interface{}, _ interface{}) (interface{}, error) {
		pairs := src.([][2]int)
		out := make([]int, 4)
		for _, p := range pairs {
			out[p[0]] = p[1]
		}
		return out, nil
	})
	ct.SetCost(Coo, Dense, 5)

	tt.Register(Dok, Dense, func(src interface{}, _ interface{}) (interface{}, error) {
		m := src.(map[int]int)
		out := make([]int, 4)
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	})
	ct.SetCost(Dok, Dense, 10) // pricier direct path, for tie-break tests

	return tt, ct
}

func TestCache_GetOrBuild_PicksCheapestSource(t *testing.T) {
	tt, ct := toyTransitions()
	c := NewCache(tt, ct)
	c.Write(Dok, map[int]int{0: 5, 2: 9})
	_, err := c.GetOrBuild(Coo, nil) // populate the cheaper intermediate format
	require.NoError(t, err)

	dense, err := c.GetOrBuild(Dense, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 0, 9, 0}, dense)
}

func TestCache_GetOrBuild_FallsBackToOnlyValidSource(t *testing.T) {
	tt, ct := toyTransitions()
	c := NewCache(tt, ct)
	c.Write(Dok, map[int]int{0: 5, 2: 9})

	dense, err := c.GetOrBuild(Dense, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 0, 9, 0}, dense)
}

func TestCache_WriteInvalidatesOtherFormats(t *testing.T) {
	tt, ct := toyTransitions()
	c := NewCache(tt, ct)
	c.Write(Dok, map[int]int{0: 1})
	_, err := c.GetOrBuild(Coo, nil)
	require.NoError(t, err)
	assert.True(t, c.IsValid(Coo))

	c.Write(Dok, map[int]int{0: 2})
	assert.False(t, c.IsValid(Coo), "writing Dok again must invalidate the previously-built Coo")
	assert.True(t, c.IsValid(Dok))
}

func TestCache_VersionMonotone(t *testing.T) {
	tt, ct := toyTransitions()
	c := NewCache(tt, ct)
	c.Write(Dok, map[int]int{0: 1})
	v1 := c.Version(Dok)
	c.Write(Dok, map[int]int{0: 2})
	v2 := c.Version(Dok)
	assert.Greater(t, v2, v1)
}

func TestCache_GetOrBuild_NoPathFails(t *testing.T) {
	c := NewCache(TransitionTable{}, CostTable{})
	_, err := c.GetOrBuild(Dense, nil)
	assert.Error(t, err)
}

func TestCache_Get_MissingIsNotOk(t *testing.T) {
	c := NewCache(TransitionTable{}, CostTable{})
	_, ok := c.Get(Dok)
	assert.False(t, ok)
}
