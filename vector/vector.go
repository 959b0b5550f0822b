// Package vector implements spec §3's Vector of dimension N: a partial
// map from {0 ... N-1} to an element type T, backed by a single
// decoration-cached block (vectors do not grid-partition the way
// matrices do — "a single block", per spec §3).
//
// AI-Hints: every mutating method here corresponds to one of spec
// §4.6's vector_write / vector_read operation kinds; the expression
// graph's format kernels call these directly rather than duplicating
// format-conversion logic, the same way lvlath's bfs/dijkstra packages
// call into core.Graph rather than walking adjacency storage themselves.
package vector

import (
	"sync"

	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/blockstore"
	"github.com/katalvlaran/spla/internal/decoration"
	"github.com/katalvlaran/spla/internal/kernel"
	"github.com/katalvlaran/spla/internal/sparse"
	"github.com/katalvlaran/spla/typesys"
)

// Vector is a sparse, mutable, dimension-N container of element type T.
type Vector struct {
	mu    sync.RWMutex
	typ   *typesys.Type
	dim   int
	block *blockstore.Block
}

// New constructs an empty vector of the given element type and
// dimension. dim must be > 0.
func New(typ *typesys.Type, dim int) (*Vector, error) {
	if typ == nil {
		return nil, codes.New(codes.InvalidArgument, "vector: New requires a non-nil type")
	}
	if dim <= 0 {
		return nil, codes.New(codes.InvalidArgument, "vector: dimension must be > 0, got %d", dim)
	}
	block := blockstore.NewBlock(blockstore.Coord{}, 0, 0, dim, 1, sparse.VectorTransitions(dim), sparse.VectorCosts())
	// Seed an empty dok so the first read or write has a valid source format.
	block.Cache.Write(decoration.Dok, sparse.VecDok{})
	return &Vector{typ: typ, dim: dim, block: block}, nil
}

// Type returns the vector's element type.
func (v *Vector) Type() *typesys.Type { return v.typ }

// Dim returns the vector's dimension N.
func (v *Vector) Dim() int { return v.dim }

// NVals returns the number of stored (non-absent) entries in the
// vector's currently authoritative decoration.
func (v *Vector) NVals() (int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	dokAny, err := v.block.Cache.GetOrBuild(decoration.Dok, nil)
	if err != nil {
		return 0, err
	}
	return dokAny.(sparse.VecDok).NVals(), nil
}

// Clear removes every stored value, making the vector empty.
func (v *Vector) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.block.Cache.Write(decoration.Dok, sparse.VecDok{})
}

// Dup returns a deep copy of v, independent of further mutation to v.
func (v *Vector) Dup() (*Vector, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	dokAny, err := v.block.Cache.GetOrBuild(decoration.Dok, nil)
	if err != nil {
		return nil, err
	}
	src := dokAny.(sparse.VecDok)
	cp := make(sparse.VecDok, len(src))
	for k, val := range src {
		cp[k] = val
	}
	out, err := New(v.typ, v.dim)
	if err != nil {
		return nil, err
	}
	out.block.Cache.Write(decoration.Dok, cp)
	return out, nil
}

// SetElement writes a single value at index i, combining with any
// existing value via accumulator if one is given (nil overwrites).
func (v *Vector) SetElement(i int, value interface{}, accumulator *typesys.OpBinary) error {
	if i < 0 || i >= v.dim {
		return codes.New(codes.InvalidArgument, "vector: index %d out of range [0, %d)", i, v.dim)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	dokAny, err := v.block.Cache.GetOrBuild(decoration.Dok, nil)
	if err != nil {
		return err
	}
	src := dokAny.(sparse.VecDok)
	next := make(sparse.VecDok, len(src)+1)
	for k, val := range src {
		next[k] = val
	}
	if existing, ok := next[i]; ok && accumulator != nil {
		next[i] = accumulator.Host(existing, value)
	} else {
		next[i] = value
	}
	v.block.Cache.Write(decoration.Dok, next)
	return nil
}

// ExtractElement reads the value at index i, reporting false if absent.
func (v *Vector) ExtractElement(i int) (interface{}, bool, error) {
	if i < 0 || i >= v.dim {
		return nil, false, codes.New(codes.InvalidArgument, "vector: index %d out of range [0, %d)", i, v.dim)
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	dokAny, err := v.block.Cache.GetOrBuild(decoration.Dok, nil)
	if err != nil {
		return nil, false, err
	}
	val, ok := dokAny.(sparse.VecDok)[i]
	return val, ok, nil
}

// Build replaces the vector's contents from coordinate triples,
// combining duplicate indices with accumulator (nil: later index in the
// input wins), per spec §4.6's vector_write / §4.2's duplicate rule.
func (v *Vector) Build(idx []int, vals []interface{}, accumulator *typesys.OpBinary) error {
	if len(idx) != len(vals) {
		return codes.New(codes.InvalidArgument, "vector: Build requires len(idx) == len(vals), got %d and %d", len(idx), len(vals))
	}
	// Validate every index before scanning into the dok, fanned out in
	// parallel the same way matrix.Build's bounds check is.
	if kernel.ParallelRowsOr(len(idx), func(low, high int) bool {
		for k := low; k < high; k++ {
			if idx[k] < 0 || idx[k] >= v.dim {
				return true
			}
		}
		return false
	}) {
		for _, i := range idx {
			if i < 0 || i >= v.dim {
				return codes.New(codes.InvalidArgument, "vector: Build index %d out of range [0, %d)", i, v.dim)
			}
		}
	}
	dok := make(sparse.VecDok, len(idx))
	for k, i := range idx {
		if existing, ok := dok[i]; ok {
			dok[i] = sparse.Combine(accumulator, existing, vals[k])
		} else {
			dok[i] = vals[k]
		}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.block.Cache.Write(decoration.Dok, dok)
	return nil
}

// ExtractTuples reads back every stored (index, value) pair in
// ascending index order, per spec §4.6's vector_read.
func (v *Vector) ExtractTuples() ([]int, []interface{}, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	cooAny, err := v.block.Cache.GetOrBuild(decoration.Coo, nil)
	if err != nil {
		return nil, nil, err
	}
	coo := cooAny.(sparse.VecCoo)
	idx := make([]int, len(coo.Idx))
	copy(idx, coo.Idx)
	val := make([]interface{}, len(coo.Val))
	copy(val, coo.Val)
	return idx, val, nil
}

// Block exposes the vector's underlying decoration-cached block to
// format-kernel packages (mxv, vxm, reduce, ...) that must read or write
// decorations directly rather than through the coordinate-level API.
func (v *Vector) Block() *blockstore.Block { return v.block }
