// Package matrix implements spec §3's Matrix of dimensions N x M: an
// ordered grid of blocks, each owning its own decoration cache, backing
// the GraphBLAS-style algebra this module exposes.
//
// What & Why:
//
//	A Matrix is a mutable container addressed by (row, col); it does not
//	itself implement any algebra (mxv, ewise_add, transpose, ...) — those
//	live in their own packages and dispatch through internal/registry,
//	reading and writing this type's blocks via Storage.
//
// Complexity:
//
//	NRows/NCols/BlockSize run in O(1). SetElement/ExtractElement touch
//	one block's decoration cache, amortised O(1) for dok reads/writes.
//	Build/ExtractTuples are O(nvals) plus the grid's block count.
package matrix

import (
	"sync"

	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/blockstore"
	"github.com/katalvlaran/spla/internal/decoration"
	"github.com/katalvlaran/spla/internal/kernel"
	"github.com/katalvlaran/spla/internal/sparse"
	"github.com/katalvlaran/spla/typesys"
)

// matrixErrorf wraps an underlying error with the offending method and
// coordinates, matching the teacher's denseErrorf convention.
func matrixErrorf(method string, row, col int, err error) error {
	return codes.New(codes.InvalidArgument, "Matrix.%s(%d,%d): %s", method, row, col, err)
}

// Matrix is a sparse, mutable, blocked N x M container of element type T.
type Matrix struct {
	mu      sync.RWMutex
	typ     *typesys.Type
	nrows   int
	ncols   int
	storage *blockstore.Storage
}

// New constructs an empty nrows x ncols matrix of the given element
// type, partitioned into blocks of blockSize (<=0 uses
// blockstore.DefaultBlockSize).
func New(typ *typesys.Type, nrows, ncols, blockSize int) (*Matrix, error) {
	if typ == nil {
		return nil, codes.New(codes.InvalidArgument, "matrix: New requires a non-nil type")
	}
	storage, err := blockstore.NewStorage(nrows, ncols, blockSize)
	if err != nil {
		return nil, err
	}
	return &Matrix{typ: typ, nrows: nrows, ncols: ncols, storage: storage}, nil
}

// Type returns the matrix's element type.
func (m *Matrix) Type() *typesys.Type { return m.typ }

// NRows returns the matrix's row count.
func (m *Matrix) NRows() int { return m.nrows }

// NCols returns the matrix's column count.
func (m *Matrix) NCols() int { return m.ncols }

// Storage exposes the matrix's block grid to format-kernel packages
// (mxv, vxm, reduce, transpose, ewise, assign) that dispatch per-block.
func (m *Matrix) Storage() *blockstore.Storage { return m.storage }

// blockCoordFor locates the grid block and in-block local coordinates
// that own global position (row, col).
func (m *Matrix) blockCoordFor(row, col int) (blockstore.Coord, int, int) {
	bs := m.storage.BlockSize()
	p, q := row/bs, col/bs
	return blockstore.Coord{P: p, Q: q}, row - p*bs, col - q*bs
}

// blockFor returns the block owning (row, col), creating it if absent.
func (m *Matrix) blockFor(row, col int) *blockstore.Block {
	coord, _, _ := m.blockCoordFor(row, col)
	_, _, rows, cols := m.storage.BlockBounds(coord.P, coord.Q)
	block := m.storage.GetOrCreateBlock(coord, sparse.MatrixTransitions(rows, cols), sparse.MatrixCosts())
	if len(block.Cache.Tags()) == 0 {
		// A block created just now has no decoration yet: seed an empty
		// dok so GetOrBuild has a valid source format to start from.
		block.Cache.Write(decoration.Dok, sparse.MatDok{})
	}
	return block
}

// SetElement writes a single value at (row, col), combining with any
// existing value via accumulator if given (nil overwrites).
func (m *Matrix) SetElement(row, col int, value interface{}, accumulator *typesys.OpBinary) error {
	if row < 0 || row >= m.nrows || col < 0 || col >= m.ncols {
		return matrixErrorf("SetElement", row, col, codes.ErrInvalidArgument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	_, localRow, localCol := m.blockCoordFor(row, col)
	block := m.blockFor(row, col)

	dokAny, err := block.Cache.GetOrBuild(decoration.Dok, nil)
	if err != nil {
		return err
	}
	before := dokAny.(sparse.MatDok).NVals()

	src := dokAny.(sparse.MatDok)
	next := make(sparse.MatDok, len(src)+1)
	for k, v := range src {
		next[k] = v
	}
	key := sparse.MatCoord{Row: localRow, Col: localCol}
	if existing, ok := next[key]; ok && accumulator != nil {
		next[key] = accumulator.Host(existing, value)
	} else {
		next[key] = value
	}
	block.Cache.Write(decoration.Dok, next)

	delta := int64(next.NVals() - before)
	m.adjustNVals(delta)
	return nil
}

// adjustNVals applies a signed delta to the storage's cached aggregate
// without touching the block map (SetElement already wrote the block
// directly via its own Cache, so only the counter needs correcting).
func (m *Matrix) adjustNVals(delta int64) {
	if delta == 0 {
		return
	}
	m.storage.SetNVals(m.storage.NVals() + delta)
}

// ExtractElement reads the value at (row, col), reporting false if
// absent.
func (m *Matrix) ExtractElement(row, col int) (interface{}, bool, error) {
	if row < 0 || row >= m.nrows || col < 0 || col >= m.ncols {
		return nil, false, matrixErrorf("ExtractElement", row, col, codes.ErrInvalidArgument)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	coord, localRow, localCol := m.blockCoordFor(row, col)
	block := m.storage.GetBlock(coord)
	if block == nil {
		return nil, false, nil
	}
	dokAny, err := block.Cache.GetOrBuild(decoration.Dok, nil)
	if err != nil {
		return nil, false, err
	}
	val, ok := dokAny.(sparse.MatDok)[sparse.MatCoord{Row: localRow, Col: localCol}]
	return val, ok, nil
}

// Build replaces the matrix's contents from coordinate triples,
// combining duplicates at the same (row, col) with accumulator (nil:
// later triple in the input wins), per spec §4.6's matrix_write.
func (m *Matrix) Build(rows, cols []int, vals []interface{}, accumulator *typesys.OpBinary) error {
	if len(rows) != len(cols) || len(rows) != len(vals) {
		return codes.New(codes.InvalidArgument, "matrix: Build requires equal-length rows/cols/vals, got %d/%d/%d", len(rows), len(cols), len(vals))
	}
	// Validate every coordinate before taking the lock, fanning the scan
	// out across goroutines the same way forGraphBLASGo's Matrix.Build
	// range-partitions its own bounds check (internal/kernel.ParallelRowsOr).
	if kernel.ParallelRowsOr(len(rows), func(low, high int) bool {
		for k := low; k < high; k++ {
			if rows[k] < 0 || rows[k] >= m.nrows || cols[k] < 0 || cols[k] >= m.ncols {
				return true
			}
		}
		return false
	}) {
		for k := range rows {
			if rows[k] < 0 || rows[k] >= m.nrows || cols[k] < 0 || cols[k] >= m.ncols {
				return matrixErrorf("Build", rows[k], cols[k], codes.ErrInvalidArgument)
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	perBlock := make(map[blockstore.Coord]sparse.MatDok)
	for k := range rows {
		r, c := rows[k], cols[k]
		coord, localRow, localCol := m.blockCoordFor(r, c)
		dok, ok := perBlock[coord]
		if !ok {
			dok = sparse.MatDok{}
			perBlock[coord] = dok
		}
		key := sparse.MatCoord{Row: localRow, Col: localCol}
		if existing, ok := dok[key]; ok {
			dok[key] = sparse.Combine(accumulator, existing, vals[k])
		} else {
			dok[key] = vals[k]
		}
	}

	var total int64
	for _, block := range m.storage.Blocks() {
		if _, ok := perBlock[block.Coord]; !ok {
			block.Cache.Write(decoration.Dok, sparse.MatDok{})
		}
	}
	for coord, dok := range perBlock {
		block := m.blockFor(coord.P*m.storage.BlockSize(), coord.Q*m.storage.BlockSize())
		block.Cache.Write(decoration.Dok, dok)
		total += int64(dok.NVals())
	}
	m.storage.SetNVals(total)
	return nil
}

// ExtractTuples reads back every stored (row, col, value) triple across
// every present block, in unspecified block order but row-major order
// within each block, per spec §4.6's matrix_read.
func (m *Matrix) ExtractTuples() ([]int, []int, []interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rows, cols []int
	var vals []interface{}
	for _, block := range m.storage.Blocks() {
		cooAny, err := block.Cache.GetOrBuild(decoration.Coo, nil)
		if err != nil {
			return nil, nil, nil, err
		}
		coo := cooAny.(sparse.MatCoo)
		for k := range coo.Row {
			rows = append(rows, coo.Row[k]+block.RowOffset)
			cols = append(cols, coo.Col[k]+block.ColOffset)
			vals = append(vals, coo.Val[k])
		}
	}
	return rows, cols, vals, nil
}

// NVals returns the cached aggregate stored-value count.
func (m *Matrix) NVals() int64 {
	return m.storage.NVals()
}

// Clear removes every stored value, making the matrix empty.
func (m *Matrix) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	blocks := m.storage.Blocks()
	kernel.ParallelRows(len(blocks), func(low, high int) {
		for k := low; k < high; k++ {
			blocks[k].Cache.Write(decoration.Dok, sparse.MatDok{})
		}
	})
	m.storage.SetNVals(0)
}

// Dup returns a deep copy of m, independent of further mutation to m.
func (m *Matrix) Dup() (*Matrix, error) {
	rows, cols, vals, err := m.ExtractTuples()
	if err != nil {
		return nil, err
	}
	out, err := New(m.typ, m.nrows, m.ncols, m.storage.BlockSize())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return out, nil
	}
	return out, out.Build(rows, cols, vals, nil)
}
