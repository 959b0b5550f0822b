// Package blockstore implements the blocked storage layer of spec §3/§4.3:
// matrices are an ordered grid of blocks keyed by (p, q) grid position,
// vectors are the same abstraction with a single-dimension grid. Each
// present block owns its own decoration.Cache; absent blocks are
// logically empty and never materialised.
//
// The grid-of-coordinates indexing is adapted from gridgraph.GridGraph's
// (x, y)-keyed cell grid: InBounds-style bounds checks, deep-copy-on-read
// semantics for exported slices, and a precomputed coordinate space
// replace gridgraph's land/water cell classification with present/absent
// block classification.
package blockstore

import (
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/decoration"
)

// Coord is a block's position in a matrix's 2-D grid, or a vector's
// 1-D grid (Q is always 0 for vectors).
type Coord struct {
	P, Q int
}

// Block owns one grid cell's decoration cache plus the shape of the
// (sub-)region it covers, per spec §3's block-size partitioning rule.
type Block struct {
	Coord      Coord
	RowOffset  int
	ColOffset  int
	Rows       int
	Cols       int
	Cache      *decoration.Cache
}

// NewBlock constructs an empty Block at coord covering the given region,
// wired with the transitions/costs its entity kind uses.
func NewBlock(coord Coord, rowOffset, colOffset, rows, cols int, transitions decoration.TransitionTable, costs decoration.CostTable) *Block {
	return &Block{
		Coord:     coord,
		RowOffset: rowOffset,
		ColOffset: colOffset,
		Rows:      rows,
		Cols:      cols,
		Cache:     decoration.NewCache(transitions, costs),
	}
}

// Storage is a grid of blocks keyed by Coord, used by matrices as a true
// 2-D grid; package vector holds its single Block directly and does not
// use a Storage. Dims are in elements, not blocks; BlockSize partitions
// them per spec §3.
type Storage struct {
	mu        sync.RWMutex
	blocks    map[Coord]*Block
	nrows     int
	ncols     int
	blockSize int
	nvals     int64 // aggregate cached count, adjusted on every SetBlock
}

// DefaultBlockSize matches spec §2's library-configurable default.
const DefaultBlockSize = 10_000_000

// NewStorage constructs an empty grid over an nrows x ncols logical
// space, partitioned into blocks of blockSize (<=0 uses DefaultBlockSize).
func NewStorage(nrows, ncols, blockSize int) (*Storage, error) {
	if nrows <= 0 || ncols <= 0 {
		return nil, codes.New(codes.InvalidArgument, "blockstore: dimensions must be > 0, got %dx%d", nrows, ncols)
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Storage{
		blocks:    make(map[Coord]*Block),
		nrows:     nrows,
		ncols:     ncols,
		blockSize: blockSize,
	}, nil
}

// Dims returns the logical (rows, cols) of the whole storage.
func (s *Storage) Dims() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nrows, s.ncols
}

// BlockSize returns the partition size.
func (s *Storage) BlockSize() int { return s.blockSize }

// GridShape returns how many block rows and block columns the grid
// spans, given the configured block size.
func (s *Storage) GridShape() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ceilDiv(s.nrows, s.blockSize), ceilDiv(s.ncols, s.blockSize)
}

func ceilDiv(n, d int) int {
	if d <= 0 {
		return 0
	}
	return (n + d - 1) / d
}

// BlockBounds returns the region [rowOffset, rowOffset+rows) x
// [colOffset, colOffset+cols) covered by block (p, q), clipped to the
// storage's overall dimensions (the last row/col of blocks may be
// narrower than BlockSize).
func (s *Storage) BlockBounds(p, q int) (rowOffset, colOffset, rows, cols int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rowOffset = p * s.blockSize
	colOffset = q * s.blockSize
	rows = min(s.blockSize, s.nrows-rowOffset)
	cols = min(s.blockSize, s.ncols-colOffset)
	return
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SetBlock replaces the block at (p, q) under the storage lock and
// adjusts the cached nvals aggregate by delta (positive if the
// replacement added stored values, negative if it removed them, relative
// to whatever block occupied that slot before).
func (s *Storage) SetBlock(coord Coord, block *Block, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[coord] = block
	atomic.AddInt64(&s.nvals, delta)
}

// GetBlock returns the block at coord, or nil if absent — absent blocks
// are logically empty, never materialised, per spec §3.
func (s *Storage) GetBlock(coord Coord) *Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blocks[coord]
}

// GetOrCreateBlock returns the block at coord, creating an empty one
// wired with transitions/costs if absent.
func (s *Storage) GetOrCreateBlock(coord Coord, transitions decoration.TransitionTable, costs decoration.CostTable) *Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.blocks[coord]; ok {
		return b
	}
	rowOffset := coord.P * s.blockSize
	colOffset := coord.Q * s.blockSize
	rows := min(s.blockSize, s.nrows-rowOffset)
	cols := min(s.blockSize, s.ncols-colOffset)
	b := NewBlock(coord, rowOffset, colOffset, rows, cols, transitions, costs)
	s.blocks[coord] = b
	return b
}

// Blocks returns every present block in unspecified order, per spec §4.3.
func (s *Storage) Blocks() []*Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Block, 0, len(s.blocks))
	for _, b := range s.blocks {
		out = append(out, b)
	}
	return out
}

// NVals returns the cached aggregate stored-value count.
func (s *Storage) NVals() int64 {
	return atomic.LoadInt64(&s.nvals)
}

// SetNVals overwrites the cached aggregate directly (used when a format
// kernel recomputes the authoritative count from scratch, e.g. after a
// matrix_write that may have collapsed duplicates).
func (s *Storage) SetNVals(n int64) {
	atomic.StoreInt64(&s.nvals, n)
}
