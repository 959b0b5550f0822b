// api.go — thin public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator per entity: BuildMatrix(typ, dim, blockSize, bopts, cons...)
//     and BuildVector(typ, dim, bopts, cons...). Each creates the target,
//     resolves a builderConfig, and runs constructors in order.
//   - All public factories are declared here, implemented in impl_*.go.
//   - Determinism: same inputs/options/seed and constructor order yield
//     an identical matrix/vector.
//   - Safety: constructors never panic; they return sentinel errors.
package builder

import (
	"fmt"

	"github.com/katalvlaran/spla/matrix"
	"github.com/katalvlaran/spla/typesys"
	"github.com/katalvlaran/spla/vector"
)

// MatrixConstructor applies a deterministic fill pattern to m using
// the resolved builderConfig. Implementations must validate parameters
// early, return sentinel errors, and preserve determinism for a given
// config and call order.
type MatrixConstructor func(m *matrix.Matrix, cfg *builderConfig) error

// VectorConstructor is MatrixConstructor's vector-shaped counterpart.
type VectorConstructor func(v *vector.Vector, cfg *builderConfig) error

// BuildMatrix creates a new nrows x ncols matrix.Matrix of the given
// type and block size, resolves a builderConfig from bopts, and
// applies each constructor in order. Any constructor error is wrapped
// with "BuildMatrix: %w" and returned immediately.
func BuildMatrix(typ *typesys.Type, nrows, ncols, blockSize int, bopts []BuilderOption, cons ...MatrixConstructor) (*matrix.Matrix, error) {
	m, err := matrix.New(typ, nrows, ncols, blockSize)
	if err != nil {
		return nil, fmt.Errorf("BuildMatrix: %w", err)
	}
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildMatrix: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(m, cfg); err != nil {
			return nil, fmt.Errorf("BuildMatrix: %w", err)
		}
	}
	return m, nil
}

// BuildVector creates a new dim-length vector.Vector of the given
// type, resolves a builderConfig from bopts, and applies each
// constructor in order.
func BuildVector(typ *typesys.Type, dim int, bopts []BuilderOption, cons ...VectorConstructor) (*vector.Vector, error) {
	v, err := vector.New(typ, dim)
	if err != nil {
		return nil, fmt.Errorf("BuildVector: %w", err)
	}
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildVector: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(v, cfg); err != nil {
			return nil, fmt.Errorf("BuildVector: %w", err)
		}
	}
	return v, nil
}

// =============================================================================
// Matrix topology factories (declarations) - implemented in impl_*.go
// =============================================================================

// Identity fills m's diagonal with cfg.valueFn(cfg.rng), requiring a
// square matrix. Complexity: O(min(nrows,ncols)).
//func Identity() MatrixConstructor

// Diagonal fills m's diagonal with the given values in order.
// Complexity: O(len(values)).
//func Diagonal(values []interface{}) MatrixConstructor

// Cycle fills m as the adjacency matrix of a directed n-cycle (n >= 3):
// entry (i, (i+1)%n) for every i. Complexity: O(n).
//func Cycle() MatrixConstructor

// Path fills m as the adjacency matrix of a directed path (n >= 2):
// entry (i, i+1) for i in [0, n-1). Complexity: O(n).
//func Path() MatrixConstructor

// Star fills m as a star with hub index 0 and n-1 spokes (n >= 2),
// symmetric (hub->leaf and leaf->hub both set). Complexity: O(n).
//func Star() MatrixConstructor

// Wheel fills m as Star()+Cycle() over the non-hub indices (n >= 4).
// Complexity: O(n).
//func Wheel() MatrixConstructor

// Complete fills m as the dense adjacency matrix of K_n, excluding the
// diagonal. Complexity: O(n^2).
//func Complete() MatrixConstructor

// Bipartite fills the n1 x n2 block starting at (rowOffset, colOffset)
// completely dense, for building a complete bipartite adjacency
// pattern inside a larger matrix. Complexity: O(n1*n2).
//func Bipartite(rowOffset, colOffset, n1, n2 int) MatrixConstructor

// Grid fills m as the 4-neighborhood adjacency matrix of an R x C grid
// with row-major linear indices. Complexity: O(R*C).
//func Grid(rows, cols int) MatrixConstructor

// RandomSparse fills m as an Erdős–Rényi-like sparse matrix: every
// off-diagonal entry is present independently with probability p.
// Requires cfg.rng != nil (WithSeed/WithRand). Complexity: O(nrows*ncols).
//func RandomSparse(p float64) MatrixConstructor
