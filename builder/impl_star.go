// impl_star.go — implementation of the Star() constructor.
//
// Contract:
//   - m must be square with dimension n >= MinStarDim.
//   - Hub is fixed at index 0; leaves are indices 1..n-1.
//   - Emits (0, leaf) and (leaf, 0) for every leaf, keeping the spoke
//     symmetric the way an undirected star's adjacency matrix would be.
//
// Complexity: O(n) time, O(1) extra space.
package builder

import (
	"fmt"

	"github.com/katalvlaran/spla/matrix"
)

const starHubIndex = 0

// Star returns a MatrixConstructor that fills m as a symmetric star
// with hub index 0 and n-1 leaves, n = m.NRows().
func Star() MatrixConstructor {
	return func(m *matrix.Matrix, cfg *builderConfig) error {
		n := m.NRows()
		if m.NCols() != n {
			return wrapSentinel(MethodStar, fmt.Sprintf("matrix must be square, got %dx%d", n, m.NCols()), ErrDimensionMismatch)
		}
		if err := validateMin(MethodStar, n, MinStarDim); err != nil {
			return err
		}
		for leaf := 1; leaf < n; leaf++ {
			v := cfg.valueFn(cfg.rng)
			if err := m.SetElement(starHubIndex, leaf, v, nil); err != nil {
				return fmt.Errorf("%s: SetElement(%d,%d): %w", MethodStar, starHubIndex, leaf, err)
			}
			if err := m.SetElement(leaf, starHubIndex, v, nil); err != nil {
				return fmt.Errorf("%s: SetElement(%d,%d): %w", MethodStar, leaf, starHubIndex, err)
			}
		}
		return nil
	}
}
