// impl_path.go — implementation of the Path() constructor.
//
// Contract:
//   - m must be square with dimension n >= MinPathDim.
//   - Emits entries i -> i+1 for i in [0, n-1).
//
// Complexity: O(n) time, O(1) extra space.
package builder

import (
	"fmt"

	"github.com/katalvlaran/spla/matrix"
)

// Path returns a MatrixConstructor that fills m as the adjacency
// matrix of a directed path, n = m.NRows().
func Path() MatrixConstructor {
	return func(m *matrix.Matrix, cfg *builderConfig) error {
		n := m.NRows()
		if m.NCols() != n {
			return wrapSentinel(MethodPath, fmt.Sprintf("matrix must be square, got %dx%d", n, m.NCols()), ErrDimensionMismatch)
		}
		if err := validateMin(MethodPath, n, MinPathDim); err != nil {
			return err
		}
		for i := 0; i < n-1; i++ {
			if err := m.SetElement(i, i+1, cfg.valueFn(cfg.rng), nil); err != nil {
				return fmt.Errorf("%s: SetElement(%d,%d): %w", MethodPath, i, i+1, err)
			}
		}
		return nil
	}
}
