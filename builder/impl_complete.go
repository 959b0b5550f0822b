// impl_complete.go — implementation of the Complete() constructor.
//
// Contract:
//   - m must be square with dimension n >= 1.
//   - Emits every ordered pair (i, j) with i != j: the dense adjacency
//     pattern of K_n excluding the diagonal.
//
// Complexity: O(n^2) time, O(1) extra space.
package builder

import (
	"fmt"

	"github.com/katalvlaran/spla/matrix"
)

const minCompleteDim = 1

// Complete returns a MatrixConstructor that fills m as the dense
// adjacency matrix of K_n (n = m.NRows()), excluding the diagonal.
func Complete() MatrixConstructor {
	return func(m *matrix.Matrix, cfg *builderConfig) error {
		n := m.NRows()
		if m.NCols() != n {
			return wrapSentinel(MethodComplete, fmt.Sprintf("matrix must be square, got %dx%d", n, m.NCols()), ErrDimensionMismatch)
		}
		if err := validateMin(MethodComplete, n, minCompleteDim); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				if err := m.SetElement(i, j, cfg.valueFn(cfg.rng), nil); err != nil {
					return fmt.Errorf("%s: SetElement(%d,%d): %w", MethodComplete, i, j, err)
				}
			}
		}
		return nil
	}
}
