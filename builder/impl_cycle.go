// impl_cycle.go — implementation of the Cycle() constructor.
//
// Contract:
//   - m must be square with dimension n >= MinCycleDim.
//   - Emits entries in stable order i -> (i+1)%n for i=0..n-1.
//   - Each entry's value is cfg.valueFn(cfg.rng).
//
// Complexity: O(n) time, O(1) extra space.
package builder

import (
	"fmt"

	"github.com/katalvlaran/spla/matrix"
)

// Cycle returns a MatrixConstructor that fills m as the adjacency
// matrix of a directed n-cycle, n = m.NRows().
func Cycle() MatrixConstructor {
	return func(m *matrix.Matrix, cfg *builderConfig) error {
		n := m.NRows()
		if m.NCols() != n {
			return wrapSentinel(MethodCycle, fmt.Sprintf("matrix must be square, got %dx%d", n, m.NCols()), ErrDimensionMismatch)
		}
		if err := validateMin(MethodCycle, n, MinCycleDim); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			if err := m.SetElement(i, j, cfg.valueFn(cfg.rng), nil); err != nil {
				return fmt.Errorf("%s: SetElement(%d,%d): %w", MethodCycle, i, j, err)
			}
		}
		return nil
	}
}
