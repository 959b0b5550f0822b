// impl_identity.go — implementation of the Identity() constructor.
//
// Contract:
//   - m must be square (else ErrDimensionMismatch).
//   - Diagonal entries are cfg.valueFn(cfg.rng), written in ascending
//     index order.
//
// Complexity: O(min(nrows,ncols)) time, O(1) extra space.
package builder

import (
	"fmt"

	"github.com/katalvlaran/spla/matrix"
)

// Identity returns a MatrixConstructor that fills m's diagonal with
// cfg.valueFn(cfg.rng). m must be square.
func Identity() MatrixConstructor {
	return func(m *matrix.Matrix, cfg *builderConfig) error {
		if m.NRows() != m.NCols() {
			return wrapSentinel(MethodIdentity, fmt.Sprintf("matrix must be square, got %dx%d", m.NRows(), m.NCols()), ErrDimensionMismatch)
		}
		for i := 0; i < m.NRows(); i++ {
			if err := m.SetElement(i, i, cfg.valueFn(cfg.rng), nil); err != nil {
				return fmt.Errorf("%s: SetElement(%d,%d): %w", MethodIdentity, i, i, err)
			}
		}
		return nil
	}
}
