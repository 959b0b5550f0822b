// impl_diagonal.go — implementation of the Diagonal(values) constructor.
//
// Contract:
//   - m must be square and len(values) == m.NRows() (else ErrDimensionMismatch).
//
// Complexity: O(len(values)) time, O(1) extra space.
package builder

import (
	"fmt"

	"github.com/katalvlaran/spla/matrix"
)

// Diagonal returns a MatrixConstructor that writes values[i] at (i, i)
// for each i, ignoring cfg entirely (values are supplied directly).
func Diagonal(values []interface{}) MatrixConstructor {
	return func(m *matrix.Matrix, cfg *builderConfig) error {
		if m.NRows() != m.NCols() {
			return wrapSentinel(MethodDiagonal, fmt.Sprintf("matrix must be square, got %dx%d", m.NRows(), m.NCols()), ErrDimensionMismatch)
		}
		if len(values) != m.NRows() {
			return wrapSentinel(MethodDiagonal, fmt.Sprintf("len(values)=%d does not match dimension %d", len(values), m.NRows()), ErrDimensionMismatch)
		}
		for i, v := range values {
			if err := m.SetElement(i, i, v, nil); err != nil {
				return fmt.Errorf("%s: SetElement(%d,%d): %w", MethodDiagonal, i, i, err)
			}
		}
		return nil
	}
}
