// impl_bipartite.go — implementation of the Bipartite() constructor.
//
// Contract:
//   - n1, n2 >= MinPartitionDim.
//   - The rowOffset+n1 x colOffset+n2 block must fit inside m.
//   - Fills that block completely dense: every (rowOffset+i, colOffset+j)
//     for i in [0,n1), j in [0,n2), producing a complete bipartite
//     adjacency pattern positioned anywhere inside a larger matrix.
//
// Complexity: O(n1*n2) time, O(1) extra space.
package builder

import (
	"fmt"

	"github.com/katalvlaran/spla/matrix"
)

// Bipartite returns a MatrixConstructor that densely fills the
// n1 x n2 block of m starting at (rowOffset, colOffset).
func Bipartite(rowOffset, colOffset, n1, n2 int) MatrixConstructor {
	return func(m *matrix.Matrix, cfg *builderConfig) error {
		if err := validateMin(MethodBipartite, n1, MinPartitionDim); err != nil {
			return err
		}
		if err := validateMin(MethodBipartite, n2, MinPartitionDim); err != nil {
			return err
		}
		if rowOffset+n1 > m.NRows() || colOffset+n2 > m.NCols() {
			return wrapSentinel(MethodBipartite, fmt.Sprintf(
				"block [%d,%d)x[%d,%d) does not fit in %dx%d matrix",
				rowOffset, rowOffset+n1, colOffset, colOffset+n2, m.NRows(), m.NCols(),
			), ErrDimensionMismatch)
		}
		for i := 0; i < n1; i++ {
			for j := 0; j < n2; j++ {
				r, c := rowOffset+i, colOffset+j
				if err := m.SetElement(r, c, cfg.valueFn(cfg.rng), nil); err != nil {
					return fmt.Errorf("%s: SetElement(%d,%d): %w", MethodBipartite, r, c, err)
				}
			}
		}
		return nil
	}
}
