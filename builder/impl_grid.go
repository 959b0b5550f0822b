// impl_grid.go — implementation of the Grid(rows, cols) constructor.
//
// Canonical model: a 2D orthogonal grid with 4-neighborhood, linearized
// row-major into m's index space (index = r*cols+c), m must therefore
// be rows*cols square.
//
// Contract:
//   - rows, cols >= MinGridDim and m.NRows() == m.NCols() == rows*cols.
//   - Emits entries to the right (r,c+1) and bottom (r+1,c) neighbor
//     where they exist, symmetrically (both directions), matching an
//     undirected grid graph's adjacency matrix.
//
// Complexity: O(rows*cols) time, O(1) extra space.
package builder

import (
	"fmt"

	"github.com/katalvlaran/spla/matrix"
)

func gridIndex(r, c, cols int) int { return r*cols + c }

// Grid returns a MatrixConstructor that fills m as the 4-neighborhood
// adjacency matrix of a rows x cols grid with row-major linear indices.
func Grid(rows, cols int) MatrixConstructor {
	return func(m *matrix.Matrix, cfg *builderConfig) error {
		if err := validateMin(MethodGrid, rows, MinGridDim); err != nil {
			return err
		}
		if err := validateMin(MethodGrid, cols, MinGridDim); err != nil {
			return err
		}
		n := rows * cols
		if m.NRows() != n || m.NCols() != n {
			return wrapSentinel(MethodGrid, fmt.Sprintf(
				"matrix must be %dx%d (rows*cols) square, got %dx%d", n, n, m.NRows(), m.NCols(),
			), ErrDimensionMismatch)
		}

		set := func(u, v int) error {
			val := cfg.valueFn(cfg.rng)
			if err := m.SetElement(u, v, val, nil); err != nil {
				return fmt.Errorf("%s: SetElement(%d,%d): %w", MethodGrid, u, v, err)
			}
			if err := m.SetElement(v, u, val, nil); err != nil {
				return fmt.Errorf("%s: SetElement(%d,%d): %w", MethodGrid, v, u, err)
			}
			return nil
		}

		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := gridIndex(r, c, cols)
				if c+1 < cols {
					if err := set(u, gridIndex(r, c+1, cols)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := set(u, gridIndex(r+1, c, cols)); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
}
