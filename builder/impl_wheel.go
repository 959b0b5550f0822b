// impl_wheel.go — implementation of the Wheel() constructor.
//
// Canonical definition: Wₙ = hub (index 0) + a rim cycle over indices
// 1..n-1, matching Star()+Cycle() composed over the same underlying
// index space.
//
// Contract:
//   - m must be square with dimension n >= MinWheelDim (the rim has
//     n-1 >= 3 indices, a valid cycle size).
//   - Builds the hub spokes via Star() semantics, then closes the rim
//     with entries rim[i] -> rim[(i+1)%ringSize] for the rim index set.
//
// Complexity: O(n) time, O(1) extra space.
package builder

import (
	"fmt"

	"github.com/katalvlaran/spla/matrix"
)

// Wheel returns a MatrixConstructor that fills m as a wheel: hub index
// 0 connected to every rim index, plus a rim cycle over indices 1..n-1.
func Wheel() MatrixConstructor {
	return func(m *matrix.Matrix, cfg *builderConfig) error {
		n := m.NRows()
		if m.NCols() != n {
			return wrapSentinel(MethodWheel, fmt.Sprintf("matrix must be square, got %dx%d", n, m.NCols()), ErrDimensionMismatch)
		}
		if err := validateMin(MethodWheel, n, MinWheelDim); err != nil {
			return err
		}

		if err := Star()(m, cfg); err != nil {
			return fmt.Errorf("%s: hub spokes: %w", MethodWheel, err)
		}

		ringSize := n - 1
		for i := 0; i < ringSize; i++ {
			u := 1 + i
			v := 1 + (i+1)%ringSize
			if err := m.SetElement(u, v, cfg.valueFn(cfg.rng), nil); err != nil {
				return fmt.Errorf("%s: SetElement(%d,%d): %w", MethodWheel, u, v, err)
			}
		}
		return nil
	}
}
