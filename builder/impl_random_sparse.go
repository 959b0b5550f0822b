// impl_random_sparse.go — implementation of the RandomSparse(p)
// constructor.
//
// Canonical model: an Erdős–Rényi-like generator over every
// off-diagonal ordered pair (i, j): include it independently with
// probability p.
//
// Contract:
//   - m must be square with dimension n >= 1.
//   - 0 <= p <= 1 (else ErrInvalidProbability).
//   - cfg.rng must be non-nil for 0 < p < 1 (else ErrNeedRandSource);
//     p == 0 and p == 1 are deterministic regardless of rng.
//   - Stable trial order: i asc, then j asc, matching ExtractTuples'
//     own row-major iteration order.
//
// Complexity: O(n^2) Bernoulli trials, O(1) extra space.
package builder

import (
	"fmt"

	"github.com/katalvlaran/spla/matrix"
)

// RandomSparse returns a MatrixConstructor that samples an
// Erdős–Rényi-like sparse matrix over m's off-diagonal entries with
// independent probability p.
func RandomSparse(p float64) MatrixConstructor {
	return func(m *matrix.Matrix, cfg *builderConfig) error {
		n := m.NRows()
		if m.NCols() != n {
			return wrapSentinel(MethodRandomSparse, fmt.Sprintf("matrix must be square, got %dx%d", n, m.NCols()), ErrDimensionMismatch)
		}
		if err := validateProbability(MethodRandomSparse, p); err != nil {
			return err
		}
		if p > 0.0 && p < 1.0 {
			if err := validateRand(MethodRandomSparse, cfg); err != nil {
				return err
			}
		}

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				include := p == 1.0
				if !include && p > 0.0 {
					include = cfg.rng.Float64() < p
				}
				if !include {
					continue
				}
				if err := m.SetElement(i, j, cfg.valueFn(cfg.rng), nil); err != nil {
					return fmt.Errorf("%s: SetElement(%d,%d): %w", MethodRandomSparse, i, j, err)
				}
			}
		}
		return nil
	}
}
