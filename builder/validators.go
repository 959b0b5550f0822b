// validators.go provides validation helpers enforcing parameter
// contracts in matrix/vector constructors. Each returns a formatted
// error via wrapSentinel (so errors.Is keeps working) when its
// precondition is violated.
package builder

import "fmt"

// validateMin ensures got >= min, returning a method-prefixed error
// wrapping ErrTooFewVertices otherwise.
func validateMin(method string, got, min int) error {
	if got < min {
		return wrapSentinel(method, fmt.Sprintf("parameter must be >= %d, got %d", min, got), ErrTooFewVertices)
	}
	return nil
}

// validateProbability enforces p in [MinProbability, MaxProbability].
func validateProbability(method string, p float64) error {
	if p < MinProbability || p > MaxProbability {
		return wrapSentinel(method, fmt.Sprintf("probability must be in [%.1f,%.1f], got %f", MinProbability, MaxProbability, p), ErrInvalidProbability)
	}
	return nil
}

// validateRand ensures cfg carries a non-nil RNG, required by every
// stochastic constructor.
func validateRand(method string, cfg *builderConfig) error {
	if cfg.rng == nil {
		return wrapSentinel(method, "stochastic constructor requires WithSeed/WithRand", ErrNeedRandSource)
	}
	return nil
}
