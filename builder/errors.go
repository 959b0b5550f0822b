// errors.go — sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables (package-level) are exposed.
//   - Callers use errors.Is(err, ErrX) to branch on semantics.
//   - Sentinels are never wrapped with formatted strings at definition site;
//     implementations attach context via wrapSentinel (%w-wrapping).
//   - Constructors never panic at runtime; validation panics are confined
//     to option constructors (WithX...).
package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewVertices indicates that a numeric parameter (dim, rows, cols)
// is smaller than the allowed minimum for the requested constructor.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates that a probability value is outside
// the closed interval [0,1]. Covers RandomSparse(p).
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor requires a
// non-nil *rand.Rand in the resolved builderConfig (WithSeed/WithRand).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrDimensionMismatch indicates a constructor's shape requirements are
// incompatible with the target matrix/vector's declared dimensions.
var ErrDimensionMismatch = errors.New("builder: dimension mismatch")

// ErrConstructFailed indicates the builder could not assemble the
// requested topology (e.g. a nil constructor).
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf wraps an inner error message with the given method
// context, producing "<Method>: <formatted message>".
func builderErrorf(method, format string, args ...interface{}) error {
	inner := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %s", method, inner)
}

// wrapSentinel attaches method context to sentinel while preserving it
// for errors.Is, producing "<Method>: <message>: <sentinel>".
func wrapSentinel(method, message string, sentinel error) error {
	return fmt.Errorf("%s: %s: %w", method, message, sentinel)
}
