// config.go provides internal configuration types for matrix/vector
// constructors. It centralizes common settings — random number
// generator and element-value distribution — to keep builder
// implementations DRY and consistent.
//
// The key type is BuilderOption, a function that mutates a
// builderConfig. Use newBuilderConfig to obtain a config with sensible
// defaults, then apply any number of BuilderOption in order; later
// options override earlier ones.
package builder

import (
	"math/rand"
)

// builderConfig holds the configurable parameters shared by every
// constructor:
//   - rng:     source of randomness (nil means deterministic).
//   - valueFn: function mapping rng -> element value.
//
// builderConfig is not safe for concurrent mutation; each BuildMatrix/
// BuildVector invocation creates its own via newBuilderConfig.
type builderConfig struct {
	rng     *rand.Rand
	valueFn ValueFn
}

// newBuilderConfig returns a builderConfig initialized with defaults,
// then applies each provided BuilderOption in order.
func newBuilderConfig(opts ...BuilderOption) *builderConfig {
	cfg := &builderConfig{
		rng:     nil,
		valueFn: DefaultValueFn,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
