// Package builder assembles matrices and vectors with well-known
// sparsity topologies for tests and benchmarks, mirroring the way a
// graph-topology builder composes constructors over a shared config:
// identity and diagonal matrices, cycles, paths, complete (dense)
// blocks, grids, bipartite blocks, and Erdős–Rényi-style random sparse
// matrices.
//
// The package offers the following key components:
//
//   - Configuration primitives:
//     – BuilderOption: a function that mutates builderConfig before use.
//     – builderConfig: holds the RNG and value-generating function.
//   - Value distributions (ValueFn implementations):
//     – DefaultValueFn:     constant DefaultElementValue.
//     – ConstantIntValueFn, ConstantFloatValueFn: fixed user-provided value.
//     – UniformIntValueFn:  uniform ∼U[min,max] over int64.
//     – UniformFloatValueFn: uniform ∼U[min,max) over float64.
//     – NormalFloatValueFn: Gaussian ∼N(mean,stddev) over float64, unclipped.
//   - Validation helpers:
//     – validateMin:         ensure integer ≥ minimum.
//     – validateProbability: ensure p ∈ [0.0,1.0].
//   - Shared constants:
//     – MinCycleDim, MinPathDim, MinGridDim, MinPartitionDim.
//     – DefaultElementValue, MinProbability, MaxProbability.
//     – MethodCycle, MethodPath, … tokens for wrapSentinel context.
//
// Guarantees:
//
//   - Determinism: same inputs/options/seed and constructor order yield
//     byte-identical matrices/vectors.
//   - Fast-fail on invalid option parameters via panics in option
//     constructors; constructors themselves never panic, only return
//     sentinel errors.
//   - Fully testable: covered by unit tests in builder/builder_test.go.
package builder
