// constants.go defines shared constants used by matrix/vector builders,
// ensuring consistent defaults and validation across all topology
// constructors.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants — used to prefix errors with constructor name.
//-----------------------------------------------------------------------------

const (
	MethodIdentity     = "Identity"
	MethodDiagonal     = "Diagonal"
	MethodCycle        = "Cycle"
	MethodPath         = "Path"
	MethodStar         = "Star"
	MethodWheel        = "Wheel"
	MethodComplete     = "Complete"
	MethodBipartite    = "Bipartite"
	MethodGrid         = "Grid"
	MethodRandomSparse = "RandomSparse"
)

//-----------------------------------------------------------------------------
// Minimum Dimensions
//-----------------------------------------------------------------------------

// MinCycleDim is the smallest meaningful size for a cycle topology: a
// cycle of fewer than 3 indices cannot form a ring without a self-loop
// or a repeated edge.
const MinCycleDim = 3

// MinPathDim is the smallest meaningful size for a simple path.
const MinPathDim = 2

// MinStarDim is the smallest meaningful size for a star topology (one
// center plus at least one leaf).
const MinStarDim = 2

// MinWheelDim is the smallest meaningful size for a wheel topology (a
// cycle of at least 3 plus one hub).
const MinWheelDim = 4

// MinGridDim is the smallest allowed dimension (rows or cols) for a
// 2D grid.
const MinGridDim = 1

// MinPartitionDim is the smallest allowed size for either side of a
// bipartite block.
const MinPartitionDim = 1

//-----------------------------------------------------------------------------
// Default Values and Probability Bounds
//-----------------------------------------------------------------------------

// DefaultElementValue is the value assigned to each generated entry
// when no custom ValueFn is provided.
const DefaultElementValue int64 = 1

// MinProbability is the lower bound for RandomSparse's p parameter.
const MinProbability = 0.0

// MaxProbability is the upper bound for RandomSparse's p parameter.
const MaxProbability = 1.0
