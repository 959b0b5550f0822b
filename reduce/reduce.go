// Package reduce implements spec §4.6's m_reduce and v_reduce operation
// kinds: a two-phase reduction (spec §4.7 — "per-workgroup partial
// reduction, then a host-side final combine with init_scalar") collapsed
// here into a single host-side fold, since the CPU backend has no
// workgroup concept; the public contract (an associative add_op folded
// over every stored value, seeded by init_scalar) is identical either
// way.
package reduce

import (
	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/registry"
	"github.com/katalvlaran/spla/matrix"
	"github.com/katalvlaran/spla/typesys"
	"github.com/katalvlaran/spla/vector"
)

const (
	KindVector registry.Kind = "v_reduce"
	KindMatrix registry.Kind = "m_reduce"
)

// Vector folds op over every stored value of in, seeded by init, into
// out. op must be associative (spec §4.7); commutativity is not
// required since this fold always proceeds in a single, stable
// iteration order.
func Vector(out *typesys.Scalar, in *vector.Vector, op *typesys.OpBinary, init interface{}) error {
	if out == nil || in == nil || op == nil {
		return codes.New(codes.InvalidArgument, "reduce: Vector requires non-nil out, in, op")
	}
	if !op.Associative {
		return codes.New(codes.InvalidArgument, "reduce: Vector requires an associative operator")
	}
	_, vals, err := in.ExtractTuples()
	if err != nil {
		return err
	}
	acc := init
	for _, v := range vals {
		acc = op.Host(acc, v)
	}
	out.Set(acc)
	return nil
}

// Matrix folds op over every stored cell of in, seeded by init, into
// out.
func Matrix(out *typesys.Scalar, in *matrix.Matrix, op *typesys.OpBinary, init interface{}) error {
	if out == nil || in == nil || op == nil {
		return codes.New(codes.InvalidArgument, "reduce: Matrix requires non-nil out, in, op")
	}
	if !op.Associative {
		return codes.New(codes.InvalidArgument, "reduce: Matrix requires an associative operator")
	}
	_, _, vals, err := in.ExtractTuples()
	if err != nil {
		return err
	}
	acc := init
	for _, v := range vals {
		acc = op.Host(acc, v)
	}
	out.Set(acc)
	return nil
}

type vectorAlgo struct{}

func (vectorAlgo) Name() string                 { return "cpu-vector-reduce" }
func (vectorAlgo) Description() string          { return "host-side associative fold over a vector's stored values" }
func (vectorAlgo) Select(registry.Context) bool { return true }
func (vectorAlgo) Execute(c registry.Context) error {
	out, _ := c.Operand["out"].(*typesys.Scalar)
	in, _ := c.Operand["in"].(*vector.Vector)
	op, _ := c.Operand["op"].(*typesys.OpBinary)
	return Vector(out, in, op, c.Operand["init"])
}

type matrixAlgo struct{}

func (matrixAlgo) Name() string                 { return "cpu-matrix-reduce" }
func (matrixAlgo) Description() string          { return "host-side associative fold over a matrix's stored cells" }
func (matrixAlgo) Select(registry.Context) bool { return true }
func (matrixAlgo) Execute(c registry.Context) error {
	out, _ := c.Operand["out"].(*typesys.Scalar)
	in, _ := c.Operand["in"].(*matrix.Matrix)
	op, _ := c.Operand["op"].(*typesys.OpBinary)
	return Matrix(out, in, op, c.Operand["init"])
}

// Register installs this package's algorithms into reg.
func Register(reg *registry.Registry) {
	reg.Register(KindVector, vectorAlgo{})
	reg.Register(KindMatrix, matrixAlgo{})
}
