// Package vxm implements spec §4.6's vxm operation kind, the symmetric
// counterpart of mxv: out = mask ⊙ (v ×[mult,add] A), i.e.
// out[j] = add_op over i of mult_op(v[i], A[i,j]).
//
// Grounded the same way mxv is (lvlath's bfs frontier-walk idiom), and
// implemented directly on top of mxv.Matrix: vᵀ×A is algebraically
// Aᵀ×v with mult_op's argument order swapped, so this package is a thin
// adapter rather than a second row/column-grouping implementation.
package vxm

import (
	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/registry"
	"github.com/katalvlaran/spla/matrix"
	"github.com/katalvlaran/spla/mxv"
	"github.com/katalvlaran/spla/typesys"
	"github.com/katalvlaran/spla/vector"
)

const Kind registry.Kind = "vxm"

// Options configures one vxm invocation. TransposeA, despite the name,
// refers to spec §4.6's transpose_second descriptor key (vxm's matrix
// operand is its second argument); set it to read a as Aᵀ, which cancels
// the implicit transpose vxm already applies relative to mxv and yields
// out = mask ⊙ (v ×[mult,add] Aᵀ)ᵀ... i.e. plain mxv(A, v).
type Options struct {
	Mask           *vector.Vector
	MaskComplement bool
	Accumulator    *typesys.OpBinary
	TransposeA     bool
}

// Vector writes out = maskᵒᵖᵗ ⊙ (in ×[multOp,addOp] a).
func Vector(out *vector.Vector, in *vector.Vector, a *matrix.Matrix, multOp, addOp *typesys.OpBinary, opts Options) error {
	if multOp == nil {
		return codes.New(codes.InvalidArgument, "vxm: Vector requires a non-nil multOp")
	}
	swapped := &typesys.OpBinary{
		Name:        multOp.Name + "_swapped",
		Arg1:        multOp.Arg2,
		Arg2:        multOp.Arg1,
		Result:      multOp.Result,
		Commutative: multOp.Commutative,
		Host: func(a, b interface{}) interface{} {
			// mxv calls Host(matrixVal, vectorVal); vxm wants
			// multOp(vectorVal, matrixVal), so flip back here.
			return multOp.Host(b, a)
		},
	}
	return mxv.Matrix(out, a, in, swapped, addOp, mxv.Options{
		Mask:           opts.Mask,
		MaskComplement: opts.MaskComplement,
		Accumulator:    opts.Accumulator,
		TransposeA:     !opts.TransposeA,
	})
}

type algo struct{}

func (algo) Name() string                 { return "cpu-vxm" }
func (algo) Description() string          { return "host-side vxm, adapted from mxv via argument-order swap" }
func (algo) Select(registry.Context) bool { return true }
func (algo) Execute(c registry.Context) error {
	out, _ := c.Operand["out"].(*vector.Vector)
	in, _ := c.Operand["in"].(*vector.Vector)
	a, _ := c.Operand["a"].(*matrix.Matrix)
	multOp, _ := c.Operand["mult_op"].(*typesys.OpBinary)
	addOp, _ := c.Operand["add_op"].(*typesys.OpBinary)
	opts, _ := c.Operand["opts"].(Options)
	return Vector(out, in, a, multOp, addOp, opts)
}

// Register installs this package's algorithm into reg.
func Register(reg *registry.Registry) {
	reg.Register(Kind, algo{})
}
