// Package vselect implements spec §4.6's v_select_count operation kind:
// count how many of a vector's stored values satisfy a selector predicate.
//
// Grounded on reduce/reduce.go's fold-over-ExtractTuples shape; counting
// is a reduction whose accumulator is an always-associative integer sum,
// so this package mirrors reduce's structure rather than introducing a
// new traversal idiom.
package vselect

import (
	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/registry"
	"github.com/katalvlaran/spla/typesys"
	"github.com/katalvlaran/spla/vector"
)

const Kind registry.Kind = "v_select_count"

// Count writes into out the number of in's stored values for which
// selector.Host returns true.
func Count(out *typesys.Scalar, in *vector.Vector, selector *typesys.OpSelect) error {
	if out == nil || in == nil || selector == nil {
		return codes.New(codes.InvalidArgument, "vselect: Count requires non-nil out, in, selector")
	}
	if !selector.CanApplySelect(in.Type()) {
		return codes.New(codes.InvalidArgument, "vselect: selector's argument type does not match in's element type")
	}
	_, vals, err := in.ExtractTuples()
	if err != nil {
		return err
	}
	var n int64
	for _, v := range vals {
		if selector.Host(v) {
			n++
		}
	}
	out.Set(n)
	return nil
}

type algo struct{}

func (algo) Name() string                 { return "cpu-vselect-count" }
func (algo) Description() string          { return "host-side selector-predicate count over stored vector values" }
func (algo) Select(registry.Context) bool { return true }
func (algo) Execute(c registry.Context) error {
	out, _ := c.Operand["out"].(*typesys.Scalar)
	in, _ := c.Operand["in"].(*vector.Vector)
	selector, _ := c.Operand["selector"].(*typesys.OpSelect)
	return Count(out, in, selector)
}

// Register installs this package's algorithm into reg.
func Register(reg *registry.Registry) {
	reg.Register(Kind, algo{})
}
