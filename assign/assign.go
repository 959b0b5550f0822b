// Package assign implements spec §4.6's v_assign operation kind: write
// value into every index of a vector selected by an optional mask and
// an optional selector predicate, combined with the existing output via
// accumulator/replace. The selector is tested once, against value
// itself: if it rejects value, nothing is written (Replace still clears
// out first); the mask is the only per-index filter.
package assign

import (
	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/registry"
	"github.com/katalvlaran/spla/typesys"
	"github.com/katalvlaran/spla/vector"
)

const Kind registry.Kind = "v_assign"

// Options configures one v_assign invocation.
type Options struct {
	// Mask, if non-nil, restricts which out indices may be written.
	Mask *vector.Vector
	// MaskComplement treats Mask as "where mask is absent" instead of
	// "where mask is present".
	MaskComplement bool
	// Replace clears out before writing, per spec §4.6's descriptor key.
	Replace bool
	// Selector, if non-nil, filters out's write set to indices whose
	// *new* value (before combining) satisfies the predicate.
	Selector *typesys.OpSelect
	// Accumulator, if non-nil, combines the new value with any existing
	// value at the same index rather than overwriting it.
	Accumulator *typesys.OpBinary
}

// Vector writes value into every index of out allowed by opts, per spec
// §4.6's v_assign.
func Vector(out *vector.Vector, value interface{}, opts Options) error {
	if out == nil {
		return codes.New(codes.InvalidArgument, "assign: Vector requires a non-nil out")
	}
	if opts.Selector != nil && !opts.Selector.CanApplySelect(out.Type()) {
		return codes.New(codes.InvalidArgument, "assign: selector's argument type does not match out's element type")
	}

	var maskPresent map[int]bool
	if opts.Mask != nil {
		idx, _, err := opts.Mask.ExtractTuples()
		if err != nil {
			return err
		}
		maskPresent = make(map[int]bool, len(idx))
		for _, i := range idx {
			maskPresent[i] = true
		}
	}

	if opts.Replace {
		out.Clear()
	}

	if opts.Selector != nil && !opts.Selector.Host(value) {
		return nil
	}

	for i := 0; i < out.Dim(); i++ {
		if maskPresent != nil {
			present := maskPresent[i]
			if opts.MaskComplement {
				present = !present
			}
			if !present {
				continue
			}
		}
		if err := out.SetElement(i, value, opts.Accumulator); err != nil {
			return err
		}
	}
	return nil
}

type algo struct{}

func (algo) Name() string                 { return "cpu-vector-assign" }
func (algo) Description() string          { return "host-side masked/selector-filtered vector assignment" }
func (algo) Select(registry.Context) bool { return true }
func (algo) Execute(c registry.Context) error {
	out, _ := c.Operand["out"].(*vector.Vector)
	value := c.Operand["value"]
	opts, _ := c.Operand["opts"].(Options)
	return Vector(out, value, opts)
}

// Register installs this package's algorithm into reg.
func Register(reg *registry.Registry) {
	reg.Register(Kind, algo{})
}
