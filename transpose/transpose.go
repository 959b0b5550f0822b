// Package transpose implements spec §4.6's transpose operation kind:
// out = maskᵒᵖᵗ ⊙ Aᵀ. The reference dispatch sketch in spec §4.7 runs
// this on COO by swapping (row, col) and stable-sorting by the new row
// key; ExtractTuples/Build already sort by row-major order, so swapping
// the two coordinate slices before rebuilding achieves the same result
// without a separate COO representation.
//
// Grounded on lvlath's flow package's residual-graph construction (every
// max-flow algorithm there builds a reversed/residual view of the input
// graph as part of its core loop); this package generalizes that
// "flip the edge direction, keep the value" operation to the matrix
// algebra domain.
package transpose

import (
	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/registry"
	"github.com/katalvlaran/spla/matrix"
)

const Kind registry.Kind = "transpose"

// Matrix writes out = in^T, optionally filtered by mask (present-ness
// only, per the Open Question decision in DESIGN.md: mask_complement
// applies symmetrically to the transposed output positions). mask may
// be nil, meaning no filtering.
func Matrix(out, in *matrix.Matrix, mask *matrix.Matrix, maskComplement bool) error {
	if out == nil || in == nil {
		return codes.New(codes.InvalidArgument, "transpose: Matrix requires non-nil out, in")
	}
	if out.NRows() != in.NCols() || out.NCols() != in.NRows() {
		return codes.New(codes.InvalidArgument, "transpose: out shape must be in's transpose: in=%dx%d out=%dx%d", in.NRows(), in.NCols(), out.NRows(), out.NCols())
	}
	rows, cols, vals, err := in.ExtractTuples()
	if err != nil {
		return err
	}

	var maskPresent map[[2]int]bool
	if mask != nil {
		mr, mc, _, err := mask.ExtractTuples()
		if err != nil {
			return err
		}
		maskPresent = make(map[[2]int]bool, len(mr))
		for k := range mr {
			maskPresent[[2]int{mr[k], mc[k]}] = true
		}
	}

	outRows := make([]int, 0, len(rows))
	outCols := make([]int, 0, len(cols))
	outVals := make([]interface{}, 0, len(vals))
	for k := range rows {
		// swapped coordinates: row becomes col, col becomes row.
		tr, tc := cols[k], rows[k]
		if maskPresent != nil {
			present := maskPresent[[2]int{tr, tc}]
			if maskComplement {
				present = !present
			}
			if !present {
				continue
			}
		}
		outRows = append(outRows, tr)
		outCols = append(outCols, tc)
		outVals = append(outVals, vals[k])
	}
	return out.Build(outRows, outCols, outVals, nil)
}

type algo struct{}

func (algo) Name() string                 { return "cpu-transpose" }
func (algo) Description() string          { return "host-side coordinate-swap transpose with optional mask filtering" }
func (algo) Select(registry.Context) bool { return true }
func (algo) Execute(c registry.Context) error {
	out, _ := c.Operand["out"].(*matrix.Matrix)
	in, _ := c.Operand["in"].(*matrix.Matrix)
	mask, _ := c.Operand["mask"].(*matrix.Matrix)
	complement, _ := c.Operand["mask_complement"].(bool)
	return Matrix(out, in, mask, complement)
}

// Register installs this package's algorithm into reg.
func Register(reg *registry.Registry) {
	reg.Register(Kind, algo{})
}
