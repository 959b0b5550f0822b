// Package mxv implements spec §4.6's mxv operation kind:
// out = mask ⊙ (A ×[mult,add] v), with an optional accumulator and the
// transpose_first descriptor key (spec §4.6) letting A be read as Aᵀ
// without materialising a transposed copy first.
//
// Grounded on lvlath's bfs package's frontier-walk idiom (bfs.go's
// walker.enqueueNeighbors loop): a pull-based mxv is structurally the
// same operation as one layer of a frontier walk — for each output row,
// gather the contributions of every column the row touches and fold
// them together — generalized here from "visited yes/no" to an
// arbitrary (mult_op, add_op) semiring over matrix and vector entries.
// The reference dispatch sketch in spec §4.7 runs this per-row on CSR;
// this package reaches the same per-row grouping via ExtractTuples
// rather than requiring a CSR-resident matrix, since every stored format
// (dok, csr, dense) has a direct conversion to COO in this decoration
// cache.
package mxv

import (
	"sort"

	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/registry"
	"github.com/katalvlaran/spla/matrix"
	"github.com/katalvlaran/spla/typesys"
	"github.com/katalvlaran/spla/vector"
)

const Kind registry.Kind = "mxv"

// Options configures one mxv invocation.
type Options struct {
	// Mask, if non-nil, restricts which out indices are written.
	Mask *vector.Vector
	// MaskComplement treats Mask as "where mask is absent".
	MaskComplement bool
	// Accumulator, if non-nil, combines the computed value with out's
	// existing value at the same index instead of overwriting it.
	Accumulator *typesys.OpBinary
	// TransposeA reads a as Aᵀ during the multiply, per spec §4.6's
	// transpose_first descriptor key, without mutating a.
	TransposeA bool
}

// Matrix writes out = maskᵒᵖᵗ ⊙ (a ×[multOp,addOp] in), per spec §4.6's
// mxv. addOp must be associative: a row's contributions are folded in
// the order ExtractTuples returns them, which is unspecified across
// block boundaries.
func Matrix(out *vector.Vector, a *matrix.Matrix, in *vector.Vector, multOp, addOp *typesys.OpBinary, opts Options) error {
	if out == nil || a == nil || in == nil {
		return codes.New(codes.InvalidArgument, "mxv: Matrix requires non-nil out, a, in")
	}
	if multOp == nil || addOp == nil {
		return codes.New(codes.InvalidArgument, "mxv: Matrix requires non-nil multOp, addOp")
	}
	if !addOp.Associative {
		return codes.New(codes.InvalidArgument, "mxv: addOp %q must be associative", addOp.Name)
	}
	outDim := a.NRows()
	inDim := a.NCols()
	if opts.TransposeA {
		outDim, inDim = inDim, outDim
	}
	if out.Dim() != outDim {
		return codes.New(codes.InvalidArgument, "mxv: out dimension %d does not match a's row count %d", out.Dim(), outDim)
	}
	if in.Dim() != inDim {
		return codes.New(codes.InvalidArgument, "mxv: in dimension %d does not match a's column count %d", in.Dim(), inDim)
	}

	maskPresent, err := maskPresenceOf(opts.Mask)
	if err != nil {
		return err
	}

	rows, cols, vals, err := a.ExtractTuples()
	if err != nil {
		return err
	}
	if opts.TransposeA {
		rows, cols = cols, rows
	}

	inVals := make(map[int]interface{})
	inIdx, inVal, err := in.ExtractTuples()
	if err != nil {
		return err
	}
	for k, i := range inIdx {
		inVals[i] = inVal[k]
	}

	contrib := make(map[int][]interface{}, outDim)
	for k := range rows {
		r, c := rows[k], cols[k]
		vi, ok := inVals[c]
		if !ok {
			continue
		}
		contrib[r] = append(contrib[r], multOp.Host(vals[k], vi))
	}

	rowsWritten := make([]int, 0, len(contrib))
	for r := range contrib {
		rowsWritten = append(rowsWritten, r)
	}
	sort.Ints(rowsWritten)

	for _, r := range rowsWritten {
		if maskPresent != nil {
			present := maskPresent[r]
			if opts.MaskComplement {
				present = !present
			}
			if !present {
				continue
			}
		}
		terms := contrib[r]
		acc := terms[0]
		for _, t := range terms[1:] {
			acc = addOp.Host(acc, t)
		}
		if err := out.SetElement(r, acc, opts.Accumulator); err != nil {
			return err
		}
	}
	return nil
}

// maskPresenceOf builds a presence set from mask, or nil if mask is nil.
func maskPresenceOf(mask *vector.Vector) (map[int]bool, error) {
	if mask == nil {
		return nil, nil
	}
	idx, _, err := mask.ExtractTuples()
	if err != nil {
		return nil, err
	}
	present := make(map[int]bool, len(idx))
	for _, i := range idx {
		present[i] = true
	}
	return present, nil
}

type algo struct{}

func (algo) Name() string                 { return "cpu-mxv" }
func (algo) Description() string          { return "host-side row-grouped mxv over extracted tuples" }
func (algo) Select(registry.Context) bool { return true }
func (algo) Execute(c registry.Context) error {
	out, _ := c.Operand["out"].(*vector.Vector)
	a, _ := c.Operand["a"].(*matrix.Matrix)
	in, _ := c.Operand["in"].(*vector.Vector)
	multOp, _ := c.Operand["mult_op"].(*typesys.OpBinary)
	addOp, _ := c.Operand["add_op"].(*typesys.OpBinary)
	opts, _ := c.Operand["opts"].(Options)
	return Matrix(out, a, in, multOp, addOp, opts)
}

// Register installs this package's algorithm into reg.
func Register(reg *registry.Registry) {
	reg.Register(Kind, algo{})
}
