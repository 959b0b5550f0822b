// Package ewise implements spec §4.6's ewise_add operation kind:
// out = a <op> b over the union of a's and b's stored indices, with the
// operator applied only where both operands are present and the other
// operand's value passed through unchanged where only one is.
//
// Grounded on lvlath's flow package's shape of "one exported function per
// algorithm, options struct for knobs, context for cancellation" — here
// there is exactly one algorithm per entity kind rather than several
// competing ones, since element-wise addition has no format-dependent
// variant worth selecting between.
package ewise

import (
	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/registry"
	"github.com/katalvlaran/spla/matrix"
	"github.com/katalvlaran/spla/typesys"
	"github.com/katalvlaran/spla/vector"
)

// Kind is the registry.Kind this package's algorithms register under.
const (
	KindVector registry.Kind = "ewise_add_vector"
	KindMatrix registry.Kind = "ewise_add_matrix"
)

// VectorAdd computes out = a <op> b, per spec §4.6's ewise_add, writing
// the result into out (any prior contents are replaced).
func VectorAdd(out, a, b *vector.Vector, op *typesys.OpBinary) error {
	if out == nil || a == nil || b == nil || op == nil {
		return codes.New(codes.InvalidArgument, "ewise: VectorAdd requires non-nil out, a, b, op")
	}
	if a.Dim() != b.Dim() || a.Dim() != out.Dim() {
		return codes.New(codes.InvalidArgument, "ewise: VectorAdd dimension mismatch: out=%d a=%d b=%d", out.Dim(), a.Dim(), b.Dim())
	}
	aIdx, aVal, err := a.ExtractTuples()
	if err != nil {
		return err
	}
	bIdx, bVal, err := b.ExtractTuples()
	if err != nil {
		return err
	}
	aMap := make(map[int]interface{}, len(aIdx))
	for k, i := range aIdx {
		aMap[i] = aVal[k]
	}
	bMap := make(map[int]interface{}, len(bIdx))
	for k, i := range bIdx {
		bMap[i] = bVal[k]
	}

	union := make(map[int]struct{}, len(aMap)+len(bMap))
	for i := range aMap {
		union[i] = struct{}{}
	}
	for i := range bMap {
		union[i] = struct{}{}
	}

	idx := make([]int, 0, len(union))
	val := make([]interface{}, 0, len(union))
	for i := range union {
		av, aok := aMap[i]
		bv, bok := bMap[i]
		switch {
		case aok && bok:
			idx = append(idx, i)
			val = append(val, op.Host(av, bv))
		case aok:
			idx = append(idx, i)
			val = append(val, av)
		default:
			idx = append(idx, i)
			val = append(val, bv)
		}
	}
	return out.Build(idx, val, nil)
}

// MatrixAdd computes out = a <op> b over the union of both matrices'
// stored cells.
func MatrixAdd(out, a, b *matrix.Matrix, op *typesys.OpBinary) error {
	if out == nil || a == nil || b == nil || op == nil {
		return codes.New(codes.InvalidArgument, "ewise: MatrixAdd requires non-nil out, a, b, op")
	}
	if a.NRows() != b.NRows() || a.NCols() != b.NCols() || a.NRows() != out.NRows() || a.NCols() != out.NCols() {
		return codes.New(codes.InvalidArgument, "ewise: MatrixAdd shape mismatch")
	}
	aRows, aCols, aVals, err := a.ExtractTuples()
	if err != nil {
		return err
	}
	bRows, bCols, bVals, err := b.ExtractTuples()
	if err != nil {
		return err
	}

	type coord struct{ r, c int }
	aMap := make(map[coord]interface{}, len(aRows))
	for k := range aRows {
		aMap[coord{aRows[k], aCols[k]}] = aVals[k]
	}
	bMap := make(map[coord]interface{}, len(bRows))
	for k := range bRows {
		bMap[coord{bRows[k], bCols[k]}] = bVals[k]
	}
	union := make(map[coord]struct{}, len(aMap)+len(bMap))
	for c := range aMap {
		union[c] = struct{}{}
	}
	for c := range bMap {
		union[c] = struct{}{}
	}

	rows := make([]int, 0, len(union))
	cols := make([]int, 0, len(union))
	vals := make([]interface{}, 0, len(union))
	for c := range union {
		av, aok := aMap[c]
		bv, bok := bMap[c]
		rows = append(rows, c.r)
		cols = append(cols, c.c)
		switch {
		case aok && bok:
			vals = append(vals, op.Host(av, bv))
		case aok:
			vals = append(vals, av)
		default:
			vals = append(vals, bv)
		}
	}
	return out.Build(rows, cols, vals, nil)
}

// vectorAlgo adapts VectorAdd to the registry.Algorithm interface; it is
// the sole CPU candidate registered for KindVector (spec §4.7's registry
// supports multiple candidates, e.g. an accelerator-specific one tried
// first, but this module ships no accelerator-resident ewise kernel —
// see DESIGN.md's GPU-backend gap).
type vectorAlgo struct{}

func (vectorAlgo) Name() string        { return "cpu-vector-ewise-add" }
func (vectorAlgo) Description() string { return "host-side union-merge element-wise add over vectors" }
func (vectorAlgo) Select(registry.Context) bool { return true }
func (vectorAlgo) Execute(c registry.Context) error {
	out, _ := c.Operand["out"].(*vector.Vector)
	a, _ := c.Operand["a"].(*vector.Vector)
	b, _ := c.Operand["b"].(*vector.Vector)
	op, _ := c.Operand["op"].(*typesys.OpBinary)
	return VectorAdd(out, a, b, op)
}

type matrixAlgo struct{}

func (matrixAlgo) Name() string        { return "cpu-matrix-ewise-add" }
func (matrixAlgo) Description() string { return "host-side union-merge element-wise add over matrix blocks" }
func (matrixAlgo) Select(registry.Context) bool { return true }
func (matrixAlgo) Execute(c registry.Context) error {
	out, _ := c.Operand["out"].(*matrix.Matrix)
	a, _ := c.Operand["a"].(*matrix.Matrix)
	b, _ := c.Operand["b"].(*matrix.Matrix)
	op, _ := c.Operand["op"].(*typesys.OpBinary)
	return MatrixAdd(out, a, b, op)
}

// Register installs this package's algorithms into reg, so the
// expression scheduler can dispatch ewise_add nodes through the shared
// registry instead of calling VectorAdd/MatrixAdd directly.
func Register(reg *registry.Registry) {
	reg.Register(KindVector, vectorAlgo{})
	reg.Register(KindMatrix, matrixAlgo{})
}
