// Package spla provides a handful of convenience constructors layered
// directly on the public matrix/vector/typesys surface: a diagonal
// matrix builder and a structural-mask conversion, both absent from
// spec.md's core operation table but standard GraphBLAS conveniences
// (see forGraphBLASGo's api.Matrix.MatrixDiag/AsMask, which these are
// grounded on) that cost nothing to carry since they compose entirely
// out of matrix.Build/ExtractTuples.
package spla

import (
	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/matrix"
	"github.com/katalvlaran/spla/typesys"
	"github.com/katalvlaran/spla/vector"
)

// MatrixDiag builds a square matrix of dimension v.Dim()+|k| with v's
// stored values placed on the k-th diagonal: v[i] lands at (i, i+k) for
// k >= 0, or at (i-k, i) for k < 0. Grounded on forGraphBLASGo's
// api.MatrixDiag.
func MatrixDiag(v *vector.Vector, k int) (*matrix.Matrix, error) {
	if v == nil {
		return nil, codes.New(codes.InvalidArgument, "spla: MatrixDiag requires a non-nil vector")
	}
	size := v.Dim()
	if k < 0 {
		size += -k
	} else {
		size += k
	}

	idx, vals, err := v.ExtractTuples()
	if err != nil {
		return nil, err
	}

	m, err := matrix.New(v.Type(), size, size, 0)
	if err != nil {
		return nil, err
	}
	if len(idx) == 0 {
		return m, nil
	}

	rows := make([]int, len(idx))
	cols := make([]int, len(idx))
	for n, i := range idx {
		if k >= 0 {
			rows[n], cols[n] = i, i+k
		} else {
			rows[n], cols[n] = i-k, i
		}
	}
	if err := m.Build(rows, cols, vals, nil); err != nil {
		return nil, err
	}
	return m, nil
}

// AsMask collapses m to a structural BOOL matrix: every stored (row,
// col) of m becomes (row, col, true) in the result, regardless of m's
// element type or stored values. The one exception is a matrix that is
// already BOOL: AsMask returns m itself (same pointer, values
// unchanged), not a copy. Every format-kernel package that
// accepts a mask already treats it presence-only (ExtractTuples ignores
// the value column when testing membership), so AsMask is never called
// internally — it exists for a caller that wants an explicit,
// independently inspectable structural copy of an arbitrarily-typed
// matrix. Grounded on forGraphBLASGo's api.Matrix.AsMask, simplified
// here to the always-structural branch since this engine's masks are
// presence-only (spec §4.6's Descriptor table has no value-carrying
// mask mode).
func AsMask(m *matrix.Matrix) (*matrix.Matrix, error) {
	if m == nil {
		return nil, codes.New(codes.InvalidArgument, "spla: AsMask requires a non-nil matrix")
	}
	if m.Type() == typesys.BOOL {
		return m, nil
	}
	rows, cols, vals, err := m.ExtractTuples()
	if err != nil {
		return nil, err
	}
	out, err := matrix.New(typesys.BOOL, m.NRows(), m.NCols(), 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return out, nil
	}
	trueVals := make([]interface{}, len(vals))
	for i := range trueVals {
		trueVals[i] = true
	}
	if err := out.Build(rows, cols, trueVals, nil); err != nil {
		return nil, err
	}
	return out, nil
}
