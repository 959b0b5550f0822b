// Package sparse implements the concrete per-format representations and
// conversion kernels that back internal/decoration.Cache for vectors and
// matrix blocks (spec §3, §4.2): dok, coo, csr (matrix only), and dense,
// plus the duplicate-combining rule used whenever a conversion collapses
// repeated coordinates.
//
// These representations are adapted from the teacher's matrix package's
// split between a dense representation (dense.go) and a sparse adjacency
// representation (adjacency.go): here the same split exists but is
// parameterised over an arbitrary element type via typesys.Type rather
// than hard-coded to float64 edge weights.
package sparse

import (
	"sort"

	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/decoration"
	"github.com/katalvlaran/spla/typesys"
)

// Combine applies accumulator to (existing, incoming) if accumulator is a
// non-nil *typesys.OpBinary, otherwise the later value wins in insertion
// order, per spec §4.2's duplicate-collapsing rule.
func Combine(accumulator interface{}, existing, incoming interface{}) interface{} {
	if op, ok := accumulator.(*typesys.OpBinary); ok && op != nil {
		return op.Host(existing, incoming)
	}
	return incoming
}

// VecDok is the dictionary-of-keys vector representation: index -> value.
type VecDok map[int]interface{}

// VecCoo is the coordinate vector representation: parallel arrays sorted
// by index.
type VecCoo struct {
	Idx []int
	Val []interface{}
}

// VecDense is the dense vector representation: one slot per logical
// index, with Present marking which slots actually hold a value (the
// "fill value" of spec §3 is represented as Present[i] == false rather
// than a sentinel value, since element types are arbitrary Go values).
type VecDense struct {
	Val     []interface{}
	Present []bool
}

// NewVecDense allocates an empty dense vector of length n.
func NewVecDense(n int) VecDense {
	return VecDense{Val: make([]interface{}, n), Present: make([]bool, n)}
}

// NVals counts stored entries in a dok.
func (d VecDok) NVals() int { return len(d) }

// NVals counts stored entries in a coo.
func (c VecCoo) NVals() int { return len(c.Idx) }

// NVals counts present entries in a dense vector.
func (d VecDense) NVals() int {
	n := 0
	for _, p := range d.Present {
		if p {
			n++
		}
	}
	return n
}

// VecDokToCoo sorts the dok's keys and emits parallel coordinate arrays.
func VecDokToCoo(src interface{}, _ interface{}) (interface{}, error) {
	dok, ok := src.(VecDok)
	if !ok {
		return nil, codes.New(codes.InvalidArgument, "sparse: VecDokToCoo expects VecDok")
	}
	idx := make([]int, 0, len(dok))
	for i := range dok {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	val := make([]interface{}, len(idx))
	for k, i := range idx {
		val[k] = dok[i]
	}
	return VecCoo{Idx: idx, Val: val}, nil
}

// VecCooToDok expands coordinate arrays back into a dictionary. Coo is
// already deduplicated (by construction), so no accumulator is needed.
func VecCooToDok(src interface{}, _ interface{}) (interface{}, error) {
	coo, ok := src.(VecCoo)
	if !ok {
		return nil, codes.New(codes.InvalidArgument, "sparse: VecCooToDok expects VecCoo")
	}
	dok := make(VecDok, len(coo.Idx))
	for k, i := range coo.Idx {
		dok[i] = coo.Val[k]
	}
	return dok, nil
}

// VecCooToDense scatters sorted coordinates into a dense array of length
// equal to the highest index plus one found in the caller's context; the
// caller (vector package) supplies the correct length via a closure over
// this function, since Coo carries no dimension of its own.
func VecCooToDenseWithLen(n int) decoration.TransitionFunc {
	return func(src interface{}, _ interface{}) (interface{}, error) {
		coo, ok := src.(VecCoo)
		if !ok {
			return nil, codes.New(codes.InvalidArgument, "sparse: VecCooToDense expects VecCoo")
		}
		d := NewVecDense(n)
		for k, i := range coo.Idx {
			d.Val[i] = coo.Val[k]
			d.Present[i] = true
		}
		return d, nil
	}
}

// VecDenseToCoo compacts a dense vector's present slots into sorted
// coordinate arrays (already sorted since dense is index-ordered).
func VecDenseToCoo(src interface{}, _ interface{}) (interface{}, error) {
	d, ok := src.(VecDense)
	if !ok {
		return nil, codes.New(codes.InvalidArgument, "sparse: VecDenseToCoo expects VecDense")
	}
	var coo VecCoo
	for i, present := range d.Present {
		if present {
			coo.Idx = append(coo.Idx, i)
			coo.Val = append(coo.Val, d.Val[i])
		}
	}
	return coo, nil
}

// VecDenseToDok compacts a dense vector's present slots into a dok.
func VecDenseToDok(src interface{}, _ interface{}) (interface{}, error) {
	d, ok := src.(VecDense)
	if !ok {
		return nil, codes.New(codes.InvalidArgument, "sparse: VecDenseToDok expects VecDense")
	}
	dok := make(VecDok)
	for i, present := range d.Present {
		if present {
			dok[i] = d.Val[i]
		}
	}
	return dok, nil
}

// VecDokToDenseWithLen scatters a dok directly into a dense array,
// skipping the coo intermediate (spec §4.2 lists dense<->dok as its own
// required direct transition).
func VecDokToDenseWithLen(n int) decoration.TransitionFunc {
	return func(src interface{}, _ interface{}) (interface{}, error) {
		dok, ok := src.(VecDok)
		if !ok {
			return nil, codes.New(codes.InvalidArgument, "sparse: VecDokToDense expects VecDok")
		}
		d := NewVecDense(n)
		for i, v := range dok {
			d.Val[i] = v
			d.Present[i] = true
		}
		return d, nil
	}
}

// VectorTransitions builds the full dok/coo/dense transition table for a
// vector of length n. n is fixed at construction because VecCoo and
// VecDok carry no dimension of their own.
func VectorTransitions(n int) decoration.TransitionTable {
	tt := decoration.TransitionTable{}
	tt.Register(decoration.Dok, decoration.Coo, VecDokToCoo)
	tt.Register(decoration.Coo, decoration.Dok, VecCooToDok)
	tt.Register(decoration.Coo, decoration.Dense, VecCooToDenseWithLen(n))
	tt.Register(decoration.Dense, decoration.Coo, VecDenseToCoo)
	tt.Register(decoration.Dense, decoration.Dok, VecDenseToDok)
	tt.Register(decoration.Dok, decoration.Dense, VecDokToDenseWithLen(n))
	return tt
}

// VectorCosts is the default conversion-cost table for vectors: coo is
// the cheap pivot format, dense is the most expensive to produce from a
// sparse source (must touch every slot), matching the relative costs lvlath's
// matrix package documents between its sparse adjacency and dense forms.
func VectorCosts() decoration.CostTable {
	ct := decoration.CostTable{}
	ct.SetCost(decoration.Dok, decoration.Coo, 1)
	ct.SetCost(decoration.Coo, decoration.Dok, 1)
	ct.SetCost(decoration.Coo, decoration.Dense, 4)
	ct.SetCost(decoration.Dense, decoration.Coo, 4)
	ct.SetCost(decoration.Dense, decoration.Dok, 4)
	ct.SetCost(decoration.Dok, decoration.Dense, 8)
	return ct
}
