package sparse

import (
	"sort"

	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/decoration"
)

// MatCoord is a (row, col) coordinate key, used by MatDok.
type MatCoord struct {
	Row, Col int
}

// MatDok is the dictionary-of-keys matrix block representation.
type MatDok map[MatCoord]interface{}

// MatCoo is the coordinate matrix representation: parallel arrays sorted
// by (row, col).
type MatCoo struct {
	Row []int
	Col []int
	Val []interface{}
}

// MatCsr is the compressed-sparse-row representation: RowPtr has
// len == rows+1; ColIdx/Val hold RowPtr[rows] entries, each row's slice
// sorted by column.
type MatCsr struct {
	RowPtr []int
	ColIdx []int
	Val    []interface{}
}

// MatDense is the dense matrix representation, row-major.
type MatDense struct {
	Val     [][]interface{}
	Present [][]bool
}

// NewMatDense allocates an empty dense block of the given shape.
func NewMatDense(rows, cols int) MatDense {
	val := make([][]interface{}, rows)
	present := make([][]bool, rows)
	for i := range val {
		val[i] = make([]interface{}, cols)
		present[i] = make([]bool, cols)
	}
	return MatDense{Val: val, Present: present}
}

func (d MatDok) NVals() int { return len(d) }
func (c MatCoo) NVals() int { return len(c.Row) }
func (c MatCsr) NVals() int { return len(c.ColIdx) }
func (d MatDense) NVals() int {
	n := 0
	for _, row := range d.Present {
		for _, p := range row {
			if p {
				n++
			}
		}
	}
	return n
}

// MatDokToCoo sorts a dok's coordinates in row-major order.
func MatDokToCoo(src interface{}, _ interface{}) (interface{}, error) {
	dok, ok := src.(MatDok)
	if !ok {
		return nil, codes.New(codes.InvalidArgument, "sparse: MatDokToCoo expects MatDok")
	}
	coords := make([]MatCoord, 0, len(dok))
	for c := range dok {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Row != coords[j].Row {
			return coords[i].Row < coords[j].Row
		}
		return coords[i].Col < coords[j].Col
	})
	coo := MatCoo{
		Row: make([]int, len(coords)),
		Col: make([]int, len(coords)),
		Val: make([]interface{}, len(coords)),
	}
	for k, c := range coords {
		coo.Row[k] = c.Row
		coo.Col[k] = c.Col
		coo.Val[k] = dok[c]
	}
	return coo, nil
}

// MatCooToDok expands coordinate arrays back into a dictionary.
func MatCooToDok(src interface{}, _ interface{}) (interface{}, error) {
	coo, ok := src.(MatCoo)
	if !ok {
		return nil, codes.New(codes.InvalidArgument, "sparse: MatCooToDok expects MatCoo")
	}
	dok := make(MatDok, len(coo.Row))
	for k := range coo.Row {
		dok[MatCoord{coo.Row[k], coo.Col[k]}] = coo.Val[k]
	}
	return dok, nil
}

// MatCooToCsrWithRows builds the CSR conversion for a block with the
// given row count, combining duplicate (row, col) pairs with accumulator
// if given, otherwise later-wins, per spec §4.2.
func MatCooToCsrWithRows(rows int) decoration.TransitionFunc {
	return func(src interface{}, accumulator interface{}) (interface{}, error) {
		coo, ok := src.(MatCoo)
		if !ok {
			return nil, codes.New(codes.InvalidArgument, "sparse: MatCooToCsr expects MatCoo")
		}
		rowPtr := make([]int, rows+1)
		colIdx := make([]int, 0, len(coo.Row))
		val := make([]interface{}, 0, len(coo.Row))

		i := 0
		for r := 0; r < rows; r++ {
			rowPtr[r] = len(colIdx)
			for i < len(coo.Row) && coo.Row[i] == r {
				col := coo.Col[i]
				v := coo.Val[i]
				i++
				for i < len(coo.Row) && coo.Row[i] == r && coo.Col[i] == col {
					v = Combine(accumulator, v, coo.Val[i])
					i++
				}
				colIdx = append(colIdx, col)
				val = append(val, v)
			}
		}
		rowPtr[rows] = len(colIdx)
		return MatCsr{RowPtr: rowPtr, ColIdx: colIdx, Val: val}, nil
	}
}

// MatCsrToCoo expands CSR rows back into parallel coordinate arrays.
func MatCsrToCoo(src interface{}, _ interface{}) (interface{}, error) {
	csr, ok := src.(MatCsr)
	if !ok {
		return nil, codes.New(codes.InvalidArgument, "sparse: MatCsrToCoo expects MatCsr")
	}
	n := len(csr.ColIdx)
	coo := MatCoo{Row: make([]int, n), Col: make([]int, n), Val: make([]interface{}, n)}
	for r := 0; r < len(csr.RowPtr)-1; r++ {
		for k := csr.RowPtr[r]; k < csr.RowPtr[r+1]; k++ {
			coo.Row[k] = r
			coo.Col[k] = csr.ColIdx[k]
			coo.Val[k] = csr.Val[k]
		}
	}
	return coo, nil
}

// MatCooToDenseWithShape scatters sorted coordinates into a dense block.
func MatCooToDenseWithShape(rows, cols int) decoration.TransitionFunc {
	return func(src interface{}, accumulator interface{}) (interface{}, error) {
		coo, ok := src.(MatCoo)
		if !ok {
			return nil, codes.New(codes.InvalidArgument, "sparse: MatCooToDense expects MatCoo")
		}
		d := NewMatDense(rows, cols)
		for k := range coo.Row {
			r, c := coo.Row[k], coo.Col[k]
			if d.Present[r][c] {
				d.Val[r][c] = Combine(accumulator, d.Val[r][c], coo.Val[k])
				continue
			}
			d.Val[r][c] = coo.Val[k]
			d.Present[r][c] = true
		}
		return d, nil
	}
}

// MatDenseToCoo compacts a dense block's present cells into sorted
// coordinate arrays (row-major order is already sorted order).
func MatDenseToCoo(src interface{}, _ interface{}) (interface{}, error) {
	d, ok := src.(MatDense)
	if !ok {
		return nil, codes.New(codes.InvalidArgument, "sparse: MatDenseToCoo expects MatDense")
	}
	var coo MatCoo
	for r, row := range d.Present {
		for c, present := range row {
			if present {
				coo.Row = append(coo.Row, r)
				coo.Col = append(coo.Col, c)
				coo.Val = append(coo.Val, d.Val[r][c])
			}
		}
	}
	return coo, nil
}

// MatDenseToDok compacts a dense block's present cells into a dok.
func MatDenseToDok(src interface{}, _ interface{}) (interface{}, error) {
	d, ok := src.(MatDense)
	if !ok {
		return nil, codes.New(codes.InvalidArgument, "sparse: MatDenseToDok expects MatDense")
	}
	dok := make(MatDok)
	for r, row := range d.Present {
		for c, present := range row {
			if present {
				dok[MatCoord{r, c}] = d.Val[r][c]
			}
		}
	}
	return dok, nil
}

// MatDokToDenseWithShape scatters a dok directly into a dense block,
// skipping the coo intermediate (spec §4.2's direct dense<->dok rule).
func MatDokToDenseWithShape(rows, cols int) decoration.TransitionFunc {
	return func(src interface{}, _ interface{}) (interface{}, error) {
		dok, ok := src.(MatDok)
		if !ok {
			return nil, codes.New(codes.InvalidArgument, "sparse: MatDokToDense expects MatDok")
		}
		d := NewMatDense(rows, cols)
		for c, v := range dok {
			d.Val[c.Row][c.Col] = v
			d.Present[c.Row][c.Col] = true
		}
		return d, nil
	}
}

// MatrixTransitions builds the full dok/coo/csr/dense transition table
// for a block of the given shape.
func MatrixTransitions(rows, cols int) decoration.TransitionTable {
	tt := decoration.TransitionTable{}
	tt.Register(decoration.Dok, decoration.Coo, MatDokToCoo)
	tt.Register(decoration.Coo, decoration.Dok, MatCooToDok)
	tt.Register(decoration.Coo, decoration.Csr, MatCooToCsrWithRows(rows))
	tt.Register(decoration.Csr, decoration.Coo, MatCsrToCoo)
	tt.Register(decoration.Coo, decoration.Dense, MatCooToDenseWithShape(rows, cols))
	tt.Register(decoration.Dense, decoration.Coo, MatDenseToCoo)
	tt.Register(decoration.Dense, decoration.Dok, MatDenseToDok)
	tt.Register(decoration.Dok, decoration.Dense, MatDokToDenseWithShape(rows, cols))
	return tt
}

// MatrixCosts is the default conversion-cost table: coo is the cheap
// pivot, csr is the structured format used by mxv kernels, dense is the
// most expensive to both produce and consume.
func MatrixCosts() decoration.CostTable {
	ct := decoration.CostTable{}
	ct.SetCost(decoration.Dok, decoration.Coo, 1)
	ct.SetCost(decoration.Coo, decoration.Dok, 1)
	ct.SetCost(decoration.Coo, decoration.Csr, 2)
	ct.SetCost(decoration.Csr, decoration.Coo, 2)
	ct.SetCost(decoration.Coo, decoration.Dense, 6)
	ct.SetCost(decoration.Dense, decoration.Coo, 6)
	ct.SetCost(decoration.Dense, decoration.Dok, 6)
	ct.SetCost(decoration.Dok, decoration.Dense, 12)
	return ct
}
