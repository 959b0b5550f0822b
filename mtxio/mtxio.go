// Package mtxio implements spec §6's Matrix Market collaborator: the
// out-of-core loader/writer the rest of the engine treats as an
// external contract rather than a core subsystem. It accepts a stream,
// skips '%'-prefixed comment lines, reads a "n_rows n_cols n_nonzeros"
// header, then that many "i j v" (typed) or "i j" (structural) lines,
// converting the wire format's 1-based indices to this engine's 0-based
// matrix coordinates.
//
// Grounded on arx-os-arxos's internal/bim.Parser: a line-oriented
// bufio.Scanner reading the whole stream into memory up front, an
// explicit "current line number" field for error messages, and a
// strict/lenient mode split (this package's analogue of strict is
// simply returning the first malformed-line error instead of skipping
// it, since spec §6 gives no tolerance for partial loads).
package mtxio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/matrix"
	"github.com/katalvlaran/spla/typesys"
)

// ValueParser converts a Matrix Market value field into an element of
// the matrix's declared type. Required unless Options.IgnoreValues.
type ValueParser func(field string) (interface{}, error)

// ValueFormatter is ValueParser's inverse, used by Write.
type ValueFormatter func(value interface{}) string

// Options configures a Matrix Market read, per spec §6.
type Options struct {
	// ForceUndirected emits both (i,j) and (j,i) for every distinct
	// pair read, mirroring an edge in both directions.
	ForceUndirected bool
	// RemoveSelfLoops drops any line with i == j.
	RemoveSelfLoops bool
	// IgnoreValues treats every line as structural, ignoring any third
	// field and writing the BoolTrue value at every coordinate.
	IgnoreValues bool
}

// BoolTrue is the value written at every coordinate when Options.IgnoreValues
// collapses a typed stream into a structural one.
var BoolTrue interface{} = true

// Read parses a Matrix Market stream into a new nrows x ncols matrix of
// element type typ. parse is used to convert each value field unless
// opts.IgnoreValues is set, in which case it may be nil.
func Read(r io.Reader, typ *typesys.Type, blockSize int, parse ValueParser, opts Options) (*matrix.Matrix, error) {
	if typ == nil {
		return nil, codes.New(codes.InvalidArgument, "mtxio: Read requires a non-nil type")
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	nextLine := func() (string, bool) {
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "%") {
				continue
			}
			return line, true
		}
		return "", false
	}

	header, ok := nextLine()
	if !ok {
		return nil, codes.New(codes.InvalidArgument, "mtxio: Read: empty stream, no header line")
	}
	nrows, ncols, nnz, err := parseHeader(header, lineNo)
	if err != nil {
		return nil, err
	}

	m, err := matrix.New(typ, nrows, ncols, blockSize)
	if err != nil {
		return nil, err
	}

	var rows, cols []int
	var vals []interface{}
	for k := 0; k < nnz; k++ {
		line, ok := nextLine()
		if !ok {
			return nil, codes.New(codes.InvalidArgument, "mtxio: Read: expected %d entries, stream ended after %d", nnz, k)
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, codes.New(codes.InvalidArgument, "mtxio: Read: line %d: expected at least 2 fields, got %d", lineNo, len(fields))
		}
		i, err := parseIndex(fields[0], lineNo)
		if err != nil {
			return nil, err
		}
		j, err := parseIndex(fields[1], lineNo)
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= nrows || j < 0 || j >= ncols {
			return nil, codes.New(codes.InvalidArgument, "mtxio: Read: line %d: index (%d,%d) out of declared bounds %dx%d", lineNo, i, j, nrows, ncols)
		}
		if opts.RemoveSelfLoops && i == j {
			continue
		}

		var val interface{}
		if opts.IgnoreValues || len(fields) < 3 {
			val = BoolTrue
		} else {
			if parse == nil {
				return nil, codes.New(codes.InvalidArgument, "mtxio: Read: line %d: carries a value field but no ValueParser was given", lineNo)
			}
			val, err = parse(fields[2])
			if err != nil {
				return nil, codes.New(codes.InvalidArgument, "mtxio: Read: line %d: %s", lineNo, err)
			}
		}

		rows = append(rows, i)
		cols = append(cols, j)
		vals = append(vals, val)
		if opts.ForceUndirected && i != j {
			rows = append(rows, j)
			cols = append(cols, i)
			vals = append(vals, val)
		}
	}

	if len(rows) == 0 {
		return m, nil
	}
	if err := m.Build(rows, cols, vals, nil); err != nil {
		return nil, err
	}
	return m, nil
}

// Write serialises m in Matrix Market format: a header line followed by
// one "i j v" line per stored entry, 1-based, row-major. format converts
// a stored value to its wire text; pass nil to collapse to a structural
// "i j" stream (matching Options.IgnoreValues on the reading side).
func Write(w io.Writer, m *matrix.Matrix, format ValueFormatter) error {
	if m == nil {
		return codes.New(codes.InvalidArgument, "mtxio: Write requires a non-nil matrix")
	}
	rows, cols, vals, err := m.ExtractTuples()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d %d\n", m.NRows(), m.NCols(), len(rows)); err != nil {
		return err
	}
	for k := range rows {
		if format == nil {
			if _, err := fmt.Fprintf(bw, "%d %d\n", rows[k]+1, cols[k]+1); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(bw, "%d %d %s\n", rows[k]+1, cols[k]+1, format(vals[k])); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func parseHeader(line string, lineNo int) (nrows, ncols, nnz int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, codes.New(codes.InvalidArgument, "mtxio: Read: line %d: header must have 3 fields (n_rows n_cols n_nonzeros), got %d", lineNo, len(fields))
	}
	nrows, err1 := strconv.Atoi(fields[0])
	ncols, err2 := strconv.Atoi(fields[1])
	nnz, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, codes.New(codes.InvalidArgument, "mtxio: Read: line %d: header fields must be integers", lineNo)
	}
	if nrows <= 0 || ncols <= 0 || nnz < 0 {
		return 0, 0, 0, codes.New(codes.InvalidArgument, "mtxio: Read: line %d: invalid header dimensions %d %d %d", lineNo, nrows, ncols, nnz)
	}
	return nrows, ncols, nnz, nil
}

func parseIndex(field string, lineNo int) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, codes.New(codes.InvalidArgument, "mtxio: Read: line %d: index %q is not an integer", lineNo, field)
	}
	return v - 1, nil
}
