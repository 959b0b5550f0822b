package kernel

import (
	"github.com/intel/forGoParallel/parallel"
)

// ParallelRows partitions [0, n) across the host's parallel range
// machinery and runs fn once per partition with the (low, high) bounds
// of that partition — the same shape forGraphBLASGo's Matrix.Build uses
// to validate coordinate triples in parallel. matrix.Clear uses this to
// reset its blocks across goroutines without hand-rolling a worker pool.
func ParallelRows(n int, fn func(low, high int)) {
	if n <= 0 {
		return
	}
	parallel.Range(0, n, fn)
}

// ParallelRowsOr is the predicate form: fn reports whether its partition
// found a violation (e.g. an out-of-range index), and ParallelRowsOr
// reports whether any partition did.
func ParallelRowsOr(n int, fn func(low, high int) bool) bool {
	if n <= 0 {
		return false
	}
	return parallel.RangeOr(0, n, fn)
}
