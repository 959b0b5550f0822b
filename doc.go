// Package spla is a blocked sparse linear algebra engine: a
// GraphBLAS-style algebra (matrix-vector multiply, element-wise add,
// reduction, masked assignment, transpose) over sparse matrices,
// vectors, and scalars of user-defined element type, executed through a
// deferred expression graph on a CPU backend today and an accelerator
// facade designed to grow a GPU backend without a caller-visible API
// change.
//
// 🚀 What is spla?
//
//	A blocked, format-polymorphic sparse algebra library that brings
//	together:
//
//	  • Type & operator registry: interned element types, unary/binary/
//	    selector operator descriptors (typesys/)
//	  • Blocked storage: matrices and vectors backed by a per-entity
//	    decoration cache (dok/coo/csr/dense) with lazy format
//	    conversion (internal/blockstore, internal/decoration,
//	    internal/sparse)
//	  • An expression graph: a DAG of operation nodes, submitted once
//	    and evaluated by a bounded worker pool with dependency-ordered
//	    dispatch, cancellation, and first-error-wins abort (expr/)
//	  • An algorithm registry: ordered per-operation-kind candidates,
//	    first-match dispatch, ready for an accelerator-specialised
//	    candidate to be registered ahead of the CPU fallback
//	    (internal/registry/)
//	  • A kernel builder: deterministic accelerator-source composition
//	    from element-type and operator snippets, keyed by a hash of the
//	    composed source (internal/kernel/)
//
// ✨ Why choose spla?
//
//   - Format-polymorphic — a matrix or vector is decorated lazily into
//     whichever of dok/coo/csr/dense an operation needs, cached per
//     entity, invalidated on write
//   - Deferred — operations are nodes in an expression graph, not
//     immediate calls; the scheduler parallelises everything the DAG's
//     edges allow
//   - Backend-abstract — every format kernel runs against the same
//     internal/accel.Device interface a real accelerator-resident
//     backend would implement; today only "cpu" and "null" exist
//   - Typed by the caller — matrices, vectors, and scalars carry a
//     user-registered typesys.Type and operators carry their own
//     kernel-language snippets, never a library-imposed numeric type
//
// Under the hood, the public surface is:
//
//	typesys/    — Type/OpUnary/OpBinary/OpSelect/Scalar/Array/Library
//	matrix/     — Matrix: blocked NxM sparse container
//	vector/     — Vector: single-block sparse container
//	ewise/      — element-wise add (matrices and vectors)
//	reduce/     — associative fold to a scalar
//	transpose/  — coordinate-swap matrix transpose, with masking
//	assign/     — masked/selector-filtered vector assignment
//	mxv/, vxm/  — matrix-vector and vector-matrix multiply over a
//	              caller-supplied semiring
//	vselect/    — selector-predicate count
//	expr/       — the expression graph builder and concurrent scheduler
//	builder/    — deterministic test-fixture matrix/vector generators
//	mtxio/      — the out-of-core Matrix Market loader/writer
//
// There is no examples/ package: BFS, SSSP, PageRank, and triangle count
// are not implemented in this module.
//
// See SPEC_FULL.md for the full requirements this module implements and
// DESIGN.md for the grounding ledger behind every package's design.
package spla
