// Package expr implements spec §4.6's expression graph: a mutable
// builder that accumulates operation nodes and their dependency edges,
// then (§4.7/§5) schedules them across a worker pool with
// dependency-respecting parallelism, first-error-wins abort semantics,
// and a blocking wait().
//
// Re-architected per spec §9's design note away from the source's
// intrusive refcounted back-pointers: nodes live in an arena (a
// single growable slice owned by the Expression), edges are index
// pairs into that arena, and the scheduler walks the arena directly
// rather than following live pointers between nodes.
//
// Grounded on lvlath's dfs package's TopologicalSort (topological.go):
// the same three-colour-free Kahn-style in-degree walk, generalized
// from "compute one static ordering" to "compute an ordering AND drive
// concurrent execution as each node's dependencies clear".
package expr

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/registry"
	"github.com/katalvlaran/spla/matrix"
	"github.com/katalvlaran/spla/typesys"
	"github.com/katalvlaran/spla/vector"
)

// Kind is one of spec §4.6's closed set of operation kinds.
type Kind string

const (
	MatrixWrite  Kind = "matrix_write"
	MatrixRead   Kind = "matrix_read"
	VectorWrite  Kind = "vector_write"
	VectorRead   Kind = "vector_read"
	ScalarWrite  Kind = "scalar_write"
	ScalarRead   Kind = "scalar_read"
	Mxv          Kind = "mxv"
	Vxm          Kind = "vxm"
	MReduce      Kind = "m_reduce"
	VReduce      Kind = "v_reduce"
	VSelectCount Kind = "v_select_count"
	Transpose    Kind = "transpose"
	VAssign      Kind = "v_assign"
	EwiseAdd     Kind = "ewise_add"
	Callback     Kind = "callback"
)

// State is an expression's position in the lifecycle of spec
// §4.6: Default -> Submitted -> Scheduled -> Evaluating -> {Evaluated, Aborted}.
type State int

const (
	Default State = iota
	Submitted
	Scheduled
	Evaluating
	Evaluated
	Aborted
)

func (s State) String() string {
	switch s {
	case Default:
		return "Default"
	case Submitted:
		return "Submitted"
	case Scheduled:
		return "Scheduled"
	case Evaluating:
		return "Evaluating"
	case Evaluated:
		return "Evaluated"
	case Aborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// Descriptor carries spec §4.6's closed set of per-node option keys.
type Descriptor struct {
	MaskComplement  bool
	Replace         bool
	Structural      bool
	TransposeFirst  bool
	TransposeSecond bool
	Accumulator     *typesys.OpBinary
}

// NodeID indexes into an Expression's node arena.
type NodeID int

// node is one arena entry. operand is a generic role->value bag, mirroring
// the shape internal/registry.Context.Operand already expects, so
// runNode can hand it straight to a format-kernel package without
// re-packing.
type node struct {
	id       NodeID
	kind     Kind
	operand  map[string]interface{}
	desc     Descriptor
	preds    []NodeID
	succs    []NodeID
	callback func(ctx context.Context) error
}

// Expression is a mutable DAG builder owning an arena of nodes, per
// spec §4.6. It is not safe for concurrent building from multiple
// goroutines (construction is expected to happen on a single thread
// before Submit); Submit's scheduler is concurrent internally.
type Expression struct {
	mu    sync.Mutex
	id    uuid.UUID
	reg   *registry.Registry
	nodes []*node
	state State
	err   error
}

// New constructs an empty Expression dispatching format-kernel nodes
// through reg.
func New(reg *registry.Registry) *Expression {
	return &Expression{id: uuid.New(), reg: reg, state: Default}
}

// ID returns the expression's unique identifier, assigned at
// construction for diagnostics and cross-expression tracing.
func (e *Expression) ID() uuid.UUID { return e.id }

// State returns the expression's current lifecycle state.
func (e *Expression) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// addNode appends a new node in Default state and returns its ID. It
// fails once the expression has left Default, since building must
// finish before submission (spec §4.6: node/edge mutation is only
// valid pre-submission).
func (e *Expression) addNode(kind Kind, operand map[string]interface{}, desc Descriptor) (NodeID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Default {
		return 0, codes.New(codes.InvalidState, "expr: cannot add a %q node to an expression in state %s", kind, e.state)
	}
	id := NodeID(len(e.nodes))
	e.nodes = append(e.nodes, &node{id: id, kind: kind, operand: operand, desc: desc})
	return id, nil
}

// Link adds a dependency edge: pred must run before succ. A node may
// not be linked to itself or in a way that would form a cycle; each of
// these is rejected at link time (spec §4.6), not deferred to
// submission. Linking the same pair twice is a no-op.
func (e *Expression) Link(pred, succ NodeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Default {
		return codes.New(codes.InvalidState, "expr: cannot link an expression in state %s", e.state)
	}
	if pred < 0 || int(pred) >= len(e.nodes) || succ < 0 || int(succ) >= len(e.nodes) {
		return codes.New(codes.InvalidArgument, "expr: Link references an out-of-range node id")
	}
	if pred == succ {
		return codes.New(codes.InvalidExpression, "expr: Link(%d, %d) would self-link a node", pred, succ)
	}
	for _, s := range e.nodes[pred].succs {
		if s == succ {
			return nil // already linked; idempotent
		}
	}
	if e.reaches(succ, pred) {
		return codes.New(codes.InvalidExpression, "expr: Link(%d, %d) would introduce a cycle", pred, succ)
	}
	e.nodes[pred].succs = append(e.nodes[pred].succs, succ)
	e.nodes[succ].preds = append(e.nodes[succ].preds, pred)
	return nil
}

// reaches reports whether to is reachable from from by following succs,
// via a plain DFS over the current edge set. Called while e.mu is held.
func (e *Expression) reaches(from, to NodeID) bool {
	visited := make(map[NodeID]bool, len(e.nodes))
	var walk func(id NodeID) bool
	walk = func(id NodeID) bool {
		if id == to {
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		for _, s := range e.nodes[id].succs {
			if walk(s) {
				return true
			}
		}
		return false
	}
	return walk(from)
}

// Matrix-valued node factories.

// MatrixWriteNode builds a matrix_write node: Build m from rows/cols/vals,
// combining duplicates with desc.Accumulator.
func (e *Expression) MatrixWriteNode(m *matrix.Matrix, rows, cols []int, vals []interface{}, desc Descriptor) (NodeID, error) {
	return e.addNode(MatrixWrite, map[string]interface{}{"m": m, "rows": rows, "cols": cols, "vals": vals}, desc)
}

// MatrixReadNode builds a matrix_read node: upon evaluation, *rowsOut,
// *colsOut, *valsOut are assigned m's extracted tuples.
func (e *Expression) MatrixReadNode(m *matrix.Matrix, rowsOut, colsOut *[]int, valsOut *[]interface{}) (NodeID, error) {
	return e.addNode(MatrixRead, map[string]interface{}{"m": m, "rowsOut": rowsOut, "colsOut": colsOut, "valsOut": valsOut}, Descriptor{})
}

// VectorWriteNode builds a vector_write node.
func (e *Expression) VectorWriteNode(v *vector.Vector, idx []int, vals []interface{}, desc Descriptor) (NodeID, error) {
	return e.addNode(VectorWrite, map[string]interface{}{"v": v, "idx": idx, "vals": vals}, desc)
}

// VectorReadNode builds a vector_read node.
func (e *Expression) VectorReadNode(v *vector.Vector, idxOut *[]int, valsOut *[]interface{}) (NodeID, error) {
	return e.addNode(VectorRead, map[string]interface{}{"v": v, "idxOut": idxOut, "valsOut": valsOut}, Descriptor{})
}

// ScalarWriteNode builds a scalar_write node.
func (e *Expression) ScalarWriteNode(s *typesys.Scalar, value interface{}) (NodeID, error) {
	return e.addNode(ScalarWrite, map[string]interface{}{"s": s, "value": value}, Descriptor{})
}

// ScalarReadNode builds a scalar_read node; upon evaluation *out is
// assigned s's current value.
func (e *Expression) ScalarReadNode(s *typesys.Scalar, out *interface{}) (NodeID, error) {
	return e.addNode(ScalarRead, map[string]interface{}{"s": s, "out": out}, Descriptor{})
}

// MxvNode builds an mxv node: out = mask(opt) ⊙ (a x[mult,add] in).
func (e *Expression) MxvNode(out *vector.Vector, mask *vector.Vector, a *matrix.Matrix, in *vector.Vector, multOp, addOp *typesys.OpBinary, desc Descriptor) (NodeID, error) {
	return e.addNode(Mxv, map[string]interface{}{
		"out": out, "mask": mask, "a": a, "in": in, "mult_op": multOp, "add_op": addOp,
	}, desc)
}

// VxmNode builds a vxm node: out = mask(opt) ⊙ (in x[mult,add] a).
func (e *Expression) VxmNode(out *vector.Vector, mask *vector.Vector, in *vector.Vector, a *matrix.Matrix, multOp, addOp *typesys.OpBinary, desc Descriptor) (NodeID, error) {
	return e.addNode(Vxm, map[string]interface{}{
		"out": out, "mask": mask, "in": in, "a": a, "mult_op": multOp, "add_op": addOp,
	}, desc)
}

// MReduceNode builds an m_reduce node.
func (e *Expression) MReduceNode(out *typesys.Scalar, in *matrix.Matrix, op *typesys.OpBinary, init interface{}) (NodeID, error) {
	return e.addNode(MReduce, map[string]interface{}{"out": out, "in": in, "op": op, "init": init}, Descriptor{})
}

// VReduceNode builds a v_reduce node.
func (e *Expression) VReduceNode(out *typesys.Scalar, in *vector.Vector, op *typesys.OpBinary, init interface{}) (NodeID, error) {
	return e.addNode(VReduce, map[string]interface{}{"out": out, "in": in, "op": op, "init": init}, Descriptor{})
}

// VSelectCountNode builds a v_select_count node.
func (e *Expression) VSelectCountNode(out *typesys.Scalar, in *vector.Vector, selector *typesys.OpSelect) (NodeID, error) {
	return e.addNode(VSelectCount, map[string]interface{}{"out": out, "in": in, "selector": selector}, Descriptor{})
}

// TransposeNode builds a transpose node.
func (e *Expression) TransposeNode(out, in *matrix.Matrix, mask *matrix.Matrix, desc Descriptor) (NodeID, error) {
	return e.addNode(Transpose, map[string]interface{}{"out": out, "in": in, "mask": mask}, desc)
}

// VAssignNode builds a v_assign node.
func (e *Expression) VAssignNode(out *vector.Vector, mask *vector.Vector, value interface{}, selector *typesys.OpSelect, desc Descriptor) (NodeID, error) {
	return e.addNode(VAssign, map[string]interface{}{"out": out, "mask": mask, "value": value, "selector": selector}, desc)
}

// EwiseAddNode builds an ewise_add node. out, a, b must all be
// *vector.Vector or all be *matrix.Matrix; the mismatch is reported at
// evaluation time by runNode, since the expression graph itself stays
// untyped (spec §9: arena-owned nodes, no compile-time polymorphism
// over element types at the host side).
func (e *Expression) EwiseAddNode(out, a, b interface{}, op *typesys.OpBinary) (NodeID, error) {
	return e.addNode(EwiseAdd, map[string]interface{}{"out": out, "a": a, "b": b, "op": op}, Descriptor{})
}

// CallbackNode builds a callback node. fn receives the scheduler's
// per-node context and runs on a worker goroutine; its error, like any
// algorithm failure, aborts the owning expression (see DESIGN.md's
// Open Question 2 decision).
func (e *Expression) CallbackNode(fn func(ctx context.Context) error) (NodeID, error) {
	id, err := e.addNode(Callback, nil, Descriptor{})
	if err != nil {
		return 0, err
	}
	e.mu.Lock()
	e.nodes[id].callback = fn
	e.mu.Unlock()
	return id, nil
}
