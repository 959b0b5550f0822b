package expr

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/spla/assign"
	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/ewise"
	"github.com/katalvlaran/spla/internal/registry"
	"github.com/katalvlaran/spla/matrix"
	"github.com/katalvlaran/spla/mxv"
	"github.com/katalvlaran/spla/reduce"
	"github.com/katalvlaran/spla/transpose"
	"github.com/katalvlaran/spla/typesys"
	"github.com/katalvlaran/spla/vector"
	"github.com/katalvlaran/spla/vselect"
	"github.com/katalvlaran/spla/vxm"
)

// Submission is the handle returned by Submit: spec §6's "Submission"
// surface (wait/state/error).
type Submission struct {
	expr *Expression
	done chan struct{}
	err  error
}

// Wait blocks until the owning expression reaches a terminal state.
func (s *Submission) Wait() error {
	<-s.done
	return s.err
}

// State returns the owning expression's current lifecycle state.
func (s *Submission) State() State { return s.expr.State() }

// Error blocks until the owning expression reaches a terminal state,
// then returns the first error that aborted it, or nil if it completed.
func (s *Submission) Error() error {
	<-s.done
	return s.err
}

// WorkerCount bounds how many nodes may run concurrently; <= 0 uses
// hardware parallelism (spec §5's default).
type SubmitOptions struct {
	WorkerCount int
}

// Submit moves the expression from Default to Submitted, computes a
// topological order (rejecting any residual cycle as InvalidExpression,
// spec §4.6), and dispatches the zero-in-degree frontier to a worker
// pool bounded by opts.WorkerCount. Evaluation runs in the background;
// use the returned Submission's Wait to block for completion.
func Submit(ctx context.Context, e *Expression, opts SubmitOptions) (*Submission, error) {
	e.mu.Lock()
	if e.state != Default {
		e.mu.Unlock()
		return nil, codes.New(codes.InvalidState, "expr: Submit requires state Default, got %s", e.state)
	}
	e.state = Submitted
	n := len(e.nodes)
	indeg := make([]int32, n)
	for _, node := range e.nodes {
		for _, succ := range node.succs {
			indeg[succ]++
		}
	}
	var frontier []NodeID
	for i, d := range indeg {
		if d == 0 {
			frontier = append(frontier, NodeID(i))
		}
	}
	e.state = Scheduled
	e.mu.Unlock()

	if !topoReachesAll(e, indeg) {
		e.mu.Lock()
		e.state = Aborted
		e.err = codes.New(codes.InvalidExpression, "expr: Submit detected a cycle across %d nodes", n)
		e.mu.Unlock()
		sub := &Submission{expr: e, done: make(chan struct{}), err: e.err}
		close(sub.done)
		return sub, nil
	}

	if conflict := e.findUnlinkedWriteConflict(); conflict != nil {
		e.mu.Lock()
		e.state = Aborted
		e.err = conflict
		e.mu.Unlock()
		sub := &Submission{expr: e, done: make(chan struct{}), err: e.err}
		close(sub.done)
		return sub, nil
	}

	sub := &Submission{expr: e, done: make(chan struct{})}

	workerCount := opts.WorkerCount
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	go func() {
		e.mu.Lock()
		e.state = Evaluating
		e.mu.Unlock()

		sem := make(chan struct{}, workerCount)
		g, gctx := errgroup.WithContext(ctx)
		var mu sync.Mutex
		localIndeg := append([]int32(nil), indeg...)

		var schedule func(id NodeID)
		schedule = func(id NodeID) {
			g.Go(func() error {
				sem <- struct{}{}
				defer func() { <-sem }()

				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				if err := e.runNode(gctx, id); err != nil {
					return err
				}

				var ready []NodeID
				mu.Lock()
				for _, succ := range e.nodes[id].succs {
					localIndeg[succ]--
					if localIndeg[succ] == 0 {
						ready = append(ready, succ)
					}
				}
				mu.Unlock()
				for _, r := range ready {
					schedule(r)
				}
				return nil
			})
		}
		for _, id := range frontier {
			schedule(id)
		}

		err := g.Wait()

		e.mu.Lock()
		if err != nil {
			e.state = Aborted
			e.err = err
		} else {
			e.state = Evaluated
		}
		e.mu.Unlock()

		sub.err = err
		close(sub.done)
	}()

	return sub, nil
}

// topoReachesAll reports whether Kahn's algorithm can fully drain the
// node set starting from indeg's zero entries, i.e. whether the graph
// is acyclic. Link already rejects cycles incrementally; this is the
// defensive whole-graph check spec §4.6 requires at submission time.
func topoReachesAll(e *Expression, indeg []int32) bool {
	work := append([]int32(nil), indeg...)
	var queue []NodeID
	for i, d := range work {
		if d == 0 {
			queue = append(queue, NodeID(i))
		}
	}
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, succ := range e.nodes[id].succs {
			work[succ]--
			if work[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}
	return visited == len(e.nodes)
}

// writeTarget returns the operand a node writes (by pointer identity), or
// nil if the node performs no write (matrix_read/vector_read/scalar_read,
// and callback, whose writes if any are opaque to the graph).
func writeTarget(nd *node) interface{} {
	switch nd.kind {
	case MatrixWrite:
		return nd.operand["m"]
	case VectorWrite:
		return nd.operand["v"]
	case ScalarWrite:
		return nd.operand["s"]
	case Mxv, Vxm, VAssign:
		return nd.operand["out"]
	case MReduce, VReduce, VSelectCount:
		return nd.operand["out"]
	case Transpose:
		return nd.operand["out"]
	case EwiseAdd:
		return nd.operand["out"]
	default:
		return nil
	}
}

// findUnlinkedWriteConflict implements spec §4.6's concurrency guarantee
// ("two nodes that write the same matrix/vector must be linked") as a
// submit-time check rather than leaving it undefined behaviour: any two
// write nodes targeting the same operand with no path between them in
// either direction is rejected, per scenario S6.
func (e *Expression) findUnlinkedWriteConflict() error {
	var writers []NodeID
	for _, nd := range e.nodes {
		if writeTarget(nd) != nil {
			writers = append(writers, nd.id)
		}
	}
	for a := 0; a < len(writers); a++ {
		ta := writeTarget(e.nodes[writers[a]])
		for b := a + 1; b < len(writers); b++ {
			tb := writeTarget(e.nodes[writers[b]])
			if ta != tb {
				continue
			}
			x, y := writers[a], writers[b]
			if e.reaches(x, y) || e.reaches(y, x) {
				continue
			}
			return codes.New(codes.InvalidExpression,
				"expr: nodes %d and %d both write the same operand without a dependency edge between them", x, y)
		}
	}
	return nil
}

// runNode executes one node's operation, per spec §4.7: plain
// coordinate read/write and scalar/callback kinds run directly;
// format-kernel kinds dispatch through the shared algorithm registry.
func (e *Expression) runNode(ctx context.Context, id NodeID) error {
	nd := e.nodes[id]
	op := nd.operand

	switch nd.kind {
	case MatrixWrite:
		m := op["m"].(*matrix.Matrix)
		return m.Build(op["rows"].([]int), op["cols"].([]int), op["vals"].([]interface{}), nd.desc.Accumulator)

	case MatrixRead:
		m := op["m"].(*matrix.Matrix)
		rows, cols, vals, err := m.ExtractTuples()
		if err != nil {
			return err
		}
		*op["rowsOut"].(*[]int) = rows
		*op["colsOut"].(*[]int) = cols
		*op["valsOut"].(*[]interface{}) = vals
		return nil

	case VectorWrite:
		v := op["v"].(*vector.Vector)
		return v.Build(op["idx"].([]int), op["vals"].([]interface{}), nd.desc.Accumulator)

	case VectorRead:
		v := op["v"].(*vector.Vector)
		idx, vals, err := v.ExtractTuples()
		if err != nil {
			return err
		}
		*op["idxOut"].(*[]int) = idx
		*op["valsOut"].(*[]interface{}) = vals
		return nil

	case ScalarWrite:
		op["s"].(*typesys.Scalar).Set(op["value"])
		return nil

	case ScalarRead:
		s := op["s"].(*typesys.Scalar)
		val, _ := s.Get()
		*op["out"].(*interface{}) = val
		return nil

	case Callback:
		if nd.callback == nil {
			return codes.New(codes.InvalidArgument, "expr: callback node %d has no function", id)
		}
		return nd.callback(ctx)

	case EwiseAdd:
		return e.runEwiseAdd(ctx, op)

	case MReduce:
		return e.reg.Dispatch(reduce.KindMatrix, registry.Context{Ctx: ctx, Operand: op})

	case VReduce:
		return e.reg.Dispatch(reduce.KindVector, registry.Context{Ctx: ctx, Operand: op})

	case VSelectCount:
		return e.reg.Dispatch(vselect.Kind, registry.Context{Ctx: ctx, Operand: op})

	case Transpose:
		rc := registry.Context{Ctx: ctx, Operand: map[string]interface{}{
			"out": op["out"], "in": op["in"], "mask": op["mask"], "mask_complement": nd.desc.MaskComplement,
		}}
		return e.reg.Dispatch(transpose.Kind, rc)

	case VAssign:
		rc := registry.Context{Ctx: ctx, Operand: map[string]interface{}{
			"out": op["out"],
			"value": op["value"],
			"opts": assign.Options{
				Mask:           asVector(op["mask"]),
				MaskComplement: nd.desc.MaskComplement,
				Replace:        nd.desc.Replace,
				Selector:       asSelect(op["selector"]),
				Accumulator:    nd.desc.Accumulator,
			},
		}}
		return e.reg.Dispatch(assign.Kind, rc)

	case Mxv:
		rc := registry.Context{Ctx: ctx, Operand: map[string]interface{}{
			"out": op["out"], "a": op["a"], "in": op["in"],
			"mult_op": op["mult_op"], "add_op": op["add_op"],
			"opts": mxv.Options{
				Mask:           asVector(op["mask"]),
				MaskComplement: nd.desc.MaskComplement,
				Accumulator:    nd.desc.Accumulator,
				TransposeA:     nd.desc.TransposeFirst,
			},
		}}
		return e.reg.Dispatch(mxv.Kind, rc)

	case Vxm:
		rc := registry.Context{Ctx: ctx, Operand: map[string]interface{}{
			"out": op["out"], "in": op["in"], "a": op["a"],
			"mult_op": op["mult_op"], "add_op": op["add_op"],
			"opts": vxm.Options{
				Mask:           asVector(op["mask"]),
				MaskComplement: nd.desc.MaskComplement,
				Accumulator:    nd.desc.Accumulator,
				TransposeA:     nd.desc.TransposeSecond,
			},
		}}
		return e.reg.Dispatch(vxm.Kind, rc)

	default:
		return codes.New(codes.InvalidExpression, "expr: unknown node kind %q", nd.kind)
	}
}

// runEwiseAdd resolves the Vector/Matrix registry Kind at evaluation
// time, since EwiseAddNode accepts interface{} operands to keep the
// arena untyped (spec §9).
func (e *Expression) runEwiseAdd(ctx context.Context, op map[string]interface{}) error {
	switch op["out"].(type) {
	case *vector.Vector:
		return e.reg.Dispatch(ewise.KindVector, registry.Context{Ctx: ctx, Operand: op})
	case *matrix.Matrix:
		return e.reg.Dispatch(ewise.KindMatrix, registry.Context{Ctx: ctx, Operand: op})
	default:
		return codes.New(codes.InvalidArgument, "expr: ewise_add node's out is neither *vector.Vector nor *matrix.Matrix")
	}
}

func asVector(v interface{}) *vector.Vector {
	if v == nil {
		return nil
	}
	vv, _ := v.(*vector.Vector)
	return vv
}

func asSelect(v interface{}) *typesys.OpSelect {
	if v == nil {
		return nil
	}
	sv, _ := v.(*typesys.OpSelect)
	return sv
}
