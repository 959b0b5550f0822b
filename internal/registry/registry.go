// Package registry implements the algorithm registry and dispatch rule of
// spec §4.7: a singleton keyed by operation kind holds an ordered list of
// candidate algorithms; dispatch iterates candidates in registration
// order and runs the first whose Select predicate returns true.
//
// Registration order therefore encodes preference, not a computed
// priority: callers that want accelerator-specific specialisations tried
// before a generic CPU fallback must Register them first. This is a
// deliberate departure from a priority-sorted registry (as seen in
// algo-dsp's vecmath/internal/registry, which sorts by a numeric
// Priority field) because spec §4.7 states the rule explicitly in terms
// of registration order, not priority — there is no Priority field here.
package registry

import (
	"context"
	"sync"

	"github.com/katalvlaran/spla/codes"
)

// Context carries whatever an algorithm's Select/Execute need to examine
// operand formats and run the kernel. It is deliberately opaque
// (interface{} operands) to avoid this package depending on matrix,
// vector, or expr — registry only knows about ordering and dispatch.
type Context struct {
	Ctx     context.Context
	Operand map[string]interface{}
}

// Algorithm is one candidate strategy for an operation kind, per spec
// §4.7: name/description for diagnostics, Select to test applicability,
// Execute to run.
type Algorithm interface {
	Name() string
	Description() string
	Select(c Context) bool
	Execute(c Context) error
}

// Kind identifies an operation kind (e.g. "mxv", "transpose") that owns
// its own ordered candidate list.
type Kind string

// Registry holds one ordered candidate list per operation Kind.
type Registry struct {
	mu         sync.RWMutex
	candidates map[Kind][]Algorithm
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{candidates: make(map[Kind][]Algorithm)}
}

// Register appends algo to kind's candidate list. Registration order is
// preference order: algorithms registered earlier are tried first.
func (r *Registry) Register(kind Kind, algo Algorithm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates[kind] = append(r.candidates[kind], algo)
}

// Candidates returns a copy of kind's registered algorithms in
// registration order, for diagnostics and tests.
func (r *Registry) Candidates(kind Kind) []Algorithm {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Algorithm, len(r.candidates[kind]))
	copy(out, r.candidates[kind])
	return out
}

// Dispatch iterates kind's candidates in registration order, runs the
// first whose Select returns true, and returns its Execute result. If no
// candidate matches, it fails with codes.NoAlgorithm.
func (r *Registry) Dispatch(kind Kind, c Context) error {
	r.mu.RLock()
	list := r.candidates[kind]
	r.mu.RUnlock()

	for _, algo := range list {
		if algo.Select(c) {
			return algo.Execute(c)
		}
	}
	return codes.New(codes.NoAlgorithm, "registry: no algorithm registered for %q matches the operands", kind)
}
