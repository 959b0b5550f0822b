package typesys

import (
	"sync"

	"github.com/katalvlaran/spla/codes"
)

// Scalar owns an optional value of a fixed Type. It can be empty (no
// value), mirroring spec §3. All mutation is serialised by a per-scalar
// mutex, the same single-lock-per-entity shape core.Graph uses for its
// vertex/edge maps.
type Scalar struct {
	mu      sync.RWMutex
	typ     *Type
	value   interface{}
	present bool
}

// NewScalar creates an empty Scalar of the given Type.
func NewScalar(t *Type) (*Scalar, error) {
	if t == nil {
		return nil, codes.New(codes.InvalidArgument, "typesys: NewScalar requires a non-nil type")
	}
	return &Scalar{typ: t}, nil
}

// Type returns the Scalar's element type.
func (s *Scalar) Type() *Type { return s.typ }

// Set stores value, marking the Scalar non-empty.
func (s *Scalar) Set(value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.present = true
}

// Clear empties the Scalar.
func (s *Scalar) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = nil
	s.present = false
}

// Get returns the stored value and whether one is present.
func (s *Scalar) Get() (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.present
}

// NVals returns 1 if the Scalar holds a value, 0 otherwise — the Scalar
// analogue of Matrix/Vector nvals (spec §8 invariant 2/3).
func (s *Scalar) NVals() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.present {
		return 1
	}
	return 0
}

// Array owns n densely packed values of a fixed Type. No expression node
// in package expr takes an Array: its coordinate read/write nodes use
// plain slices and its reduction outputs are Scalars.
type Array struct {
	mu     sync.RWMutex
	typ    *Type
	values []interface{}
}

// NewArray creates an Array of length n, all entries nil until written.
func NewArray(t *Type, n int) (*Array, error) {
	if t == nil {
		return nil, codes.New(codes.InvalidArgument, "typesys: NewArray requires a non-nil type")
	}
	if n < 0 {
		return nil, codes.New(codes.InvalidArgument, "typesys: NewArray length must be >= 0, got %d", n)
	}
	return &Array{typ: t, values: make([]interface{}, n)}, nil
}

// Type returns the Array's element type.
func (a *Array) Type() *Type { return a.typ }

// Len returns the number of slots in the Array.
func (a *Array) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.values)
}

// Resize grows or shrinks the Array in place, preserving existing values
// up to the smaller of the old and new lengths.
func (a *Array) Resize(n int) error {
	if n < 0 {
		return codes.New(codes.InvalidArgument, "typesys: Array.Resize length must be >= 0, got %d", n)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	grown := make([]interface{}, n)
	copy(grown, a.values)
	a.values = grown
	return nil
}

// At returns the value at index i.
func (a *Array) At(i int) (interface{}, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if i < 0 || i >= len(a.values) {
		return nil, codes.New(codes.InvalidArgument, "typesys: Array.At(%d) out of range [0,%d)", i, len(a.values))
	}
	return a.values[i], nil
}

// Set assigns the value at index i.
func (a *Array) Set(i int, v interface{}) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if i < 0 || i >= len(a.values) {
		return codes.New(codes.InvalidArgument, "typesys: Array.Set(%d) out of range [0,%d)", i, len(a.values))
	}
	a.values[i] = v
	return nil
}

// Values returns a copy of the backing slice.
func (a *Array) Values() []interface{} {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]interface{}, len(a.values))
	copy(out, a.values)
	return out
}
