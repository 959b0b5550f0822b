// Package typesys implements the element-type and operator registry of
// spec §3/§4.1: interned Type descriptors, and the three operator
// variants (unary, binary, selector) that parameterise every algebra
// operation. It also carries the host-addressable Scalar and Array
// primitives of spec §3/§4.11, and the process-wide Library handle that
// configures the accelerator the rest of the engine dispatches onto.
//
// Types and operators are pure, immutable descriptors shared by
// reference, mirroring the way core.Graph in the teacher lineage shares
// read-mostly configuration behind a package-level registry guarded by a
// single sync.RWMutex.
package typesys

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/spla/codes"
)

// Type is a descriptor for an element type usable in matrices, vectors,
// scalars, and operator signatures.
//
// ByteSize of 0 means "no value" — a structural (boolean-presence) type.
type Type struct {
	// ID is the stable string identifier types are interned by.
	ID string

	// ByteSize is the host-side size in bytes; 0 means structural-only.
	ByteSize int

	// HostName is the short name used when specialising kernel names,
	// e.g. "i64" in a generated kernel function like "plus_i64".
	HostName string

	// KernelSnippet declares the accelerator-side type, e.g. "typedef long T;".
	// Empty for structural types that never cross into kernel source.
	KernelSnippet string
}

// registry is the process-wide interned type table.
type registry struct {
	mu    sync.RWMutex
	types map[string]*Type
}

var globalTypes = &registry{types: make(map[string]*Type)}

// Built-in types, registered once at package init, matching spec §3.
var (
	BOOL  *Type
	INT   *Type
	UINT  *Type
	FLOAT *Type
	BYTE  *Type
)

func init() {
	BOOL = mustMakeType("BOOL", 1, "bool", "typedef uchar T;")
	INT = mustMakeType("INT", 8, "i64", "typedef long T;")
	UINT = mustMakeType("UINT", 8, "u64", "typedef ulong T;")
	FLOAT = mustMakeType("FLOAT", 8, "f64", "typedef double T;")
	BYTE = mustMakeType("BYTE", 1, "byte", "typedef uchar T;")
}

func mustMakeType(id string, byteSize int, hostName, snippet string) *Type {
	t, err := MakeType(id, byteSize, hostName, snippet)
	if err != nil {
		panic(fmt.Sprintf("typesys: built-in type %q failed to register: %v", id, err))
	}
	return t
}

// MakeType interns a new Type under id. It fails with codes.AlreadyExists
// if id is already registered — built-ins and user types share one
// namespace, exactly as spec §4.1 requires.
func MakeType(id string, byteSize int, hostName, kernelSnippet string) (*Type, error) {
	if id == "" {
		return nil, codes.New(codes.InvalidArgument, "typesys: type id must not be empty")
	}
	if byteSize < 0 {
		return nil, codes.New(codes.InvalidArgument, "typesys: byte size must be >= 0, got %d", byteSize)
	}

	globalTypes.mu.Lock()
	defer globalTypes.mu.Unlock()

	if _, exists := globalTypes.types[id]; exists {
		return nil, codes.New(codes.AlreadyExists, "typesys: type %q already registered", id)
	}

	t := &Type{ID: id, ByteSize: byteSize, HostName: hostName, KernelSnippet: kernelSnippet}
	globalTypes.types[id] = t
	return t, nil
}

// FindType looks up a previously interned Type by id.
func FindType(id string) (*Type, bool) {
	globalTypes.mu.RLock()
	defer globalTypes.mu.RUnlock()
	t, ok := globalTypes.types[id]
	return t, ok
}

// IsStructural reports whether t carries no per-element value.
func (t *Type) IsStructural() bool {
	return t == nil || t.ByteSize == 0
}

// resetForTest removes every interned type and re-registers the built-ins.
// It exists only for test isolation within this module.
func resetForTest() {
	globalTypes.mu.Lock()
	globalTypes.types = make(map[string]*Type)
	globalTypes.mu.Unlock()
	BOOL = mustMakeType("BOOL", 1, "bool", "typedef uchar T;")
	INT = mustMakeType("INT", 8, "i64", "typedef long T;")
	UINT = mustMakeType("UINT", 8, "u64", "typedef ulong T;")
	FLOAT = mustMakeType("FLOAT", 8, "f64", "typedef double T;")
	BYTE = mustMakeType("BYTE", 1, "byte", "typedef uchar T;")
}
