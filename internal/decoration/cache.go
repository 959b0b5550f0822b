// Package decoration implements the per-entity decoration cache of
// spec §4.2: a small, fixed-size table from format Tag to a cached
// representation, each entry carrying a monotone per-tag version counter
// and a valid flag. It is the mechanism behind spec §3's invariant that
// "any two non-stale formats represent the same abstract sparse entity".
//
// decoration.Cache is deliberately representation-agnostic: it stores
// opaque variants (interface{}) and dispatches conversions through a
// caller-supplied TransitionTable, so the same cache machinery backs
// both matrix blocks and vectors (internal/blockstore), each of which
// defines its own concrete Dok/Coo/Csr/Dense representations and
// transition functions.
package decoration

import (
	"sync"

	"github.com/katalvlaran/spla/codes"
)

// Tag is one of the closed set of storage formats from spec §3.
type Tag int

const (
	// Dok is the dictionary-of-keys format (hash map i -> value, or
	// (i,j) -> value for matrices).
	Dok Tag = iota
	// Coo is the coordinate format: parallel arrays sorted by row (and
	// column, for matrices).
	Coo
	// Csr is the compressed-sparse-row format (matrices only).
	Csr
	// Dense is a flat array plus a fill value for absent entries.
	Dense
	// AccelCoo is the device-resident mirror of Coo.
	AccelCoo
	// AccelCsr is the device-resident mirror of Csr (matrices only).
	AccelCsr
	// AccelDense is the device-resident mirror of Dense.
	AccelDense
)

func (t Tag) String() string {
	switch t {
	case Dok:
		return "dok"
	case Coo:
		return "coo"
	case Csr:
		return "csr"
	case Dense:
		return "dense"
	case AccelCoo:
		return "accelerator-coo"
	case AccelCsr:
		return "accelerator-csr"
	case AccelDense:
		return "accelerator-dense"
	default:
		return "unknown"
	}
}

// IsAccelerator reports whether tag names a device-resident format.
func (t Tag) IsAccelerator() bool {
	return t == AccelCoo || t == AccelCsr || t == AccelDense
}

// edge identifies a (from, to) conversion.
type edge struct {
	from, to Tag
}

// TransitionFunc converts a decoration from one format into another.
// accumulator, if non-nil, is a *typesys.OpBinary (opaque here to avoid
// an import cycle) used to combine values at duplicate coordinates when
// the destination format collapses them (spec §4.2).
type TransitionFunc func(src interface{}, accumulator interface{}) (dst interface{}, err error)

// TransitionTable is the closed set of conversions a Cache may run.
type TransitionTable map[edge]TransitionFunc

// CostTable assigns a conversion cost to each (from, to) pair; GetOrBuild
// picks the cheapest valid source, ties broken by most-recently-written.
type CostTable map[edge]int

// Register adds a conversion to the table (helper for constructing
// TransitionTable/CostTable literals in matrix/vector packages).
func (t TransitionTable) Register(from, to Tag, fn TransitionFunc) {
	t[edge{from, to}] = fn
}

// SetCost assigns the cost of converting from -> to.
func (c CostTable) SetCost(from, to Tag, cost int) {
	c[edge{from, to}] = cost
}

type entry struct {
	variant interface{}
	version uint64
	valid   bool
}

// Cache is the per-entity decoration table. All mutation is serialised
// by mu, matching spec §3's "per-entity lock" requirement; reads under
// RLock-equivalent are not offered because GetOrBuild may need to
// upgrade to a write (installing a freshly built decoration), so a plain
// Mutex is used throughout, exactly as core.Graph uses separate
// sync.RWMutex per concern but a single lock per protected structure.
type Cache struct {
	mu          sync.Mutex
	entries     map[Tag]*entry
	transitions TransitionTable
	costs       CostTable
	lastWritten Tag
	hasWritten  bool
}

// NewCache constructs an empty Cache parameterised by the transitions
// and costs available for its entity kind (vector or matrix block).
func NewCache(transitions TransitionTable, costs CostTable) *Cache {
	return &Cache{
		entries:     make(map[Tag]*entry),
		transitions: transitions,
		costs:       costs,
	}
}

// Get returns the decoration for tag if present and valid.
func (c *Cache) Get(tag Tag) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[tag]
	if !ok || !e.valid {
		return nil, false
	}
	return e.variant, true
}

// Version returns the current version counter for tag (0 if the tag has
// never been written).
func (c *Cache) Version(tag Tag) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[tag]
	if !ok {
		return 0
	}
	return e.version
}

// Write installs variant as the new authoritative decoration for tag,
// bumps its version, and marks every other tag's valid flag false
// without dropping its cached representation (spec §4.2: "they are not
// yet dropped; they will be rebuilt lazily").
func (c *Cache) Write(tag Tag, variant interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeLocked(tag, variant)
	c.lastWritten = tag
	c.hasWritten = true
}

func (c *Cache) writeLocked(tag Tag, variant interface{}) {
	e, ok := c.entries[tag]
	if !ok {
		e = &entry{}
		c.entries[tag] = e
	}
	e.variant = variant
	e.version++
	e.valid = true
	for other, oe := range c.entries {
		if other != tag {
			oe.valid = false
		}
	}
}

// GetOrBuild returns the decoration for tag, synchronising on the
// cache's lock. If tag is invalid, it selects the cheapest valid source
// format from the cost table (ties broken toward the most recently
// written format) and runs the registered conversion, caching the
// result under tag before returning it.
func (c *Cache) GetOrBuild(tag Tag, accumulator interface{}) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[tag]; ok && e.valid {
		return e.variant, nil
	}

	srcTag, ok := c.cheapestSourceLocked(tag)
	if !ok {
		return nil, codes.New(codes.NotImplemented, "decoration: no valid source format to build %s", tag)
	}
	fn, ok := c.transitions[edge{srcTag, tag}]
	if !ok {
		return nil, codes.New(codes.NotImplemented, "decoration: no transition %s->%s", srcTag, tag)
	}
	src := c.entries[srcTag].variant
	dst, err := fn(src, accumulator)
	if err != nil {
		return nil, err
	}
	// A lazy rebuild is not a user write: it must not invalidate sibling
	// formats that are still authoritative, only populate tag itself.
	e, ok := c.entries[tag]
	if !ok {
		e = &entry{}
		c.entries[tag] = e
	}
	e.variant = dst
	e.version++
	e.valid = true
	return dst, nil
}

// cheapestSourceLocked must be called with c.mu held.
func (c *Cache) cheapestSourceLocked(dst Tag) (Tag, bool) {
	bestTag := Tag(-1)
	bestCost := -1
	found := false
	for tag, e := range c.entries {
		if !e.valid {
			continue
		}
		cost, ok := c.costs[edge{tag, dst}]
		if !ok {
			continue
		}
		switch {
		case !found:
			bestTag, bestCost, found = tag, cost, true
		case cost < bestCost:
			bestTag, bestCost = tag, cost
		case cost == bestCost && c.hasWritten && tag == c.lastWritten:
			bestTag = tag
		}
	}
	return bestTag, found
}

// Tags returns every tag currently present in the cache (valid or
// stale), for diagnostics and tests.
func (c *Cache) Tags() []Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Tag, 0, len(c.entries))
	for tag := range c.entries {
		out = append(out, tag)
	}
	return out
}

// IsValid reports whether tag currently holds valid data.
func (c *Cache) IsValid(tag Tag) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[tag]
	return ok && e.valid
}
