// Package accel implements the accelerator facade of spec §4.4: an
// abstract device + queue + allocator + program cache surface that the
// kernel builder and format kernels dispatch onto.
//
// Two backends are provided. cpuBackend is the only backend this module
// can concretely exercise without cgo or a vendored GPU driver — no
// compute-API binding exists anywhere in the retrieval pack this module
// was built from (see DESIGN.md). nullBackend reports no device at all,
// forcing every algorithm selector onto its CPU variant, exactly as
// spec §4.4 specifies for environments with no accelerator.
package accel

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"runtime"
	"sync"

	"github.com/katalvlaran/spla/codes"
)

// DeviceBuffer is an opaque accelerator-resident allocation. On the CPU
// backend it is simply a host slice; on a GPU backend it would wrap a
// device pointer/handle.
type DeviceBuffer struct {
	// Bytes is the CPU-backend's backing storage. Other backends would
	// replace this with a vendor handle.
	Bytes []byte
	size  int
}

// Size returns the buffer's length in bytes.
func (b *DeviceBuffer) Size() int { return b.size }

// Program is a compiled kernel program handle, keyed by the hash of its
// composed source (see internal/kernel).
type Program struct {
	Key    string
	Source string
	// Kernels maps an in-program function name to a callable compiled for
	// the CPU backend. A GPU backend would instead hold a native program
	// object and resolve kernel objects by name at launch time.
	Kernels map[string]interface{}
}

// Queue is a single-producer command queue: operations enqueued on the
// same Queue preserve submission order (spec §4.4/§5). Queues are not
// shared across workers; each worker obtains its own queue or a
// lightweight wrapper via Device.Queue.
type Queue interface {
	// Enqueue runs fn as a unit of work on this queue. The CPU backend
	// runs fn synchronously under the queue's own lock, which is enough
	// to guarantee submission-order execution without a real async
	// device.
	Enqueue(ctx context.Context, fn func(ctx context.Context) error) error

	// Finish blocks until every enqueued operation on this queue has
	// completed, per spec §5's "blocking finish()" contract.
	Finish() error
}

// Device is the accelerator facade surface of spec §4.4.
type Device interface {
	// Name identifies the backend ("cpu" or "null").
	Name() string

	// QueueDefault returns the device's default queue.
	QueueDefault() Queue

	// Queue returns the i-th queue (round-robin target for the scheduler).
	Queue(i int) Queue

	// QueueCount returns how many queues this device opened.
	QueueCount() int

	// Allocate reserves size bytes of device-resident storage.
	Allocate(size int) (*DeviceBuffer, error)

	// AllocatePair reserves two buffers with vendor-dependent
	// sub-buffering for paired allocations (spec §4.4); the CPU backend
	// satisfies this by allocating one block and slicing it, which keeps
	// the pair contiguous the way a real sub-buffer allocator would.
	AllocatePair(size1, size2 int) (*DeviceBuffer, *DeviceBuffer, error)

	// GetProgram/PutProgram implement the program cache keyed by the
	// hash of the full composed kernel source (internal/kernel owns the
	// hashing; this is just the cache).
	GetProgram(key string) (*Program, bool)
	PutProgram(key string, p *Program)

	// Compile builds source into a Program under the given cache key.
	// The cpu backend never fails; the null backend always returns a
	// codes.DeviceNotFound error.
	Compile(key, source string, kernels map[string]interface{}) (*Program, error)

	// MaxWorkgroupSize, WaveSize, VendorCode, and AlignmentBytes expose
	// the device characteristics the kernel builder and paired
	// allocator need (spec §4.4).
	MaxWorkgroupSize() int
	WaveSize() int
	VendorCode() string
	AlignmentBytes() int

	// Available reports whether this device can actually run kernels —
	// false for nullBackend, forcing algorithm selectors to their CPU
	// fallback.
	Available() bool
}

// Config selects which backend Init opens and with how many queues.
type Config struct {
	Backend    string // "cpu" or "null"; any other value resolves to "null"
	Platform   int
	DeviceIdx  int
	QueueCount int
}

// Init selects a backend per Config, matching spec §4.4's
// "select a platform+device, create a context and >=1 command queue,
// open a program cache".
func Init(cfg Config) (Device, error) {
	qc := cfg.QueueCount
	if qc <= 0 {
		qc = 1
	}
	switch cfg.Backend {
	case "cpu":
		return newCPUBackend(qc), nil
	default:
		// "null", "" and any unrecognised name resolve to the null backend.
		return newNullBackend(), nil
	}
}

// ProgramKey hashes composed kernel source into a deterministic cache key.
func ProgramKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// --- CPU backend -----------------------------------------------------

type cpuQueue struct {
	mu sync.Mutex
}

func (q *cpuQueue) Enqueue(ctx context.Context, fn func(ctx context.Context) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

func (q *cpuQueue) Finish() error { return nil }

type cpuBackend struct {
	mu       sync.Mutex
	queues   []*cpuQueue
	programs map[string]*Program
}

func newCPUBackend(queueCount int) *cpuBackend {
	b := &cpuBackend{programs: make(map[string]*Program)}
	for i := 0; i < queueCount; i++ {
		b.queues = append(b.queues, &cpuQueue{})
	}
	return b
}

func (b *cpuBackend) Name() string { return "cpu" }

func (b *cpuBackend) QueueDefault() Queue { return b.queues[0] }

func (b *cpuBackend) Queue(i int) Queue { return b.queues[i%len(b.queues)] }

func (b *cpuBackend) QueueCount() int { return len(b.queues) }

func (b *cpuBackend) Allocate(size int) (*DeviceBuffer, error) {
	if size < 0 {
		return nil, codes.New(codes.InvalidArgument, "accel: negative allocation size %d", size)
	}
	return &DeviceBuffer{Bytes: make([]byte, size), size: size}, nil
}

func (b *cpuBackend) AllocatePair(size1, size2 int) (*DeviceBuffer, *DeviceBuffer, error) {
	if size1 < 0 || size2 < 0 {
		return nil, nil, codes.New(codes.InvalidArgument, "accel: negative allocation size")
	}
	align := b.AlignmentBytes()
	padded1 := roundUp(size1, align)
	block := make([]byte, padded1+size2)
	b1 := &DeviceBuffer{Bytes: block[:size1], size: size1}
	b2 := &DeviceBuffer{Bytes: block[padded1 : padded1+size2], size: size2}
	return b1, b2, nil
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + (align - rem)
}

func (b *cpuBackend) GetProgram(key string) (*Program, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.programs[key]
	return p, ok
}

func (b *cpuBackend) PutProgram(key string, p *Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.programs[key] = p
}

func (b *cpuBackend) Compile(key, source string, kernels map[string]interface{}) (*Program, error) {
	if existing, ok := b.GetProgram(key); ok {
		return existing, nil
	}
	p := &Program{Key: key, Source: source, Kernels: kernels}
	b.PutProgram(key, p)
	return p, nil
}

func (b *cpuBackend) MaxWorkgroupSize() int { return runtime.NumCPU() }
func (b *cpuBackend) WaveSize() int         { return 1 }
func (b *cpuBackend) VendorCode() string    { return "cpu" }
func (b *cpuBackend) AlignmentBytes() int   { return 64 }
func (b *cpuBackend) Available() bool       { return true }

// --- Null backend ------------------------------------------------------

// nullBackend reports no device at all, per spec §4.4.
type nullBackend struct{}

func newNullBackend() *nullBackend { return &nullBackend{} }

func (n *nullBackend) Name() string          { return "null" }
func (n *nullBackend) QueueDefault() Queue   { return nil }
func (n *nullBackend) Queue(int) Queue       { return nil }
func (n *nullBackend) QueueCount() int       { return 0 }
func (n *nullBackend) MaxWorkgroupSize() int { return 0 }
func (n *nullBackend) WaveSize() int         { return 0 }
func (n *nullBackend) VendorCode() string    { return "none" }
func (n *nullBackend) AlignmentBytes() int   { return 1 }
func (n *nullBackend) Available() bool       { return false }

func (n *nullBackend) Allocate(int) (*DeviceBuffer, error) {
	return nil, codes.New(codes.DeviceNotFound, "accel: null backend has no device")
}

func (n *nullBackend) AllocatePair(int, int) (*DeviceBuffer, *DeviceBuffer, error) {
	return nil, nil, codes.New(codes.DeviceNotFound, "accel: null backend has no device")
}

func (n *nullBackend) GetProgram(string) (*Program, bool) { return nil, false }
func (n *nullBackend) PutProgram(string, *Program)        {}

func (n *nullBackend) Compile(string, string, map[string]interface{}) (*Program, error) {
	return nil, codes.New(codes.DeviceNotFound, "accel: null backend cannot compile")
}
