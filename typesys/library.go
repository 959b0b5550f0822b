package typesys

import (
	"sync"

	"github.com/katalvlaran/spla/codes"
)

// MessageCallback receives each codes.Message passed to Library.Notify.
// No package in this module calls Notify itself, so decoration rebuilds,
// algorithm selection failures, compile errors, and expression aborts
// are reported only through returned errors, not through the callback.
type MessageCallback func(codes.Message)

// Library is the process-wide configuration handle of spec §6: which
// accelerator backend to use, which platform/device/queue count, and
// where diagnostics are delivered. It does not itself own accelerator
// resources — internal/accel.Init consumes a Config derived from it —
// keeping typesys free of a dependency on the accelerator facade.
type Library struct {
	mu sync.Mutex

	accelerator string // "cpu", "null", or a future GPU backend name
	platform    int
	device      int
	queueCount  int
	callback    MessageCallback
	finalized   bool
}

// LibraryOption configures a Library before first use, in the teacher's
// functional-option idiom (core.GraphOption, matrix.Option).
type LibraryOption func(*Library)

// WithAccelerator selects the accelerator backend by name ("cpu" is
// always available; "null" forces every algorithm selector onto its CPU
// variant per spec §4.4).
func WithAccelerator(name string) LibraryOption {
	return func(l *Library) { l.accelerator = name }
}

// WithPlatform selects a platform index for backends that enumerate
// multiple platforms.
func WithPlatform(i int) LibraryOption {
	return func(l *Library) { l.platform = i }
}

// WithDevice selects a device index within the chosen platform.
func WithDevice(i int) LibraryOption {
	return func(l *Library) { l.device = i }
}

// WithQueueCount sets how many command queues the accelerator facade
// opens; the scheduler round-robins nodes across them.
func WithQueueCount(n int) LibraryOption {
	return func(l *Library) {
		if n > 0 {
			l.queueCount = n
		}
	}
}

// WithMessageCallback installs the diagnostic sink.
func WithMessageCallback(cb MessageCallback) LibraryOption {
	return func(l *Library) { l.callback = cb }
}

// NewLibrary constructs a Library with sane defaults (cpu accelerator,
// platform/device 0, a single queue, no callback) and applies opts.
func NewLibrary(opts ...LibraryOption) *Library {
	l := &Library{accelerator: "cpu", queueCount: 1}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Accelerator, Platform, Device, and QueueCount expose the resolved
// configuration to internal/accel.Init.
func (l *Library) Accelerator() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accelerator
}

func (l *Library) Platform() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.platform
}

func (l *Library) Device() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.device
}

func (l *Library) QueueCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.queueCount <= 0 {
		return 1
	}
	return l.queueCount
}

// SetAccelerator, SetPlatform, SetDevice, SetQueueCount, and
// SetMessageCallback mutate an already-constructed Library, matching the
// imperative setter surface named in spec §6 (as opposed to the
// functional-option constructor above, which is the idiomatic Go way to
// reach the same state at construction time).
func (l *Library) SetAccelerator(name string) { l.mu.Lock(); l.accelerator = name; l.mu.Unlock() }
func (l *Library) SetPlatform(i int)          { l.mu.Lock(); l.platform = i; l.mu.Unlock() }
func (l *Library) SetDevice(i int)            { l.mu.Lock(); l.device = i; l.mu.Unlock() }
func (l *Library) SetQueueCount(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > 0 {
		l.queueCount = n
	}
}
func (l *Library) SetMessageCallback(cb MessageCallback) {
	l.mu.Lock()
	l.callback = cb
	l.mu.Unlock()
}

// Notify delivers msg to the installed callback, if any. Safe to call
// from any goroutine; the callback itself must not block indefinitely,
// as per-entity locks may be held by the caller.
func (l *Library) Notify(msg codes.Message) {
	l.mu.Lock()
	cb := l.callback
	l.mu.Unlock()
	if cb != nil {
		cb(msg)
	}
}

// Finalize marks the Library as torn down. Further Notify calls are
// no-ops; this mirrors spec §6's Library.finalize() contract for process
// shutdown.
func (l *Library) Finalize() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.finalized = true
	l.callback = nil
}

// Finalized reports whether Finalize has already run.
func (l *Library) Finalized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.finalized
}
