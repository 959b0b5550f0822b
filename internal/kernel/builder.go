// Package kernel implements the kernel builder and program cache of
// spec §4.5: composing a kernel-language program from named holes (type
// aliases, inlined operator bodies, integer defines, included sources),
// hashing the composed text into a cache key, and handing the result to
// the accelerator facade (internal/accel) to compile and cache.
//
// The builder is deterministic: identical Spec values produce identical
// composed source and therefore the same cache key, as spec §4.5
// requires. Composition itself never touches the network or disk; only
// accel.Device.Compile does device-specific work.
package kernel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/spla/codes"
	"github.com/katalvlaran/spla/internal/accel"
	"github.com/katalvlaran/spla/typesys"
)

// TypeAlias names an element-type hole to be emitted as a kernel-language
// typedef, e.g. {Name: "T", Type: typesys.INT} becomes "typedef long T;".
type TypeAlias struct {
	Name string
	Type *typesys.Type
}

// OperatorBody names a kernel-language function hole whose body is an
// operator's snippet, e.g. a binary op's "V f(T,U)" source.
type OperatorBody struct {
	FuncName string
	Snippet  string
}

// Spec is the input to Build: everything needed to compose one kernel
// program, per spec §4.5 step 1.
type Spec struct {
	// TypeAliases become typedefs, emitted right after the defines.
	TypeAliases []TypeAlias

	// Operators become named functions, emitted after the typedefs.
	Operators []OperatorBody

	// Defines become "#define NAME VALUE" lines, emitted before typedefs.
	Defines map[string]int

	// IncludedSources are appended verbatim after the operator functions,
	// in the order given (e.g. a CSR mxv kernel body that calls the
	// inlined mult/add operator functions by name).
	IncludedSources []string
}

// Compose deterministically renders spec into kernel-language source.
// Defines are sorted by name so that composition never depends on map
// iteration order — the core of the "identical inputs produce identical
// source" guarantee.
func Compose(spec Spec) string {
	var b strings.Builder

	defineNames := make([]string, 0, len(spec.Defines))
	for name := range spec.Defines {
		defineNames = append(defineNames, name)
	}
	sort.Strings(defineNames)
	for _, name := range defineNames {
		fmt.Fprintf(&b, "#define %s %d\n", name, spec.Defines[name])
	}

	for _, alias := range spec.TypeAliases {
		if alias.Type == nil || alias.Type.KernelSnippet == "" {
			continue
		}
		// Rewrite the type's own "typedef ... T;" snippet under the
		// requested alias name rather than assuming it is always "T".
		b.WriteString(renameTypedef(alias.Type.KernelSnippet, alias.Name))
		b.WriteString("\n")
	}

	for _, op := range spec.Operators {
		b.WriteString(op.Snippet)
		b.WriteString("\n")
	}

	for _, src := range spec.IncludedSources {
		b.WriteString(src)
		b.WriteString("\n")
	}

	return b.String()
}

// renameTypedef rewrites "typedef <base> T;"-shaped snippets to declare
// alias instead of the literal name "T". Snippets that don't match the
// expected shape are passed through unchanged.
func renameTypedef(snippet, alias string) string {
	const marker = " T;"
	if strings.HasSuffix(strings.TrimSpace(snippet), "T;") && strings.Contains(snippet, marker) {
		return strings.Replace(snippet, marker, " "+alias+";", 1)
	}
	return snippet
}

// Program is a built, cached kernel program, along with the exact source
// it was compiled from (for diagnostics and cache-key verification in
// tests).
type Program struct {
	Key    string
	Source string
	device *accel.Program
}

// Build composes spec, hashes the result into a cache key, and returns a
// cached Program from dev if present; otherwise it compiles through dev
// and caches the result. kernels maps an in-program function name (one
// of spec.Operators' FuncName, typically) to a host-callable used by the
// CPU backend.
func Build(dev accel.Device, spec Spec, kernels map[string]interface{}) (*Program, error) {
	if dev == nil {
		return nil, codes.New(codes.InvalidArgument, "kernel: Build requires a non-nil device")
	}
	source := Compose(spec)
	key := accel.ProgramKey(source)

	if cached, ok := dev.GetProgram(key); ok {
		return &Program{Key: key, Source: cached.Source, device: cached}, nil
	}

	compiled, err := dev.Compile(key, source, kernels)
	if err != nil {
		// dev.Compile already classifies device-unavailable failures as
		// DeviceNotFound; only genuine compiler rejections are
		// reclassified as CompileError here, carrying the full source.
		if serr, ok := err.(*codes.Error); ok && serr.Kind == codes.CompileError {
			return nil, codes.NewCompileError(source, serr.Msg)
		}
		return nil, err
	}
	return &Program{Key: key, Source: source, device: compiled}, nil
}

// Kernel returns the host-callable registered under name, or nil if
// absent. Format kernels use this to fetch the CPU implementation of an
// inlined operator after a (possibly cached) Build.
func (p *Program) Kernel(name string) interface{} {
	if p == nil || p.device == nil || p.device.Kernels == nil {
		return nil
	}
	return p.device.Kernels[name]
}
