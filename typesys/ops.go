package typesys

import "github.com/katalvlaran/spla/codes"

// OpUnary is a polymorphic T → U operator: a kernel-language snippet of the
// form "U f(T)" plus a host-side callable used by the CPU backend and by
// the decoration cache's format conversions.
type OpUnary struct {
	Name          string
	Arg           *Type
	Result        *Type
	KernelSnippet string
	Host          func(interface{}) interface{}
}

// OpBinary is a polymorphic T × U → V operator. Flags record algebraic
// properties the scheduler and format kernels rely on: associative
// binary ops may be reduced with any tree shape (spec §8 invariant 5),
// commutative ones let a kernel reorder operands freely.
type OpBinary struct {
	Name          string
	Arg1          *Type
	Arg2          *Type
	Result        *Type
	KernelSnippet string
	Host          func(a, b interface{}) interface{}
	Associative   bool
	Commutative   bool
}

// OpSelect is a polymorphic T → bool predicate, used by v_assign and
// v_select_count.
type OpSelect struct {
	Name          string
	Arg           *Type
	KernelSnippet string
	Host          func(interface{}) bool
}

// MakeUnaryOp constructs an OpUnary descriptor. Operators are pure,
// immutable, and not interned: two operators with the same name and
// different argument types are both valid and independent, unlike Types.
func MakeUnaryOp(name string, arg, result *Type, kernelSnippet string, host func(interface{}) interface{}) (*OpUnary, error) {
	if name == "" || arg == nil || result == nil || host == nil {
		return nil, codes.New(codes.InvalidArgument, "typesys: MakeUnaryOp requires name, arg, result, and host")
	}
	return &OpUnary{Name: name, Arg: arg, Result: result, KernelSnippet: kernelSnippet, Host: host}, nil
}

// MakeBinaryOp constructs an OpBinary descriptor.
func MakeBinaryOp(name string, arg1, arg2, result *Type, kernelSnippet string, host func(a, b interface{}) interface{}, opts ...BinaryOpOption) (*OpBinary, error) {
	if name == "" || arg1 == nil || arg2 == nil || result == nil || host == nil {
		return nil, codes.New(codes.InvalidArgument, "typesys: MakeBinaryOp requires name, arg1, arg2, result, and host")
	}
	op := &OpBinary{Name: name, Arg1: arg1, Arg2: arg2, Result: result, KernelSnippet: kernelSnippet, Host: host}
	for _, o := range opts {
		o(op)
	}
	return op, nil
}

// BinaryOpOption configures optional algebraic metadata on an OpBinary.
type BinaryOpOption func(*OpBinary)

// Associative marks the operator as associative (required for tree
// reductions, spec §4.7).
func Associative() BinaryOpOption { return func(o *OpBinary) { o.Associative = true } }

// Commutative marks the operator as commutative.
func Commutative() BinaryOpOption { return func(o *OpBinary) { o.Commutative = true } }

// MakeSelectorOp constructs an OpSelect descriptor.
func MakeSelectorOp(name string, arg *Type, kernelSnippet string, host func(interface{}) bool) (*OpSelect, error) {
	if name == "" || arg == nil || host == nil {
		return nil, codes.New(codes.InvalidArgument, "typesys: MakeSelectorOp requires name, arg, and host")
	}
	return &OpSelect{Name: name, Arg: arg, KernelSnippet: kernelSnippet, Host: host}, nil
}

// CanApplyUnary is a direct type-identity check (spec §4.1: "Applicability
// is a simple type-identity check").
func (op *OpUnary) CanApplyUnary(arg *Type) bool { return op != nil && op.Arg == arg }

// CanApplyBinary checks both argument types by identity.
func (op *OpBinary) CanApplyBinary(a, b *Type) bool {
	return op != nil && op.Arg1 == a && op.Arg2 == b
}

// CanApplySelect checks the argument type by identity.
func (op *OpSelect) CanApplySelect(arg *Type) bool { return op != nil && op.Arg == arg }

// Built-in operators over INT and FLOAT, registered once at package init
// for use by tests, examples, and the format kernels that need a
// default accumulator.
var (
	PlusInt  *OpBinary
	TimesInt *OpBinary
	MinInt   *OpBinary

	PlusFloat  *OpBinary
	TimesFloat *OpBinary
	MinFloat   *OpBinary

	AndBool *OpBinary
	OrBool  *OpBinary

	IdentityInt *OpUnary
)

func init() {
	PlusInt, _ = MakeBinaryOp("plus_int", INT, INT, INT, "long plus_int(long a, long b){return a+b;}",
		func(a, b interface{}) interface{} { return a.(int64) + b.(int64) }, Associative(), Commutative())
	TimesInt, _ = MakeBinaryOp("times_int", INT, INT, INT, "long times_int(long a, long b){return a*b;}",
		func(a, b interface{}) interface{} { return a.(int64) * b.(int64) }, Associative(), Commutative())
	MinInt, _ = MakeBinaryOp("min_int", INT, INT, INT, "long min_int(long a, long b){return a<b?a:b;}",
		func(a, b interface{}) interface{} {
			if a.(int64) < b.(int64) {
				return a
			}
			return b
		}, Associative(), Commutative())

	PlusFloat, _ = MakeBinaryOp("plus_float", FLOAT, FLOAT, FLOAT, "double plus_float(double a, double b){return a+b;}",
		func(a, b interface{}) interface{} { return a.(float64) + b.(float64) }, Associative(), Commutative())
	TimesFloat, _ = MakeBinaryOp("times_float", FLOAT, FLOAT, FLOAT, "double times_float(double a, double b){return a*b;}",
		func(a, b interface{}) interface{} { return a.(float64) * b.(float64) }, Associative(), Commutative())
	MinFloat, _ = MakeBinaryOp("min_float", FLOAT, FLOAT, FLOAT, "double min_float(double a, double b){return a<b?a:b;}",
		func(a, b interface{}) interface{} {
			if a.(float64) < b.(float64) {
				return a
			}
			return b
		}, Associative(), Commutative())

	AndBool, _ = MakeBinaryOp("and_bool", BOOL, BOOL, BOOL, "uchar and_bool(uchar a, uchar b){return a&&b;}",
		func(a, b interface{}) interface{} { return a.(bool) && b.(bool) }, Associative(), Commutative())
	OrBool, _ = MakeBinaryOp("or_bool", BOOL, BOOL, BOOL, "uchar or_bool(uchar a, uchar b){return a||b;}",
		func(a, b interface{}) interface{} { return a.(bool) || b.(bool) }, Associative(), Commutative())

	IdentityInt, _ = MakeUnaryOp("identity_int", INT, INT, "long identity_int(long a){return a;}",
		func(a interface{}) interface{} { return a })
}
