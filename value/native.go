package value

import "github.com/kristofer/cynicscript/token"

// NativeFn is the calling convention for a native (host-provided)
// function, per spec.md §4.8 "Native-function ABI": it receives the
// evaluated argument vector and the call-site token (for diagnostics),
// and returns its result with ok=true, or ok=false when it produced no
// value, in which case the VM pushes null in its place. Because ok is a
// flag separate from the result, a native returns boolean false as an
// ordinary result with ok=true.
type NativeFn func(args []Value, origin token.Token) (result Value, ok bool, err error)

// NativeObject wraps a host Go function so it can be called like any
// other CynicScript callable.
type NativeObject struct {
	Header
	Name string
	Fn   NativeFn
}

func NewNative(name string, fn NativeFn) *NativeObject {
	return &NativeObject{Name: name, Fn: fn}
}

func (n *NativeObject) ObjKind() ObjectKind     { return KNative }
func (n *NativeObject) String() string          { return "<native fn " + n.Name + ">" }
func (n *NativeObject) ByteSize() int           { return 32 }
func (n *NativeObject) Equals(o Object) bool    { return n == o }
func (n *NativeObject) Clone() Object           { return n }
func (n *NativeObject) Blacken(func(Object)) {}
