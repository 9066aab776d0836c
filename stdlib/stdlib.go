// Package stdlib implements CynicScript's built-in io/ds/mem/time
// collaborator libraries as native functions (spec.md §6 "native-function
// ABI"). The language core leaves their contents unspecified — only the
// calling convention is part of the spec — so this package is free to
// generalize the teacher's own primitive set (kristofer/smog's
// pkg/vm/primitives.go, a single file of HTTP/crypto/compression/file/
// JSON/regex/random/date helpers wired by message selector) into the
// richer value.NativeObject ABI this rewrite uses instead of Smalltalk
// message sends.
package stdlib

import "github.com/kristofer/cynicscript/value"

// All returns every native function this package provides, keyed by the
// global name it is installed under. Only the bare names (print, println)
// can be called from source: a dotted name such as crypto.sha256 parses
// as a property access on a global `crypto`, which is not defined. A
// host embedding the
// VM installs them with (*vm.VM).DefineGlobal for each entry, mirroring
// how the teacher's dispatchPrimitive switch wires one Go method per
// message selector.
func All() map[string]*value.NativeObject {
	fns := make(map[string]*value.NativeObject)
	register := func(group map[string]value.NativeFn) {
		for name, fn := range group {
			fns[name] = value.NewNative(name, fn)
		}
	}
	register(coreFns())
	register(ioFns())
	register(cryptoFns())
	register(compressFns())
	register(jsonFns())
	register(regexFns())
	register(randomFns())
	register(timeFns())
	register(dsFns())
	return fns
}
