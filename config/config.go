// Package config holds the tunable knobs of the compiler and VM.
//
// The teacher hard-codes its equivalents as literal constants inside
// vm.New() (a 1024-slot stack, a 256-slot locals array). This rewrite
// pulls these knobs out into an explicit, documented Options struct so
// library callers can override them; Default() keeps a 256-frame limit
// and uses a 16384-slot (1024*16) value stack.
package config

// Options holds every tunable the compiler and VM read at construction
// time.
type Options struct {
	// StackSize is the fixed capacity of the VM's value stack
	// (spec.md §4.9).
	StackSize int

	// FramesMax is the fixed capacity of the VM's call-frame stack.
	FramesMax int

	// InitialGCThreshold is bytes_allocated at which the first GC cycle
	// may run (spec.md §4.8).
	InitialGCThreshold int

	// GCHeapGrowFactor is the multiplier applied to bytes_allocated_now
	// to compute the next GC threshold after each cycle (spec.md §4.8:
	// "reset to 2x current live bytes").
	GCHeapGrowFactor float64

	// GCStressMode forces a GC cycle on every allocation, for testing
	// the collector's correctness against the object graph rather than
	// its scheduling heuristic (spec.md §4.8 "Stress mode").
	GCStressMode bool
}

// Default returns the options the CLI runs with: a 16384-slot stack,
// 256 frames, a 1 MiB first GC threshold, 2x heap growth, stress mode off.
func Default() Options {
	return Options{
		StackSize:          1024 * 16,
		FramesMax:          256,
		InitialGCThreshold: 1 << 20, // 1 MiB
		GCHeapGrowFactor:   2.0,
		GCStressMode:       false,
	}
}
