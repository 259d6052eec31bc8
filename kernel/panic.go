package kernel

import (
	"github.com/achilleasa/slabcore/kernel/kfmt/early"
)

var (
	// haltFn is mocked by tests and is automatically inlined by the compiler.
	haltFn = func() { panic(errRuntimePanic) }

	errRuntimePanic = &Error{Module: "rt", Message: "unknown cause"}
)

// Panic prints the supplied error (if not nil) to early.Sink and then aborts
// via haltFn. It is the allocator's debug-build abort path: an invariant
// violation that is not recoverable by contract (double free, foreign
// pointer, size-class mismatch) reaches here, never an OutOfMemory or
// InvalidLayout return, which remain ordinary errors a caller can recover
// from.
func Panic(e interface{}) {
	var err *Error

	switch t := e.(type) {
	case *Error:
		err = t
	case string:
		errRuntimePanic.Message = t
		err = errRuntimePanic
	case error:
		errRuntimePanic.Message = t.Error()
		err = errRuntimePanic
	}

	early.Printf("\n-----------------------------------\n")
	if err != nil {
		early.Printf("[%s] unrecoverable error: %s\n", err.Module, err.Message)
	}
	early.Printf("*** allocator invariant violated: aborting ***")
	early.Printf("\n-----------------------------------\n")

	haltFn()
}
