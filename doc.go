// Package wlkit provides a safety layer for compositor resources whose
// lifetime is owned by an asynchronous native display backend.
//
// Outputs, input devices and surfaces can disappear at any moment as a side
// effect of hardware or session events: a monitor is unplugged, a tablet is
// detached. Application code therefore never holds a resource directly.
// Instead it holds a cheap, storable Handle and briefly checks the resource
// out when it needs to act on it.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	wlkit/            Root package with shared identity and geometry primitives
//	├── handle/       Generic liveliness cell, Resource[T] and Handle[T] core
//	├── errors/       Structured error types (already-dropped, already-borrowed)
//	├── backend/      Headless native backend: objects, signals, event delivery
//	├── output/       Output resource, damage tracking, output layout
//	├── input/        Input devices: tablet pad, pointer, keyboard
//	├── surface/      Surface resource
//	├── manager/      Event bridge: handler interfaces and destruction dispatch
//	├── scenario/     YAML-scripted backend simulations
//	└── cmd/sim/      Demo binary with an interactive inspector
//
// # Quick Start
//
// Wrap a freshly discovered native object, keep a handle, act on it later:
//
//	out, ok := output.New(obj)
//	if !ok {
//	    return // not an output object
//	}
//	h := out.WeakReference()
//
//	err := h.Run(func(o *output.Output) error {
//	    o.Enable(true)
//	    o.ScheduleFrame()
//	    return nil
//	})
//	if errors.IsAlreadyDropped(err) {
//	    // the output is gone; forget the handle
//	}
//
// The Run call fails with AlreadyDropped once the backend has destroyed the
// object, and with AlreadyBorrowed if the same resource is already checked
// out by an enclosing Run. Both are ordinary error values; finding the
// borrow flag in an impossible state after a closure runs is a fatal
// invariant violation and panics.
//
// # Threading Model
//
// The core is single-threaded by design. All resource access and all event
// delivery happen synchronously on the goroutine driving the backend; the
// borrow flag is a reentrancy guard, not a lock.
package wlkit
