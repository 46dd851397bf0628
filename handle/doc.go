// Package handle implements the generic resource handle and liveliness core.
//
// A native object's true lifetime belongs to the backend: a display can be
// unplugged and a tablet detached at any moment, regardless of what the
// program is holding at the time. This package lets code keep long-lived
// references to such objects anyway, by splitting every resource in two:
//
//	Resource[T] - the owning wrapper; exactly one per native object
//	Handle[T]   - a cheap, storable weak reference derived from it
//
// Both share one liveliness cell (State). The cell records two things: the
// checked-out flag, and whether the object is still alive at all. While the
// owning Resource exists the strong count is exactly one; handles never
// keep the object alive.
//
// # Checking a resource out
//
// Handle.Run is the only public way to act on a resource:
//
//	err := h.Run(func(r *handle.Resource[padData]) error {
//	    ...
//	    return nil
//	})
//
// Run upgrades the handle (failing with AlreadyDropped if the object is
// gone, AlreadyBorrowed if it is already checked out), executes the closure
// against the one temporary Resource, and releases the checkout
// unconditionally, even if the closure panics. The checkout flag makes Run
// non-reentrant by construction: nesting Run on the same resource fails the
// inner call with AlreadyBorrowed instead of aliasing the resource.
//
// # Destruction
//
// When the backend destroys the native object, the event bridge drops the
// one owning Resource. The drop that releases the last strong holder
// latches the cell dead and runs the destroy finalizers (auxiliary state
// owned in lock-step with the object, such as an output's damage tracker).
// Every outstanding handle fails permanently from then on. A transient
// Resource produced by an upgrade releases its strong hold without ever
// triggering destruction, unless the owner was dropped while it was
// checked out, in which case destruction happens at release.
//
// The core is single-threaded: the checkout flag is a reentrancy guard,
// not a lock, and no operation blocks or suspends.
package handle
