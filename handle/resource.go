package handle

import (
	"github.com/wlkit/wlkit"
)

// Resource is the owning wrapper around one native object. T is the
// per-kind payload: the identifying data and auxiliary state a handle
// needs to reconstruct access. Payloads are copied into handles, so any
// mutable part must be held by pointer.
//
// Exactly one owning Resource exists per native object. Further instances
// are transient: produced by Handle.Upgrade for the scope of a run and
// dropped when it ends.
type Resource[T any] struct {
	state *State
	data  T
}

// New wraps a freshly discovered native object. Call it once per native
// identity; the returned Resource is the single owner until the backend
// destroys the object.
func New[T any](kind Kind, id wlkit.NativeID, data T) *Resource[T] {
	r := &Resource[T]{state: newState(kind, id), data: data}
	notify(Event{Type: EventCreated, Kind: kind, ID: id})
	return r
}

// Kind returns the resource kind.
func (r *Resource[T]) Kind() Kind {
	return r.state.Kind()
}

// ID returns the native identity of the wrapped object.
func (r *Resource[T]) ID() wlkit.NativeID {
	return r.state.ID()
}

// State returns the shared liveliness cell, for inspection.
func (r *Resource[T]) State() *State {
	return r.state
}

// Data returns the payload. The copy shares any pointer-typed parts with
// every handle derived from this resource.
func (r *Resource[T]) Data() T {
	return r.data
}

// OnDestroy registers a finalizer that runs exactly once, at real
// destruction. Use it for state whose lifetime must match the native
// object's, like an output's damage tracker.
func (r *Resource[T]) OnDestroy(fn func()) {
	r.state.onDestroy(fn)
}

// WeakReference derives a storable handle. Handles are cheap to clone and
// safe to keep after the resource dies.
func (r *Resource[T]) WeakReference() Handle[T] {
	return Handle[T]{state: r.state, data: r.data}
}

// Drop releases this wrapper's strong hold on the liveliness cell.
//
// For the owning Resource this is permanent destruction, performed by the
// event bridge when the backend signals the object is gone. For a
// transient Resource it merely ends the upgrade's scope; Run calls it
// automatically. Whoever releases the last strong hold latches the cell
// dead and triggers the destroy finalizers.
func (r *Resource[T]) Drop() {
	r.state.dropStrong()
}
