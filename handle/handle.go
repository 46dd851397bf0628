package handle

import (
	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/errors"
)

// Handle is a storable weak reference to a Resource. It holds the shared
// liveliness cell plus a copy of the payload, which is enough to
// reconstruct a temporary Resource without keeping the native object
// alive.
//
// The zero Handle is valid and permanently dead: every operation on it
// fails with AlreadyDropped. That makes it useful for pre-filling struct
// fields before the backend provides a real resource.
//
// Handles compare by native identity, never by liveliness, so they remain
// usable as map keys after the object dies.
type Handle[T any] struct {
	state *State
	data  T
}

// Kind returns the resource kind, or "" for the zero Handle.
func (h Handle[T]) Kind() Kind {
	return h.state.Kind()
}

// ID returns the native identity, or 0 for the zero Handle. Two handles
// are handles to the same resource exactly when their IDs are equal.
func (h Handle[T]) ID() wlkit.NativeID {
	return h.state.ID()
}

// Alive reports whether the native object still exists. A true result is
// only a snapshot; use Run to act on the resource.
func (h Handle[T]) Alive() bool {
	return h.state.Alive()
}

// Data returns the payload without a full checkout. It still fails with
// AlreadyDropped once the object is gone, so callers cannot read
// identifying data off a dead resource by accident.
func (h Handle[T]) Data() (T, error) {
	if !h.state.Alive() {
		var zero T
		return zero, errors.AlreadyDropped(string(h.Kind()), h.ID())
	}
	return h.data, nil
}

// Upgrade reconstructs a temporary Resource, taking the exclusive
// checkout. It fails with AlreadyDropped if the native object has been
// destroyed and AlreadyBorrowed if another upgrade is outstanding.
//
// Prefer Run: an upgrade obtained directly must be paired with a release
// by hand, and skipping the release wedges the resource checked out.
func (h Handle[T]) Upgrade() (*Resource[T], error) {
	if err := h.state.acquire(); err != nil {
		return nil, err
	}
	return &Resource[T]{state: h.state, data: h.data}, nil
}

// Run checks the resource out, executes fn against the temporary
// reconstruction, and releases the checkout. The release is unconditional:
// it runs even when fn panics, and the panic then continues to the caller.
//
// Run is not reentrant. Calling Run (or Upgrade) on a handle to the same
// resource from inside fn fails the inner call with AlreadyBorrowed,
// because the checkout is still held by the outer call.
func (h Handle[T]) Run(fn func(*Resource[T]) error) error {
	res, err := h.Upgrade()
	if err != nil {
		return err
	}
	defer func() {
		h.state.settle()
		res.Drop()
	}()
	return fn(res)
}

// Run is the result-returning form of Handle.Run for closures that produce
// a value alongside an error.
func Run[T, R any](h Handle[T], fn func(*Resource[T]) (R, error)) (R, error) {
	var out R
	err := h.Run(func(r *Resource[T]) error {
		var err error
		out, err = fn(r)
		return err
	})
	return out, err
}
