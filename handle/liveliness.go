package handle

import (
	"go.uber.org/zap"

	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/errors"
)

// Kind names a resource kind, e.g. "output" or "tablet-pad".
type Kind string

// State is the liveliness cell shared between one owning Resource and every
// Handle derived from it. It records whether the native object still exists
// and whether the resource is currently checked out for an exclusive run.
//
// The strong count plays the role of shared ownership: the owning Resource
// holds one strong reference for the object's whole life, and every
// successful upgrade holds another for the duration of the run. The drop
// that releases the last strong reference is the real destruction; it
// latches the cell dead and runs the destroy finalizers exactly once.
type State struct {
	kind       Kind
	id         wlkit.NativeID
	finalizers []func()
	strong     int
	checkedOut bool
	dead       bool
}

func newState(kind Kind, id wlkit.NativeID) *State {
	return &State{kind: kind, id: id, strong: 1}
}

// Kind returns the resource kind this cell belongs to.
func (s *State) Kind() Kind {
	if s == nil {
		return ""
	}
	return s.kind
}

// ID returns the native identity this cell belongs to.
func (s *State) ID() wlkit.NativeID {
	if s == nil {
		return 0
	}
	return s.id
}

// Alive reports whether the native object still exists.
func (s *State) Alive() bool {
	return s != nil && !s.dead
}

// CheckedOut reports whether the resource is currently checked out.
func (s *State) CheckedOut() bool {
	return s != nil && s.checkedOut
}

// acquire takes the exclusive checkout and adds a strong reference.
// This is the single enforcement point for both failure modes.
func (s *State) acquire() error {
	if s == nil || s.dead {
		return errors.AlreadyDropped(string(s.Kind()), s.ID())
	}
	if s.checkedOut {
		return errors.AlreadyBorrowed(string(s.kind), s.id)
	}
	s.checkedOut = true
	s.strong++
	notify(Event{Type: EventUpgraded, Kind: s.kind, ID: s.id})
	return nil
}

// settle clears the checkout flag after a run's closure has returned.
//
// Finding the flag already cleared means some reentrant misuse reset it
// underneath the run; the single-owner invariant is already broken at that
// point, so this is fatal rather than an error value.
func (s *State) settle() {
	if !s.checkedOut {
		Logger().Error("checkout flag cleared during run",
			zap.String("kind", string(s.kind)),
			zap.String("id", s.id.String()))
		panic("handle: checkout flag in invalid state after run")
	}
	s.checkedOut = false
	notify(Event{Type: EventReleased, Kind: s.kind, ID: s.id})
}

// dropStrong releases one strong reference. The caller that releases the
// last one performs the real destruction.
func (s *State) dropStrong() {
	if s.dead {
		return
	}
	if s.strong <= 0 {
		panic("handle: strong count underflow")
	}
	s.strong--
	if s.strong > 0 {
		return
	}
	s.dead = true
	Logger().Debug("resource destroyed",
		zap.String("kind", string(s.kind)),
		zap.String("id", s.id.String()))
	fins := s.finalizers
	s.finalizers = nil
	for _, fn := range fins {
		fn()
	}
	notify(Event{Type: EventDestroyed, Kind: s.kind, ID: s.id})
}

// onDestroy registers a finalizer to run at real destruction. Finalizers
// run in registration order, once, and never on a transient release.
func (s *State) onDestroy(fn func()) {
	s.finalizers = append(s.finalizers, fn)
}
