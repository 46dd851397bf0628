// Package surface wraps native surfaces in the resource/handle lifecycle.
//
// Surfaces follow the same discipline as outputs and input devices: the
// event bridge owns the one Surface, shells and user compositor state
// store Handles, and a surface destroyed by its client fails every handle
// with AlreadyDropped.
package surface

import (
	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/backend"
	"github.com/wlkit/wlkit/handle"
)

// Kind is the resource kind of surfaces.
const Kind = handle.Kind("surface")

type data struct {
	obj *backend.Object
}

// Surface is the owning wrapper around one native surface.
type Surface struct {
	res *handle.Resource[data]
}

// New wraps a freshly created native surface. Objects of any other kind
// yield no resource.
func New(obj *backend.Object) (*Surface, bool) {
	if obj.Kind() != backend.KindSurface {
		return nil, false
	}
	res := handle.New(Kind, obj.ID(), data{obj: obj})
	return &Surface{res: res}, true
}

// ID returns the native identity of the surface.
func (s *Surface) ID() wlkit.NativeID {
	return s.res.ID()
}

func (s *Surface) state() *backend.SurfaceState {
	return s.res.Data().obj.Surface()
}

// Role returns the surface role, e.g. "toplevel" or "cursor". Empty until
// a role is assigned.
func (s *Surface) Role() string { return s.state().Role }

// SetRole assigns the surface role. Roles are assign-once; reassigning a
// different role reports failure.
func (s *Surface) SetRole(role string) bool {
	st := s.state()
	if st.Role != "" && st.Role != role {
		return false
	}
	st.Role = role
	return true
}

// Size returns the committed surface size.
func (s *Surface) Size() wlkit.Size { return s.state().Size }

// Mapped reports whether the surface is mapped.
func (s *Surface) Mapped() bool { return s.state().Mapped }

// Commit applies a new committed size and maps the surface.
func (s *Surface) Commit(size wlkit.Size) {
	st := s.state()
	st.Size = size
	st.Mapped = true
}

// WeakReference derives a storable handle to this surface.
func (s *Surface) WeakReference() Handle {
	return Handle{h: s.res.WeakReference()}
}

// Drop releases this wrapper; the event bridge calls it when the backend
// signals the surface is gone.
func (s *Surface) Drop() {
	s.res.Drop()
}

// Handle is a storable weak reference to a Surface.
type Handle struct {
	h handle.Handle[data]
}

// ID returns the native identity; handles compare equal exactly when
// their IDs match.
func (h Handle) ID() wlkit.NativeID { return h.h.ID() }

// Alive reports whether the native surface still exists.
func (h Handle) Alive() bool { return h.h.Alive() }

// Role returns the surface role without a full checkout. It fails with
// AlreadyDropped once the surface is gone.
func (h Handle) Role() (string, error) {
	d, err := h.h.Data()
	if err != nil {
		return "", err
	}
	return d.obj.Surface().Role, nil
}

// Run checks the surface out, runs fn against it exclusively, and
// releases it.
func (h Handle) Run(fn func(*Surface) error) error {
	return h.h.Run(func(r *handle.Resource[data]) error {
		return fn(&Surface{res: r})
	})
}
