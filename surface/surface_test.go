package surface

import (
	"testing"

	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/backend"
	wlerrors "github.com/wlkit/wlkit/errors"
)

func newSurface(t *testing.T) (*backend.Backend, *Surface) {
	t.Helper()
	be := backend.New()
	obj, err := be.CreateSurface(backend.SurfaceState{})
	if err != nil {
		t.Fatalf("CreateSurface: %v", err)
	}
	s, ok := New(obj)
	if !ok {
		t.Fatal("expected surface wrapper")
	}
	return be, s
}

func TestNew_ConstructionFilter(t *testing.T) {
	be := backend.New()
	obj, err := be.CreateOutput(backend.OutputState{Name: "DP-1"})
	if err != nil {
		t.Fatalf("CreateOutput: %v", err)
	}
	if _, ok := New(obj); ok {
		t.Fatal("output object must not wrap as surface")
	}
}

func TestRole_AssignOnce(t *testing.T) {
	_, s := newSurface(t)
	defer s.Drop()

	if !s.SetRole("toplevel") {
		t.Fatal("first role assignment must succeed")
	}
	if !s.SetRole("toplevel") {
		t.Fatal("same role reassignment must succeed")
	}
	if s.SetRole("cursor") {
		t.Fatal("conflicting role must be rejected")
	}
	if got := s.Role(); got != "toplevel" {
		t.Fatalf("role = %q, want toplevel", got)
	}
}

func TestCommit_MapsSurface(t *testing.T) {
	_, s := newSurface(t)
	defer s.Drop()

	if s.Mapped() {
		t.Fatal("surface mapped before first commit")
	}
	s.Commit(wlkit.Size{Width: 640, Height: 480})
	if !s.Mapped() {
		t.Fatal("surface not mapped after commit")
	}
	if got := s.Size(); got != (wlkit.Size{Width: 640, Height: 480}) {
		t.Fatalf("size = %+v", got)
	}
}

func TestHandle_DiesWithSurface(t *testing.T) {
	_, s := newSurface(t)
	s.SetRole("toplevel")
	h := s.WeakReference()

	if role, err := h.Role(); err != nil || role != "toplevel" {
		t.Fatalf("Role() = %q, %v", role, err)
	}

	s.Drop()

	if h.Alive() {
		t.Fatal("handle alive after drop")
	}
	if _, err := h.Role(); !wlerrors.IsAlreadyDropped(err) {
		t.Fatalf("Role() after drop = %v, want already_dropped", err)
	}
	if err := h.Run(func(*Surface) error { return nil }); !wlerrors.IsAlreadyDropped(err) {
		t.Fatalf("Run after drop = %v, want already_dropped", err)
	}
}

func TestHandle_RunExclusivity(t *testing.T) {
	_, s := newSurface(t)
	defer s.Drop()
	h := s.WeakReference()

	err := h.Run(func(*Surface) error {
		if inner := h.Run(func(*Surface) error { return nil }); !wlerrors.IsAlreadyBorrowed(inner) {
			t.Fatalf("nested Run = %v, want already_borrowed", inner)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
}
