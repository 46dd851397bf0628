package handle

import (
	"errors"
	"testing"

	wlerr "github.com/wlkit/wlkit/errors"
)

type padData struct {
	counters *counters
	name     string
	buttons  int
}

type counters struct {
	presses int
}

func newPad(t *testing.T) *Resource[padData] {
	t.Helper()
	return New(Kind("tablet-pad"), 0xAAAA, padData{
		name:     "pad-0",
		buttons:  8,
		counters: &counters{},
	})
}

func TestRun_ReadsConstructionState(t *testing.T) {
	pad := newPad(t)
	h := pad.WeakReference()

	got, err := Run(h, func(r *Resource[padData]) (string, error) {
		return r.Data().name, nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got != "pad-0" {
		t.Fatalf("expected state captured at construction, got %q", got)
	}
}

func TestRun_NestedUpgradeIsAlreadyBorrowed(t *testing.T) {
	pad := newPad(t)
	h := pad.WeakReference()

	var inner error
	err := h.Run(func(*Resource[padData]) error {
		_, inner = h.Upgrade()
		return nil
	})
	if err != nil {
		t.Fatalf("outer Run failed: %v", err)
	}
	if !wlerr.IsAlreadyBorrowed(inner) {
		t.Fatalf("inner upgrade = %v, want AlreadyBorrowed", inner)
	}
}

func TestRun_NestedRunIsAlreadyBorrowed(t *testing.T) {
	pad := newPad(t)
	h := pad.WeakReference()

	err := h.Run(func(*Resource[padData]) error {
		return h.Run(func(*Resource[padData]) error { return nil })
	})
	if !wlerr.IsAlreadyBorrowed(err) {
		t.Fatalf("nested Run = %v, want AlreadyBorrowed", err)
	}
}

func TestRun_AfterDestroyIsAlreadyDropped(t *testing.T) {
	pad := newPad(t)
	h := pad.WeakReference()

	if err := h.Run(func(*Resource[padData]) error { return nil }); err != nil {
		t.Fatalf("Run before destroy failed: %v", err)
	}

	pad.Drop()

	err := h.Run(func(*Resource[padData]) error { return nil })
	if !wlerr.IsAlreadyDropped(err) {
		t.Fatalf("Run after destroy = %v, want AlreadyDropped", err)
	}
	// Permanence: it never intermittently succeeds.
	for i := 0; i < 3; i++ {
		if err := h.Run(func(*Resource[padData]) error { return nil }); !wlerr.IsAlreadyDropped(err) {
			t.Fatalf("Run %d after destroy = %v, want AlreadyDropped", i, err)
		}
	}
}

func TestRun_ClonedHandlesDieIndependently(t *testing.T) {
	pad := newPad(t)
	h1 := pad.WeakReference()
	h2 := h1

	pad.Drop()

	if err := h1.Run(func(*Resource[padData]) error { return nil }); !wlerr.IsAlreadyDropped(err) {
		t.Fatalf("h1.Run = %v, want AlreadyDropped", err)
	}
	if err := h2.Run(func(*Resource[padData]) error { return nil }); !wlerr.IsAlreadyDropped(err) {
		t.Fatalf("h2.Run = %v, want AlreadyDropped", err)
	}
}

func TestUpgrade_SingleOwner(t *testing.T) {
	pad := newPad(t)
	h := pad.WeakReference()

	first, err := h.Upgrade()
	if err != nil {
		t.Fatalf("first upgrade failed: %v", err)
	}
	if _, err := h.Upgrade(); !wlerr.IsAlreadyBorrowed(err) {
		t.Fatalf("second upgrade = %v, want AlreadyBorrowed", err)
	}

	// Manual release discipline, the way Run does it internally.
	first.State().settle()
	first.Drop()

	if err := h.Run(func(*Resource[padData]) error { return nil }); err != nil {
		t.Fatalf("Run after release failed: %v", err)
	}
}

func TestRun_ReleasesAfterClosureError(t *testing.T) {
	pad := newPad(t)
	h := pad.WeakReference()

	wantErr := errors.New("render failed")
	if err := h.Run(func(*Resource[padData]) error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("Run = %v, want closure error", err)
	}
	if pad.State().CheckedOut() {
		t.Fatal("checkout flag not released after closure error")
	}
	if err := h.Run(func(*Resource[padData]) error { return nil }); err != nil {
		t.Fatalf("Run after closure error failed: %v", err)
	}
}

func TestRun_ReleasesAfterClosurePanic(t *testing.T) {
	pad := newPad(t)
	h := pad.WeakReference()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("closure panic was swallowed")
			}
		}()
		_ = h.Run(func(*Resource[padData]) error {
			panic("compositor bug")
		})
	}()

	if pad.State().CheckedOut() {
		t.Fatal("checkout flag not released after panic")
	}
	if err := h.Run(func(*Resource[padData]) error { return nil }); err != nil {
		t.Fatalf("Run after panic failed: %v", err)
	}
}

func TestRun_TamperedFlagIsFatal(t *testing.T) {
	pad := newPad(t)
	h := pad.WeakReference()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for corrupted checkout flag")
		}
	}()
	_ = h.Run(func(r *Resource[padData]) error {
		// Simulates the reentrant misuse the sanity check exists for.
		r.State().settle()
		return nil
	})
}

func TestZeroHandle_AlwaysDropped(t *testing.T) {
	var h Handle[padData]

	if h.Alive() {
		t.Fatal("zero handle must not be alive")
	}
	if err := h.Run(func(*Resource[padData]) error { return nil }); !wlerr.IsAlreadyDropped(err) {
		t.Fatalf("zero handle Run = %v, want AlreadyDropped", err)
	}
	if _, err := h.Data(); !wlerr.IsAlreadyDropped(err) {
		t.Fatalf("zero handle Data = %v, want AlreadyDropped", err)
	}
	if h.ID() != 0 || h.Kind() != "" {
		t.Fatal("zero handle identity should be zero")
	}
}

func TestData_GuardedMetadataAccess(t *testing.T) {
	pad := newPad(t)
	h := pad.WeakReference()

	d, err := h.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	if d.buttons != 8 {
		t.Fatalf("buttons = %d, want 8", d.buttons)
	}

	pad.Drop()
	if _, err := h.Data(); !wlerr.IsAlreadyDropped(err) {
		t.Fatalf("Data after destroy = %v, want AlreadyDropped", err)
	}
}

func TestOnDestroy_RunsExactlyOnce(t *testing.T) {
	pad := newPad(t)
	h := pad.WeakReference()

	destroyed := 0
	pad.OnDestroy(func() { destroyed++ })

	// Transient releases never trigger destruction.
	for i := 0; i < 3; i++ {
		if err := h.Run(func(*Resource[padData]) error { return nil }); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	}
	if destroyed != 0 {
		t.Fatalf("finalizer ran on transient release: %d", destroyed)
	}

	pad.Drop()
	pad.Drop() // second notification is a no-op
	if destroyed != 1 {
		t.Fatalf("finalizer ran %d times, want 1", destroyed)
	}
}

func TestDestroyDuringRun_DefersDeathToRelease(t *testing.T) {
	pad := newPad(t)
	h := pad.WeakReference()

	destroyed := 0
	pad.OnDestroy(func() { destroyed++ })

	err := h.Run(func(r *Resource[padData]) error {
		pad.Drop()
		if destroyed != 0 {
			t.Fatal("destruction must wait for the outstanding run")
		}
		if !h.Alive() {
			t.Fatal("resource died while still checked out")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if destroyed != 1 {
		t.Fatalf("finalizer ran %d times after release, want 1", destroyed)
	}
	if h.Alive() {
		t.Fatal("handle still alive after deferred destruction")
	}
}

func TestHandle_EqualityByIdentity(t *testing.T) {
	a := New(Kind("output"), 0xAAAA, padData{})
	b := New(Kind("output"), 0xBBBB, padData{})

	ha1 := a.WeakReference()
	ha2 := a.WeakReference()
	hb := b.WeakReference()

	if ha1.ID() != ha2.ID() {
		t.Fatal("handles to the same resource must compare equal by ID")
	}
	if ha1.ID() == hb.ID() {
		t.Fatal("handles to different resources must differ by ID")
	}

	// Identity survives death.
	a.Drop()
	if ha1.ID() != 0xAAAA {
		t.Fatal("identity must not change when the resource dies")
	}
}

type recordingObserver struct {
	events []Event
}

func (o *recordingObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

func TestObserver_LifecycleSequence(t *testing.T) {
	obs := &recordingObserver{}
	Subscribe(obs)
	defer Unsubscribe(obs)

	pad := New(Kind("tablet-pad"), 0x77, padData{})
	h := pad.WeakReference()
	if err := h.Run(func(*Resource[padData]) error { return nil }); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	pad.Drop()

	want := []EventType{EventCreated, EventUpgraded, EventReleased, EventDestroyed}
	var got []EventType
	for _, e := range obs.events {
		if e.ID == 0x77 {
			got = append(got, e.Type)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %d, want %d", i, got[i], want[i])
		}
	}
}
