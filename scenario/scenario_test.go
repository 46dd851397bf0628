package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/wlkit/wlkit/backend"
	wlerrors "github.com/wlkit/wlkit/errors"
	"github.com/wlkit/wlkit/input"
	"github.com/wlkit/wlkit/manager"
)

const sampleDoc = `
name: desk
outputs:
  - name: DP-1
    width: 2560
    height: 1440
    refresh: 144000
devices:
  - name: pad
    type: tablet-pad
    buttons: 8
    rings: 1
steps:
  - at: 0s
    action: pad-button
    target: pad
    button: 3
    state: pressed
  - at: 1ms
    action: pad-ring
    target: pad
    ring: 0
    position: 90.0
  - at: 2ms
    action: destroy
    target: pad
  - at: 3ms
    action: frame
    target: DP-1
`

func TestParse_SampleDocument(t *testing.T) {
	sc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sc.Name != "desk" {
		t.Fatalf("name = %q", sc.Name)
	}
	if len(sc.Outputs) != 1 || len(sc.Devices) != 1 || len(sc.Steps) != 4 {
		t.Fatalf("counts = %d outputs, %d devices, %d steps",
			len(sc.Outputs), len(sc.Devices), len(sc.Steps))
	}
	if got := time.Duration(sc.Steps[2].At); got != 2*time.Millisecond {
		t.Fatalf("step 2 at = %s", got)
	}
}

func TestParse_Validation(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not yaml", `{{`},
		{"output without name", "outputs:\n  - width: 1\n    height: 1\n"},
		{"bad resolution", "outputs:\n  - name: DP-1\n    width: 0\n    height: 1080\n"},
		{"bad device type", "devices:\n  - name: d\n    type: joystick\n"},
		{"duplicate name", "devices:\n  - name: d\n    type: touch\n  - name: d\n    type: touch\n"},
		{"unknown target", "steps:\n  - at: 0s\n    action: frame\n    target: nope\n"},
		{"unknown action", "outputs:\n  - name: DP-1\n    width: 1\n    height: 1\nsteps:\n  - at: 0s\n    action: explode\n    target: DP-1\n"},
		{"bad state", "devices:\n  - name: d\n    type: tablet-pad\nsteps:\n  - at: 0s\n    action: pad-button\n    target: d\n    state: down\n"},
		{"steps out of order", "outputs:\n  - name: DP-1\n    width: 1\n    height: 1\nsteps:\n  - at: 5ms\n    action: frame\n    target: DP-1\n  - at: 1ms\n    action: frame\n    target: DP-1\n"},
		{"bad duration", "outputs:\n  - name: DP-1\n    width: 1\n    height: 1\nsteps:\n  - at: soon\n    action: frame\n    target: DP-1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.doc)); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

type playbackRecorder struct {
	manager.NoOpInputManagerHandler
	manager.NoOpTabletPadHandler

	buttons   int
	rings     int
	destroyed int
	pad       input.PadHandle
}

func (r *playbackRecorder) TabletPadAdded(h input.PadHandle) manager.TabletPadHandler {
	r.pad = h
	return r
}

func (r *playbackRecorder) OnButton(input.PadHandle, backend.PadButtonEvent) { r.buttons++ }
func (r *playbackRecorder) OnRing(input.PadHandle, backend.PadRingEvent)     { r.rings++ }
func (r *playbackRecorder) Destroyed(input.PadHandle)                        { r.destroyed++ }

func TestPlayer_PlaysThroughBridge(t *testing.T) {
	sc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	be := backend.New()
	rec := &playbackRecorder{}
	br := manager.New(be, manager.Config{Inputs: rec})
	defer br.Close()

	p := NewPlayer(be, sc)
	if err := p.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if _, ok := p.ID("DP-1"); !ok {
		t.Fatal("output name not resolvable after setup")
	}
	if !rec.pad.Alive() {
		t.Fatal("pad not adopted during setup")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rec.buttons != 1 || rec.rings != 1 || rec.destroyed != 1 {
		t.Fatalf("buttons=%d rings=%d destroyed=%d", rec.buttons, rec.rings, rec.destroyed)
	}
	if rec.pad.Alive() {
		t.Fatal("pad handle alive after scripted destroy")
	}
	if err := rec.pad.Run(func(*input.TabletPad) error { return nil }); !wlerrors.IsAlreadyDropped(err) {
		t.Fatalf("Run after destroy = %v, want already_dropped", err)
	}
}

func TestPlayer_ContextCancellation(t *testing.T) {
	sc, err := Parse([]byte(`
outputs:
  - name: DP-1
    width: 1920
    height: 1080
steps:
  - at: 10s
    action: frame
    target: DP-1
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	be := backend.New()
	p := NewPlayer(be, sc)
	if err := p.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Run(ctx); err != context.Canceled {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
}
