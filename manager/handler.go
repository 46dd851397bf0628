package manager

import (
	"github.com/wlkit/wlkit/backend"
	"github.com/wlkit/wlkit/input"
	"github.com/wlkit/wlkit/output"
	"github.com/wlkit/wlkit/surface"
)

// OutputHandler receives events for one output. Destroyed runs while the
// handle can still be read; it fails afterwards.
type OutputHandler interface {
	OnFrame(h output.Handle)
	OnMode(h output.Handle, ev backend.ModeEvent)
	Destroyed(h output.Handle)
}

// TabletPadHandler receives events for one tablet pad.
type TabletPadHandler interface {
	OnButton(h input.PadHandle, ev backend.PadButtonEvent)
	OnRing(h input.PadHandle, ev backend.PadRingEvent)
	OnStrip(h input.PadHandle, ev backend.PadStripEvent)
	Destroyed(h input.PadHandle)
}

// PointerHandler receives events for one pointer device.
type PointerHandler interface {
	OnMotion(h input.PointerHandle, ev backend.PointerMotionEvent)
	OnButton(h input.PointerHandle, ev backend.PointerButtonEvent)
	OnAxis(h input.PointerHandle, ev backend.PointerAxisEvent)
	Destroyed(h input.PointerHandle)
}

// KeyboardHandler receives events for one keyboard.
type KeyboardHandler interface {
	OnKey(h input.KeyboardHandle, ev backend.KeyEvent)
	Destroyed(h input.KeyboardHandle)
}

// SurfaceHandler receives events for one surface.
type SurfaceHandler interface {
	OnCommit(h surface.Handle)
	Destroyed(h surface.Handle)
}

// OutputManagerHandler is asked once per announced output. Returning a
// nil OutputHandler leaves the output managed but without callbacks.
type OutputManagerHandler interface {
	OutputAdded(h output.Handle) OutputHandler
}

// InputManagerHandler is asked once per announced input device, on the
// method matching the device type. Returning nil leaves the device
// managed but without callbacks. Device types without a method here
// (tablet tools, touch, switches) are tracked but dispatch no events.
type InputManagerHandler interface {
	KeyboardAdded(h input.KeyboardHandle) KeyboardHandler
	PointerAdded(h input.PointerHandle) PointerHandler
	TabletPadAdded(h input.PadHandle) TabletPadHandler
}

// SurfaceManagerHandler is asked once per announced surface.
type SurfaceManagerHandler interface {
	SurfaceAdded(h surface.Handle) SurfaceHandler
}

// NoOpOutputHandler is an embeddable OutputHandler that ignores every
// event.
type NoOpOutputHandler struct{}

func (NoOpOutputHandler) OnFrame(output.Handle)                   {}
func (NoOpOutputHandler) OnMode(output.Handle, backend.ModeEvent) {}
func (NoOpOutputHandler) Destroyed(output.Handle)                 {}

// NoOpTabletPadHandler is an embeddable TabletPadHandler that ignores
// every event.
type NoOpTabletPadHandler struct{}

func (NoOpTabletPadHandler) OnButton(input.PadHandle, backend.PadButtonEvent) {}
func (NoOpTabletPadHandler) OnRing(input.PadHandle, backend.PadRingEvent)     {}
func (NoOpTabletPadHandler) OnStrip(input.PadHandle, backend.PadStripEvent)   {}
func (NoOpTabletPadHandler) Destroyed(input.PadHandle)                        {}

// NoOpPointerHandler is an embeddable PointerHandler that ignores every
// event.
type NoOpPointerHandler struct{}

func (NoOpPointerHandler) OnMotion(input.PointerHandle, backend.PointerMotionEvent) {}
func (NoOpPointerHandler) OnButton(input.PointerHandle, backend.PointerButtonEvent) {}
func (NoOpPointerHandler) OnAxis(input.PointerHandle, backend.PointerAxisEvent)     {}
func (NoOpPointerHandler) Destroyed(input.PointerHandle)                            {}

// NoOpKeyboardHandler is an embeddable KeyboardHandler that ignores every
// event.
type NoOpKeyboardHandler struct{}

func (NoOpKeyboardHandler) OnKey(input.KeyboardHandle, backend.KeyEvent) {}
func (NoOpKeyboardHandler) Destroyed(input.KeyboardHandle)               {}

// NoOpSurfaceHandler is an embeddable SurfaceHandler that ignores every
// event.
type NoOpSurfaceHandler struct{}

func (NoOpSurfaceHandler) OnCommit(surface.Handle)  {}
func (NoOpSurfaceHandler) Destroyed(surface.Handle) {}

// NoOpInputManagerHandler is an embeddable InputManagerHandler that
// attaches no per-device callbacks.
type NoOpInputManagerHandler struct{}

func (NoOpInputManagerHandler) KeyboardAdded(input.KeyboardHandle) KeyboardHandler { return nil }
func (NoOpInputManagerHandler) PointerAdded(input.PointerHandle) PointerHandler    { return nil }
func (NoOpInputManagerHandler) TabletPadAdded(input.PadHandle) TabletPadHandler    { return nil }
