package manager

import (
	"go.uber.org/zap"

	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/backend"
	"github.com/wlkit/wlkit/input"
	"github.com/wlkit/wlkit/output"
	"github.com/wlkit/wlkit/surface"
)

// Config selects the handlers a Bridge dispatches to. Any field may be
// nil, in which case the matching resources are still wrapped and
// tracked, just without callbacks.
type Config struct {
	Outputs  OutputManagerHandler
	Inputs   InputManagerHandler
	Surfaces SurfaceManagerHandler

	// Layout, when set, receives every announced output via automatic
	// placement. Dying outputs remove themselves from it.
	Layout output.LayoutHandle

	// UseLayout must be set for Layout to take effect; the zero
	// LayoutHandle is indistinguishable from an absent one otherwise.
	UseLayout bool
}

// binding is the opaque value parked in a native object's user-data slot.
// It is written once when the resource is wrapped and taken back exactly
// once when the destroy signal fires.
type binding struct {
	teardown func()
}

// Bridge owns the wrapper for every native object the backend announces
// and routes its signals to typed handler callbacks.
type Bridge struct {
	be  *backend.Backend
	cfg Config

	announce []*backend.Listener

	outputs   map[wlkit.NativeID]output.Handle
	keyboards map[wlkit.NativeID]input.KeyboardHandle
	pointers  map[wlkit.NativeID]input.PointerHandle
	pads      map[wlkit.NativeID]input.PadHandle
	devices   map[wlkit.NativeID]input.Device
	surfaces  map[wlkit.NativeID]surface.Handle
}

// New attaches a Bridge to the backend. Objects announced before the
// bridge existed are not adopted; attach the bridge before creating
// objects.
func New(be *backend.Backend, cfg Config) *Bridge {
	b := &Bridge{
		be:        be,
		cfg:       cfg,
		outputs:   make(map[wlkit.NativeID]output.Handle),
		keyboards: make(map[wlkit.NativeID]input.KeyboardHandle),
		pointers:  make(map[wlkit.NativeID]input.PointerHandle),
		pads:      make(map[wlkit.NativeID]input.PadHandle),
		devices:   make(map[wlkit.NativeID]input.Device),
		surfaces:  make(map[wlkit.NativeID]surface.Handle),
	}
	b.announce = []*backend.Listener{
		be.OnNewOutput().Add(func(data any) { b.outputAdded(data.(*backend.Object)) }),
		be.OnNewInput().Add(func(data any) { b.inputAdded(data.(*backend.Object)) }),
		be.OnNewSurface().Add(func(data any) { b.surfaceAdded(data.(*backend.Object)) }),
	}
	return b
}

// Close stops the bridge from adopting new objects. Already-wrapped
// objects keep their bindings until the backend destroys them.
func (b *Bridge) Close() {
	for _, l := range b.announce {
		l.Remove()
	}
	b.announce = nil
}

// Outputs returns a handle for every live output the bridge manages.
func (b *Bridge) Outputs() []output.Handle {
	hs := make([]output.Handle, 0, len(b.outputs))
	for _, h := range b.outputs {
		hs = append(hs, h)
	}
	return hs
}

// Devices returns the descriptor of every live input device.
func (b *Bridge) Devices() []input.Device {
	ds := make([]input.Device, 0, len(b.devices))
	for _, d := range b.devices {
		ds = append(ds, d)
	}
	return ds
}

// Surfaces returns a handle for every live surface.
func (b *Bridge) Surfaces() []surface.Handle {
	hs := make([]surface.Handle, 0, len(b.surfaces))
	for _, h := range b.surfaces {
		hs = append(hs, h)
	}
	return hs
}

// Output returns the managed handle for a native identity.
func (b *Bridge) Output(id wlkit.NativeID) (output.Handle, bool) {
	h, ok := b.outputs[id]
	return h, ok
}

// TabletPad returns the managed handle for a native identity.
func (b *Bridge) TabletPad(id wlkit.NativeID) (input.PadHandle, bool) {
	h, ok := b.pads[id]
	return h, ok
}

// Pointer returns the managed handle for a native identity.
func (b *Bridge) Pointer(id wlkit.NativeID) (input.PointerHandle, bool) {
	h, ok := b.pointers[id]
	return h, ok
}

// Keyboard returns the managed handle for a native identity.
func (b *Bridge) Keyboard(id wlkit.NativeID) (input.KeyboardHandle, bool) {
	h, ok := b.keyboards[id]
	return h, ok
}

// Surface returns the managed handle for a native identity.
func (b *Bridge) Surface(id wlkit.NativeID) (surface.Handle, bool) {
	h, ok := b.surfaces[id]
	return h, ok
}

func (b *Bridge) outputAdded(obj *backend.Object) {
	out, ok := output.New(obj)
	if !ok {
		Logger().Warn("announced object is not an output",
			zap.String("id", obj.ID().String()))
		return
	}
	h := out.WeakReference()
	b.outputs[obj.ID()] = h

	var handler OutputHandler
	if b.cfg.Outputs != nil {
		handler = b.cfg.Outputs.OutputAdded(h)
	}

	var listeners []*backend.Listener
	if handler != nil {
		listeners = append(listeners,
			obj.On(backend.EventFrame).Add(func(any) {
				handler.OnFrame(h)
			}),
			obj.On(backend.EventMode).Add(func(data any) {
				handler.OnMode(h, data.(backend.ModeEvent))
			}),
		)
	}
	destroy := obj.On(backend.EventDestroy).Add(func(any) {
		b.objectDestroyed(obj)
	})
	listeners = append(listeners, destroy)

	obj.SetUserData(&binding{teardown: func() {
		if handler != nil {
			handler.Destroyed(h)
		}
		for _, l := range listeners {
			l.Remove()
		}
		delete(b.outputs, obj.ID())
		out.Drop()
	}})

	if b.cfg.UseLayout {
		err := b.cfg.Layout.Run(func(l *output.Layout) error {
			l.AddAuto(out)
			return nil
		})
		if err != nil {
			Logger().Error("adding output to layout",
				zap.String("id", obj.ID().String()), zap.Error(err))
		}
	}

	Logger().Debug("output adopted",
		zap.String("id", obj.ID().String()),
		zap.String("name", obj.Output().Name))
}

func (b *Bridge) inputAdded(obj *backend.Object) {
	dev, ok := input.DeviceFromObject(obj)
	if !ok {
		Logger().Warn("announced object is not an input device",
			zap.String("id", obj.ID().String()))
		return
	}
	b.devices[obj.ID()] = dev

	switch dev.Type() {
	case backend.DeviceKeyboard:
		b.keyboardAdded(obj)
	case backend.DevicePointer:
		b.pointerAdded(obj)
	case backend.DeviceTabletPad:
		b.padAdded(obj)
	default:
		// Tracked for enumeration only; no typed wrapper yet.
		destroy := obj.On(backend.EventDestroy).Add(func(any) {
			b.objectDestroyed(obj)
		})
		obj.SetUserData(&binding{teardown: func() {
			destroy.Remove()
			delete(b.devices, obj.ID())
		}})
	}

	Logger().Debug("input device adopted",
		zap.String("id", obj.ID().String()),
		zap.String("name", dev.Name()),
		zap.Stringer("type", dev.Type()))
}

func (b *Bridge) keyboardAdded(obj *backend.Object) {
	kb, ok := input.KeyboardFromDevice(obj)
	if !ok {
		return
	}
	h := kb.WeakReference()
	b.keyboards[obj.ID()] = h

	var handler KeyboardHandler
	if b.cfg.Inputs != nil {
		handler = b.cfg.Inputs.KeyboardAdded(h)
	}

	var listeners []*backend.Listener
	if handler != nil {
		listeners = append(listeners,
			obj.On(backend.EventKey).Add(func(data any) {
				handler.OnKey(h, data.(backend.KeyEvent))
			}),
		)
	}
	listeners = append(listeners, obj.On(backend.EventDestroy).Add(func(any) {
		b.objectDestroyed(obj)
	}))

	obj.SetUserData(&binding{teardown: func() {
		if handler != nil {
			handler.Destroyed(h)
		}
		for _, l := range listeners {
			l.Remove()
		}
		delete(b.keyboards, obj.ID())
		delete(b.devices, obj.ID())
		kb.Drop()
	}})
}

func (b *Bridge) pointerAdded(obj *backend.Object) {
	ptr, ok := input.PointerFromDevice(obj)
	if !ok {
		return
	}
	h := ptr.WeakReference()
	b.pointers[obj.ID()] = h

	var handler PointerHandler
	if b.cfg.Inputs != nil {
		handler = b.cfg.Inputs.PointerAdded(h)
	}

	var listeners []*backend.Listener
	if handler != nil {
		listeners = append(listeners,
			obj.On(backend.EventPointerMotion).Add(func(data any) {
				handler.OnMotion(h, data.(backend.PointerMotionEvent))
			}),
			obj.On(backend.EventPointerButton).Add(func(data any) {
				handler.OnButton(h, data.(backend.PointerButtonEvent))
			}),
			obj.On(backend.EventPointerAxis).Add(func(data any) {
				handler.OnAxis(h, data.(backend.PointerAxisEvent))
			}),
		)
	}
	listeners = append(listeners, obj.On(backend.EventDestroy).Add(func(any) {
		b.objectDestroyed(obj)
	}))

	obj.SetUserData(&binding{teardown: func() {
		if handler != nil {
			handler.Destroyed(h)
		}
		for _, l := range listeners {
			l.Remove()
		}
		delete(b.pointers, obj.ID())
		delete(b.devices, obj.ID())
		ptr.Drop()
	}})
}

func (b *Bridge) padAdded(obj *backend.Object) {
	pad, ok := input.PadFromDevice(obj)
	if !ok {
		return
	}
	h := pad.WeakReference()
	b.pads[obj.ID()] = h

	var handler TabletPadHandler
	if b.cfg.Inputs != nil {
		handler = b.cfg.Inputs.TabletPadAdded(h)
	}

	var listeners []*backend.Listener
	if handler != nil {
		listeners = append(listeners,
			obj.On(backend.EventPadButton).Add(func(data any) {
				handler.OnButton(h, data.(backend.PadButtonEvent))
			}),
			obj.On(backend.EventPadRing).Add(func(data any) {
				handler.OnRing(h, data.(backend.PadRingEvent))
			}),
			obj.On(backend.EventPadStrip).Add(func(data any) {
				handler.OnStrip(h, data.(backend.PadStripEvent))
			}),
		)
	}
	listeners = append(listeners, obj.On(backend.EventDestroy).Add(func(any) {
		b.objectDestroyed(obj)
	}))

	obj.SetUserData(&binding{teardown: func() {
		if handler != nil {
			handler.Destroyed(h)
		}
		for _, l := range listeners {
			l.Remove()
		}
		delete(b.pads, obj.ID())
		delete(b.devices, obj.ID())
		pad.Drop()
	}})
}

func (b *Bridge) surfaceAdded(obj *backend.Object) {
	surf, ok := surface.New(obj)
	if !ok {
		Logger().Warn("announced object is not a surface",
			zap.String("id", obj.ID().String()))
		return
	}
	h := surf.WeakReference()
	b.surfaces[obj.ID()] = h

	var handler SurfaceHandler
	if b.cfg.Surfaces != nil {
		handler = b.cfg.Surfaces.SurfaceAdded(h)
	}

	var listeners []*backend.Listener
	if handler != nil {
		listeners = append(listeners,
			obj.On(backend.EventCommit).Add(func(any) {
				handler.OnCommit(h)
			}),
		)
	}
	listeners = append(listeners, obj.On(backend.EventDestroy).Add(func(any) {
		b.objectDestroyed(obj)
	}))

	obj.SetUserData(&binding{teardown: func() {
		if handler != nil {
			handler.Destroyed(h)
		}
		for _, l := range listeners {
			l.Remove()
		}
		delete(b.surfaces, obj.ID())
		surf.Drop()
	}})
}

// objectDestroyed takes the binding back out of the slot and runs its
// teardown. The slot yields nil on every call after the first, which
// makes repeated destroy notifications harmless.
func (b *Bridge) objectDestroyed(obj *backend.Object) {
	bind, _ := obj.TakeUserData().(*binding)
	if bind == nil {
		return
	}
	bind.teardown()
	Logger().Debug("object released",
		zap.String("id", obj.ID().String()),
		zap.Stringer("kind", obj.Kind()))
}
