package input

import (
	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/backend"
	"github.com/wlkit/wlkit/handle"
)

// PadKind is the resource kind of tablet pads.
const PadKind = handle.Kind("tablet-pad")

type padData struct {
	obj *backend.Object
	dev Device
}

// TabletPad is the owning wrapper around one native tablet pad.
type TabletPad struct {
	res *handle.Resource[padData]
}

// PadFromDevice tries to wrap an input object as a TabletPad. Devices of
// any other type yield no resource. Call it once per native device.
func PadFromDevice(obj *backend.Object) (*TabletPad, bool) {
	dev, ok := DeviceFromObject(obj)
	if !ok || dev.Type() != backend.DeviceTabletPad {
		return nil, false
	}
	res := handle.New(PadKind, obj.ID(), padData{obj: obj, dev: dev})
	return &TabletPad{res: res}, true
}

// ID returns the native identity of the pad.
func (p *TabletPad) ID() wlkit.NativeID {
	return p.res.ID()
}

// Device returns the generic input device descriptor for this pad.
func (p *TabletPad) Device() Device {
	return p.res.Data().dev
}

// Buttons returns the number of buttons on the pad.
func (p *TabletPad) Buttons() int {
	return p.res.Data().obj.Input().Buttons
}

// Rings returns the number of touch rings on the pad.
func (p *TabletPad) Rings() int {
	return p.res.Data().obj.Input().Rings
}

// Strips returns the number of touch strips on the pad.
func (p *TabletPad) Strips() int {
	return p.res.Data().obj.Input().Strips
}

// WeakReference derives a storable handle to this pad.
func (p *TabletPad) WeakReference() PadHandle {
	return PadHandle{h: p.res.WeakReference()}
}

// Drop releases this wrapper; the event bridge calls it when the backend
// signals the device is gone.
func (p *TabletPad) Drop() {
	p.res.Drop()
}

// PadHandle is a storable weak reference to a TabletPad.
type PadHandle struct {
	h handle.Handle[padData]
}

// ID returns the native identity; handles compare equal exactly when
// their IDs match.
func (h PadHandle) ID() wlkit.NativeID { return h.h.ID() }

// Alive reports whether the native device still exists.
func (h PadHandle) Alive() bool { return h.h.Alive() }

// Device returns the device descriptor without a full checkout. It fails
// with AlreadyDropped once the device is detached.
func (h PadHandle) Device() (Device, error) {
	d, err := h.h.Data()
	if err != nil {
		return Device{}, err
	}
	return d.dev, nil
}

// Run checks the pad out, runs fn against it exclusively, and releases
// it. See the handle package for the full contract.
func (h PadHandle) Run(fn func(*TabletPad) error) error {
	return h.h.Run(func(r *handle.Resource[padData]) error {
		return fn(&TabletPad{res: r})
	})
}
