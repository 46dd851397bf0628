package input

import (
	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/backend"
	"github.com/wlkit/wlkit/handle"
)

// PointerKind is the resource kind of pointers.
const PointerKind = handle.Kind("pointer")

type pointerData struct {
	obj *backend.Object
	dev Device
}

// Pointer is the owning wrapper around one native pointer device.
type Pointer struct {
	res *handle.Resource[pointerData]
}

// PointerFromDevice tries to wrap an input object as a Pointer. Devices
// of any other type yield no resource.
func PointerFromDevice(obj *backend.Object) (*Pointer, bool) {
	dev, ok := DeviceFromObject(obj)
	if !ok || dev.Type() != backend.DevicePointer {
		return nil, false
	}
	res := handle.New(PointerKind, obj.ID(), pointerData{obj: obj, dev: dev})
	return &Pointer{res: res}, true
}

// ID returns the native identity of the pointer.
func (p *Pointer) ID() wlkit.NativeID {
	return p.res.ID()
}

// Device returns the generic input device descriptor.
func (p *Pointer) Device() Device {
	return p.res.Data().dev
}

// WeakReference derives a storable handle to this pointer.
func (p *Pointer) WeakReference() PointerHandle {
	return PointerHandle{h: p.res.WeakReference()}
}

// Drop releases this wrapper.
func (p *Pointer) Drop() {
	p.res.Drop()
}

// PointerHandle is a storable weak reference to a Pointer.
type PointerHandle struct {
	h handle.Handle[pointerData]
}

// ID returns the native identity.
func (h PointerHandle) ID() wlkit.NativeID { return h.h.ID() }

// Alive reports whether the native device still exists.
func (h PointerHandle) Alive() bool { return h.h.Alive() }

// Device returns the device descriptor without a full checkout.
func (h PointerHandle) Device() (Device, error) {
	d, err := h.h.Data()
	if err != nil {
		return Device{}, err
	}
	return d.dev, nil
}

// Run checks the pointer out, runs fn against it exclusively, and
// releases it.
func (h PointerHandle) Run(fn func(*Pointer) error) error {
	return h.h.Run(func(r *handle.Resource[pointerData]) error {
		return fn(&Pointer{res: r})
	})
}
