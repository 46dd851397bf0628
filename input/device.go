package input

import (
	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/backend"
)

// Device is the generic descriptor shared by every input device kind. It
// reads identity and capability data off the native object; it carries no
// liveliness of its own and is only handed out by live resources and
// guarded handle accessors.
type Device struct {
	obj *backend.Object
}

// DeviceFromObject wraps a native input object. Objects of any other kind
// yield no device.
func DeviceFromObject(obj *backend.Object) (Device, bool) {
	if obj == nil || obj.Kind() != backend.KindInput {
		return Device{}, false
	}
	return Device{obj: obj}, true
}

// Valid reports whether the descriptor refers to a device at all. The
// zero Device is invalid.
func (d Device) Valid() bool {
	return d.obj != nil
}

// ID returns the native identity of the device.
func (d Device) ID() wlkit.NativeID {
	if d.obj == nil {
		return 0
	}
	return d.obj.ID()
}

// Name returns the device name, e.g. "Wacom Intuos Pro Pad".
func (d Device) Name() string {
	if d.obj == nil {
		return ""
	}
	return d.obj.Input().Name
}

// Type returns the device type tag.
func (d Device) Type() backend.DeviceType {
	if d.obj == nil {
		return 0
	}
	return d.obj.Input().Type
}

// Vendor returns the USB vendor ID.
func (d Device) Vendor() uint32 {
	if d.obj == nil {
		return 0
	}
	return d.obj.Input().Vendor
}

// Product returns the USB product ID.
func (d Device) Product() uint32 {
	if d.obj == nil {
		return 0
	}
	return d.obj.Input().Product
}
