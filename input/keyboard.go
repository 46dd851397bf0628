package input

import (
	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/backend"
	"github.com/wlkit/wlkit/handle"
)

// KeyboardKind is the resource kind of keyboards.
const KeyboardKind = handle.Kind("keyboard")

// repeatInfo is toolkit-side keyboard state, shared by every handle.
type repeatInfo struct {
	rate  int32 // repeats per second
	delay int32 // milliseconds before the first repeat
}

type keyboardData struct {
	obj    *backend.Object
	dev    Device
	repeat *repeatInfo
}

// Keyboard is the owning wrapper around one native keyboard device.
type Keyboard struct {
	res *handle.Resource[keyboardData]
}

// KeyboardFromDevice tries to wrap an input object as a Keyboard.
// Devices of any other type yield no resource.
func KeyboardFromDevice(obj *backend.Object) (*Keyboard, bool) {
	dev, ok := DeviceFromObject(obj)
	if !ok || dev.Type() != backend.DeviceKeyboard {
		return nil, false
	}
	res := handle.New(KeyboardKind, obj.ID(), keyboardData{
		obj:    obj,
		dev:    dev,
		repeat: &repeatInfo{rate: 25, delay: 600},
	})
	return &Keyboard{res: res}, true
}

// ID returns the native identity of the keyboard.
func (k *Keyboard) ID() wlkit.NativeID {
	return k.res.ID()
}

// Device returns the generic input device descriptor.
func (k *Keyboard) Device() Device {
	return k.res.Data().dev
}

// RepeatInfo returns the key repeat rate (per second) and delay (msec).
func (k *Keyboard) RepeatInfo() (rate, delay int32) {
	r := k.res.Data().repeat
	return r.rate, r.delay
}

// SetRepeatInfo sets the key repeat rate and delay.
func (k *Keyboard) SetRepeatInfo(rate, delay int32) {
	r := k.res.Data().repeat
	r.rate, r.delay = rate, delay
}

// WeakReference derives a storable handle to this keyboard.
func (k *Keyboard) WeakReference() KeyboardHandle {
	return KeyboardHandle{h: k.res.WeakReference()}
}

// Drop releases this wrapper.
func (k *Keyboard) Drop() {
	k.res.Drop()
}

// KeyboardHandle is a storable weak reference to a Keyboard.
type KeyboardHandle struct {
	h handle.Handle[keyboardData]
}

// ID returns the native identity.
func (h KeyboardHandle) ID() wlkit.NativeID { return h.h.ID() }

// Alive reports whether the native device still exists.
func (h KeyboardHandle) Alive() bool { return h.h.Alive() }

// Device returns the device descriptor without a full checkout.
func (h KeyboardHandle) Device() (Device, error) {
	d, err := h.h.Data()
	if err != nil {
		return Device{}, err
	}
	return d.dev, nil
}

// Run checks the keyboard out, runs fn against it exclusively, and
// releases it.
func (h KeyboardHandle) Run(fn func(*Keyboard) error) error {
	return h.h.Run(func(r *handle.Resource[keyboardData]) error {
		return fn(&Keyboard{res: r})
	})
}
