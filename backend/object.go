package backend

import (
	"github.com/wlkit/wlkit"
)

// ObjectKind tags the state union carried by a native object.
type ObjectKind uint8

const (
	KindOutput ObjectKind = iota + 1
	KindInput
	KindSurface
)

func (k ObjectKind) String() string {
	switch k {
	case KindOutput:
		return "output"
	case KindInput:
		return "input"
	case KindSurface:
		return "surface"
	}
	return "unknown"
}

// DeviceType discriminates input devices, the way the native library tags
// its device union.
type DeviceType uint8

const (
	DeviceKeyboard DeviceType = iota + 1
	DevicePointer
	DeviceTabletPad
	DeviceTabletTool
	DeviceTouch
	DeviceSwitch
)

func (t DeviceType) String() string {
	switch t {
	case DeviceKeyboard:
		return "keyboard"
	case DevicePointer:
		return "pointer"
	case DeviceTabletPad:
		return "tablet-pad"
	case DeviceTabletTool:
		return "tablet-tool"
	case DeviceTouch:
		return "touch"
	case DeviceSwitch:
		return "switch"
	}
	return "unknown"
}

// Mode is one fixed modesetting an output supports.
type Mode struct {
	Size      wlkit.Size
	Refresh   int32 // mHz
	Preferred bool
}

// OutputState is the native-side state of an output object.
type OutputState struct {
	Name   string
	Make   string
	Model  string
	Serial string

	Modes       []Mode
	CurrentMode int // index into Modes, -1 when a custom mode is set
	CustomMode  Mode

	Size         wlkit.Size // physical size in millimeters
	Position     wlkit.Origin
	Scale        float32
	Transform    wlkit.Transform
	Subpixel     wlkit.Subpixel
	Enabled      bool
	FramePending bool
}

// Resolution returns the active mode's size and refresh.
func (s *OutputState) Resolution() (wlkit.Size, int32) {
	if s.CurrentMode >= 0 && s.CurrentMode < len(s.Modes) {
		m := s.Modes[s.CurrentMode]
		return m.Size, m.Refresh
	}
	return s.CustomMode.Size, s.CustomMode.Refresh
}

// InputState is the native-side state of an input device object.
type InputState struct {
	Name    string
	Type    DeviceType
	Vendor  uint32
	Product uint32

	// Tablet pad capabilities; zero for other device types.
	Buttons int
	Rings   int
	Strips  int
}

// SurfaceState is the native-side state of a surface object.
type SurfaceState struct {
	Role   string
	Size   wlkit.Size
	Mapped bool
}

// Object is one native resource. Its lifetime belongs to the Backend that
// created it; wrappers reference it but never extend it.
type Object struct {
	userData any
	output   *OutputState
	input    *InputState
	surface  *SurfaceState
	signals  map[string]*Signal
	id       wlkit.NativeID
	kind     ObjectKind
	hasData  bool
	dead     bool
}

// ID returns the object's native identity.
func (o *Object) ID() wlkit.NativeID {
	return o.id
}

// Kind returns which arm of the state union is populated.
func (o *Object) Kind() ObjectKind {
	return o.kind
}

// Alive reports whether the backend still owns the object.
func (o *Object) Alive() bool {
	return !o.dead
}

// Output returns the output state, or nil for non-output objects.
func (o *Object) Output() *OutputState {
	return o.output
}

// Input returns the input device state, or nil for non-input objects.
func (o *Object) Input() *InputState {
	return o.input
}

// Surface returns the surface state, or nil for non-surface objects.
func (o *Object) Surface() *SurfaceState {
	return o.surface
}

// On returns the named signal, creating it on first use.
func (o *Object) On(event string) *Signal {
	s, ok := o.signals[event]
	if !ok {
		s = &Signal{name: event}
		o.signals[event] = s
	}
	return s
}

// SetUserData stores the opaque back-reference that lets the native side
// locate its wrapper. The slot is written exactly once per object; a
// second write is a wiring bug and panics.
func (o *Object) SetUserData(v any) {
	if o.hasData {
		panic("backend: user data slot already set for " + o.id.String())
	}
	o.userData = v
	o.hasData = true
}

// TakeUserData reads and clears the slot. The first caller gets the stored
// value; later callers get nil, which is how the bridge stays idempotent
// against repeated destroy notifications.
func (o *Object) TakeUserData() any {
	if !o.hasData {
		return nil
	}
	v := o.userData
	o.userData = nil
	o.hasData = false
	return v
}

func (o *Object) emit(event string, data any) {
	if s, ok := o.signals[event]; ok {
		s.emit(data)
	}
}
