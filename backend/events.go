package backend

// Signal names emitted on native objects. New-object announcements are
// signals on the Backend itself; everything else fires on the object.
const (
	EventDestroy = "destroy"

	EventFrame = "frame"
	EventMode  = "mode"

	EventPadButton = "pad-button"
	EventPadRing   = "pad-ring"
	EventPadStrip  = "pad-strip"

	EventPointerMotion = "pointer-motion"
	EventPointerButton = "pointer-button"
	EventPointerAxis   = "pointer-axis"

	EventKey = "key"

	EventCommit = "commit"
)

// ButtonState records the direction of a button transition.
type ButtonState uint8

const (
	ButtonReleased ButtonState = iota
	ButtonPressed
)

// KeyState records the direction of a key transition.
type KeyState uint8

const (
	KeyReleased KeyState = iota
	KeyPressed
)

// AxisSource distinguishes how a ring/strip/axis value was produced.
type AxisSource uint8

const (
	SourceUnknown AxisSource = iota
	SourceFinger
	SourceWheel
	SourceContinuous
)

// PadButtonEvent is the payload of EventPadButton.
type PadButtonEvent struct {
	TimeMsec uint32
	Button   uint32
	State    ButtonState
}

// PadRingEvent is the payload of EventPadRing. Position is in degrees,
// -1 when the finger lifts.
type PadRingEvent struct {
	TimeMsec uint32
	Ring     uint32
	Position float64
	Source   AxisSource
}

// PadStripEvent is the payload of EventPadStrip. Position is normalized
// to [0, 1], -1 when the finger lifts.
type PadStripEvent struct {
	TimeMsec uint32
	Strip    uint32
	Position float64
	Source   AxisSource
}

// PointerMotionEvent is the payload of EventPointerMotion.
type PointerMotionEvent struct {
	TimeMsec uint32
	DeltaX   float64
	DeltaY   float64
}

// PointerButtonEvent is the payload of EventPointerButton.
type PointerButtonEvent struct {
	TimeMsec uint32
	Button   uint32
	State    ButtonState
}

// PointerAxisEvent is the payload of EventPointerAxis.
type PointerAxisEvent struct {
	TimeMsec uint32
	Vertical bool
	Delta    float64
	Source   AxisSource
}

// KeyEvent is the payload of EventKey.
type KeyEvent struct {
	TimeMsec uint32
	KeyCode  uint32
	State    KeyState
}

// ModeEvent is the payload of EventMode, fired when an output's active
// mode changes.
type ModeEvent struct {
	Mode Mode
}
