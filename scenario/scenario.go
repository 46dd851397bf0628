// Package scenario plays YAML-scripted backend sessions: a fixed set of
// outputs, devices and surfaces is created up front, then timed steps
// inject events and destroy objects. Scenarios exist so compositor logic
// built on the resource wrappers can be exercised deterministically
// without real hardware.
package scenario

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/backend"
	"github.com/wlkit/wlkit/errors"
)

// Output describes one output created during setup.
type Output struct {
	Name    string  `yaml:"name"`
	Make    string  `yaml:"make"`
	Model   string  `yaml:"model"`
	Width   int32   `yaml:"width"`
	Height  int32   `yaml:"height"`
	Refresh int32   `yaml:"refresh"` // mHz, defaults to 60000
	Scale   float32 `yaml:"scale"`   // defaults to 1
}

// Device describes one input device created during setup.
type Device struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Vendor  uint32 `yaml:"vendor"`
	Product uint32 `yaml:"product"`
	Buttons int    `yaml:"buttons"`
	Rings   int    `yaml:"rings"`
	Strips  int    `yaml:"strips"`
}

// Duration decodes YAML scalars like "250ms" or "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return errors.InvalidData("bad duration %q", s)
	}
	*d = Duration(v)
	return nil
}

// Step is one timed action against a named object. At is relative to the
// start of playback; steps must be listed in ascending order.
type Step struct {
	At     Duration `yaml:"at"`
	Action string   `yaml:"action"`
	Target string   `yaml:"target"`

	// Action parameters; which ones apply depends on Action.
	Button   uint32  `yaml:"button"`
	State    string  `yaml:"state"` // "pressed" or "released"
	Ring     uint32  `yaml:"ring"`
	Strip    uint32  `yaml:"strip"`
	Position float64 `yaml:"position"`
	DX       float64 `yaml:"dx"`
	DY       float64 `yaml:"dy"`
	Key      uint32  `yaml:"key"`
	Width    int32   `yaml:"width"`
	Height   int32   `yaml:"height"`
	Refresh  int32   `yaml:"refresh"`
}

// Step actions.
const (
	ActionDestroy       = "destroy"
	ActionFrame         = "frame"
	ActionMode          = "mode"
	ActionPadButton     = "pad-button"
	ActionPadRing       = "pad-ring"
	ActionPadStrip      = "pad-strip"
	ActionPointerMotion = "pointer-motion"
	ActionPointerButton = "pointer-button"
	ActionKey           = "key"
)

// Scenario is a parsed scenario file.
type Scenario struct {
	Name    string   `yaml:"name"`
	Outputs []Output `yaml:"outputs"`
	Devices []Device `yaml:"devices"`
	Steps   []Step   `yaml:"steps"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse validates a scenario document.
func Parse(raw []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, errors.Wrap(errors.KindInvalidData, err, "parsing scenario")
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	names := make(map[string]bool)
	for i, o := range sc.Outputs {
		if o.Name == "" {
			return errors.InvalidData("output %d: missing name", i)
		}
		if names[o.Name] {
			return errors.InvalidData("duplicate object name %q", o.Name)
		}
		names[o.Name] = true
		if o.Width <= 0 || o.Height <= 0 {
			return errors.InvalidData("output %q: bad resolution %dx%d", o.Name, o.Width, o.Height)
		}
	}
	for i, d := range sc.Devices {
		if d.Name == "" {
			return errors.InvalidData("device %d: missing name", i)
		}
		if names[d.Name] {
			return errors.InvalidData("duplicate object name %q", d.Name)
		}
		names[d.Name] = true
		if _, err := backend.ParseDeviceType(d.Type); err != nil {
			return errors.InvalidData("device %q: %v", d.Name, err)
		}
	}

	var prev Duration
	for i, s := range sc.Steps {
		if s.At < prev {
			return errors.InvalidData("step %d: at %s is before step %d", i, time.Duration(s.At), i-1)
		}
		prev = s.At
		if !names[s.Target] {
			return errors.InvalidData("step %d: unknown target %q", i, s.Target)
		}
		switch s.Action {
		case ActionDestroy, ActionFrame, ActionMode,
			ActionPadButton, ActionPadRing, ActionPadStrip,
			ActionPointerMotion, ActionPointerButton, ActionKey:
		default:
			return errors.InvalidData("step %d: unknown action %q", i, s.Action)
		}
		if s.Action == ActionPadButton || s.Action == ActionPointerButton || s.Action == ActionKey {
			if s.State != "pressed" && s.State != "released" {
				return errors.InvalidData("step %d: bad state %q", i, s.State)
			}
		}
	}
	return nil
}

func (o Output) state() backend.OutputState {
	refresh := o.Refresh
	if refresh == 0 {
		refresh = 60000
	}
	scale := o.Scale
	if scale == 0 {
		scale = 1
	}
	return backend.OutputState{
		Name:  o.Name,
		Make:  o.Make,
		Model: o.Model,
		Modes: []backend.Mode{{
			Size:      wlkit.Size{Width: o.Width, Height: o.Height},
			Refresh:   refresh,
			Preferred: true,
		}},
		CurrentMode: 0,
		Scale:       scale,
		Enabled:     true,
	}
}

func (d Device) state() (backend.InputState, error) {
	typ, err := backend.ParseDeviceType(d.Type)
	if err != nil {
		return backend.InputState{}, err
	}
	return backend.InputState{
		Name:    d.Name,
		Type:    typ,
		Vendor:  d.Vendor,
		Product: d.Product,
		Buttons: d.Buttons,
		Rings:   d.Rings,
		Strips:  d.Strips,
	}, nil
}

func (s Step) payload() (string, any) {
	switch s.Action {
	case ActionFrame:
		return backend.EventFrame, nil
	case ActionMode:
		return backend.EventMode, backend.ModeEvent{Mode: backend.Mode{
			Size:    wlkit.Size{Width: s.Width, Height: s.Height},
			Refresh: s.Refresh,
		}}
	case ActionPadButton:
		return backend.EventPadButton, backend.PadButtonEvent{
			Button: s.Button,
			State:  buttonState(s.State),
		}
	case ActionPadRing:
		return backend.EventPadRing, backend.PadRingEvent{
			Ring:     s.Ring,
			Position: s.Position,
			Source:   backend.SourceFinger,
		}
	case ActionPadStrip:
		return backend.EventPadStrip, backend.PadStripEvent{
			Strip:    s.Strip,
			Position: s.Position,
			Source:   backend.SourceFinger,
		}
	case ActionPointerMotion:
		return backend.EventPointerMotion, backend.PointerMotionEvent{
			DeltaX: s.DX,
			DeltaY: s.DY,
		}
	case ActionPointerButton:
		return backend.EventPointerButton, backend.PointerButtonEvent{
			Button: s.Button,
			State:  buttonState(s.State),
		}
	case ActionKey:
		key := backend.KeyEvent{KeyCode: s.Key, State: backend.KeyReleased}
		if s.State == "pressed" {
			key.State = backend.KeyPressed
		}
		return backend.EventKey, key
	}
	panic(fmt.Sprintf("scenario: no payload for action %q", s.Action))
}

func buttonState(s string) backend.ButtonState {
	if s == "pressed" {
		return backend.ButtonPressed
	}
	return backend.ButtonReleased
}
