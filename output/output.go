package output

import (
	"go.uber.org/zap"

	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/backend"
	"github.com/wlkit/wlkit/errors"
	"github.com/wlkit/wlkit/handle"
)

// Kind is the resource kind of outputs.
const Kind = handle.Kind("output")

// data is the payload handles carry: enough to reconstruct an Output
// without keeping the native object alive. All mutable parts are held by
// pointer so every handle shares them.
type data struct {
	obj    *backend.Object
	damage *Damage
	memb   *membership
}

type membership struct {
	layout LayoutHandle
	bound  bool
}

// Output is the owning wrapper around one native output object.
type Output struct {
	res *handle.Resource[data]
}

// New wraps a freshly created native output. This is a typed construction
// filter: an object of any other kind yields no resource. Call it once
// per native output.
func New(obj *backend.Object) (*Output, bool) {
	if obj.Kind() != backend.KindOutput {
		return nil, false
	}
	d := data{
		obj:    obj,
		damage: newDamage(),
		memb:   &membership{},
	}
	res := handle.New(Kind, obj.ID(), d)
	res.OnDestroy(func() {
		removeFromLayout(d.memb, obj.ID())
		d.damage.destroy()
	})
	return &Output{res: res}, true
}

// ID returns the native identity of the output.
func (o *Output) ID() wlkit.NativeID {
	return o.res.ID()
}

// WeakReference derives a storable handle to this output.
func (o *Output) WeakReference() Handle {
	return Handle{h: o.res.WeakReference()}
}

// Drop releases this wrapper. For the owner this is permanent destruction;
// the event bridge calls it when the backend signals the output is gone.
func (o *Output) Drop() {
	o.res.Drop()
}

func (o *Output) state() *backend.OutputState {
	return o.res.Data().obj.Output()
}

// Name returns the output's connector name, e.g. "DP-1".
func (o *Output) Name() string { return o.state().Name }

// Make returns the manufacturer string.
func (o *Output) Make() string { return o.state().Make }

// Model returns the model string.
func (o *Output) Model() string { return o.state().Model }

// Serial returns the serial string.
func (o *Output) Serial() string { return o.state().Serial }

// Enabled reports whether the output is enabled.
func (o *Output) Enabled() bool { return o.state().Enabled }

// Enable enables or disables the output.
func (o *Output) Enable(enable bool) {
	o.state().Enabled = enable
}

// Scale returns the scale applied to the output.
func (o *Output) Scale() float32 { return o.state().Scale }

// SetScale sets the scale applied to the output.
func (o *Output) SetScale(scale float32) {
	o.state().Scale = scale
}

// Size returns the active resolution.
func (o *Output) Size() wlkit.Size {
	size, _ := o.state().Resolution()
	return size
}

// RefreshRate returns the active refresh rate in mHz.
func (o *Output) RefreshRate() int32 {
	_, refresh := o.state().Resolution()
	return refresh
}

// PhysicalSize returns the physical dimensions in millimeters.
func (o *Output) PhysicalSize() wlkit.Size { return o.state().Size }

// Subpixel returns the subpixel geometry.
func (o *Output) Subpixel() wlkit.Subpixel { return o.state().Subpixel }

// Transform returns the current transform.
func (o *Output) Transform() wlkit.Transform { return o.state().Transform }

// SetTransform sets the output transform.
func (o *Output) SetTransform(t wlkit.Transform) {
	o.state().Transform = t
}

// Position returns the output position in layout space.
func (o *Output) Position() wlkit.Origin { return o.state().Position }

// SetPosition sets the output position in layout space.
func (o *Output) SetPosition(origin wlkit.Origin) {
	o.state().Position = origin
}

// TransformedResolution returns the resolution with the transform applied.
func (o *Output) TransformedResolution() wlkit.Size {
	size := o.Size()
	if o.Transform().Swapped() {
		size.Width, size.Height = size.Height, size.Width
	}
	return size
}

// EffectiveResolution returns the transformed and scaled resolution.
func (o *Output) EffectiveResolution() wlkit.Size {
	size := o.TransformedResolution()
	scale := o.Scale()
	if scale > 0 && scale != 1 {
		size.Width = int32(float32(size.Width) / scale)
		size.Height = int32(float32(size.Height) / scale)
	}
	return size
}

// Modes returns the fixed modes the output supports. Some backends have
// none.
func (o *Output) Modes() []backend.Mode {
	return o.state().Modes
}

// CurrentMode returns the active fixed mode, if one is set.
func (o *Output) CurrentMode() (backend.Mode, bool) {
	st := o.state()
	if st.CurrentMode >= 0 && st.CurrentMode < len(st.Modes) {
		return st.Modes[st.CurrentMode], true
	}
	return backend.Mode{}, false
}

// ChooseBestMode sets the preferred mode, falling back to the first one.
// It is a no-op for outputs without fixed modes.
func (o *Output) ChooseBestMode() {
	st := o.state()
	if len(st.Modes) == 0 {
		return
	}
	best := 0
	for i, m := range st.Modes {
		if m.Preferred {
			best = i
			break
		}
	}
	st.CurrentMode = best
	Logger().Debug("best mode chosen",
		zap.String("output", st.Name),
		zap.Int32("width", st.Modes[best].Size.Width),
		zap.Int32("height", st.Modes[best].Size.Height))
}

// SetMode makes mode the active mode. It returns false when the output
// does not support it.
func (o *Output) SetMode(mode backend.Mode) bool {
	st := o.state()
	for i, m := range st.Modes {
		if m.Size == mode.Size && m.Refresh == mode.Refresh {
			st.CurrentMode = i
			return true
		}
	}
	return false
}

// SetCustomMode sets a mode outside the fixed mode list.
func (o *Output) SetCustomMode(size wlkit.Size, refresh int32) {
	st := o.state()
	st.CurrentMode = -1
	st.CustomMode = backend.Mode{Size: size, Refresh: refresh}
}

// ScheduleFrame manually requests a frame event. If one is already
// pending, it is a no-op.
func (o *Output) ScheduleFrame() {
	o.state().FramePending = true
}

// FramePending reports whether a frame event is pending.
func (o *Output) FramePending() bool { return o.state().FramePending }

// Damage returns the output's damage tracker.
func (o *Output) Damage() *Damage {
	return o.res.Data().damage
}

// Layout returns a handle to the layout this output belongs to, if any.
func (o *Output) Layout() (LayoutHandle, bool) {
	memb := o.res.Data().memb
	return memb.layout, memb.bound
}

func (o *Output) setLayout(lh LayoutHandle) {
	memb := o.res.Data().memb
	memb.layout = lh
	memb.bound = true
}

func (o *Output) clearLayout() {
	memb := o.res.Data().memb
	memb.layout = LayoutHandle{}
	memb.bound = false
}

// removeFromLayout detaches a dying output from its layout. A dead layout
// is fine; a layout that is checked out at this instant means destruction
// was delivered inside a layout run, which the delivery model rules out.
func removeFromLayout(memb *membership, id wlkit.NativeID) {
	if !memb.bound {
		return
	}
	lh := memb.layout
	memb.layout = LayoutHandle{}
	memb.bound = false
	err := lh.Run(func(l *Layout) error {
		l.removeEntry(id)
		return nil
	})
	if err != nil && !errors.IsAlreadyDropped(err) {
		Logger().Error("output layout busy during teardown",
			zap.String("id", id.String()), zap.Error(err))
		panic("output: layout checked out during output destruction")
	}
}

// Handle is a storable weak reference to an Output.
type Handle struct {
	h handle.Handle[data]
}

// ID returns the native identity; handles compare equal exactly when
// their IDs match.
func (h Handle) ID() wlkit.NativeID { return h.h.ID() }

// Alive reports whether the native output still exists.
func (h Handle) Alive() bool { return h.h.Alive() }

// Name returns the connector name without a full checkout. It fails with
// AlreadyDropped once the output is gone.
func (h Handle) Name() (string, error) {
	d, err := h.h.Data()
	if err != nil {
		return "", err
	}
	return d.obj.Output().Name, nil
}

// Run checks the output out, runs fn against it exclusively, and releases
// it. See the handle package for the full contract.
func (h Handle) Run(fn func(*Output) error) error {
	return h.h.Run(func(r *handle.Resource[data]) error {
		return fn(&Output{res: r})
	})
}
