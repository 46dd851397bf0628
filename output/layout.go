package output

import (
	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/handle"
)

// LayoutKind is the resource kind of output layouts.
const LayoutKind = handle.Kind("output-layout")

// Layouts are toolkit-side resources with no backing native object, so
// they draw identities from a reserved range the backend never uses.
var nextLayoutID wlkit.NativeID = 0xA0000000

type layoutEntry struct {
	memb *membership
	out  Handle
	area wlkit.Area
	auto bool
}

type layoutState struct {
	entries []layoutEntry
}

type layoutData struct {
	st *layoutState
}

// Layout arranges outputs in a shared coordinate space. It is itself a
// resource: store LayoutHandles and act through Run, exactly as with
// outputs. An output belongs to at most one layout; a dying output
// removes itself, and a dying layout releases all its members.
type Layout struct {
	res *handle.Resource[layoutData]
}

// NewLayout creates an empty layout.
func NewLayout() *Layout {
	nextLayoutID++
	st := &layoutState{}
	res := handle.New(LayoutKind, nextLayoutID, layoutData{st: st})
	res.OnDestroy(func() {
		for i := range st.entries {
			st.entries[i].memb.layout = LayoutHandle{}
			st.entries[i].memb.bound = false
		}
		st.entries = nil
	})
	return &Layout{res: res}
}

// ID returns the layout's identity.
func (l *Layout) ID() wlkit.NativeID { return l.res.ID() }

// WeakReference derives a storable handle to this layout.
func (l *Layout) WeakReference() LayoutHandle {
	return LayoutHandle{h: l.res.WeakReference()}
}

// Drop destroys the layout, releasing every member.
func (l *Layout) Drop() {
	l.res.Drop()
}

func (l *Layout) state() *layoutState {
	return l.res.Data().st
}

// Add places an output at a fixed position. Re-adding a member updates
// its position; an output bound to another layout is moved here.
func (l *Layout) Add(o *Output, origin wlkit.Origin) {
	l.add(o, origin, false)
}

// AddAuto places an output automatically, to the right of the current
// extents.
func (l *Layout) AddAuto(o *Output) {
	ext := l.Extents()
	l.add(o, wlkit.Origin{X: ext.Origin.X + ext.Size.Width, Y: ext.Origin.Y}, true)
}

func (l *Layout) add(o *Output, origin wlkit.Origin, auto bool) {
	st := l.state()
	memb := o.res.Data().memb

	if memb.bound && memb.layout.ID() == l.ID() {
		for i := range st.entries {
			if st.entries[i].out.ID() == o.ID() {
				st.entries[i].area = wlkit.Area{Origin: origin, Size: o.EffectiveResolution()}
				st.entries[i].auto = auto
				o.SetPosition(origin)
				return
			}
		}
	}
	if memb.bound {
		// Bound to some other layout; detach from it first.
		removeFromLayout(memb, o.ID())
	}

	o.SetPosition(origin)
	o.setLayout(l.WeakReference())
	st.entries = append(st.entries, layoutEntry{
		out:  o.WeakReference(),
		memb: memb,
		area: wlkit.Area{Origin: origin, Size: o.EffectiveResolution()},
		auto: auto,
	})
}

// Remove detaches an output from the layout. Unknown outputs are a no-op.
func (l *Layout) Remove(o *Output) {
	l.removeEntry(o.ID())
}

// removeEntry drops the entry for id and clears its membership. It is the
// shared tail of user-initiated removal and destruction teardown.
func (l *Layout) removeEntry(id wlkit.NativeID) {
	st := l.state()
	for i := range st.entries {
		if st.entries[i].out.ID() == id {
			st.entries[i].memb.layout = LayoutHandle{}
			st.entries[i].memb.bound = false
			st.entries = append(st.entries[:i], st.entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of member outputs.
func (l *Layout) Len() int {
	return len(l.state().entries)
}

// Outputs returns handles to every member, in insertion order.
func (l *Layout) Outputs() []Handle {
	st := l.state()
	out := make([]Handle, 0, len(st.entries))
	for _, e := range st.entries {
		out = append(out, e.out)
	}
	return out
}

// Each visits members with their layout areas.
func (l *Layout) Each(fn func(h Handle, area wlkit.Area) bool) {
	for _, e := range l.state().entries {
		if !fn(e.out, e.area) {
			return
		}
	}
}

// OutputAt returns the member whose area contains the point.
func (l *Layout) OutputAt(p wlkit.Origin) (Handle, bool) {
	for _, e := range l.state().entries {
		if e.area.Contains(p) {
			return e.out, true
		}
	}
	return Handle{}, false
}

// Extents returns the bounding box of all members.
func (l *Layout) Extents() wlkit.Area {
	st := l.state()
	if len(st.entries) == 0 {
		return wlkit.Area{}
	}
	minX, minY := st.entries[0].area.Origin.X, st.entries[0].area.Origin.Y
	maxX := minX + st.entries[0].area.Size.Width
	maxY := minY + st.entries[0].area.Size.Height
	for _, e := range st.entries[1:] {
		a := e.area
		if a.Origin.X < minX {
			minX = a.Origin.X
		}
		if a.Origin.Y < minY {
			minY = a.Origin.Y
		}
		if x := a.Origin.X + a.Size.Width; x > maxX {
			maxX = x
		}
		if y := a.Origin.Y + a.Size.Height; y > maxY {
			maxY = y
		}
	}
	return wlkit.Area{
		Origin: wlkit.Origin{X: minX, Y: minY},
		Size:   wlkit.Size{Width: maxX - minX, Height: maxY - minY},
	}
}

// LayoutHandle is a storable weak reference to a Layout.
type LayoutHandle struct {
	h handle.Handle[layoutData]
}

// ID returns the layout's identity.
func (h LayoutHandle) ID() wlkit.NativeID { return h.h.ID() }

// Alive reports whether the layout still exists.
func (h LayoutHandle) Alive() bool { return h.h.Alive() }

// Run checks the layout out, runs fn against it exclusively, and
// releases it.
func (h LayoutHandle) Run(fn func(*Layout) error) error {
	return h.h.Run(func(r *handle.Resource[layoutData]) error {
		return fn(&Layout{res: r})
	})
}
