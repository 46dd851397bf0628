package backend

import (
	"go.uber.org/zap"

	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/errors"
)

// Backend owns every native object and delivers their events. All methods
// must be called from the single goroutine driving the compositor; event
// delivery is synchronous on that goroutine.
type Backend struct {
	objects map[wlkit.NativeID]*Object
	order   []wlkit.NativeID

	newOutput Signal
	newInput  Signal
	newSurf   Signal

	nextID wlkit.NativeID
	closed bool
}

// New creates an empty backend.
func New() *Backend {
	return &Backend{
		objects:   make(map[wlkit.NativeID]*Object),
		newOutput: Signal{name: "new-output"},
		newInput:  Signal{name: "new-input"},
		newSurf:   Signal{name: "new-surface"},
		nextID:    0x1000,
	}
}

// OnNewOutput is the signal announcing freshly created outputs. The
// payload is the *Object.
func (b *Backend) OnNewOutput() *Signal { return &b.newOutput }

// OnNewInput is the signal announcing freshly created input devices.
func (b *Backend) OnNewInput() *Signal { return &b.newInput }

// OnNewSurface is the signal announcing freshly created surfaces.
func (b *Backend) OnNewSurface() *Signal { return &b.newSurf }

// CreateOutput brings a new output into existence and announces it.
func (b *Backend) CreateOutput(st OutputState) (*Object, error) {
	obj, err := b.create(KindOutput)
	if err != nil {
		return nil, err
	}
	if len(st.Modes) > 0 && st.CurrentMode >= len(st.Modes) {
		st.CurrentMode = 0
	}
	copied := st
	obj.output = &copied
	Logger().Debug("output created",
		zap.String("id", obj.id.String()),
		zap.String("name", st.Name))
	b.newOutput.emit(obj)
	return obj, nil
}

// CreateInput brings a new input device into existence and announces it.
func (b *Backend) CreateInput(st InputState) (*Object, error) {
	obj, err := b.create(KindInput)
	if err != nil {
		return nil, err
	}
	copied := st
	obj.input = &copied
	Logger().Debug("input device created",
		zap.String("id", obj.id.String()),
		zap.String("name", st.Name),
		zap.String("type", st.Type.String()))
	b.newInput.emit(obj)
	return obj, nil
}

// CreateSurface brings a new surface into existence and announces it.
func (b *Backend) CreateSurface(st SurfaceState) (*Object, error) {
	obj, err := b.create(KindSurface)
	if err != nil {
		return nil, err
	}
	copied := st
	obj.surface = &copied
	b.newSurf.emit(obj)
	return obj, nil
}

func (b *Backend) create(kind ObjectKind) (*Object, error) {
	if b.closed {
		return nil, errors.Closed("backend shut down")
	}
	id := b.nextID
	b.nextID += 0x40
	obj := &Object{
		id:      id,
		kind:    kind,
		signals: make(map[string]*Signal),
	}
	b.objects[id] = obj
	b.order = append(b.order, id)
	return obj, nil
}

// Destroy tears a native object down. The object's destroy signal fires
// first, while the object is still fully readable; only then does it
// leave the registry. Destroying an unknown or already destroyed identity
// returns an error but has no other effect.
func (b *Backend) Destroy(id wlkit.NativeID) error {
	obj, ok := b.objects[id]
	if !ok {
		return errors.UnknownObject(id)
	}
	Logger().Debug("destroying object",
		zap.String("id", id.String()),
		zap.String("kind", obj.kind.String()))
	obj.emit(EventDestroy, obj)
	obj.dead = true
	delete(b.objects, id)
	for i, oid := range b.order {
		if oid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// Emit delivers an event payload to the named signal on one object.
func (b *Backend) Emit(id wlkit.NativeID, event string, data any) error {
	if b.closed {
		return errors.Closed("backend shut down")
	}
	obj, ok := b.objects[id]
	if !ok {
		return errors.UnknownObject(id)
	}
	obj.emit(event, data)
	return nil
}

// Object looks up a live object by identity.
func (b *Backend) Object(id wlkit.NativeID) (*Object, bool) {
	obj, ok := b.objects[id]
	return obj, ok
}

// Lookup finds a live object by the name in its state union.
func (b *Backend) Lookup(name string) (*Object, bool) {
	for _, id := range b.order {
		obj := b.objects[id]
		switch {
		case obj.output != nil && obj.output.Name == name:
			return obj, true
		case obj.input != nil && obj.input.Name == name:
			return obj, true
		}
	}
	return nil, false
}

// Each visits live objects in creation order.
func (b *Backend) Each(fn func(*Object) bool) {
	ids := make([]wlkit.NativeID, len(b.order))
	copy(ids, b.order)
	for _, id := range ids {
		if obj, ok := b.objects[id]; ok {
			if !fn(obj) {
				return
			}
		}
	}
}

// Len returns the number of live objects.
func (b *Backend) Len() int {
	return len(b.objects)
}

// Close destroys every remaining object and stops accepting operations.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	ids := make([]wlkit.NativeID, len(b.order))
	copy(ids, b.order)
	for _, id := range ids {
		if _, ok := b.objects[id]; ok {
			_ = b.Destroy(id)
		}
	}
	b.closed = true
	return nil
}
