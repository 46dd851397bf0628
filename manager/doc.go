// Package manager bridges raw backend signals to the typed resource
// wrappers and user handlers.
//
// The Bridge listens for new-object announcements, constructs exactly one
// owning wrapper per native object, and parks a back-reference in the
// object's user-data slot. Typed events are dispatched to per-resource
// handlers with fresh weak handles; the destroy signal tears the binding
// down in a fixed order: the handler's Destroyed callback runs first,
// while the handle is still readable, then every listener is removed
// exactly once, the slot is cleared, and the owning wrapper is dropped.
// A second destroy notification for the same object is a no-op.
//
// Handler interfaces ship with embeddable no-op defaults, so a compositor
// implements only the callbacks it cares about:
//
//	type padHandler struct {
//		manager.NoOpTabletPadHandler
//	}
//
//	func (padHandler) OnButton(h input.PadHandle, ev backend.PadButtonEvent) {
//		h.Run(func(pad *input.TabletPad) error {
//			// react to the press
//			return nil
//		})
//	}
//
// All bridge callbacks run synchronously on the goroutine driving the
// backend. The bridge is not safe for concurrent use.
package manager
