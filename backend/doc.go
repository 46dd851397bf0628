// Package backend provides a headless native display backend.
//
// It stands in for the windowing library that truly owns every resource's
// lifetime: outputs, input devices and surfaces appear and disappear here,
// and the wrapper layers above only ever react. The backend is the
// authority; nothing in the toolkit can keep one of its objects alive.
//
// # Objects and Signals
//
// Every native object carries:
//
//   - a NativeID, stable for its whole life and the basis of handle identity
//   - a kind-tagged state union (output, input device, or surface)
//   - named signals ("destroy", "frame", "pad-button", ...) with strict
//     exactly-once listener removal
//   - a single opaque user-data slot, set exactly once at wrap time and
//     read-and-cleared exactly once at destruction
//
// Removing a listener twice panics: the slot and the subscriptions model a
// raw native boundary where double-unregistration is undefined behavior,
// and the event bridge is required to get it right rather than the backend
// forgiving it.
//
// # Delivery Model
//
// Event delivery is synchronous and single-threaded: CreateOutput, Destroy
// and Emit invoke listeners on the calling goroutine before returning.
// Destruction of an object is therefore always observed strictly after any
// run against it has completed, because both happen on the one driving
// goroutine. A destroy signal fires while the object is still fully
// readable; the object leaves the registry only afterwards.
//
// # Hotplug
//
// DevWatcher turns files appearing and disappearing in a directory into
// device add/remove, for simulating hotplug from outside the process.
package backend
