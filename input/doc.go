// Package input wraps native input devices in the resource/handle
// lifecycle.
//
// A native input device announces itself as a generic device object
// tagged with its type; each wrapper here is a typed construction filter
// that yields a resource only for its own type:
//
//	pad, ok := input.PadFromDevice(obj)   // ok only for tablet pads
//
// The resulting TabletPad, Pointer and Keyboard resources follow the same
// owning-wrapper/weak-handle discipline as outputs: the event bridge owns
// the one Resource, application code stores handles, and a detached
// device fails every handle permanently with AlreadyDropped.
package input
