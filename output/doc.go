// Package output wraps native display outputs in the resource/handle
// lifecycle.
//
// An Output is the exclusive owning wrapper around one native output
// object. It carries two pieces of auxiliary state tied to the native
// object's lifetime: a Damage tracker, destroyed in lock-step with the
// output, and its membership in an output Layout, removed at teardown so
// layouts never hold dangling entries.
//
// Application code stores Handles and acts through Run:
//
//	layoutH.Run(func(l *output.Layout) error {
//	    return outH.Run(func(o *output.Output) error {
//	        l.AddAuto(o)
//	        return nil
//	    })
//	})
//
// Nesting runs on distinct resources is fine; nesting on the same output
// fails with AlreadyBorrowed.
package output
