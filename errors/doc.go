// Package errors provides structured error types for resource handles.
//
// Handle operations fail in exactly two recoverable ways:
//
//	already_dropped  - the native object no longer exists
//	already_borrowed - the resource is checked out by an enclosing run
//
// Both carry the resource kind and native identity for logging. Match them
// with the predicates:
//
//	if errors.IsAlreadyDropped(err) {
//	    // output or device is gone; drop the handle and move on
//	}
//	if errors.IsAlreadyBorrowed(err) {
//	    // nested run on the same resource; fix the calling code
//	}
//
// or with the standard library and a sentinel:
//
//	stderrors.Is(err, errors.AlreadyDropped("", 0))
//
// A third failure tier exists but is deliberately not an error value:
// finding the borrow flag in an impossible state after a closure runs
// proves bookkeeping was already corrupted by misuse, and panics.
package errors
