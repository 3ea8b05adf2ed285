// Package command holds the command declaration and the callable rebinder.
//
// A Command pairs a Go function with its parameter specs; its corrected
// signature is computed eagerly at declaration time so invalid declarations
// fail fast. Rebind wraps a Command in a Func that binds positional and
// named values against the corrected signature, applies defaults, and
// forwards to the original function via reflection.
//
// Every Func carries a back-reference to its pre-rebind Command. Resolve
// follows that reference, so a consumer handed an already-rebound callable
// still reads the true descriptor-bearing declaration instead of an
// already-corrected signature.
package command
