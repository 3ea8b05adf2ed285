// Package signature implements the signature normalizer and the call-time
// binding machinery.
//
// Normalize inspects a command function's reflect type together with its
// declared parameter specs and produces a corrected Signature: descriptor
// defaults unwrapped to their inner values, the required-sentinel mapped to
// "no default", and option-style parameters reclassified as keyword-only.
//
// A Signature supports Bind (positional and named values against the
// corrected parameter list) and ApplyDefaults on the bound result, exactly
// the failure categories an ordinary call with ordinary defaults would
// produce. Normalization enforces no ordering invariant; the stricter
// required-before-optional rule lives in the record synthesizer.
package signature
