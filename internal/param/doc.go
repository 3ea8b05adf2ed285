// Package param models the declaration-layer parameter specs that the
// signature normalizer consumes.
//
// A spec describes one parameter of a command function: its name plus either
// a rich Descriptor (true default bundled with help text and CLI metadata)
// or a plain default with no metadata at all. Spec is a sealed interface -
// only Descriptor and PlainSpec implement it - so normalization is a total
// type switch, never open-ended runtime probing.
//
// Specs are immutable once constructed. The rest of the module only reads
// them; fluent With* methods return copies.
package param
