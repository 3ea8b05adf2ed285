// Package cmdrec makes declarative CLI commands directly callable and turns
// them into record types.
//
// A command declares each parameter with a spec whose default may be a rich
// descriptor: the true default bundled with help text and CLI metadata.
// cmdrec inspects the declaration, unwraps descriptor defaults, corrects
// the calling convention (options become keyword-only), and from that
// corrected signature produces:
//
//   - a rebound callable with the real defaults restored, invocable from
//     ordinary code exactly like the original function (Rebind), and
//   - a synthesized record type with one typed field per parameter,
//     constructible positionally or by name, optionally merged with base
//     prototypes, a user class, or a behavior function (Define), and
//   - a cobra command wired from the same declaration (Bridge, NewApp).
//
// Rebound callables remember their pre-rebind declaration, so deriving a
// record from an already-rebound command still reads the true descriptor
// defaults rather than an intermediate corrected signature.
//
// This package is a pure re-export surface: everything here aliases the
// internal packages so application code imports one path.
package cmdrec
