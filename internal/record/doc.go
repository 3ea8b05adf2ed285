// Package record synthesizes record types from declared commands.
//
// A record type has one typed field per command parameter, preserving
// declaration order, and is constructed positionally or by name exactly as
// the command itself would be invoked. Field storage is a real struct type
// built at run time with reflect.StructOf, so instances carry typed fields
// and marshal to JSON under their declared parameter names.
//
// Synthesis is eager: the strict required-before-optional ordering check
// runs at build time, before the type exists, never at construction time.
// A record type may merge base prototypes and a user class (their methods
// resolve in merge order) or a behavior function (invoked when the instance
// is called); the originating command stays attached and retrievable.
package record
