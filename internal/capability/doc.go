// Package capability holds the mutable state a shadow exposes in place of
// platform state the test cannot otherwise observe.
//
// # Overview
//
// Each shadow declares a Schema: a fixed enumeration of keys, each with a Kind and a
// default. A Store created from the schema starts at those defaults, accepts writes
// from simulated platform calls and reads from test assertions, and rejects any key
// outside the enumeration with ErrUnrecognizedKey rather than ignoring it.
//
// # Flags
//
// KindFlags keys hold bitmasks updated with mask semantics:
//
//	store.SetFlags(KeyFlags, FlagFullscreen, FlagFullscreen)
//	store.HasFlag(KeyFlags, FlagFullscreen) // true
//
// Bits outside the mask are never touched.
//
// # Builders
//
// Composite value snapshots are built by the owning shadow. Builders check their
// upstream inputs with Require, which fails with ErrMissingRequiredState when a
// value was never supplied.
package capability
