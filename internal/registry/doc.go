// Package registry is the declarative table of shadow descriptors and the
// version-gated resolution algorithm that picks one for a platform type.
//
// # Resolution
//
// For a type and version, candidates are the descriptors targeting the type or one
// of its declared ancestors whose gate contains the version. Internal-only
// descriptors are candidates only when the caller's Availability reports their
// target type present. Only the most specific type with candidates is considered.
// Among its descriptors a bounded gate ranks by width and before any open gate;
// open gates rank only by strict containment (see platform.Range.Narrower).
// Exactly one descriptor must rank narrower than all others; otherwise an
// AmbiguousError names the competitors rather than one being picked arbitrarily.
// No candidate at all means passthrough and is not an error.
//
// # Lifecycle
//
// The process-wide table returned by Default is populated once during package
// initialization by each shadow implementation and only read afterwards. Tests that
// need an isolated table create their own with New.
package registry
