// Package bridge constructs and invokes host types that are not part of the public
// compile-time surface.
//
// Types are declared up front in a Catalog: each declaration carries its qualified
// name, the version range it exists for, and closures for its constructors and
// methods, keyed by declared parameter types. A Bridge is the catalog as seen at a
// single platform version, so a type whose constructor grew a parameter in a later
// release is simply declared twice with disjoint ranges, and callers pick the
// signature by passing different arguments.
//
//	b := catalog.For(platform.U)
//	status, err := b.Construct("android.app.time.TelephonyTimeZoneAlgorithmStatus",
//	    bridge.A(bridge.Int, 3))
//
// Lookups never fall back to reflection over arbitrary Go values; a receiver is only
// invokable if its concrete type was declared.
package bridge
