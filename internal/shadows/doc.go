// Package shadows holds the shadow implementations shipped with shadowkit and
// registers them into the default registry on import.
//
// A shadow records what the host object was told in a capability store and
// exposes that state through accessors, so tests can assert on calls the real
// platform would have swallowed.
package shadows
