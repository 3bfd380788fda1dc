// Package platform models the host platform as seen by the substitution engine:
// qualified type names, API-level versions and their inclusive gates, the declared
// type hierarchy, and stable object handles.
//
// Platform objects are opaque to the engine. The only thing it needs from one is a
// Handle, which stays the same for the lifetime of the object and is used as the
// binding key. Handles are minted when the object is constructed; the engine never
// holds a reference to the object itself.
package platform
