// Package binding associates platform objects with their shadows.
//
// A Store keys bindings on the object's handle rather than the object itself, so
// a binding never keeps the object alive. The first Bind for a handle resolves a
// descriptor through the registry and runs its factory exactly once; concurrent
// callers for the same handle wait for that construction and share its result.
package binding
