// Package scope is the per-test context in which platform objects get shadows.
//
// A Scope fixes the platform version, owns the bridge for that version and the
// binding store, and releases every binding when closed. Nothing a scope binds
// is visible to another scope, so tests never share shadow state.
//
// Importing scope registers the shipped shadows in registry.Default.
package scope
