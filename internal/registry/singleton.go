package registry

import "sync"

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry that shadow packages populate from
// their init functions.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New(nil)
	})
	return defaultRegistry
}
