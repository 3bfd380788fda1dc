package scope

import (
	"errors"
	"fmt"
	"testing"

	"shadowkit/internal/binding"
	"shadowkit/internal/bridge"
	"shadowkit/internal/config"
	"shadowkit/internal/host"
	"shadowkit/internal/platform"
	"shadowkit/internal/registry"
	_ "shadowkit/internal/shadows"
	"shadowkit/pkg/logging"
)

// ErrNoShadow is returned by ShadowOf when the object has no shadow of the
// requested type.
var ErrNoShadow = errors.New("no shadow of the requested type")

// Options configures a Scope. Zero values select the defaults.
type Options struct {
	Version  platform.Version
	Registry *registry.Registry
	Catalog  *bridge.Catalog
	// ExcludeInternal keeps internal-only shadows from applying.
	ExcludeInternal bool
}

// FromConfig derives scope options from the loaded configuration.
func FromConfig(cfg config.Config) Options {
	return Options{
		Version:         platform.Version(cfg.Platform.SDK),
		ExcludeInternal: !cfg.Platform.InternalTypesAllowed(),
	}
}

// Scope binds host objects to shadows for one platform version.
type Scope struct {
	bridge *bridge.Bridge
	store  *binding.Store
}

var _ host.Binder = (*Scope)(nil)

// New creates a scope.
func New(opts Options) *Scope {
	if opts.Version == 0 {
		opts.Version = platform.Latest
	}
	if opts.Registry == nil {
		opts.Registry = registry.Default()
	}
	if opts.Catalog == nil {
		opts.Catalog = host.Catalog()
	}

	br := opts.Catalog.For(opts.Version)
	var avail registry.Availability = br
	if opts.ExcludeInternal {
		avail = nil
	}

	logging.Debug("Scope", "Opened scope at version %d (internal types excluded: %t)", opts.Version, opts.ExcludeInternal)
	return &Scope{
		bridge: br,
		store:  binding.New(opts.Registry, br, avail),
	}
}

// NewForTest creates a scope that is closed when t finishes.
func NewForTest(t testing.TB, opts Options) *Scope {
	t.Helper()
	s := New(opts)
	t.Cleanup(s.Close)
	return s
}

// Version returns the platform version of the scope.
func (s *Scope) Version() platform.Version { return s.bridge.Version() }

// Bridge returns the bridge for the scope's version.
func (s *Scope) Bridge() *bridge.Bridge { return s.bridge }

// Bind returns obj's shadow, constructing it on first use. A nil shadow means
// calls on obj pass through.
func (s *Scope) Bind(obj platform.Object, typ platform.TypeName) (any, error) {
	return s.store.Bind(obj, typ)
}

// Unbind releases obj's shadow.
func (s *Scope) Unbind(obj platform.Object) { s.store.Unbind(obj) }

// Bound returns the number of live bindings.
func (s *Scope) Bound() int { return s.store.Len() }

// Close releases every binding. Further binds fail.
func (s *Scope) Close() { s.store.Close() }

// ShadowOf returns obj's shadow as T.
func ShadowOf[T any](s *Scope, obj platform.Object, typ platform.TypeName) (T, error) {
	var zero T
	v, err := s.Bind(obj, typ)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, fmt.Errorf("%w: %s passes through at version %d", ErrNoShadow, typ, s.Version())
	}
	shadow, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is shadowed by %T, not %T", ErrNoShadow, typ, v, zero)
	}
	return shadow, nil
}
