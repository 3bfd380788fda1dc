package binding

import (
	"errors"
	"fmt"
	"sync"

	"shadowkit/internal/bridge"
	"shadowkit/internal/platform"
	"shadowkit/internal/registry"
	"shadowkit/pkg/logging"

	"golang.org/x/sync/singleflight"
)

var (
	// ErrClosed is returned by Bind once the store has been closed.
	ErrClosed = errors.New("binding store closed")
	// ErrNilObject is returned when Bind is called without an object.
	ErrNilObject = errors.New("cannot bind a nil object")
	// ErrUnbound is returned by a Bind whose object was unbound while its
	// shadow was being constructed.
	ErrUnbound = errors.New("object unbound during construction")
)

// Resolver picks the descriptor for a type at a version.
type Resolver interface {
	Resolve(typ platform.TypeName, version platform.Version, avail registry.Availability) (*registry.Descriptor, error)
}

// Releaser is implemented by shadows holding registrations that must be cleared
// when their binding goes away.
type Releaser interface {
	Release()
}

type binding struct {
	typ    platform.TypeName
	desc   string
	shadow any
}

type pendingBind struct {
	unbound bool
}

// Store holds the handle to shadow bindings of one scope.
type Store struct {
	resolver Resolver
	bridge   *bridge.Bridge
	avail    registry.Availability

	mu     sync.RWMutex
	bound   map[platform.Handle]binding
	pending map[platform.Handle]*pendingBind
	closed  bool

	group singleflight.Group
}

// New creates a store resolving through resolver at the bridge's version.
func New(resolver Resolver, br *bridge.Bridge, avail registry.Availability) *Store {
	return &Store{
		resolver: resolver,
		bridge:   br,
		avail:    avail,
		bound:    make(map[platform.Handle]binding),
		pending:  make(map[platform.Handle]*pendingBind),
	}
}

// Version returns the platform version the store binds for.
func (s *Store) Version() platform.Version { return s.bridge.Version() }

// Bind returns the shadow bound to obj, constructing it on first use.
// A nil shadow with a nil error means no shadow applies and calls pass through.
func (s *Store) Bind(obj platform.Object, typ platform.TypeName) (any, error) {
	if obj == nil {
		return nil, ErrNilObject
	}
	h := obj.Handle()

	if shadow, ok, err := s.lookup(h); err != nil || ok {
		return shadow, err
	}

	shadow, err, _ := s.group.Do(h.String(), func() (any, error) {
		if shadow, ok, err := s.lookup(h); err != nil || ok {
			return shadow, err
		}
		return s.construct(obj, h, typ)
	})
	return shadow, err
}

func (s *Store) lookup(h platform.Handle) (any, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	b, ok := s.bound[h]
	return b.shadow, ok, nil
}

func (s *Store) construct(obj platform.Object, h platform.Handle, typ platform.TypeName) (any, error) {
	p := &pendingBind{}
	s.mu.Lock()
	s.pending[h] = p
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.pending, h)
		s.mu.Unlock()
	}()

	version := s.bridge.Version()
	desc, err := s.resolver.Resolve(typ, version, s.avail)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, nil
	}

	shadow, err := desc.Factory(registry.Context{
		Version: version,
		Bridge:  s.bridge,
		Object:  obj,
		Type:    typ,
	})
	if err != nil {
		logging.Error("Binding", err, "Failed to construct %s for %s", desc.String(), typ)
		return nil, fmt.Errorf("constructing %s for %s: %w", desc.String(), typ, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		release(shadow)
		return nil, ErrClosed
	}
	if p.unbound {
		s.mu.Unlock()
		release(shadow)
		logging.Debug("Binding", "Discarded %s for %s, unbound during construction", desc.String(), typ)
		return nil, fmt.Errorf("%w: %s", ErrUnbound, h)
	}
	s.bound[h] = binding{typ: typ, desc: desc.String(), shadow: shadow}
	s.mu.Unlock()

	logging.Debug("Binding", "Bound %s to %s (%s)", desc.String(), typ, h)
	return shadow, nil
}

// Lookup returns the shadow already bound to obj without constructing one.
func (s *Store) Lookup(obj platform.Object) (any, bool) {
	if obj == nil {
		return nil, false
	}
	shadow, ok, err := s.lookup(obj.Handle())
	return shadow, ok && err == nil
}

// Unbind drops obj's binding and releases its shadow. A Bind still constructing
// for obj discards its shadow and fails with ErrUnbound. Absent bindings are ignored.
func (s *Store) Unbind(obj platform.Object) {
	if obj == nil {
		return
	}
	h := obj.Handle()

	s.mu.Lock()
	b, ok := s.bound[h]
	delete(s.bound, h)
	if p, building := s.pending[h]; building {
		p.unbound = true
	}
	s.mu.Unlock()

	if ok {
		release(b.shadow)
		logging.Debug("Binding", "Unbound %s from %s", b.desc, b.typ)
	}
}

// Len returns the number of live bindings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bound)
}

// Close releases every binding. Subsequent Binds fail with ErrClosed.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	bound := s.bound
	s.bound = make(map[platform.Handle]binding)
	s.mu.Unlock()

	for _, b := range bound {
		release(b.shadow)
	}
	logging.Debug("Binding", "Closed store, released %d bindings", len(bound))
}

func release(shadow any) {
	if r, ok := shadow.(Releaser); ok {
		r.Release()
	}
}
