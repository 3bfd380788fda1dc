package capability

import (
	"fmt"
	"maps"
	"reflect"
	"sync"
)

// Store is a per-shadow record of capability values. It is safe for concurrent use.
type Store struct {
	schema Schema

	mu     sync.RWMutex
	values map[Key]any
}

// NewStore creates a store holding the schema's defaults.
func NewStore(schema Schema) *Store {
	s := &Store{schema: schema}
	s.values = s.defaults()
	return s
}

func (s *Store) defaults() map[Key]any {
	values := make(map[Key]any, len(s.schema.fields))
	for k, f := range s.schema.fields {
		values[k] = f.Default
	}
	return values
}

// Schema returns the store's key enumeration.
func (s *Store) Schema() Schema { return s.schema }

// Get returns the value stored under key.
func (s *Store) Get(key Key) (any, error) {
	if _, err := s.schema.field(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

// Set replaces the value stored under key.
func (s *Store) Set(key Key, value any) error {
	f, err := s.schema.field(key)
	if err != nil {
		return err
	}
	v, err := normalize(f, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = v
	return nil
}

// SetFlags updates the bits selected by mask to the corresponding bits of flags.
func (s *Store) SetFlags(key Key, flags, mask int64) error {
	if err := s.expect(key, KindFlags); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.values[key].(int64)
	s.values[key] = (old &^ mask) | (flags & mask)
	return nil
}

// HasFlag reports whether every bit of bit is set under key.
func (s *Store) HasFlag(key Key, bit int64) (bool, error) {
	flags, err := s.Flags(key)
	if err != nil {
		return false, err
	}
	return flags&bit == bit, nil
}

// Flags returns the bitmask stored under key.
func (s *Store) Flags(key Key) (int64, error) {
	v, err := s.typed(key, KindFlags)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// Bool returns the bool stored under key.
func (s *Store) Bool(key Key) (bool, error) {
	v, err := s.typed(key, KindBool)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// Int returns the int stored under key.
func (s *Store) Int(key Key) (int, error) {
	v, err := s.typed(key, KindInt)
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// String returns the string stored under key.
func (s *Store) String(key Key) (string, error) {
	v, err := s.typed(key, KindString)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Ref returns the reference stored under key, which may be nil.
func (s *Store) Ref(key Key) (any, error) {
	return s.typed(key, KindRef)
}

// Snapshot returns a copy of every value, detached from later writes.
func (s *Store) Snapshot() map[Key]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// Reset restores every key to its default.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = s.defaults()
}

func (s *Store) typed(key Key, kind Kind) (any, error) {
	if err := s.expect(key, kind); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *Store) expect(key Key, kind Kind) error {
	f, err := s.schema.field(key)
	if err != nil {
		return err
	}
	if f.Kind != kind {
		return fmt.Errorf("%w: %q is %s, not %s", ErrWrongKind, key, f.Kind, kind)
	}
	return nil
}

// Require fails with ErrMissingRequiredState when value is nil.
func Require(name string, value any) error {
	if isNil(value) {
		return fmt.Errorf("%w: %s was not set", ErrMissingRequiredState, name)
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
