package capability

import (
	"fmt"
	"sort"
)

// Key names one capability field.
type Key string

// Kind is the value type stored under a key.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindString
	// KindFlags is an int64 bitmask.
	KindFlags
	// KindRef holds an arbitrary reference; nil is a valid value.
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindFlags:
		return "flags"
	case KindRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Field declares one key of a schema.
type Field struct {
	Key     Key
	Kind    Kind
	Default any
}

// Schema is the fixed set of keys a store accepts.
type Schema struct {
	fields map[Key]Field
}

// NewSchema builds a schema, panicking on duplicate keys or defaults of the wrong
// kind since schemas are declared once at package initialization.
func NewSchema(fields ...Field) Schema {
	s := Schema{fields: make(map[Key]Field, len(fields))}
	for _, f := range fields {
		if _, dup := s.fields[f.Key]; dup {
			panic(fmt.Sprintf("capability schema: duplicate key %q", f.Key))
		}
		if f.Default == nil {
			f.Default = zero(f.Kind)
		}
		if err := check(f, f.Default); err != nil {
			panic(fmt.Sprintf("capability schema: default for %q: %v", f.Key, err))
		}
		s.fields[f.Key] = f
	}
	return s
}

// Keys returns the enumerated keys in sorted order.
func (s Schema) Keys() []Key {
	keys := make([]Key, 0, len(s.fields))
	for k := range s.fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Has reports whether key is part of the schema.
func (s Schema) Has(key Key) bool {
	_, ok := s.fields[key]
	return ok
}

func (s Schema) field(key Key) (Field, error) {
	f, ok := s.fields[key]
	if !ok {
		return Field{}, fmt.Errorf("%w: %q", ErrUnrecognizedKey, key)
	}
	return f, nil
}

func zero(k Kind) any {
	switch k {
	case KindBool:
		return false
	case KindInt:
		return 0
	case KindString:
		return ""
	case KindFlags:
		return int64(0)
	default:
		return nil
	}
}

// normalize converts accepted value representations to the stored one.
func normalize(f Field, v any) (any, error) {
	if f.Kind == KindFlags {
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		}
	}
	if err := check(f, v); err != nil {
		return nil, err
	}
	return v, nil
}

func check(f Field, v any) error {
	ok := true
	switch f.Kind {
	case KindBool:
		_, ok = v.(bool)
	case KindInt:
		_, ok = v.(int)
	case KindString:
		_, ok = v.(string)
	case KindFlags:
		_, ok = v.(int64)
	case KindRef:
	}
	if !ok {
		return fmt.Errorf("%w: %q wants %s, got %T", ErrWrongKind, f.Key, f.Kind, v)
	}
	return nil
}
