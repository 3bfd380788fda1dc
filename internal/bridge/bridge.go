package bridge

import (
	"fmt"
	"reflect"
	"slices"
	"sort"

	"shadowkit/internal/platform"
)

// Arg pairs a declared parameter type with a value.
type Arg struct {
	Type  platform.TypeName
	Value any
}

// A builds an Arg.
func A(t platform.TypeName, v any) Arg { return Arg{Type: t, Value: v} }

// Bridge constructs and invokes host types by qualified name at one version.
type Bridge struct {
	version platform.Version
	byName  map[platform.TypeName]*Type
	byGo    map[reflect.Type]*Type
}

// Version returns the platform version this view was built for.
func (b *Bridge) Version() platform.Version { return b.version }

// TypeByName looks up a type visible at this version.
func (b *Bridge) TypeByName(name platform.TypeName) (*Type, error) {
	t, ok := b.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s at version %d", ErrTypeNotFound, name, b.version)
	}
	return t, nil
}

// Has reports whether the named type exists at this version.
func (b *Bridge) Has(name platform.TypeName) bool {
	_, ok := b.byName[name]
	return ok
}

// Types lists every type visible at this version, sorted by name.
func (b *Bridge) Types() []*Type {
	types := make([]*Type, 0, len(b.byName))
	for _, t := range b.byName {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name() < types[j].Name() })
	return types
}

// Construct calls the constructor of name whose declared parameter types match args.
func (b *Bridge) Construct(name platform.TypeName, args ...Arg) (any, error) {
	t, err := b.TypeByName(name)
	if err != nil {
		return nil, err
	}

	params, values := split(args)
	for _, c := range t.def.Constructors {
		if !slices.Equal(c.Params, params) {
			continue
		}
		return call(fmt.Sprintf("new %s", name), func() (any, error) { return c.New(values) })
	}
	return nil, fmt.Errorf("%w: %s(%s)", ErrConstructorNotFound, name, signature(params))
}

// Invoke calls method on instance with the overload matching the declared types of args.
func (b *Bridge) Invoke(instance any, method string, args ...Arg) (any, error) {
	if instance == nil {
		return nil, fmt.Errorf("%w: nil receiver for %s", ErrTargetNotInstance, method)
	}
	t, ok := b.byGo[reflect.TypeOf(instance)]
	if !ok {
		return nil, fmt.Errorf("%w: %T has no declared type at version %d", ErrTargetNotInstance, instance, b.version)
	}

	params, values := split(args)
	exposed := false
	for _, m := range t.def.Methods {
		if m.Name != method {
			continue
		}
		exposed = true
		if !slices.Equal(m.Params, params) {
			continue
		}
		return call(fmt.Sprintf("%s.%s", t.Name(), method), func() (any, error) { return m.Invoke(instance, values) })
	}
	if !exposed {
		return nil, fmt.Errorf("%w: %s does not expose %s at version %d", ErrTargetNotInstance, t.Name(), method, b.version)
	}
	return nil, fmt.Errorf("%w: %s.%s(%s)", ErrMethodNotFound, t.Name(), method, signature(params))
}

// call runs fn, converting both returned errors and panics into ErrInvocationFailure.
func call(what string, fn func() (any, error)) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %s: panic: %v", ErrInvocationFailure, what, r)
		}
	}()

	result, err = fn()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvocationFailure, what, err)
	}
	return result, nil
}

func split(args []Arg) ([]platform.TypeName, []any) {
	params := make([]platform.TypeName, len(args))
	values := make([]any, len(args))
	for i, a := range args {
		params[i] = a.Type
		values[i] = a.Value
	}
	return params, values
}

func signature(params []platform.TypeName) string {
	s := ""
	for i, p := range params {
		if i > 0 {
			s += ", "
		}
		s += string(p)
	}
	return s
}

// As converts a bridged argument to T. A nil argument yields T's zero value,
// matching a null reference passed for a declared reference type.
func As[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}
