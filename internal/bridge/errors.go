package bridge

import "errors"

var (
	// ErrTypeNotFound is returned when the host build lacks the named type.
	ErrTypeNotFound = errors.New("type not found")
	// ErrConstructorNotFound is returned when no constructor matches the declared parameter types.
	ErrConstructorNotFound = errors.New("constructor not found")
	// ErrMethodNotFound is returned when a method exists but no overload matches the declared parameter types.
	ErrMethodNotFound = errors.New("method not found")
	// ErrTargetNotInstance is returned when the receiver's type does not expose the method.
	ErrTargetNotInstance = errors.New("target is not an instance of a type exposing the method")
	// ErrInvocationFailure wraps any error raised by an underlying constructor or method.
	ErrInvocationFailure = errors.New("invocation failed")
	// ErrDuplicateType is returned when a name is defined twice for overlapping versions.
	ErrDuplicateType = errors.New("duplicate type definition")
)
