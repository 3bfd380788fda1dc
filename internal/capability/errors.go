package capability

import "errors"

var (
	// ErrUnrecognizedKey is returned for keys outside a schema's enumeration.
	ErrUnrecognizedKey = errors.New("unrecognized capability key")
	// ErrWrongKind is returned when a value does not match the key's kind.
	ErrWrongKind = errors.New("capability value has the wrong kind")
	// ErrMissingRequiredState is returned by builders whose required input was never set.
	ErrMissingRequiredState = errors.New("missing required state")
)
