package registry

import (
	"errors"
	"fmt"
	"strings"

	"shadowkit/internal/platform"
)

var (
	// ErrDuplicateDescriptor is returned when (target, gate) is already registered.
	ErrDuplicateDescriptor = errors.New("duplicate shadow descriptor")
	// ErrInvalidDescriptor is returned for descriptors missing a target or factory.
	ErrInvalidDescriptor = errors.New("invalid shadow descriptor")
	// ErrAmbiguousResolution is matched by every AmbiguousError.
	ErrAmbiguousResolution = errors.New("ambiguous shadow resolution")
)

// AmbiguousError reports equally ranked descriptors competing for one type.
type AmbiguousError struct {
	Type       platform.TypeName
	Version    platform.Version
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s for %s at version %d: %s", ErrAmbiguousResolution, e.Type, e.Version, strings.Join(e.Candidates, ", "))
}

// Is makes errors.Is(err, ErrAmbiguousResolution) hold.
func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguousResolution
}
