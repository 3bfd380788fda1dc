package registry

import (
	"fmt"

	"shadowkit/internal/bridge"
	"shadowkit/internal/platform"
)

// Context is handed to a factory when it builds a shadow.
type Context struct {
	Version platform.Version
	Bridge  *bridge.Bridge
	Object  platform.Object
	Type    platform.TypeName
}

// Factory builds the shadow for one platform object.
type Factory func(ctx Context) (any, error)

// Descriptor declares which shadow applies to a target type and version range.
type Descriptor struct {
	Name         string
	Target       platform.TypeName
	Gate         platform.Range
	InternalOnly bool
	Factory      Factory
}

func (d *Descriptor) String() string {
	name := d.Name
	if name == "" {
		name = string(d.Target)
	}
	return fmt.Sprintf("%s[%s@%s]", name, d.Target, d.Gate)
}

// Availability reports whether an internal platform type is reachable.
type Availability interface {
	Has(name platform.TypeName) bool
}
