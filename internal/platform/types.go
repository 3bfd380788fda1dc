package platform

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// ErrUnavailable is returned by host methods that do not exist at the active
// version or have no backing service.
var ErrUnavailable = errors.New("not available on this platform")

// TypeName is a qualified host type name, e.g. "android.view.Window".
type TypeName string

// Version is a host API level.
type Version int

const (
	Lollipop    Version = 21
	LollipopMR1 Version = 22
	M           Version = 23
	N           Version = 24
	O           Version = 26
	P           Version = 28
	Q           Version = 29
	R           Version = 30
	S           Version = 31
	T           Version = 33
	U           Version = 34
	V           Version = 35

	// Latest is the newest version the host models.
	Latest = V
)

// Unbounded marks an open side of a Range.
const Unbounded Version = 0

// Range is an inclusive version gate. A zero bound is unbounded on that side.
type Range struct {
	Min Version `json:"min,omitempty" yaml:"min,omitempty"`
	Max Version `json:"max,omitempty" yaml:"max,omitempty"`
}

// AllVersions matches every version.
var AllVersions = Range{}

// From returns a gate open above min.
func From(min Version) Range { return Range{Min: min} }

// Until returns a gate open below max.
func Until(max Version) Range { return Range{Max: max} }

// Between returns a gate bounded on both sides.
func Between(min, max Version) Range { return Range{Min: min, Max: max} }

// Contains reports whether v lies inside the gate.
func (r Range) Contains(v Version) bool {
	if r.Min != Unbounded && v < r.Min {
		return false
	}
	if r.Max != Unbounded && v > r.Max {
		return false
	}
	return true
}

// Valid reports whether the bounds are ordered.
func (r Range) Valid() bool {
	return r.Min == Unbounded || r.Max == Unbounded || r.Min <= r.Max
}

// Overlaps reports whether some version lies in both gates.
func (r Range) Overlaps(o Range) bool {
	lo := max(r.lower(), o.lower())
	hi := min(r.upper(), o.upper())
	return lo <= hi
}

// Width is the number of versions the gate admits, counting an unbounded side as
// reaching the int32 limit. Use Narrower to rank gates.
func (r Range) Width() int64 {
	return r.upper() - r.lower()
}

// Bounded reports whether both sides of the gate are bounded.
func (r Range) Bounded() bool {
	return r.Min != Unbounded && r.Max != Unbounded
}

// Within reports whether every version r admits is also admitted by o.
func (r Range) Within(o Range) bool {
	return o.lower() <= r.lower() && r.upper() <= o.upper()
}

// Narrower reports whether r ranks strictly narrower than o. Bounded gates rank
// by width and always before gates open on a side. Two gates open on some side
// rank only by strict containment, so From(M) and Until(V) are incomparable.
func (r Range) Narrower(o Range) bool {
	switch {
	case r.Bounded() && o.Bounded():
		return r.Width() < o.Width()
	case r.Bounded():
		return true
	case o.Bounded():
		return false
	default:
		return r != o && r.Within(o)
	}
}

func (r Range) lower() int64 {
	if r.Min == Unbounded {
		return math.MinInt32
	}
	return int64(r.Min)
}

func (r Range) upper() int64 {
	if r.Max == Unbounded {
		return math.MaxInt32
	}
	return int64(r.Max)
}

func (r Range) String() string {
	switch {
	case r.Min == Unbounded && r.Max == Unbounded:
		return "all"
	case r.Max == Unbounded:
		return fmt.Sprintf("%d+", r.Min)
	case r.Min == Unbounded:
		return fmt.Sprintf("<=%d", r.Max)
	default:
		return fmt.Sprintf("%d-%d", r.Min, r.Max)
	}
}

// Handle is the stable identity of a platform object.
type Handle uuid.UUID

func (h Handle) String() string { return uuid.UUID(h).String() }

// NewHandle mints a fresh handle.
func NewHandle() Handle { return Handle(uuid.New()) }

// Object is anything the engine can bind a shadow to.
type Object interface {
	Handle() Handle
}

// Base is embedded by host objects to carry their handle.
type Base struct {
	handle Handle
}

// NewBase mints the handle for a new object.
func NewBase() Base { return Base{handle: NewHandle()} }

// Handle returns the object's identity.
func (b *Base) Handle() Handle { return b.handle }
