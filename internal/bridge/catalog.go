package bridge

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"shadowkit/internal/platform"
)

// Primitive parameter type names.
const (
	Int     platform.TypeName = "int"
	Long    platform.TypeName = "long"
	Boolean platform.TypeName = "boolean"
	String  platform.TypeName = "String"
)

// Constructor builds an instance from arguments whose declared types equal Params.
type Constructor struct {
	Params []platform.TypeName
	New    func(args []any) (any, error)
}

// Method is one overload of a named instance method.
type Method struct {
	Name   string
	Params []platform.TypeName
	Invoke func(recv any, args []any) (any, error)
}

// TypeDef declares one host type for a version range.
type TypeDef struct {
	Name     platform.TypeName
	Internal bool
	Gate     platform.Range
	// GoType is the concrete Go type of instances, used to find the declaration
	// for a receiver passed to Invoke.
	GoType       reflect.Type
	Constructors []Constructor
	Methods      []Method
}

// Catalog is the startup-populated table of bridgeable types.
type Catalog struct {
	mu   sync.RWMutex
	defs map[platform.TypeName][]*TypeDef
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{defs: make(map[platform.TypeName][]*TypeDef)}
}

// Define adds a type declaration. The same name may be declared more than once
// only for disjoint version ranges.
func (c *Catalog) Define(def TypeDef) error {
	if def.Name == "" {
		return fmt.Errorf("define type: empty name")
	}
	if !def.Gate.Valid() {
		return fmt.Errorf("define type %s: invalid version range %s", def.Name, def.Gate)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.defs[def.Name] {
		if existing.Gate.Overlaps(def.Gate) {
			return fmt.Errorf("%w: %s for %s overlaps %s", ErrDuplicateType, def.Name, def.Gate, existing.Gate)
		}
	}
	d := def
	c.defs[def.Name] = append(c.defs[def.Name], &d)
	return nil
}

// MustDefine is Define for package-level catalog construction.
func (c *Catalog) MustDefine(def TypeDef) {
	if err := c.Define(def); err != nil {
		panic(err)
	}
}

// For returns the view of the catalog visible at version v.
func (c *Catalog) For(v platform.Version) *Bridge {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b := &Bridge{
		version: v,
		byName:  make(map[platform.TypeName]*Type),
		byGo:    make(map[reflect.Type]*Type),
	}
	for name, defs := range c.defs {
		for _, def := range defs {
			if !def.Gate.Contains(v) {
				continue
			}
			t := &Type{def: def}
			b.byName[name] = t
			if def.GoType != nil {
				b.byGo[def.GoType] = t
			}
		}
	}
	return b
}

// Type is a resolved, version-specific type declaration.
type Type struct {
	def *TypeDef
}

// Name returns the qualified name.
func (t *Type) Name() platform.TypeName { return t.def.Name }

// Internal reports whether the type is outside the public compile-time surface.
func (t *Type) Internal() bool { return t.def.Internal }

// Gate returns the version range the declaration applies to.
func (t *Type) Gate() platform.Range { return t.def.Gate }

// MethodNames lists the distinct method names the type exposes.
func (t *Type) MethodNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range t.def.Methods {
		if !seen[m.Name] {
			seen[m.Name] = true
			names = append(names, m.Name)
		}
	}
	sort.Strings(names)
	return names
}

// ConstructorSignatures lists each constructor's declared parameter types.
func (t *Type) ConstructorSignatures() [][]platform.TypeName {
	sigs := make([][]platform.TypeName, 0, len(t.def.Constructors))
	for _, c := range t.def.Constructors {
		params := make([]platform.TypeName, len(c.Params))
		copy(params, c.Params)
		sigs = append(sigs, params)
	}
	return sigs
}
