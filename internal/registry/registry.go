package registry

import (
	"fmt"
	"sort"
	"sync"

	"shadowkit/internal/platform"
	"shadowkit/pkg/logging"
)

// Registry manages registered shadow descriptors
type Registry struct {
	mu        sync.RWMutex
	byTarget  map[platform.TypeName][]*Descriptor
	order     []*Descriptor
	hierarchy *platform.Hierarchy
}

// New creates a registry resolving ancestry through hierarchy.
// A nil hierarchy means types have no declared ancestors.
func New(hierarchy *platform.Hierarchy) *Registry {
	if hierarchy == nil {
		hierarchy = platform.NewHierarchy()
	}
	return &Registry{
		byTarget:  make(map[platform.TypeName][]*Descriptor),
		hierarchy: hierarchy,
	}
}

// Hierarchy returns the type hierarchy used for ancestor matching.
func (r *Registry) Hierarchy() *platform.Hierarchy { return r.hierarchy }

// Register adds a descriptor to the table.
func (r *Registry) Register(d Descriptor) error {
	if d.Target == "" || d.Factory == nil {
		return fmt.Errorf("%w: %s needs a target type and a factory", ErrInvalidDescriptor, d.String())
	}
	if !d.Gate.Valid() {
		return fmt.Errorf("%w: %s has min version above max", ErrInvalidDescriptor, d.String())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byTarget[d.Target] {
		if existing.Gate == d.Gate {
			return fmt.Errorf("%w: %s conflicts with %s", ErrDuplicateDescriptor, d.String(), existing.String())
		}
	}

	desc := d
	r.byTarget[d.Target] = append(r.byTarget[d.Target], &desc)
	r.order = append(r.order, &desc)

	logging.Debug("Registry", "Registered shadow %s", desc.String())
	return nil
}

// MustRegister is Register for package initialization.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Descriptors returns every descriptor in registration order.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Descriptor, len(r.order))
	for i, d := range r.order {
		result[i] = *d
	}
	return result
}

// Targets returns every distinct target type, sorted.
func (r *Registry) Targets() []platform.TypeName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := make([]platform.TypeName, 0, len(r.byTarget))
	for t := range r.byTarget {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets
}

// Resolve returns the single descriptor applicable to typ at version, or nil when
// no shadow applies.
func (r *Registry) Resolve(typ platform.TypeName, version platform.Version, avail Availability) (*Descriptor, error) {
	ancestors := r.hierarchy.Ancestors(typ)

	// Ancestors are nearest first, so the first target with any candidate is the
	// most specific one.
	r.mu.RLock()
	var nearest []*Descriptor
	for _, target := range ancestors {
		for _, d := range r.byTarget[target] {
			if !d.Gate.Contains(version) {
				continue
			}
			if d.InternalOnly && (avail == nil || !avail.Has(d.Target)) {
				continue
			}
			nearest = append(nearest, d)
		}
		if len(nearest) > 0 {
			break
		}
	}
	r.mu.RUnlock()

	if len(nearest) == 0 {
		logging.Debug("Registry", "No shadow for %s at version %d, passing through", typ, version)
		return nil, nil
	}

	winners := narrowest(nearest)
	if len(winners) > 1 {
		names := make([]string, len(winners))
		for i, d := range winners {
			names[i] = d.String()
		}
		return nil, &AmbiguousError{Type: typ, Version: version, Candidates: names}
	}

	d := *winners[0]
	return &d, nil
}

// narrowest returns the descriptors whose gate no other candidate ranks narrower
// than, in registration order. A single survivor ranks narrower than every other
// candidate.
func narrowest(candidates []*Descriptor) []*Descriptor {
	var winners []*Descriptor
	for _, d := range candidates {
		beaten := false
		for _, o := range candidates {
			if o != d && o.Gate.Narrower(d.Gate) {
				beaten = true
				break
			}
		}
		if !beaten {
			winners = append(winners, d)
		}
	}
	return winners
}
