package introspect

import (
	"errors"
	"fmt"
	"strings"

	"shadowkit/internal/bridge"
	"shadowkit/internal/platform"
	"shadowkit/internal/registry"
)

// Resolution outcomes.
const (
	OutcomeShadowed    = "shadowed"
	OutcomePassthrough = "passthrough"
	OutcomeAmbiguous   = "ambiguous"
)

// ShadowInfo describes one registered descriptor.
type ShadowInfo struct {
	Name         string `json:"name"`
	Target       string `json:"target"`
	Gate         string `json:"gate"`
	InternalOnly bool   `json:"internalOnly"`
}

// ShadowList is the report of every registered descriptor.
type ShadowList struct {
	Shadows []ShadowInfo `json:"shadows"`
	Total   int          `json:"total"`
}

// Shadows lists reg's descriptors in registration order.
func Shadows(reg *registry.Registry) ShadowList {
	descs := reg.Descriptors()
	list := ShadowList{Shadows: make([]ShadowInfo, 0, len(descs)), Total: len(descs)}
	for _, d := range descs {
		list.Shadows = append(list.Shadows, ShadowInfo{
			Name:         d.Name,
			Target:       string(d.Target),
			Gate:         d.Gate.String(),
			InternalOnly: d.InternalOnly,
		})
	}
	return list
}

// Resolution is the outcome of resolving one type at one version.
type Resolution struct {
	Type       string   `json:"type"`
	SDK        int      `json:"sdk"`
	Outcome    string   `json:"outcome"`
	Shadow     string   `json:"shadow,omitempty"`
	Target     string   `json:"target,omitempty"`
	Gate       string   `json:"gate,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
}

// Resolve reports which shadow applies to typ at version. Ambiguity is reported
// as an outcome; any other resolution error is returned.
func Resolve(reg *registry.Registry, catalog *bridge.Catalog, typ platform.TypeName, version platform.Version, allowInternal bool) (Resolution, error) {
	res := Resolution{Type: string(typ), SDK: int(version)}

	var avail registry.Availability
	if allowInternal {
		avail = catalog.For(version)
	}

	d, err := reg.Resolve(typ, version, avail)
	var ambiguous *registry.AmbiguousError
	switch {
	case errors.As(err, &ambiguous):
		res.Outcome = OutcomeAmbiguous
		res.Candidates = ambiguous.Candidates
	case err != nil:
		return Resolution{}, fmt.Errorf("resolving %s at %d: %w", typ, version, err)
	case d == nil:
		res.Outcome = OutcomePassthrough
	default:
		res.Outcome = OutcomeShadowed
		res.Shadow = d.Name
		res.Target = string(d.Target)
		res.Gate = d.Gate.String()
	}
	return res, nil
}

// ResolutionTable holds the resolution of every registered target at one version.
type ResolutionTable struct {
	SDK   int          `json:"sdk"`
	Rows  []Resolution `json:"rows"`
	Total int          `json:"total"`
}

// Table resolves every target registered in reg at version.
func Table(reg *registry.Registry, catalog *bridge.Catalog, version platform.Version, allowInternal bool) (ResolutionTable, error) {
	targets := reg.Targets()
	table := ResolutionTable{SDK: int(version), Rows: make([]Resolution, 0, len(targets))}
	for _, t := range targets {
		res, err := Resolve(reg, catalog, t, version, allowInternal)
		if err != nil {
			return ResolutionTable{}, err
		}
		table.Rows = append(table.Rows, res)
	}
	table.Total = len(table.Rows)
	return table, nil
}

// BridgeType describes one type visible through the bridge.
type BridgeType struct {
	Name         string   `json:"name"`
	Internal     bool     `json:"internal"`
	Gate         string   `json:"gate"`
	Constructors []string `json:"constructors"`
	Methods      []string `json:"methods"`
}

// BridgeTypeList is the report of the bridge table at one version.
type BridgeTypeList struct {
	SDK   int          `json:"sdk"`
	Types []BridgeType `json:"types"`
	Total int          `json:"total"`
}

// BridgeTypes lists every type the catalog exposes at version.
func BridgeTypes(catalog *bridge.Catalog, version platform.Version) BridgeTypeList {
	types := catalog.For(version).Types()
	list := BridgeTypeList{SDK: int(version), Types: make([]BridgeType, 0, len(types)), Total: len(types)}
	for _, t := range types {
		ctors := make([]string, 0)
		for _, sig := range t.ConstructorSignatures() {
			params := make([]string, len(sig))
			for i, p := range sig {
				params[i] = string(p)
			}
			ctors = append(ctors, "("+strings.Join(params, ", ")+")")
		}
		list.Types = append(list.Types, BridgeType{
			Name:         string(t.Name()),
			Internal:     t.Internal(),
			Gate:         t.Gate().String(),
			Constructors: ctors,
			Methods:      t.MethodNames(),
		})
	}
	return list
}
