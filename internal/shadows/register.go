package shadows

import (
	"shadowkit/internal/host"
	"shadowkit/internal/platform"
	"shadowkit/internal/registry"
)

func init() {
	if err := Register(registry.Default()); err != nil {
		panic(err)
	}
}

// Descriptors returns the descriptors of every shipped shadow.
func Descriptors() []registry.Descriptor {
	phoneWindow := func(registry.Context) (any, error) { return newPhoneWindow(), nil }

	return []registry.Descriptor{
		{
			Name:   "ShadowWindow",
			Target: host.TypeWindow,
			Factory: func(registry.Context) (any, error) {
				return newWindow(windowSchema), nil
			},
		},
		{
			Name:         "ShadowPhoneWindow",
			Target:       host.TypePhoneWindow,
			Gate:         platform.From(platform.M),
			InternalOnly: true,
			Factory:      phoneWindow,
		},
		{
			Name:         "ShadowPhoneWindowLegacy",
			Target:       host.TypePhoneWindowLegacy,
			Gate:         platform.Until(platform.LollipopMR1),
			InternalOnly: true,
			Factory:      phoneWindow,
		},
		{
			Name:         "ShadowTimeManager",
			Target:       host.TypeTimeManager,
			Gate:         platform.From(platform.S),
			InternalOnly: true,
			Factory: func(ctx registry.Context) (any, error) {
				tm, err := newTimeManager(ctx.Bridge)
				if err != nil {
					return nil, err
				}
				return tm, nil
			},
		},
	}
}

// Register declares the host type ancestry in reg and adds every shipped shadow.
func Register(reg *registry.Registry) error {
	if err := host.DeclareTypes(reg.Hierarchy()); err != nil {
		return err
	}
	for _, d := range Descriptors() {
		if err := reg.Register(d); err != nil {
			return err
		}
	}
	return nil
}
