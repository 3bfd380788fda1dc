package host

import (
	"reflect"
	"sync"

	"shadowkit/internal/bridge"
	"shadowkit/internal/platform"
)

var (
	catalog     *bridge.Catalog
	catalogOnce sync.Once
)

// Catalog returns the bridge table of host types. It is built once and is
// read-only afterwards.
func Catalog() *bridge.Catalog {
	catalogOnce.Do(func() {
		catalog = bridge.NewCatalog()
		defineWindows(catalog)
		defineTimeTypes(catalog)
	})
	return catalog
}

// DeclareTypes records the host type ancestry in h.
func DeclareTypes(h *platform.Hierarchy) error {
	for _, pair := range [][2]platform.TypeName{
		{TypeWindow, TypeObject},
		{TypePhoneWindow, TypeWindow},
		{TypePhoneWindowLegacy, TypeWindow},
		{TypeTimeManager, TypeObject},
	} {
		if err := h.Declare(pair[0], pair[1]); err != nil {
			return err
		}
	}
	return nil
}

// Hierarchy returns a fresh hierarchy holding the host type ancestry.
func Hierarchy() *platform.Hierarchy {
	h := platform.NewHierarchy()
	if err := DeclareTypes(h); err != nil {
		panic(err)
	}
	return h
}

func params(types ...platform.TypeName) []platform.TypeName { return types }

func typeOf[T any]() reflect.Type { return reflect.TypeFor[T]() }

func defineWindows(c *bridge.Catalog) {
	c.MustDefine(bridge.TypeDef{
		Name:   TypeDrawable,
		GoType: typeOf[*Drawable](),
		Constructors: []bridge.Constructor{{
			Params: params(bridge.Int),
			New: func(args []any) (any, error) {
				return NewDrawableFromResource(bridge.As[int](args[0])), nil
			},
		}},
	})
	c.MustDefine(bridge.TypeDef{
		Name:   TypeFrameMetrics,
		Gate:   platform.From(platform.N),
		GoType: typeOf[*FrameMetrics](),
		Constructors: []bridge.Constructor{{
			New: func([]any) (any, error) { return &FrameMetrics{}, nil },
		}},
	})
	c.MustDefine(bridge.TypeDef{
		Name:    TypeWindow,
		GoType:  typeOf[*Window](),
		Methods: windowMethods(),
	})

	phoneWindow := func(name platform.TypeName, gate platform.Range) bridge.TypeDef {
		return bridge.TypeDef{
			Name:     name,
			Internal: true,
			Gate:     gate,
			GoType:   typeOf[*PhoneWindow](),
			Constructors: []bridge.Constructor{{
				New: func([]any) (any, error) { return newPhoneWindow(), nil },
			}},
			Methods: append(windowMethods(), bridge.Method{
				Name:   "requestFeature",
				Params: params(bridge.Int),
				Invoke: func(recv any, args []any) (any, error) {
					return recv.(*PhoneWindow).RequestFeature(bridge.As[int](args[0])), nil
				},
			}),
		}
	}
	c.MustDefine(phoneWindow(TypePhoneWindowLegacy, platform.Until(platform.LollipopMR1)))
	c.MustDefine(phoneWindow(TypePhoneWindow, platform.From(platform.M)))
}

func windowMethods() []bridge.Method {
	window := func(recv any) *Window {
		if pw, ok := recv.(*PhoneWindow); ok {
			return &pw.Window
		}
		return recv.(*Window)
	}
	return []bridge.Method{
		{
			Name:   "setFlags",
			Params: params(bridge.Int, bridge.Int),
			Invoke: func(recv any, args []any) (any, error) {
				window(recv).SetFlags(bridge.As[int](args[0]), bridge.As[int](args[1]))
				return nil, nil
			},
		},
		{
			Name:   "setTitle",
			Params: params(bridge.String),
			Invoke: func(recv any, args []any) (any, error) {
				window(recv).SetTitle(bridge.As[string](args[0]))
				return nil, nil
			},
		},
		{
			Name:   "setSoftInputMode",
			Params: params(bridge.Int),
			Invoke: func(recv any, args []any) (any, error) {
				window(recv).SetSoftInputMode(bridge.As[int](args[0]))
				return nil, nil
			},
		},
	}
}

func defineTimeTypes(c *bridge.Catalog) {
	fromS := platform.From(platform.S)
	fromU := platform.From(platform.U)
	belowU := platform.Between(platform.S, platform.T)

	c.MustDefine(bridge.TypeDef{
		Name:   TypeUserHandle,
		GoType: typeOf[*UserHandle](),
		Constructors: []bridge.Constructor{{
			Params: params(bridge.Int),
			New: func(args []any) (any, error) {
				return &UserHandle{id: bridge.As[int](args[0])}, nil
			},
		}},
	})
	c.MustDefine(bridge.TypeDef{
		Name:     TypeTimeManager,
		Internal: true,
		Gate:     fromS,
		GoType:   typeOf[*TimeManager](),
		Constructors: []bridge.Constructor{{
			New: func([]any) (any, error) { return &TimeManager{Base: platform.NewBase()}, nil },
		}},
	})
	c.MustDefine(bridge.TypeDef{
		Name:   TypeTimeZoneConfiguration,
		Gate:   fromS,
		GoType: typeOf[*TimeZoneConfiguration](),
		Constructors: []bridge.Constructor{{
			Params: params(bridge.Boolean, bridge.Boolean),
			New: func(args []any) (any, error) {
				return &TimeZoneConfiguration{
					AutoDetectionEnabled: bridge.As[bool](args[0]),
					GeoDetectionEnabled:  bridge.As[bool](args[1]),
				}, nil
			},
		}},
	})
	c.MustDefine(bridge.TypeDef{
		Name:   TypeTimeZoneCapabilities,
		Gate:   fromS,
		GoType: typeOf[*TimeZoneCapabilities](),
		Methods: []bridge.Method{
			capabilityGetter("getConfigureAutoDetectionEnabledCapability", (*TimeZoneCapabilities).ConfigureAutoDetectionEnabledCapability),
			capabilityGetter("getConfigureGeoDetectionEnabledCapability", (*TimeZoneCapabilities).ConfigureGeoDetectionEnabledCapability),
		},
	})
	c.MustDefine(bridge.TypeDef{
		Name:   TypeExternalTimeSuggestion,
		Gate:   fromS,
		GoType: typeOf[*ExternalTimeSuggestion](),
		Constructors: []bridge.Constructor{{
			Params: params(bridge.Long, bridge.Long),
			New: func(args []any) (any, error) {
				return &ExternalTimeSuggestion{
					ElapsedRealtimeMillis: bridge.As[int64](args[0]),
					SuggestionMillis:      bridge.As[int64](args[1]),
				}, nil
			},
		}},
	})

	c.MustDefine(bridge.TypeDef{
		Name:         TypeTimeZoneCapabilitiesBuilder,
		Gate:         belowU,
		GoType:       typeOf[*TimeZoneCapabilitiesBuilder](),
		Constructors: builderConstructors(),
		Methods: append(builderMethods(),
			builderSetter("setSuggestManualTimeZoneCapability", bridge.Int, func(b *TimeZoneCapabilitiesBuilder, v any) {
				b.caps.suggestManualTimeZone = bridge.As[int](v)
			}),
		),
	})
	c.MustDefine(bridge.TypeDef{
		Name:         TypeTimeZoneCapabilitiesBuilder,
		Gate:         fromU,
		GoType:       typeOf[*TimeZoneCapabilitiesBuilder](),
		Constructors: builderConstructors(),
		Methods: append(builderMethods(),
			builderSetter("setUseLocationEnabled", bridge.Boolean, func(b *TimeZoneCapabilitiesBuilder, v any) {
				b.caps.useLocationEnabled = bridge.As[bool](v)
			}),
			builderSetter("setSetManualTimeZoneCapability", bridge.Int, func(b *TimeZoneCapabilitiesBuilder, v any) {
				b.caps.setManualTimeZone = bridge.As[int](v)
			}),
		),
	})

	c.MustDefine(bridge.TypeDef{
		Name:     TypeTimeZoneCapabilitiesAndConfig,
		Internal: true,
		Gate:     belowU,
		GoType:   typeOf[*TimeZoneCapabilitiesAndConfig](),
		Constructors: []bridge.Constructor{{
			Params: params(TypeTimeZoneCapabilities, TypeTimeZoneConfiguration),
			New: func(args []any) (any, error) {
				return &TimeZoneCapabilitiesAndConfig{
					capabilities:  bridge.As[*TimeZoneCapabilities](args[0]),
					configuration: bridge.As[*TimeZoneConfiguration](args[1]),
				}, nil
			},
		}},
	})
	c.MustDefine(bridge.TypeDef{
		Name:     TypeTimeZoneCapabilitiesAndConfig,
		Internal: true,
		Gate:     fromU,
		GoType:   typeOf[*TimeZoneCapabilitiesAndConfig](),
		Constructors: []bridge.Constructor{{
			Params: params(TypeTimeZoneDetectorStatus, TypeTimeZoneCapabilities, TypeTimeZoneConfiguration),
			New: func(args []any) (any, error) {
				return &TimeZoneCapabilitiesAndConfig{
					detectorStatus: bridge.As[*TimeZoneDetectorStatus](args[0]),
					capabilities:   bridge.As[*TimeZoneCapabilities](args[1]),
					configuration:  bridge.As[*TimeZoneConfiguration](args[2]),
				}, nil
			},
		}},
	})

	c.MustDefine(bridge.TypeDef{
		Name:     TypeTimeZoneProviderStatus,
		Internal: true,
		Gate:     fromU,
		GoType:   typeOf[*TimeZoneProviderStatus](),
	})
	c.MustDefine(bridge.TypeDef{
		Name:     TypeTelephonyTimeZoneAlgorithmStatus,
		Internal: true,
		Gate:     fromU,
		GoType:   typeOf[*TelephonyTimeZoneAlgorithmStatus](),
		Constructors: []bridge.Constructor{{
			Params: params(bridge.Int),
			New: func(args []any) (any, error) {
				return &TelephonyTimeZoneAlgorithmStatus{algorithmStatus: bridge.As[int](args[0])}, nil
			},
		}},
	})
	c.MustDefine(bridge.TypeDef{
		Name:     TypeLocationTimeZoneAlgorithmStatus,
		Internal: true,
		Gate:     fromU,
		GoType:   typeOf[*LocationTimeZoneAlgorithmStatus](),
		Constructors: []bridge.Constructor{{
			Params: params(bridge.Int, bridge.Int, TypeTimeZoneProviderStatus, bridge.Int, TypeTimeZoneProviderStatus),
			New: func(args []any) (any, error) {
				return &LocationTimeZoneAlgorithmStatus{
					status:                  bridge.As[int](args[0]),
					primaryProviderStatus:   bridge.As[int](args[1]),
					primaryReported:         bridge.As[*TimeZoneProviderStatus](args[2]),
					secondaryProviderStatus: bridge.As[int](args[3]),
					secondaryReported:       bridge.As[*TimeZoneProviderStatus](args[4]),
				}, nil
			},
		}},
	})
	c.MustDefine(bridge.TypeDef{
		Name:     TypeTimeZoneDetectorStatus,
		Internal: true,
		Gate:     fromU,
		GoType:   typeOf[*TimeZoneDetectorStatus](),
		Constructors: []bridge.Constructor{{
			Params: params(bridge.Int, TypeTelephonyTimeZoneAlgorithmStatus, TypeLocationTimeZoneAlgorithmStatus),
			New: func(args []any) (any, error) {
				return &TimeZoneDetectorStatus{
					detectorStatus: bridge.As[int](args[0]),
					telephony:      bridge.As[*TelephonyTimeZoneAlgorithmStatus](args[1]),
					location:       bridge.As[*LocationTimeZoneAlgorithmStatus](args[2]),
				}, nil
			},
		}},
	})
}

func capabilityGetter(name string, get func(*TimeZoneCapabilities) int) bridge.Method {
	return bridge.Method{
		Name: name,
		Invoke: func(recv any, _ []any) (any, error) {
			return get(recv.(*TimeZoneCapabilities)), nil
		},
	}
}

func builderConstructors() []bridge.Constructor {
	return []bridge.Constructor{
		{
			Params: params(TypeUserHandle),
			New: func(args []any) (any, error) {
				return newCapabilitiesBuilder(bridge.As[*UserHandle](args[0])), nil
			},
		},
		{
			Params: params(TypeTimeZoneCapabilities),
			New: func(args []any) (any, error) {
				caps := bridge.As[*TimeZoneCapabilities](args[0])
				if caps == nil {
					return nil, errNilCapabilities
				}
				return newCapabilitiesBuilderFrom(caps), nil
			},
		},
	}
}

func builderMethods() []bridge.Method {
	return []bridge.Method{
		builderSetter("setConfigureAutoDetectionEnabledCapability", bridge.Int, func(b *TimeZoneCapabilitiesBuilder, v any) {
			b.caps.configureAutoDetection = bridge.As[int](v)
		}),
		builderSetter("setConfigureGeoDetectionEnabledCapability", bridge.Int, func(b *TimeZoneCapabilitiesBuilder, v any) {
			b.caps.configureGeoDetection = bridge.As[int](v)
		}),
		{
			Name: "build",
			Invoke: func(recv any, _ []any) (any, error) {
				return recv.(*TimeZoneCapabilitiesBuilder).build(), nil
			},
		},
	}
}

// builderSetter returns a chaining setter: the builder itself is the result.
func builderSetter(name string, param platform.TypeName, set func(*TimeZoneCapabilitiesBuilder, any)) bridge.Method {
	return bridge.Method{
		Name:   name,
		Params: params(param),
		Invoke: func(recv any, args []any) (any, error) {
			b := recv.(*TimeZoneCapabilitiesBuilder)
			set(b, args[0])
			return b, nil
		},
	}
}
