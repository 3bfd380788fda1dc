package introspect

import (
	"testing"

	"shadowkit/internal/bridge"
	"shadowkit/internal/host"
	"shadowkit/internal/platform"
	"shadowkit/internal/registry"
	"shadowkit/internal/shadows"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New(nil)
	require.NoError(t, shadows.Register(reg))
	return reg
}

func TestShadows(t *testing.T) {
	list := Shadows(newRegistry(t))
	require.Equal(t, len(shadows.Descriptors()), list.Total)
	assert.Equal(t, ShadowInfo{Name: "ShadowWindow", Target: string(host.TypeWindow), Gate: "all"}, list.Shadows[0])
}

func TestResolve(t *testing.T) {
	reg := newRegistry(t)

	tests := []struct {
		name          string
		typ           platform.TypeName
		version       platform.Version
		allowInternal bool
		outcome       string
		shadow        string
	}{
		{"phone window", host.TypePhoneWindow, platform.M, true, OutcomeShadowed, "ShadowPhoneWindow"},
		{"phone window without internals", host.TypePhoneWindow, platform.M, false, OutcomeShadowed, "ShadowWindow"},
		{"time manager", host.TypeTimeManager, platform.S, true, OutcomeShadowed, "ShadowTimeManager"},
		{"time manager before S", host.TypeTimeManager, platform.R, true, OutcomePassthrough, ""},
		{"unknown type", "android.widget.TextView", platform.U, true, OutcomePassthrough, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(reg, host.Catalog(), tt.typ, tt.version, tt.allowInternal)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.shadow, res.Shadow)
			assert.Equal(t, int(tt.version), res.SDK)
		})
	}
}

func TestResolve_Ambiguous(t *testing.T) {
	reg := registry.New(nil)
	factory := func(registry.Context) (any, error) { return struct{}{}, nil }
	require.NoError(t, reg.Register(registry.Descriptor{Name: "a", Target: host.TypeWindow, Gate: platform.Between(platform.M, platform.P), Factory: factory}))
	require.NoError(t, reg.Register(registry.Descriptor{Name: "b", Target: host.TypeWindow, Gate: platform.Between(platform.N, platform.Q), Factory: factory}))

	res, err := Resolve(reg, bridge.NewCatalog(), host.TypeWindow, platform.O, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAmbiguous, res.Outcome)
	assert.Len(t, res.Candidates, 2)
}

func TestTable(t *testing.T) {
	table, err := Table(newRegistry(t), host.Catalog(), platform.LollipopMR1, true)
	require.NoError(t, err)
	assert.Equal(t, 4, table.Total)

	byType := map[string]Resolution{}
	for _, row := range table.Rows {
		byType[row.Type] = row
	}
	assert.Equal(t, "ShadowPhoneWindowLegacy", byType[string(host.TypePhoneWindowLegacy)].Shadow)
	assert.Equal(t, "ShadowWindow", byType[string(host.TypePhoneWindow)].Shadow, "M+ name falls back to its parent")
	assert.Equal(t, OutcomePassthrough, byType[string(host.TypeTimeManager)].Outcome)
}

func TestBridgeTypes(t *testing.T) {
	atT := BridgeTypes(host.Catalog(), platform.T)
	atU := BridgeTypes(host.Catalog(), platform.U)

	find := func(list BridgeTypeList, name platform.TypeName) *BridgeType {
		for i := range list.Types {
			if list.Types[i].Name == string(name) {
				return &list.Types[i]
			}
		}
		return nil
	}

	builderT := find(atT, host.TypeTimeZoneCapabilitiesBuilder)
	require.NotNil(t, builderT)
	assert.Contains(t, builderT.Methods, "setSuggestManualTimeZoneCapability")
	assert.NotContains(t, builderT.Methods, "setUseLocationEnabled")

	builderU := find(atU, host.TypeTimeZoneCapabilitiesBuilder)
	require.NotNil(t, builderU)
	assert.Contains(t, builderU.Methods, "setUseLocationEnabled")

	andConfigU := find(atU, host.TypeTimeZoneCapabilitiesAndConfig)
	require.NotNil(t, andConfigU)
	assert.True(t, andConfigU.Internal)
	assert.Equal(t, []string{"(android.app.time.TimeZoneDetectorStatus, android.app.time.TimeZoneCapabilities, android.app.time.TimeZoneConfiguration)"}, andConfigU.Constructors)

	assert.Nil(t, find(atT, host.TypeTimeZoneDetectorStatus))
	assert.Equal(t, atU.Total, len(atU.Types))
}
