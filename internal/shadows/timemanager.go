package shadows

import (
	"fmt"
	"slices"
	"sync"

	"shadowkit/internal/bridge"
	"shadowkit/internal/capability"
	"shadowkit/internal/host"
	"shadowkit/internal/listener"
	"shadowkit/internal/platform"
)

// CapabilityConfigureGeoDetection is the only capability tests may override.
const CapabilityConfigureGeoDetection = "configure_geo_detection_capability"

var timeManagerSchema = capability.NewSchema(
	capability.Field{Key: CapabilityConfigureGeoDetection, Kind: capability.KindInt, Default: host.CapabilityPossessed},
)

// TimeManager shadows the internal time detection manager. Capabilities are
// fixed by the platform, so tests adjust them through SetCapabilityState.
type TimeManager struct {
	bridge *bridge.Bridge
	states *capability.Store

	mu            sync.Mutex
	capabilities  *host.TimeZoneCapabilities
	configuration *host.TimeZoneConfiguration
	suggestions   []*host.ExternalTimeSuggestion

	detectorListeners listener.Simulator[host.TimeZoneDetectorListener]
}

var _ host.TimeZoneDetector = (*TimeManager)(nil)

func newTimeManager(br *bridge.Bridge) (*TimeManager, error) {
	tm := &TimeManager{
		bridge: br,
		states: capability.NewStore(timeManagerSchema),
	}
	caps, err := tm.defaultCapabilities()
	if err != nil {
		return nil, fmt.Errorf("building default time zone capabilities: %w", err)
	}
	tm.capabilities = caps
	return tm, nil
}

type builderCall struct {
	method string
	arg    bridge.Arg
}

func (tm *TimeManager) defaultCapabilities() (*host.TimeZoneCapabilities, error) {
	geo, err := tm.states.Int(CapabilityConfigureGeoDetection)
	if err != nil {
		return nil, err
	}
	calls := []builderCall{
		{"setConfigureAutoDetectionEnabledCapability", bridge.A(bridge.Int, host.CapabilityPossessed)},
		{"setConfigureGeoDetectionEnabledCapability", bridge.A(bridge.Int, geo)},
	}
	if tm.bridge.Version() >= platform.U {
		calls = append(calls,
			builderCall{"setUseLocationEnabled", bridge.A(bridge.Boolean, true)},
			builderCall{"setSetManualTimeZoneCapability", bridge.A(bridge.Int, host.CapabilityPossessed)},
		)
	} else {
		calls = append(calls,
			builderCall{"setSuggestManualTimeZoneCapability", bridge.A(bridge.Int, host.CapabilityPossessed)},
		)
	}
	return tm.build(bridge.A(host.TypeUserHandle, host.UserCurrent), calls)
}

func (tm *TimeManager) build(from bridge.Arg, calls []builderCall) (*host.TimeZoneCapabilities, error) {
	b, err := tm.bridge.Construct(host.TypeTimeZoneCapabilitiesBuilder, from)
	if err != nil {
		return nil, err
	}
	for _, c := range calls {
		if _, err := tm.bridge.Invoke(b, c.method, c.arg); err != nil {
			return nil, err
		}
	}
	caps, err := tm.bridge.Invoke(b, "build")
	if err != nil {
		return nil, err
	}
	return bridge.As[*host.TimeZoneCapabilities](caps), nil
}

// SetCapabilityState overrides one capability and rebuilds the capabilities
// snapshot from the current one. Nothing changes when the rebuild fails.
func (tm *TimeManager) SetCapabilityState(name string, state int) error {
	key := capability.Key(name)
	if !tm.states.Schema().Has(key) {
		return fmt.Errorf("%w: %q", capability.ErrUnrecognizedKey, name)
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	caps, err := tm.build(bridge.A(host.TypeTimeZoneCapabilities, tm.capabilities), []builderCall{
		{"setConfigureGeoDetectionEnabledCapability", bridge.A(bridge.Int, state)},
	})
	if err != nil {
		return fmt.Errorf("rebuilding time zone capabilities: %w", err)
	}
	if err := tm.states.Set(key, state); err != nil {
		return err
	}
	tm.capabilities = caps
	return nil
}

// Capabilities returns the current capabilities snapshot.
func (tm *TimeManager) Capabilities() *host.TimeZoneCapabilities {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.capabilities
}

func (tm *TimeManager) TimeZoneCapabilitiesAndConfig() (*host.TimeZoneCapabilitiesAndConfig, error) {
	tm.mu.Lock()
	caps, cfg := tm.capabilities, tm.configuration
	tm.mu.Unlock()

	if err := capability.Require("time zone configuration", cfg); err != nil {
		return nil, err
	}

	args := []bridge.Arg{
		bridge.A(host.TypeTimeZoneCapabilities, caps),
		bridge.A(host.TypeTimeZoneConfiguration, cfg),
	}
	if tm.bridge.Version() >= platform.U {
		status, err := tm.detectorStatus()
		if err != nil {
			return nil, fmt.Errorf("building detector status: %w", err)
		}
		args = append([]bridge.Arg{bridge.A(host.TypeTimeZoneDetectorStatus, status)}, args...)
	}

	v, err := tm.bridge.Construct(host.TypeTimeZoneCapabilitiesAndConfig, args...)
	if err != nil {
		return nil, err
	}
	return bridge.As[*host.TimeZoneCapabilitiesAndConfig](v), nil
}

func (tm *TimeManager) detectorStatus() (any, error) {
	telephony, err := tm.bridge.Construct(host.TypeTelephonyTimeZoneAlgorithmStatus,
		bridge.A(bridge.Int, host.AlgorithmStatusRunning))
	if err != nil {
		return nil, err
	}
	location, err := tm.bridge.Construct(host.TypeLocationTimeZoneAlgorithmStatus,
		bridge.A(bridge.Int, host.AlgorithmStatusRunning),
		bridge.A(bridge.Int, host.ProviderStatusIsCertain),
		bridge.A(host.TypeTimeZoneProviderStatus, nil),
		bridge.A(bridge.Int, host.ProviderStatusIsCertain),
		bridge.A(host.TypeTimeZoneProviderStatus, nil),
	)
	if err != nil {
		return nil, err
	}
	return tm.bridge.Construct(host.TypeTimeZoneDetectorStatus,
		bridge.A(bridge.Int, host.DetectorStatusUnknown),
		bridge.A(host.TypeTelephonyTimeZoneAlgorithmStatus, telephony),
		bridge.A(host.TypeLocationTimeZoneAlgorithmStatus, location),
	)
}

func (tm *TimeManager) UpdateTimeZoneConfiguration(cfg *host.TimeZoneConfiguration) bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.configuration = cfg
	return true
}

func (tm *TimeManager) AddTimeZoneDetectorListener(ctx listener.DispatchContext, l host.TimeZoneDetectorListener) {
	tm.detectorListeners.Register(l, ctx)
}

func (tm *TimeManager) RemoveTimeZoneDetectorListener(l host.TimeZoneDetectorListener) {
	tm.detectorListeners.UnregisterWhere(func(x host.TimeZoneDetectorListener) bool { return x == l })
}

// SimulateDetectorChange notifies every active detector listener and returns how
// many were called.
func (tm *TimeManager) SimulateDetectorChange() int {
	return tm.detectorListeners.Trigger(func(l host.TimeZoneDetectorListener, _ listener.DispatchContext) {
		l.OnChange()
	})
}

func (tm *TimeManager) SuggestExternalTime(s *host.ExternalTimeSuggestion) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.suggestions = append(tm.suggestions, s)
}

// ExternalTimeSuggestions returns the suggestions received so far, oldest first.
func (tm *TimeManager) ExternalTimeSuggestions() []*host.ExternalTimeSuggestion {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return slices.Clone(tm.suggestions)
}

// Release drops every detector listener.
func (tm *TimeManager) Release() { tm.detectorListeners.Reset() }
