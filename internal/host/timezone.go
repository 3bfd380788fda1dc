package host

import "errors"

// Capability states.
const (
	CapabilityNotSupported  = 10
	CapabilityNotAllowed    = 20
	CapabilityNotApplicable = 30
	CapabilityPossessed     = 40
)

// Detector statuses.
const (
	DetectorStatusUnknown = iota
	DetectorStatusNotSupported
	DetectorStatusNotRunning
	DetectorStatusRunning
)

// Detection algorithm statuses.
const (
	AlgorithmStatusUnknown = iota
	AlgorithmStatusNotSupported
	AlgorithmStatusNotRunning
	AlgorithmStatusRunning
)

// Location provider statuses.
const (
	ProviderStatusNotPresent  = 1
	ProviderStatusNotReady    = 2
	ProviderStatusIsCertain   = 3
	ProviderStatusIsUncertain = 4
)

// UserHandle identifies a device user.
type UserHandle struct {
	id int
}

// UserCurrent is the handle for the calling user.
var UserCurrent = &UserHandle{id: -2}

func (u *UserHandle) ID() int { return u.id }

// TimeZoneConfiguration is the user-controlled time zone detection setup.
type TimeZoneConfiguration struct {
	AutoDetectionEnabled bool
	GeoDetectionEnabled  bool
}

// TimeZoneCapabilities describes what the user may change about time zone
// detection. Instances are built through the bridge.
type TimeZoneCapabilities struct {
	user                   *UserHandle
	configureAutoDetection int
	configureGeoDetection  int
	suggestManualTimeZone  int
	setManualTimeZone      int
	useLocationEnabled     bool
}

func (c *TimeZoneCapabilities) User() *UserHandle { return c.user }

func (c *TimeZoneCapabilities) ConfigureAutoDetectionEnabledCapability() int {
	return c.configureAutoDetection
}

func (c *TimeZoneCapabilities) ConfigureGeoDetectionEnabledCapability() int {
	return c.configureGeoDetection
}

// SuggestManualTimeZoneCapability is populated below U.
func (c *TimeZoneCapabilities) SuggestManualTimeZoneCapability() int {
	return c.suggestManualTimeZone
}

// SetManualTimeZoneCapability is populated from U.
func (c *TimeZoneCapabilities) SetManualTimeZoneCapability() int {
	return c.setManualTimeZone
}

// UseLocationEnabled is populated from U.
func (c *TimeZoneCapabilities) UseLocationEnabled() bool { return c.useLocationEnabled }

// TimeZoneCapabilitiesBuilder assembles TimeZoneCapabilities. Its setters differ
// between versions and are only reachable through the bridge.
type TimeZoneCapabilitiesBuilder struct {
	caps TimeZoneCapabilities
}

func newCapabilitiesBuilder(user *UserHandle) *TimeZoneCapabilitiesBuilder {
	return &TimeZoneCapabilitiesBuilder{caps: TimeZoneCapabilities{user: user}}
}

func newCapabilitiesBuilderFrom(c *TimeZoneCapabilities) *TimeZoneCapabilitiesBuilder {
	return &TimeZoneCapabilitiesBuilder{caps: *c}
}

func (b *TimeZoneCapabilitiesBuilder) build() *TimeZoneCapabilities {
	caps := b.caps
	return &caps
}

// TimeZoneProviderStatus is the status reported by a location time zone provider.
type TimeZoneProviderStatus struct{}

// TelephonyTimeZoneAlgorithmStatus is the telephony detection algorithm status.
type TelephonyTimeZoneAlgorithmStatus struct {
	algorithmStatus int
}

func (s *TelephonyTimeZoneAlgorithmStatus) AlgorithmStatus() int { return s.algorithmStatus }

// LocationTimeZoneAlgorithmStatus is the location detection algorithm status.
type LocationTimeZoneAlgorithmStatus struct {
	status                  int
	primaryProviderStatus   int
	primaryReported         *TimeZoneProviderStatus
	secondaryProviderStatus int
	secondaryReported       *TimeZoneProviderStatus
}

func (s *LocationTimeZoneAlgorithmStatus) Status() int { return s.status }

func (s *LocationTimeZoneAlgorithmStatus) PrimaryProviderStatus() int {
	return s.primaryProviderStatus
}

func (s *LocationTimeZoneAlgorithmStatus) SecondaryProviderStatus() int {
	return s.secondaryProviderStatus
}

// TimeZoneDetectorStatus aggregates the detection algorithm statuses. Exists from U.
type TimeZoneDetectorStatus struct {
	detectorStatus int
	telephony      *TelephonyTimeZoneAlgorithmStatus
	location       *LocationTimeZoneAlgorithmStatus
}

func (s *TimeZoneDetectorStatus) DetectorStatus() int { return s.detectorStatus }

func (s *TimeZoneDetectorStatus) TelephonyAlgorithmStatus() *TelephonyTimeZoneAlgorithmStatus {
	return s.telephony
}

func (s *TimeZoneDetectorStatus) LocationAlgorithmStatus() *LocationTimeZoneAlgorithmStatus {
	return s.location
}

// TimeZoneCapabilitiesAndConfig pairs capabilities with the current configuration.
type TimeZoneCapabilitiesAndConfig struct {
	detectorStatus *TimeZoneDetectorStatus
	capabilities   *TimeZoneCapabilities
	configuration  *TimeZoneConfiguration
}

// DetectorStatus is nil below U.
func (c *TimeZoneCapabilitiesAndConfig) DetectorStatus() *TimeZoneDetectorStatus {
	return c.detectorStatus
}

func (c *TimeZoneCapabilitiesAndConfig) Capabilities() *TimeZoneCapabilities {
	return c.capabilities
}

func (c *TimeZoneCapabilitiesAndConfig) Configuration() *TimeZoneConfiguration {
	return c.configuration
}

// ExternalTimeSuggestion is a time signal from an external source.
type ExternalTimeSuggestion struct {
	ElapsedRealtimeMillis int64
	SuggestionMillis      int64
}

var errNilCapabilities = errors.New("capabilities to copy must not be nil")
