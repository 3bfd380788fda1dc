package host

import (
	"shadowkit/internal/bridge"
	"shadowkit/internal/platform"
)

// Qualified platform type names.
const (
	TypeObject                           platform.TypeName = "java.lang.Object"
	TypeWindow                           platform.TypeName = "android.view.Window"
	TypePhoneWindow                      platform.TypeName = "com.android.internal.policy.PhoneWindow"
	TypePhoneWindowLegacy                platform.TypeName = "com.android.internal.policy.impl.PhoneWindow"
	TypeDrawable                         platform.TypeName = "android.graphics.drawable.Drawable"
	TypeFrameMetrics                     platform.TypeName = "android.view.FrameMetrics"
	TypeUserHandle                       platform.TypeName = "android.os.UserHandle"
	TypeTimeManager                      platform.TypeName = "android.app.time.TimeManager"
	TypeTimeZoneConfiguration            platform.TypeName = "android.app.time.TimeZoneConfiguration"
	TypeTimeZoneCapabilities             platform.TypeName = "android.app.time.TimeZoneCapabilities"
	TypeTimeZoneCapabilitiesBuilder      platform.TypeName = "android.app.time.TimeZoneCapabilities$Builder"
	TypeTimeZoneCapabilitiesAndConfig    platform.TypeName = "android.app.time.TimeZoneCapabilitiesAndConfig"
	TypeTimeZoneDetectorStatus           platform.TypeName = "android.app.time.TimeZoneDetectorStatus"
	TypeTelephonyTimeZoneAlgorithmStatus platform.TypeName = "android.app.time.TelephonyTimeZoneAlgorithmStatus"
	TypeLocationTimeZoneAlgorithmStatus  platform.TypeName = "android.app.time.LocationTimeZoneAlgorithmStatus"
	TypeTimeZoneProviderStatus           platform.TypeName = "android.service.timezone.TimeZoneProviderStatus"
	TypeExternalTimeSuggestion           platform.TypeName = "android.app.time.ExternalTimeSuggestion"
)

// Window layout flags.
const (
	FlagAllowLockWhileScreenOn = 0x00000001
	FlagDimBehind              = 0x00000002
	FlagKeepScreenOn           = 0x00000080
	FlagFullscreen             = 0x00000400
	FlagSecure                 = 0x00002000
)

// Window features.
const (
	FeatureOptionsPanel          = 0
	FeatureNoTitle               = 1
	FeatureProgress              = 2
	FeatureLeftIcon              = 3
	FeatureRightIcon             = 4
	FeatureIndeterminateProgress = 5
	FeatureActionBar             = 8

	maxFeature = 13
)

// View visibility.
const (
	Visible   = 0
	Invisible = 4
	Gone      = 8
)

// Binder attaches shadows to host objects. *scope.Scope implements it.
type Binder interface {
	Bind(obj platform.Object, typ platform.TypeName) (any, error)
	Bridge() *bridge.Bridge
}

// Drawable is a drawable resource reference.
type Drawable struct {
	ResourceID int
	Color      int
}

// NewDrawableFromResource returns the drawable loaded from a resource id.
func NewDrawableFromResource(id int) *Drawable {
	return &Drawable{ResourceID: id}
}
