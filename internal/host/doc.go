// Package host models the opaque platform whose objects get shadowed.
//
// Host objects bind their shadow when they are created. Each host method applies
// its own minimal behavior and then forwards to the bound shadow when the shadow
// implements the matching interface (WindowAttributes, FrameMetricsSource,
// ProgressIndicator, TimeZoneDetector). Without a shadow a call passes through.
//
// Types that only exist on some platform versions, or that are internal to the
// platform, are reachable only through the bridge table returned by Catalog.
package host
