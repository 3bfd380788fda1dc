package host

import (
	"errors"
	"testing"

	"shadowkit/internal/bridge"
	"shadowkit/internal/listener"
	"shadowkit/internal/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBinder struct {
	bridge  *bridge.Bridge
	shadows map[platform.TypeName]any
	err     error
	bound   []platform.TypeName
}

func newFakeBinder(v platform.Version) *fakeBinder {
	return &fakeBinder{bridge: Catalog().For(v), shadows: map[platform.TypeName]any{}}
}

func (f *fakeBinder) Bind(_ platform.Object, typ platform.TypeName) (any, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bound = append(f.bound, typ)
	return f.shadows[typ], nil
}

func (f *fakeBinder) Bridge() *bridge.Bridge { return f.bridge }

type recordingShadow struct {
	flags, mask int
	title       string
	background  *Drawable
	softInput   int
	features    []int
	progress    []bool
	listeners   int
}

func (r *recordingShadow) SetFlags(flags, mask int)          { r.flags, r.mask = flags, mask }
func (r *recordingShadow) SetTitle(title string)             { r.title = title }
func (r *recordingShadow) SetBackgroundDrawable(d *Drawable) { r.background = d }
func (r *recordingShadow) SetSoftInputMode(mode int)         { r.softInput = mode }
func (r *recordingShadow) RequestFeature(f int)              { r.features = append(r.features, f) }
func (r *recordingShadow) SetProgressBarVisibility(v bool)   { r.progress = append(r.progress, v) }
func (r *recordingShadow) SetProgressBarIndeterminateVisibility(v bool) {
	r.progress = append(r.progress, v)
}
func (r *recordingShadow) AddOnFrameMetricsAvailableListener(*Window, FrameMetricsListener, listener.DispatchContext) {
	r.listeners++
}
func (r *recordingShadow) RemoveOnFrameMetricsAvailableListener(FrameMetricsListener) {
	r.listeners--
}

type metricsListener struct{ calls int }

func (m *metricsListener) OnFrameMetricsAvailable(*Window, *FrameMetrics, int) { m.calls++ }

func TestWindow_Passthrough(t *testing.T) {
	w, err := NewWindow(newFakeBinder(platform.N))
	require.NoError(t, err)
	assert.Equal(t, TypeWindow, w.TypeName())

	w.AddFlags(FlagFullscreen)
	w.AddFlags(FlagAllowLockWhileScreenOn)
	w.ClearFlags(FlagAllowLockWhileScreenOn)
	assert.Equal(t, FlagFullscreen, w.Flags())

	w.SetFlags(FlagSecure, FlagSecure|FlagFullscreen)
	assert.Equal(t, FlagSecure, w.Flags())

	l := &metricsListener{}
	err = w.AddOnFrameMetricsAvailableListener(l, listener.MainContext)
	assert.ErrorIs(t, err, platform.ErrUnavailable)
	assert.Contains(t, err.Error(), string(TypeWindow))
	assert.ErrorIs(t, w.RemoveOnFrameMetricsAvailableListener(l), platform.ErrUnavailable)
	assert.Zero(t, l.calls)
}

func TestWindow_ForwardsToShadow(t *testing.T) {
	b := newFakeBinder(platform.N)
	rec := &recordingShadow{}
	b.shadows[TypeWindow] = rec

	w, err := NewWindow(b)
	require.NoError(t, err)

	w.SetFlags(FlagFullscreen, FlagFullscreen)
	w.SetTitle("My Window Title")
	w.SetBackgroundDrawableResource(17)
	w.SetSoftInputMode(7)
	require.NoError(t, w.AddOnFrameMetricsAvailableListener(&metricsListener{}, listener.MainContext))

	assert.Equal(t, FlagFullscreen, rec.flags)
	assert.Equal(t, FlagFullscreen, rec.mask)
	assert.Equal(t, "My Window Title", rec.title)
	require.NotNil(t, rec.background)
	assert.Equal(t, 17, rec.background.ResourceID)
	assert.Equal(t, 7, rec.softInput)
	assert.Equal(t, 1, rec.listeners)
}

func TestWindow_FrameMetricsNeedN(t *testing.T) {
	w, err := NewWindow(newFakeBinder(platform.M))
	require.NoError(t, err)

	err = w.AddOnFrameMetricsAvailableListener(&metricsListener{}, listener.MainContext)
	assert.ErrorIs(t, err, platform.ErrUnavailable)
	assert.ErrorIs(t, w.RemoveOnFrameMetricsAvailableListener(&metricsListener{}), platform.ErrUnavailable)
}

func TestWindow_BindFailure(t *testing.T) {
	b := newFakeBinder(platform.N)
	b.err = errors.New("resolution failed")

	_, err := NewWindow(b)
	assert.ErrorContains(t, err, "resolution failed")
}

func TestNewPhoneWindow_UsesVersionSpecificName(t *testing.T) {
	tests := []struct {
		version platform.Version
		want    platform.TypeName
	}{
		{platform.Lollipop, TypePhoneWindowLegacy},
		{platform.LollipopMR1, TypePhoneWindowLegacy},
		{platform.M, TypePhoneWindow},
		{platform.U, TypePhoneWindow},
	}
	for _, tt := range tests {
		b := newFakeBinder(tt.version)
		pw, err := NewPhoneWindow(b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, pw.TypeName())
		assert.Equal(t, []platform.TypeName{tt.want}, b.bound)
	}
}

func TestPhoneWindow_Features(t *testing.T) {
	b := newFakeBinder(platform.M)
	rec := &recordingShadow{}
	b.shadows[TypePhoneWindow] = rec

	pw, err := NewPhoneWindow(b)
	require.NoError(t, err)

	assert.True(t, pw.RequestFeature(FeatureProgress))
	assert.False(t, pw.RequestFeature(-1))
	assert.False(t, pw.RequestFeature(maxFeature+1))
	assert.True(t, pw.HasFeature(FeatureProgress))
	assert.False(t, pw.HasFeature(FeatureIndeterminateProgress))

	pw.SetProgressBarVisibility(true)
	pw.SetProgressBarIndeterminateVisibility(false)
	pw.SetTitle("inherited")

	assert.Equal(t, []int{FeatureProgress}, rec.features)
	assert.Equal(t, []bool{true, false}, rec.progress)
	assert.Equal(t, "inherited", rec.title)
}

func TestNewTimeManager(t *testing.T) {
	t.Run("absent before S", func(t *testing.T) {
		_, err := NewTimeManager(newFakeBinder(platform.R))
		assert.ErrorIs(t, err, bridge.ErrTypeNotFound)
	})

	t.Run("unshadowed has no service", func(t *testing.T) {
		tm, err := NewTimeManager(newFakeBinder(platform.S))
		require.NoError(t, err)

		_, err = tm.GetTimeZoneCapabilitiesAndConfig()
		assert.ErrorIs(t, err, ErrNoTimeService)
		assert.ErrorIs(t, err, platform.ErrUnavailable)

		_, err = tm.UpdateTimeZoneConfiguration(&TimeZoneConfiguration{})
		assert.ErrorIs(t, err, ErrNoTimeService)

		assert.NotPanics(t, func() {
			tm.SuggestExternalTime(&ExternalTimeSuggestion{})
			tm.RemoveTimeZoneDetectorListener(nil)
		})
	})
}

func TestCatalog_CapabilitiesBuilderByVersion(t *testing.T) {
	build := func(t *testing.T, br *bridge.Bridge, setters map[string]bridge.Arg) (*TimeZoneCapabilities, error) {
		t.Helper()
		b, err := br.Construct(TypeTimeZoneCapabilitiesBuilder, bridge.A(TypeUserHandle, UserCurrent))
		require.NoError(t, err)
		for name, arg := range setters {
			if _, err := br.Invoke(b, name, arg); err != nil {
				return nil, err
			}
		}
		caps, err := br.Invoke(b, "build")
		require.NoError(t, err)
		return caps.(*TimeZoneCapabilities), nil
	}

	t.Run("T exposes suggest manual", func(t *testing.T) {
		br := Catalog().For(platform.T)
		caps, err := build(t, br, map[string]bridge.Arg{
			"setSuggestManualTimeZoneCapability": bridge.A(bridge.Int, CapabilityPossessed),
		})
		require.NoError(t, err)
		assert.Equal(t, CapabilityPossessed, caps.SuggestManualTimeZoneCapability())
		assert.Same(t, UserCurrent, caps.User())

		_, err = build(t, br, map[string]bridge.Arg{
			"setUseLocationEnabled": bridge.A(bridge.Boolean, true),
		})
		assert.ErrorIs(t, err, bridge.ErrTargetNotInstance)
	})

	t.Run("U exposes set manual and use location", func(t *testing.T) {
		br := Catalog().For(platform.U)
		caps, err := build(t, br, map[string]bridge.Arg{
			"setUseLocationEnabled":          bridge.A(bridge.Boolean, true),
			"setSetManualTimeZoneCapability": bridge.A(bridge.Int, CapabilityPossessed),
		})
		require.NoError(t, err)
		assert.True(t, caps.UseLocationEnabled())
		assert.Equal(t, CapabilityPossessed, caps.SetManualTimeZoneCapability())

		_, err = build(t, br, map[string]bridge.Arg{
			"setSuggestManualTimeZoneCapability": bridge.A(bridge.Int, CapabilityPossessed),
		})
		assert.ErrorIs(t, err, bridge.ErrTargetNotInstance)
	})

	t.Run("copy constructor rejects nil", func(t *testing.T) {
		_, err := Catalog().For(platform.U).Construct(TypeTimeZoneCapabilitiesBuilder, bridge.A(TypeTimeZoneCapabilities, nil))
		assert.ErrorIs(t, err, bridge.ErrInvocationFailure)
	})
}

func TestCatalog_CapabilitiesAndConfigConstructors(t *testing.T) {
	caps := newCapabilitiesBuilder(UserCurrent).build()
	cfg := &TimeZoneConfiguration{AutoDetectionEnabled: true}

	legacy := Catalog().For(platform.T)
	v, err := legacy.Construct(TypeTimeZoneCapabilitiesAndConfig,
		bridge.A(TypeTimeZoneCapabilities, caps), bridge.A(TypeTimeZoneConfiguration, cfg))
	require.NoError(t, err)
	assert.Nil(t, v.(*TimeZoneCapabilitiesAndConfig).DetectorStatus())
	assert.False(t, legacy.Has(TypeTimeZoneDetectorStatus))

	_, err = legacy.Construct(TypeTimeZoneCapabilitiesAndConfig,
		bridge.A(TypeTimeZoneDetectorStatus, nil), bridge.A(TypeTimeZoneCapabilities, caps), bridge.A(TypeTimeZoneConfiguration, cfg))
	assert.ErrorIs(t, err, bridge.ErrConstructorNotFound)

	current := Catalog().For(platform.U)
	status, err := current.Construct(TypeTelephonyTimeZoneAlgorithmStatus, bridge.A(bridge.Int, AlgorithmStatusRunning))
	require.NoError(t, err)
	assert.Equal(t, AlgorithmStatusRunning, status.(*TelephonyTimeZoneAlgorithmStatus).AlgorithmStatus())

	_, err = current.Construct(TypeTimeZoneCapabilitiesAndConfig,
		bridge.A(TypeTimeZoneCapabilities, caps), bridge.A(TypeTimeZoneConfiguration, cfg))
	assert.ErrorIs(t, err, bridge.ErrConstructorNotFound)
}

func TestCatalog_InvokeWindowByName(t *testing.T) {
	b := newFakeBinder(platform.M)
	pw, err := NewPhoneWindow(b)
	require.NoError(t, err)

	_, err = b.Bridge().Invoke(pw, "setFlags", bridge.A(bridge.Int, FlagKeepScreenOn), bridge.A(bridge.Int, FlagKeepScreenOn))
	require.NoError(t, err)
	assert.Equal(t, FlagKeepScreenOn, pw.Flags())

	ok, err := b.Bridge().Invoke(pw, "requestFeature", bridge.A(bridge.Int, FeatureNoTitle))
	require.NoError(t, err)
	assert.Equal(t, true, ok)
}

func TestHierarchy(t *testing.T) {
	h := Hierarchy()
	assert.Equal(t, []platform.TypeName{TypePhoneWindow, TypeWindow, TypeObject}, h.Ancestors(TypePhoneWindow))
	assert.Equal(t, []platform.TypeName{TypePhoneWindowLegacy, TypeWindow, TypeObject}, h.Ancestors(TypePhoneWindowLegacy))

	require.NoError(t, DeclareTypes(h), "declaring the same ancestry twice is allowed")
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar(Invisible)
	assert.Equal(t, Invisible, p.Visibility())
	p.SetVisibility(Gone)
	assert.Equal(t, Gone, p.Visibility())
}
