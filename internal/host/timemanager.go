package host

import (
	"fmt"

	"shadowkit/internal/listener"
	"shadowkit/internal/platform"
)

// ErrNoTimeService is returned by an unshadowed TimeManager, which has no
// detector service to talk to.
var ErrNoTimeService = fmt.Errorf("%w: time zone detector service", platform.ErrUnavailable)

// TimeZoneDetectorListener is notified when detector state changes. Implementations
// must be comparable so they can be removed again.
type TimeZoneDetectorListener interface {
	OnChange()
}

// TimeZoneDetector is implemented by shadows standing in for the detector service.
type TimeZoneDetector interface {
	TimeZoneCapabilitiesAndConfig() (*TimeZoneCapabilitiesAndConfig, error)
	UpdateTimeZoneConfiguration(cfg *TimeZoneConfiguration) bool
	AddTimeZoneDetectorListener(ctx listener.DispatchContext, l TimeZoneDetectorListener)
	RemoveTimeZoneDetectorListener(l TimeZoneDetectorListener)
	SuggestExternalTime(s *ExternalTimeSuggestion)
}

// TimeManager is the internal time detection manager, present from S.
type TimeManager struct {
	platform.Base

	shadow any
}

// NewTimeManager obtains the TimeManager through the bridge and binds its shadow.
// Below S the type does not exist and the bridge error is returned.
func NewTimeManager(b Binder) (*TimeManager, error) {
	v, err := b.Bridge().Construct(TypeTimeManager)
	if err != nil {
		return nil, fmt.Errorf("creating time manager: %w", err)
	}
	tm, ok := v.(*TimeManager)
	if !ok {
		return nil, fmt.Errorf("creating time manager: produced %T", v)
	}

	shadow, err := b.Bind(tm, TypeTimeManager)
	if err != nil {
		return nil, fmt.Errorf("binding %s: %w", TypeTimeManager, err)
	}
	tm.shadow = shadow
	return tm, nil
}

func (tm *TimeManager) detector() (TimeZoneDetector, bool) {
	d, ok := tm.shadow.(TimeZoneDetector)
	return d, ok
}

func (tm *TimeManager) GetTimeZoneCapabilitiesAndConfig() (*TimeZoneCapabilitiesAndConfig, error) {
	d, ok := tm.detector()
	if !ok {
		return nil, ErrNoTimeService
	}
	return d.TimeZoneCapabilitiesAndConfig()
}

func (tm *TimeManager) UpdateTimeZoneConfiguration(cfg *TimeZoneConfiguration) (bool, error) {
	d, ok := tm.detector()
	if !ok {
		return false, ErrNoTimeService
	}
	return d.UpdateTimeZoneConfiguration(cfg), nil
}

func (tm *TimeManager) AddTimeZoneDetectorListener(ctx listener.DispatchContext, l TimeZoneDetectorListener) {
	if d, ok := tm.detector(); ok {
		d.AddTimeZoneDetectorListener(ctx, l)
	}
}

func (tm *TimeManager) RemoveTimeZoneDetectorListener(l TimeZoneDetectorListener) {
	if d, ok := tm.detector(); ok {
		d.RemoveTimeZoneDetectorListener(l)
	}
}

func (tm *TimeManager) SuggestExternalTime(s *ExternalTimeSuggestion) {
	if d, ok := tm.detector(); ok {
		d.SuggestExternalTime(s)
	}
}
