package shadows

import (
	"shadowkit/internal/capability"
	"shadowkit/internal/host"
)

// KeyFeatures holds the requested window features as a bitmask.
const KeyFeatures capability.Key = "features"

var phoneWindowSchema = capability.NewSchema(
	append(windowFields[:len(windowFields):len(windowFields)],
		capability.Field{Key: KeyFeatures, Kind: capability.KindFlags})...,
)

// PhoneWindow shadows the internal PhoneWindow under either of its names.
type PhoneWindow struct {
	*Window

	progress      *host.ProgressBar
	indeterminate *host.ProgressBar
}

var _ host.ProgressIndicator = (*PhoneWindow)(nil)

func newPhoneWindow() *PhoneWindow {
	return &PhoneWindow{
		Window:        newWindow(phoneWindowSchema),
		progress:      host.NewProgressBar(host.Invisible),
		indeterminate: host.NewProgressBar(host.Invisible),
	}
}

func (s *PhoneWindow) RequestFeature(feature int) {
	bit := int64(1) << feature
	record(s.caps.SetFlags(KeyFeatures, bit, bit))
}

// HasFeature reports whether feature was requested.
func (s *PhoneWindow) HasFeature(feature int) bool {
	set, err := s.caps.HasFlag(KeyFeatures, int64(1)<<feature)
	record(err)
	return set
}

func (s *PhoneWindow) SetProgressBarVisibility(visible bool) {
	show(s.progress, visible)
}

func (s *PhoneWindow) SetProgressBarIndeterminateVisibility(visible bool) {
	show(s.indeterminate, visible)
}

// ProgressBar returns the horizontal title bar progress bar.
func (s *PhoneWindow) ProgressBar() *host.ProgressBar { return s.progress }

// IndeterminateProgressBar returns the title bar spinner.
func (s *PhoneWindow) IndeterminateProgressBar() *host.ProgressBar { return s.indeterminate }

func show(p *host.ProgressBar, visible bool) {
	if visible {
		p.SetVisibility(host.Visible)
		return
	}
	p.SetVisibility(host.Gone)
}
