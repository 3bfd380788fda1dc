package host

import (
	"fmt"

	"shadowkit/internal/platform"
)

// ProgressBar is the title bar progress indicator of a window.
type ProgressBar struct {
	visibility int
}

// NewProgressBar returns a progress bar with the given initial visibility.
func NewProgressBar(visibility int) *ProgressBar {
	return &ProgressBar{visibility: visibility}
}

func (p *ProgressBar) Visibility() int { return p.visibility }

func (p *ProgressBar) SetVisibility(v int) { p.visibility = v }

// ProgressIndicator is implemented by shadows tracking window features and
// title bar progress.
type ProgressIndicator interface {
	RequestFeature(feature int)
	SetProgressBarVisibility(visible bool)
	SetProgressBarIndeterminateVisibility(visible bool)
}

// PhoneWindow is the internal concrete window. Its qualified name changed in M.
type PhoneWindow struct {
	Window

	features uint32
}

// PhoneWindowType returns the qualified PhoneWindow name at version v.
func PhoneWindowType(v platform.Version) platform.TypeName {
	if v >= platform.M {
		return TypePhoneWindow
	}
	return TypePhoneWindowLegacy
}

// NewPhoneWindow creates a PhoneWindow through the bridge under its
// version-specific name and binds its shadow.
func NewPhoneWindow(b Binder) (*PhoneWindow, error) {
	name := PhoneWindowType(b.Bridge().Version())
	v, err := b.Bridge().Construct(name)
	if err != nil {
		return nil, fmt.Errorf("creating phone window: %w", err)
	}
	pw, ok := v.(*PhoneWindow)
	if !ok {
		return nil, fmt.Errorf("creating phone window: %s produced %T", name, v)
	}
	if err := pw.attach(b, pw, name); err != nil {
		return nil, err
	}
	return pw, nil
}

func newPhoneWindow() *PhoneWindow {
	return &PhoneWindow{Window: Window{Base: platform.NewBase()}}
}

// RequestFeature enables a window feature. Unknown features are refused.
func (pw *PhoneWindow) RequestFeature(feature int) bool {
	if feature < 0 || feature > maxFeature {
		return false
	}
	pw.features |= 1 << feature
	if s, ok := pw.shadow.(ProgressIndicator); ok {
		s.RequestFeature(feature)
	}
	return true
}

// HasFeature reports whether feature was requested.
func (pw *PhoneWindow) HasFeature(feature int) bool {
	if feature < 0 || feature > maxFeature {
		return false
	}
	return pw.features&(1<<feature) != 0
}

// SetProgressBarVisibility shows or hides the horizontal progress bar.
func (pw *PhoneWindow) SetProgressBarVisibility(visible bool) {
	if s, ok := pw.shadow.(ProgressIndicator); ok {
		s.SetProgressBarVisibility(visible)
	}
}

// SetProgressBarIndeterminateVisibility shows or hides the indeterminate spinner.
func (pw *PhoneWindow) SetProgressBarIndeterminateVisibility(visible bool) {
	if s, ok := pw.shadow.(ProgressIndicator); ok {
		s.SetProgressBarIndeterminateVisibility(visible)
	}
}
