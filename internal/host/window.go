package host

import (
	"fmt"
	"time"

	"shadowkit/internal/listener"
	"shadowkit/internal/platform"
)

// FrameMetrics holds the timing of one rendered frame.
type FrameMetrics struct {
	TotalDuration  time.Duration
	LayoutDuration time.Duration
	DrawDuration   time.Duration
	FirstDrawFrame bool
}

// FrameMetricsListener receives frame timing reports. Implementations must be
// comparable so they can be removed again.
type FrameMetricsListener interface {
	OnFrameMetricsAvailable(w *Window, metrics *FrameMetrics, dropCount int)
}

// WindowAttributes is implemented by shadows observing attribute changes.
type WindowAttributes interface {
	SetFlags(flags, mask int)
	SetTitle(title string)
	SetBackgroundDrawable(d *Drawable)
	SetSoftInputMode(mode int)
}

// FrameMetricsSource is implemented by shadows that simulate frame metric delivery.
type FrameMetricsSource interface {
	AddOnFrameMetricsAvailableListener(w *Window, l FrameMetricsListener, ctx listener.DispatchContext)
	RemoveOnFrameMetricsAvailableListener(l FrameMetricsListener)
}

// Window is the top-level window of an activity.
type Window struct {
	platform.Base

	typ     platform.TypeName
	version platform.Version
	shadow  any

	flags         int
	title         string
	background    *Drawable
	softInputMode int
}

// NewWindow creates a plain window and binds its shadow.
func NewWindow(b Binder) (*Window, error) {
	w := &Window{Base: platform.NewBase()}
	if err := w.attach(b, w, TypeWindow); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Window) attach(b Binder, obj platform.Object, typ platform.TypeName) error {
	w.typ = typ
	w.version = b.Bridge().Version()

	shadow, err := b.Bind(obj, typ)
	if err != nil {
		return fmt.Errorf("binding %s: %w", typ, err)
	}
	w.shadow = shadow
	return nil
}

// TypeName returns the window's qualified platform type.
func (w *Window) TypeName() platform.TypeName { return w.typ }

// SetFlags replaces the flag bits selected by mask.
func (w *Window) SetFlags(flags, mask int) {
	w.flags = (w.flags &^ mask) | (flags & mask)
	if s, ok := w.shadow.(WindowAttributes); ok {
		s.SetFlags(flags, mask)
	}
}

// AddFlags sets the given flag bits.
func (w *Window) AddFlags(flags int) { w.SetFlags(flags, flags) }

// ClearFlags clears the given flag bits.
func (w *Window) ClearFlags(flags int) { w.SetFlags(0, flags) }

// Flags returns the current layout flags.
func (w *Window) Flags() int { return w.flags }

func (w *Window) SetTitle(title string) {
	w.title = title
	if s, ok := w.shadow.(WindowAttributes); ok {
		s.SetTitle(title)
	}
}

func (w *Window) SetBackgroundDrawable(d *Drawable) {
	w.background = d
	if s, ok := w.shadow.(WindowAttributes); ok {
		s.SetBackgroundDrawable(d)
	}
}

// SetBackgroundDrawableResource loads the resource and sets it as the background.
func (w *Window) SetBackgroundDrawableResource(id int) {
	w.SetBackgroundDrawable(NewDrawableFromResource(id))
}

func (w *Window) SetSoftInputMode(mode int) {
	w.softInputMode = mode
	if s, ok := w.shadow.(WindowAttributes); ok {
		s.SetSoftInputMode(mode)
	}
}

// AddOnFrameMetricsAvailableListener registers l for frame reports delivered on ctx.
// Frame metrics exist from N onward and need a shadow that delivers them.
func (w *Window) AddOnFrameMetricsAvailableListener(l FrameMetricsListener, ctx listener.DispatchContext) error {
	if err := w.requireFrameMetrics(); err != nil {
		return err
	}
	if s, ok := w.shadow.(FrameMetricsSource); ok {
		s.AddOnFrameMetricsAvailableListener(w, l, ctx)
		return nil
	}
	return w.noFrameMetricsSource()
}

// RemoveOnFrameMetricsAvailableListener unregisters l.
func (w *Window) RemoveOnFrameMetricsAvailableListener(l FrameMetricsListener) error {
	if err := w.requireFrameMetrics(); err != nil {
		return err
	}
	if s, ok := w.shadow.(FrameMetricsSource); ok {
		s.RemoveOnFrameMetricsAvailableListener(l)
		return nil
	}
	return w.noFrameMetricsSource()
}

func (w *Window) requireFrameMetrics() error {
	if w.version < platform.N {
		return fmt.Errorf("%w: frame metrics need API %d, running %d", platform.ErrUnavailable, platform.N, w.version)
	}
	return nil
}

func (w *Window) noFrameMetricsSource() error {
	return fmt.Errorf("%w: no frame metrics source for %s", platform.ErrUnavailable, w.typ)
}
