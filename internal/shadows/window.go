package shadows

import (
	"shadowkit/internal/capability"
	"shadowkit/internal/host"
	"shadowkit/internal/listener"
)

// Window capability keys.
const (
	KeyFlags         capability.Key = "flags"
	KeyTitle         capability.Key = "title"
	KeyBackground    capability.Key = "background"
	KeySoftInputMode capability.Key = "soft_input_mode"
)

var windowFields = []capability.Field{
	{Key: KeyFlags, Kind: capability.KindFlags},
	{Key: KeyTitle, Kind: capability.KindString},
	{Key: KeyBackground, Kind: capability.KindRef},
	{Key: KeySoftInputMode, Kind: capability.KindInt},
}

var windowSchema = capability.NewSchema(windowFields...)

type frameMetricsRegistration struct {
	window *host.Window
	l      host.FrameMetricsListener
}

// Window shadows android.view.Window.
type Window struct {
	caps    *capability.Store
	metrics listener.Simulator[frameMetricsRegistration]
}

var (
	_ host.WindowAttributes   = (*Window)(nil)
	_ host.FrameMetricsSource = (*Window)(nil)
)

func newWindow(schema capability.Schema) *Window {
	return &Window{caps: capability.NewStore(schema)}
}

func (s *Window) SetFlags(flags, mask int) {
	record(s.caps.SetFlags(KeyFlags, int64(flags), int64(mask)))
}

func (s *Window) SetTitle(title string) {
	record(s.caps.Set(KeyTitle, title))
}

func (s *Window) SetBackgroundDrawable(d *host.Drawable) {
	record(s.caps.Set(KeyBackground, d))
}

func (s *Window) SetSoftInputMode(mode int) {
	record(s.caps.Set(KeySoftInputMode, mode))
}

func (s *Window) AddOnFrameMetricsAvailableListener(w *host.Window, l host.FrameMetricsListener, ctx listener.DispatchContext) {
	s.metrics.Register(frameMetricsRegistration{window: w, l: l}, ctx)
}

func (s *Window) RemoveOnFrameMetricsAvailableListener(l host.FrameMetricsListener) {
	s.metrics.UnregisterWhere(func(r frameMetricsRegistration) bool { return r.l == l })
}

// ReportOnFrameMetricsAvailable delivers metrics to every registered listener.
// dropCount defaults to 0. It returns the number of listeners notified.
func (s *Window) ReportOnFrameMetricsAvailable(metrics *host.FrameMetrics, dropCount ...int) int {
	drop := listener.Secondary(dropCount...)
	return s.metrics.Trigger(func(r frameMetricsRegistration, _ listener.DispatchContext) {
		r.l.OnFrameMetricsAvailable(r.window, metrics, drop)
	})
}

// Flag reports whether the given flag bit is set.
func (s *Window) Flag(bit int) bool {
	set, err := s.caps.HasFlag(KeyFlags, int64(bit))
	record(err)
	return set
}

func (s *Window) Title() string {
	title, err := s.caps.String(KeyTitle)
	record(err)
	return title
}

// BackgroundDrawable returns the last background set, or nil.
func (s *Window) BackgroundDrawable() *host.Drawable {
	v, err := s.caps.Ref(KeyBackground)
	record(err)
	d, _ := v.(*host.Drawable)
	return d
}

func (s *Window) SoftInputMode() int {
	mode, err := s.caps.Int(KeySoftInputMode)
	record(err)
	return mode
}

// Capabilities exposes the recorded state.
func (s *Window) Capabilities() *capability.Store { return s.caps }

// Release drops every frame metrics listener along with its window reference.
func (s *Window) Release() { s.metrics.Reset() }

// record panics on store errors, which only arise when a key is missing from the
// shadow's own schema.
func record(err error) {
	if err != nil {
		panic(err)
	}
}
