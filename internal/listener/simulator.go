// Package listener simulates asynchronous callback delivery without an event loop.
//
// Registrations carry a DispatchContext, an opaque identifier standing for the
// execution context the listener asked to be called on. Delivery happens
// synchronously inside Trigger and hands the identifier through unchanged; deciding
// whether a context means "now" or "later" is left to the harness.
package listener

import (
	"sync"
	"sync/atomic"
)

// DispatchContext identifies the execution context a listener was registered with.
type DispatchContext string

// MainContext is the context used when the caller does not name one.
const MainContext DispatchContext = "main"

// Registration is the handle returned by Register.
type Registration[L any] struct {
	listener L
	ctx      DispatchContext
	active   atomic.Bool
}

// Listener returns the registered listener.
func (r *Registration[L]) Listener() L { return r.listener }

// Context returns the dispatch context the listener was registered with.
func (r *Registration[L]) Context() DispatchContext { return r.ctx }

// Active reports whether the registration still receives deliveries.
func (r *Registration[L]) Active() bool { return r.active.Load() }

// Simulator keeps the ordered set of listener registrations for one event source.
type Simulator[L any] struct {
	mu   sync.Mutex
	regs []*Registration[L]
}

// Register adds l and returns its handle. An empty ctx means MainContext.
func (s *Simulator[L]) Register(l L, ctx DispatchContext) *Registration[L] {
	if ctx == "" {
		ctx = MainContext
	}
	reg := &Registration[L]{listener: l, ctx: ctx}
	reg.active.Store(true)

	s.mu.Lock()
	s.regs = append(s.regs, reg)
	s.mu.Unlock()
	return reg
}

// Unregister deactivates reg. Calling it again, or with nil, is a no-op.
func (s *Simulator[L]) Unregister(reg *Registration[L]) {
	if reg == nil {
		return
	}
	reg.active.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.compact()
}

// UnregisterWhere deactivates every registration whose listener matches and
// returns how many were removed.
func (s *Simulator[L]) UnregisterWhere(match func(L) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, reg := range s.regs {
		if reg.Active() && match(reg.listener) {
			reg.active.Store(false)
			removed++
		}
	}
	s.compact()
	return removed
}

// Trigger delivers to every active registration in registration order and returns
// the number of deliveries. The live set is read at call time, and each
// registration is re-checked immediately before its delivery, so a listener removed
// by an earlier callback in the same trigger is skipped.
func (s *Simulator[L]) Trigger(deliver func(l L, ctx DispatchContext)) int {
	s.mu.Lock()
	snapshot := make([]*Registration[L], len(s.regs))
	copy(snapshot, s.regs)
	s.mu.Unlock()

	delivered := 0
	for _, reg := range snapshot {
		if !reg.Active() {
			continue
		}
		deliver(reg.listener, reg.ctx)
		delivered++
	}
	return delivered
}

// Len returns the number of active registrations.
func (s *Simulator[L]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, reg := range s.regs {
		if reg.Active() {
			n++
		}
	}
	return n
}

// Reset deactivates and drops every registration.
func (s *Simulator[L]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, reg := range s.regs {
		reg.active.Store(false)
	}
	s.regs = nil
}

// compact drops inactive registrations. Callers hold s.mu.
func (s *Simulator[L]) compact() {
	kept := s.regs[:0]
	for _, reg := range s.regs {
		if reg.Active() {
			kept = append(kept, reg)
		}
	}
	clear(s.regs[len(kept):])
	s.regs = kept
}

// Secondary returns the optional secondary trigger value, or its default of zero
// when the caller omitted it.
func Secondary(opt ...int) int {
	if len(opt) == 0 {
		return 0
	}
	return opt[0]
}
