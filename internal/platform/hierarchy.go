package platform

import (
	"fmt"
	"sync"
)

// Hierarchy records declared single-parent ancestry between host types.
type Hierarchy struct {
	mu      sync.RWMutex
	parents map[TypeName]TypeName
}

// NewHierarchy creates an empty hierarchy.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{parents: make(map[TypeName]TypeName)}
}

// Declare records parent as the direct ancestor of child.
func (h *Hierarchy) Declare(child, parent TypeName) error {
	if child == "" || parent == "" {
		return fmt.Errorf("declare %q -> %q: empty type name", child, parent)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.parents[child]; ok && existing != parent {
		return fmt.Errorf("type %s already declares parent %s", child, existing)
	}
	for t := parent; t != ""; t = h.parents[t] {
		if t == child {
			return fmt.Errorf("declaring %s as parent of %s creates a cycle", parent, child)
		}
	}
	h.parents[child] = parent
	return nil
}

// Ancestors returns t followed by each declared ancestor, nearest first.
func (h *Hierarchy) Ancestors(t TypeName) []TypeName {
	h.mu.RLock()
	defer h.mu.RUnlock()

	chain := []TypeName{t}
	for p, ok := h.parents[t]; ok; p, ok = h.parents[p] {
		chain = append(chain, p)
	}
	return chain
}

// Distance returns how many steps up the chain ancestor sits above t.
// t itself is at distance 0.
func (h *Hierarchy) Distance(t, ancestor TypeName) (int, bool) {
	for i, a := range h.Ancestors(t) {
		if a == ancestor {
			return i, true
		}
	}
	return 0, false
}
