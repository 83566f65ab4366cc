package engine

// History is the undo stack: a full deep-copy snapshot of the engine state
// is pushed before every mutating operation and popped whole, so an undo
// never partially rolls back individual fields. Depth is unbounded for one
// hand's lifetime; a bounded action count (a few dozen per hand) keeps the
// memory cost trivial.
type History struct {
	snapshots []*State
}

// NewHistory creates an empty history stack.
func NewHistory() *History {
	return &History{}
}

// Push records a snapshot of the given state.
func (h *History) Push(s *State) {
	h.snapshots = append(h.snapshots, s.clone())
}

// Pop removes and returns the latest snapshot, or nil when empty.
func (h *History) Pop() *State {
	if len(h.snapshots) == 0 {
		return nil
	}
	last := h.snapshots[len(h.snapshots)-1]
	h.snapshots = h.snapshots[:len(h.snapshots)-1]
	return last
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}
