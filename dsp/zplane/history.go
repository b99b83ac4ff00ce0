package zplane

// Snapshot is a restorable copy of a design: the model points plus the
// all-pass coefficients in use at the time.
type Snapshot struct {
	Zeros   []complex128
	Poles   []complex128
	AllPass []float64
}

// Snapshot captures the current points. AllPass is left for the caller.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{Zeros: m.Zeros(), Poles: m.Poles()}
}

// Restore replaces the model points with those of s.
func (m *Model) Restore(s Snapshot) error {
	return m.Replace(s.Zeros, s.Poles)
}

// History is a bounded undo/redo stack of snapshots. Pushing after an undo
// discards the redo tail.
type History struct {
	entries []Snapshot
	index   int
	limit   int
}

// DefaultHistoryLimit is used when NewHistory gets a non-positive limit.
const DefaultHistoryLimit = 100

// NewHistory returns an empty history holding at most limit snapshots.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	return &History{index: -1, limit: limit}
}

// Push records s as the newest state.
func (h *History) Push(s Snapshot) {
	h.entries = append(h.entries[:h.index+1], cloneSnapshot(s))
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}

	h.index = len(h.entries) - 1
}

// Undo steps back one state and returns it.
func (h *History) Undo() (Snapshot, bool) {
	if h.index <= 0 {
		return Snapshot{}, false
	}

	h.index--
	return cloneSnapshot(h.entries[h.index]), true
}

// Redo steps forward one state and returns it.
func (h *History) Redo() (Snapshot, bool) {
	if h.index >= len(h.entries)-1 {
		return Snapshot{}, false
	}

	h.index++
	return cloneSnapshot(h.entries[h.index]), true
}

// Len returns the number of recorded states.
func (h *History) Len() int { return len(h.entries) }

func cloneSnapshot(s Snapshot) Snapshot {
	out := Snapshot{Zeros: clonePoints(s.Zeros), Poles: clonePoints(s.Poles)}
	if len(s.AllPass) > 0 {
		out.AllPass = append([]float64(nil), s.AllPass...)
	}

	return out
}
