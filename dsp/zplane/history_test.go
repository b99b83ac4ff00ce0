package zplane

import "testing"

func TestHistory_UndoRedo(t *testing.T) {
	m := New()
	h := NewHistory(0)
	h.Push(m.Snapshot())

	mustAdd(t, m, Pole, 0.5, 0, false)
	h.Push(m.Snapshot())

	mustAdd(t, m, Zero, 0.1, 0.2, true)
	h.Push(m.Snapshot())

	s, ok := h.Undo()
	if !ok {
		t.Fatal("Undo() = false")
	}
	if err := m.Restore(s); err != nil {
		t.Fatal(err)
	}
	if m.Len(Zero) != 0 || m.Len(Pole) != 1 {
		t.Fatalf("after undo zeros=%d poles=%d", m.Len(Zero), m.Len(Pole))
	}

	s, ok = h.Redo()
	if !ok {
		t.Fatal("Redo() = false")
	}
	if err := m.Restore(s); err != nil {
		t.Fatal(err)
	}
	if m.Len(Zero) != 2 {
		t.Fatalf("after redo zeros=%d, want 2", m.Len(Zero))
	}
	if _, ok := m.Mirror(Zero, 0); !ok {
		t.Fatal("restored conjugates should be linked")
	}

	if _, ok := h.Redo(); ok {
		t.Fatal("Redo() past the newest state")
	}
}

func TestHistory_PushDiscardsRedoTail(t *testing.T) {
	h := NewHistory(10)
	h.Push(Snapshot{})
	h.Push(Snapshot{Poles: []complex128{0.1}})
	h.Push(Snapshot{Poles: []complex128{0.2}})

	h.Undo()
	h.Undo()
	h.Push(Snapshot{Poles: []complex128{0.3}})

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	if _, ok := h.Redo(); ok {
		t.Fatal("redo tail should be gone")
	}

	s, _ := h.Undo()
	if len(s.Poles) != 0 {
		t.Fatalf("undo returned %v, want the empty state", s.Poles)
	}
	if _, ok := h.Undo(); ok {
		t.Fatal("Undo() past the oldest state")
	}
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(3)
	for i := range 5 {
		h.Push(Snapshot{AllPass: []float64{float64(i)}})
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	h.Undo()
	s, _ := h.Undo()
	if s.AllPass[0] != 2 {
		t.Fatalf("oldest kept state = %v, want 2", s.AllPass)
	}
}

func TestHistory_SnapshotsAreIsolated(t *testing.T) {
	h := NewHistory(5)
	poles := []complex128{0.4}
	h.Push(Snapshot{Poles: poles})
	h.Push(Snapshot{})
	poles[0] = 0.9

	s, _ := h.Undo()
	if s.Poles[0] != 0.4 {
		t.Fatalf("history shares caller memory: %v", s.Poles)
	}
}
