package buffer

import (
	"reflect"
	"testing"
)

func TestRing_PushEvictsOldest(t *testing.T) {
	r := NewRing(3)
	for i := 1; i <= 3; i++ {
		if _, ev := r.Push(float64(i)); ev {
			t.Fatalf("Push(%d) evicted before the ring was full", i)
		}
	}
	if !r.Full() {
		t.Fatal("Full() = false at capacity")
	}

	old, ev := r.Push(4)
	if !ev || old != 1 {
		t.Fatalf("Push(4) = %v, %v; want 1, true", old, ev)
	}
	if got := r.Samples(); !reflect.DeepEqual(got, []float64{2, 3, 4}) {
		t.Fatalf("Samples() = %v", got)
	}
	if r.At(0) != 2 || r.Len() != 3 || r.Cap() != 3 {
		t.Fatalf("At(0)=%v Len=%d Cap=%d", r.At(0), r.Len(), r.Cap())
	}
	if last, ok := r.Last(); !ok || last != 4 {
		t.Fatalf("Last() = %v, %v", last, ok)
	}
}

func TestRing_Wraparound(t *testing.T) {
	r := NewRing(4)
	for i := range 10 {
		r.Push(float64(i))
	}

	if got := r.Samples(); !reflect.DeepEqual(got, []float64{6, 7, 8, 9}) {
		t.Fatalf("Samples() = %v", got)
	}
	if got := r.Tail(2); !reflect.DeepEqual(got, []float64{8, 9}) {
		t.Fatalf("Tail(2) = %v", got)
	}
	if got := r.Tail(9); len(got) != 4 {
		t.Fatalf("Tail(9) = %v", got)
	}

	dst := make([]float64, 3)
	if n := r.CopyTo(dst); n != 3 || !reflect.DeepEqual(dst, []float64{6, 7, 8}) {
		t.Fatalf("CopyTo = %d, %v", n, dst)
	}
}

func TestRing_DropAndTrim(t *testing.T) {
	r := NewRing(5)
	for i := range 7 {
		r.Push(float64(i))
	}

	if n := r.DropOldest(2); n != 2 {
		t.Fatalf("DropOldest(2) = %d", n)
	}
	if got := r.Samples(); !reflect.DeepEqual(got, []float64{4, 5, 6}) {
		t.Fatalf("after drop: %v", got)
	}

	r.TrimTo(1)
	if got := r.Samples(); !reflect.DeepEqual(got, []float64{4}) {
		t.Fatalf("after trim: %v", got)
	}

	r.Push(9)
	if got := r.Samples(); !reflect.DeepEqual(got, []float64{4, 9}) {
		t.Fatalf("after push: %v", got)
	}
	if n := r.DropOldest(10); n != 2 || r.Len() != 0 {
		t.Fatalf("DropOldest(10) = %d, Len = %d", n, r.Len())
	}
	if _, ok := r.Last(); ok {
		t.Fatal("Last() on empty ring")
	}
}

func TestRing_SetCapacity(t *testing.T) {
	r := NewRing(4)
	for i := range 6 {
		r.Push(float64(i))
	}

	r.SetCapacity(2)
	if got := r.Samples(); !reflect.DeepEqual(got, []float64{4, 5}) {
		t.Fatalf("shrink kept %v, want newest [4 5]", got)
	}

	r.SetCapacity(5)
	r.Push(6)
	if got := r.Samples(); !reflect.DeepEqual(got, []float64{4, 5, 6}) {
		t.Fatalf("grow: %v", got)
	}
	if r.Cap() != 5 {
		t.Fatalf("Cap() = %d", r.Cap())
	}

	r.Clear()
	if r.Len() != 0 {
		t.Fatal("Clear left samples")
	}
	if NewRing(0).Cap() != 1 {
		t.Fatal("capacity should be raised to 1")
	}
}

func TestRing_AtPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("At(1) on a one-sample ring did not panic")
		}
	}()

	r := NewRing(2)
	r.Push(1)
	r.At(1)
}

func TestPool_GetIsZeroed(t *testing.T) {
	p := NewPool()
	buf := p.Get(8)
	for i := range buf.Data {
		buf.Data[i] = float64(i + 1)
	}
	p.Put(buf)

	again := p.Get(4)
	if len(again.Data) != 4 {
		t.Fatalf("len = %d, want 4", len(again.Data))
	}
	for i, v := range again.Data {
		if v != 0 {
			t.Fatalf("again[%d] = %v, want 0", i, v)
		}
	}
	p.Put(again)
	p.Put(nil)
}

func TestPool_SteadyStateDoesNotAllocate(t *testing.T) {
	p := NewPool()
	p.Put(p.Get(64))

	allocs := testing.AllocsPerRun(100, func() {
		s := p.Get(64)
		s.Data[0] = 1
		p.Put(s)
	})
	if allocs != 0 {
		t.Fatalf("expected zero allocations for Get/Put, got %f", allocs)
	}
}
