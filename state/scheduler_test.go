package state

import "testing"

func TestChangeQueue_WakeOnFirstBatchOnly(t *testing.T) {
	q := NewChangeQueue()
	wakes := 0
	q.SetWake(func() { wakes++ })

	a := NewWithScheduler(q, 1)
	b := NewWithScheduler(q, 2)

	w := a.Write()
	*w.Value() = 10
	w.Release()
	w = b.Write()
	*w.Value() = 20
	w.Release()

	if wakes != 1 {
		t.Fatalf("got %d wakes for one batch window, want 1", wakes)
	}
	if q.Len() != 2 {
		t.Fatalf("queue holds %d batches, want 2", q.Len())
	}

	q.Flush()
	w = a.Write()
	*w.Value() = 11
	w.Release()
	if wakes != 2 {
		t.Fatalf("got %d wakes after the queue refilled, want 2", wakes)
	}
}

func TestChangeQueue_OneBatchPerScope(t *testing.T) {
	q := NewChangeQueue()
	s := NewWithScheduler(q, 0)
	mods := collect(s.RawModifies())

	// Several writes before a flush coalesce into one delivery.
	for i := 1; i <= 3; i++ {
		w := s.Write()
		*w.Value() = i
		w.Release()
	}
	if q.Len() != 1 {
		t.Fatalf("queue holds %d batches for one scope, want 1", q.Len())
	}
	q.Flush()
	if len(*mods) != 1 {
		t.Fatalf("delivered %d events, want 1", len(*mods))
	}
}

func TestChangeQueue_FlushDeliversFIFO(t *testing.T) {
	q := NewChangeQueue()
	a := NewWithScheduler(q, 0)
	b := NewWithScheduler(q, 0)

	var order []string
	a.RawModifies().Subscribe(func(ModifyInfo) { order = append(order, "a") })
	b.RawModifies().Subscribe(func(ModifyInfo) { order = append(order, "b") })

	w := b.Write()
	*w.Value() = 1
	w.Release()
	w = a.Write()
	*w.Value() = 1
	w.Release()
	q.Flush()

	if len(order) != 2 || order[0] != "b" || order[1] != "a" {
		t.Fatalf("delivery order %v, want [b a]", order)
	}
}

func TestChangeQueue_SubscriberWritesDeferToNextFlush(t *testing.T) {
	q := NewChangeQueue()
	src := NewWithScheduler(q, 0)
	dst := NewWithScheduler(q, 0)

	src.RawModifies().Subscribe(func(ModifyInfo) {
		w := dst.Write()
		*w.Value()++
		w.Release()
	})
	dstEvents := collect(dst.RawModifies())

	w := src.Write()
	*w.Value() = 1
	w.Release()

	if n := q.Flush(); n != 1 {
		t.Fatalf("first flush delivered %d batches, want 1", n)
	}
	if len(*dstEvents) != 0 {
		t.Fatalf("cascaded write delivered %d events in the same flush, want 0", len(*dstEvents))
	}
	if n := q.Flush(); n != 1 {
		t.Fatalf("second flush delivered %d batches, want 1", n)
	}
	if len(*dstEvents) != 1 {
		t.Fatalf("cascaded write delivered %d events, want 1", len(*dstEvents))
	}
}

func TestChangeQueue_RunUntilStalled(t *testing.T) {
	q := NewChangeQueue()
	a := NewWithScheduler(q, 0)
	b := NewWithScheduler(q, 0)

	// a's subscriber keeps feeding b until a reaches 3.
	a.RawModifies().Subscribe(func(ModifyInfo) {
		g := a.Read()
		v := g.Get()
		g.Release()
		if v < 3 {
			w := a.Write()
			*w.Value() = v + 1
			w.Release()
		}
		w := b.Write()
		*w.Value()++
		w.Release()
	})

	w := a.Write()
	*w.Value() = 1
	w.Release()

	total := q.RunUntilStalled()
	if q.Len() != 0 {
		t.Fatalf("queue still holds %d batches after stalling", q.Len())
	}
	g := b.Read()
	if got := g.Get(); got != 3 {
		t.Fatalf("cascade ran %d rounds, want 3", got)
	}
	g.Release()
	if total < 3 {
		t.Fatalf("delivered %d batches total, want at least 3", total)
	}
}

func TestChangeSchedulerFunc(t *testing.T) {
	var got Path
	sched := ChangeSchedulerFunc(func(path Path, info *WriterInfo) {
		got = path
		info.DeliverBatched(path)
	})

	s := NewWithScheduler(sched, pair{})
	first := NewPartWriter(s, ID("first"), func(v *pair) *int { return &v.First })
	mods := collect(first.RawModifies())

	// An immediate scheduler delivers within Release.
	w := first.Write()
	*w.Value() = 1
	w.Release()

	if !got.Equal(NewPath("first")) {
		t.Fatalf("scheduler saw path %q, want %q", got, NewPath("first"))
	}
	if len(*mods) != 1 {
		t.Fatalf("delivered %d events, want 1", len(*mods))
	}

	var nilFn ChangeSchedulerFunc
	nilFn.StateChanged(Path{}, nil) // must not panic
}

func TestDefaultQueue_FlushChanges(t *testing.T) {
	s := New(0)
	defer s.Release()
	mods := collect(s.RawModifies())

	w := s.Write()
	*w.Value() = 1
	w.Release()

	if len(*mods) != 0 {
		t.Fatalf("delivered %d events before FlushChanges, want 0", len(*mods))
	}
	FlushChanges()
	if len(*mods) != 1 {
		t.Fatalf("delivered %d events after FlushChanges, want 1", len(*mods))
	}
}
