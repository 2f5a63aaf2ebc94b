package state

import "testing"

type pair struct {
	First  int
	Second int
}

func TestPartWriter_SiblingsIsolated(t *testing.T) {
	q := NewChangeQueue()
	p := NewWithScheduler(q, pair{First: 1, Second: 2})
	first := NewPartWriter(p, ID("first"), func(v *pair) *int { return &v.First })
	second := NewPartWriter(p, ID("second"), func(v *pair) *int { return &v.Second })

	wholeMods := collect(p.RawModifies())
	firstMods := collect(first.RawModifies())
	secondMods := collect(second.RawModifies())

	w := first.Write()
	*w.Value() = 10
	w.Release()
	q.RunUntilStalled()

	if len(*wholeMods) != 1 {
		t.Fatalf("whole heard %d events, want 1", len(*wholeMods))
	}
	if len(*firstMods) != 1 {
		t.Fatalf("first heard %d events, want 1", len(*firstMods))
	}
	if len(*secondMods) != 0 {
		t.Fatalf("second heard %d events, want 0", len(*secondMods))
	}

	g := p.Read()
	if g.Value().First != 10 || g.Value().Second != 2 {
		t.Fatalf("got %+v after part write", *g.Value())
	}
	g.Release()
}

func TestPartWriter_ReadAliasesOrigin(t *testing.T) {
	q := NewChangeQueue()
	p := NewWithScheduler(q, pair{First: 1, Second: 2})
	first := NewPartWriter(p, ID("first"), func(v *pair) *int { return &v.First })

	g := first.Read()
	if got := g.Get(); got != 1 {
		t.Fatalf("part read %d, want 1", got)
	}
	g.Release()

	w := p.Write()
	w.Value().First = 7
	w.Release()

	g = first.Read()
	if got := g.Get(); got != 7 {
		t.Fatalf("part read %d after origin write, want 7", got)
	}
	g.Release()
}

func TestPartWriter_BorrowSharedWithOrigin(t *testing.T) {
	q := NewChangeQueue()
	p := NewWithScheduler(q, pair{})
	first := NewPartWriter(p, ID("first"), func(v *pair) *int { return &v.First })

	w := first.Write()
	mustPanic(t, func() { p.Write() })
	mustPanic(t, func() { p.Read() })
	w.Release()

	g := p.Read()
	g2 := first.Read()
	g.Release()
	g2.Release()
}

func TestPartWriter_EffectAccumulation(t *testing.T) {
	q := NewChangeQueue()
	p := NewWithScheduler(q, pair{}).IncludePartialWriters(true)
	a := NewPartWriter[pair, int](p, ID("a"), func(v *pair) *int { return &v.First })
	b := NewPartWriter[pair, int](p, ID("b"), func(v *pair) *int { return &v.Second })

	var origin, onA, onB ModifyEffect
	p.RawModifies().Subscribe(func(m ModifyInfo) { origin |= m.Effect })
	a.RawModifies().Subscribe(func(m ModifyInfo) { onA |= m.Effect })
	b.RawModifies().Subscribe(func(m ModifyInfo) { onB |= m.Effect })

	w := a.Silent()
	*w.Value() = 1
	w.Release()
	w = a.Shallow()
	*w.Value() = 2
	w.Release()
	q.RunUntilStalled()

	if origin != EffectBoth {
		t.Fatalf("origin effect %v, want %v", origin, EffectBoth)
	}
	if onA != EffectBoth {
		t.Fatalf("a effect %v, want %v", onA, EffectBoth)
	}
	if onB != 0 {
		t.Fatalf("b effect %v, want none", onB)
	}
}

func TestPartWriter_IncludePartialHearsDescendants(t *testing.T) {
	type inner struct{ N int }
	type outer struct{ In inner }

	q := NewChangeQueue()
	p := NewWithScheduler(q, outer{}).IncludePartialWriters(true)
	in := NewPartWriter(p, ID("in"), func(v *outer) *inner { return &v.In })
	n := NewPartWriter(in, ID("n"), func(v *inner) *int { return &v.N })

	// Include-partial on the origin is inherited by parts derived from it.
	inMods := collect(in.RawModifies())
	nMods := collect(n.RawModifies())

	w := n.Write()
	*w.Value() = 5
	w.Release()
	q.RunUntilStalled()

	if len(*inMods) != 1 {
		t.Fatalf("intermediate heard %d events, want 1", len(*inMods))
	}
	if len(*nMods) != 1 {
		t.Fatalf("leaf heard %d events, want 1", len(*nMods))
	}

	// Without include-partial a parent scope stays silent for child writes.
	q2 := NewChangeQueue()
	p2 := NewWithScheduler(q2, outer{})
	in2 := NewPartWriter(p2, ID("in"), func(v *outer) *inner { return &v.In })
	n2 := NewPartWriter(in2, ID("n"), func(v *inner) *int { return &v.N })

	in2Mods := collect(in2.RawModifies())
	w = n2.Write()
	*w.Value() = 5
	w.Release()
	q2.RunUntilStalled()

	if len(*in2Mods) != 0 {
		t.Fatalf("intermediate heard %d events without include-partial, want 0", len(*in2Mods))
	}
}

func TestMapWriter_SharesOriginScope(t *testing.T) {
	q := NewChangeQueue()
	p := NewWithScheduler(q, pair{First: 3})
	m := MapWriter(p, func(v *pair) *int { return &v.First })

	if !m.ScopePath().Equal(p.ScopePath()) {
		t.Fatalf("map writer path %q, want origin path %q", m.ScopePath(), p.ScopePath())
	}

	pMods := collect(p.RawModifies())
	mMods := collect(m.RawModifies())

	w := m.Write()
	*w.Value() = 4
	w.Release()
	q.RunUntilStalled()

	// A mapped writer is transparent: both scopes hear the same event.
	if len(*pMods) != 1 || len(*mMods) != 1 {
		t.Fatalf("origin heard %d, map heard %d, want 1 and 1", len(*pMods), len(*mMods))
	}
}

func TestPartWriter_CloneSharesScope(t *testing.T) {
	q := NewChangeQueue()
	p := NewWithScheduler(q, pair{})
	first := NewPartWriter(p, ID("first"), func(v *pair) *int { return &v.First })
	clone := first.CloneWriter()

	if !clone.ScopePath().Equal(first.ScopePath()) {
		t.Fatalf("clone path %q, want %q", clone.ScopePath(), first.ScopePath())
	}

	mods := collect(first.RawModifies())
	w := clone.Write()
	*w.Value() = 1
	w.Release()
	q.RunUntilStalled()

	if len(*mods) != 1 {
		t.Fatalf("heard %d events through clone, want 1", len(*mods))
	}
}

func TestPartWriter_IntoReader(t *testing.T) {
	q := NewChangeQueue()
	p := NewWithScheduler(q, pair{First: 9})
	first := NewPartWriter(p, ID("first"), func(v *pair) *int { return &v.First })

	// The origin writer still exists, so exclusivity fails.
	if _, ok := first.IntoReader(); ok {
		t.Fatal("IntoReader succeeded with the origin writer alive")
	}
	p.Release()
	r, ok := first.IntoReader()
	if !ok {
		t.Fatal("IntoReader failed as the sole writer")
	}
	g := r.Read()
	if got := g.Get(); got != 9 {
		t.Fatalf("read %d through converted reader, want 9", got)
	}
	g.Release()
}

func TestPartReader_ReadsThroughProjection(t *testing.T) {
	q := NewChangeQueue()
	p := NewWithScheduler(q, pair{Second: 6})
	r := NewPartReader(p, func(v *pair) *int { return &v.Second })

	g := r.Read()
	if got := g.Get(); got != 6 {
		t.Fatalf("part reader got %d, want 6", got)
	}
	g.Release()

	if _, ok := r.TryIntoValue(); ok {
		t.Fatal("part reader must refuse TryIntoValue")
	}
}
