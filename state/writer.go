package state

// Writer is the type-erased writer handle used where code must hold a
// writer of unknown derivation depth behind one stable type. It has
// exactly two shapes: a root Stateful, or a part derivation. Every
// method dispatches to the active shape.
type Writer[V any] struct {
	stateful *Stateful[V]
	part     *PartWriter[V]
}

// NewWriter boxes a fresh root stateful cell holding value.
func NewWriter[V any](value V) *Writer[V] {
	return &Writer[V]{stateful: New(value)}
}

// WrapStateful boxes an existing root writer.
func WrapStateful[V any](s *Stateful[V]) *Writer[V] {
	return &Writer[V]{stateful: s}
}

// WrapPart boxes an existing part writer.
func WrapPart[V any](p *PartWriter[V]) *Writer[V] {
	return &Writer[V]{part: p}
}

func (w *Writer[V]) active() StateWriter[V] {
	if w.stateful != nil {
		return w.stateful
	}
	return w.part
}

// Read acquires a shared borrow of the value.
func (w *Writer[V]) Read() *ReadRef[V] { return w.active().Read() }

// Write acquires the exclusive borrow tagged BOTH.
func (w *Writer[V]) Write() *WriteRef[V] { return w.active().Write() }

// Silent acquires the exclusive borrow tagged DATA-only.
func (w *Writer[V]) Silent() *WriteRef[V] { return w.active().Silent() }

// Shallow acquires the exclusive borrow tagged FRAMEWORK-only.
func (w *Writer[V]) Shallow() *WriteRef[V] { return w.active().Shallow() }

// CloneWriter duplicates the handle within the same scope, keeping the
// boxed shape.
func (w *Writer[V]) CloneWriter() StateWriter[V] {
	if w.stateful != nil {
		return &Writer[V]{stateful: w.stateful.CloneWriter().(*Stateful[V])}
	}
	return &Writer[V]{part: w.part.CloneWriter().(*PartWriter[V])}
}

// CloneReader returns a read-only handle on the same storage.
func (w *Writer[V]) CloneReader() StateReader[V] { return w.active().CloneReader() }

// RawModifies streams every event visible to this writer.
func (w *Writer[V]) RawModifies() ModifyStream { return w.active().RawModifies() }

// Modifies streams DATA-tagged events only.
func (w *Writer[V]) Modifies() ModifyStream { return w.active().Modifies() }

// CloneWatcher bundles a cloned reader with this writer's stream.
func (w *Writer[V]) CloneWatcher() *Watcher[V] { return w.active().CloneWatcher() }

// IntoReader downgrades to a reader if this is the scope's sole live
// writer; otherwise it reports false and the writer stays usable.
func (w *Writer[V]) IntoReader() (StateReader[V], bool) { return w.active().IntoReader() }

// TryIntoValue moves the value out if nothing else shares the backing
// storage. Derived shapes always refuse.
func (w *Writer[V]) TryIntoValue() (V, bool) {
	if w.stateful != nil {
		return w.stateful.TryIntoValue()
	}
	var zero V
	return zero, false
}

// ScopePath returns the active shape's position in the hierarchy.
func (w *Writer[V]) ScopePath() Path { return w.active().ScopePath() }

// IncludePartialWriters opts subscribers into events scoped to derived
// part writers. Derivations inherit the flag.
func (w *Writer[V]) IncludePartialWriters(include bool) *Writer[V] {
	if w.stateful != nil {
		w.stateful.IncludePartialWriters(include)
	} else {
		w.part.IncludePartialWriters(include)
	}
	return w
}

// Release drops this handle's claim on its scope.
func (w *Writer[V]) Release() { w.active().Release() }

func (w *Writer[V]) writerInfo() *WriterInfo  { return w.active().writerInfo() }
func (w *Writer[V]) writeSrc() writeSource[V] { return w.active().writeSrc() }
func (w *Writer[V]) source() readSource[V]    { return w.active().source() }
func (w *Writer[V]) partialIncluded() bool    { return w.active().partialIncluded() }
