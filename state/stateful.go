package state

// Stateful is the root writer: it owns a Cell and the notification
// scope that every derived part writer shares.
type Stateful[V any] struct {
	cell           *Cell[V]
	info           *WriterInfo
	includePartial bool
	released       bool
}

// New creates a root stateful cell delivering notifications through
// the package default queue.
func New[V any](value V) *Stateful[V] { return NewWithScheduler[V](nil, value) }

// NewWithScheduler creates a root stateful cell delivering through
// sched. A nil sched falls back to the package default queue.
func NewWithScheduler[V any](sched ChangeScheduler, value V) *Stateful[V] {
	return &Stateful[V]{cell: NewCell(value), info: newWriterInfo(sched)}
}

// Read acquires a shared borrow of the value.
func (s *Stateful[V]) Read() *ReadRef[V] {
	return cellSource[V]{cell: s.cell}.readRef()
}

// Write acquires the exclusive borrow tagged BOTH.
func (s *Stateful[V]) Write() *WriteRef[V] { return s.writeRefFor(EffectBoth) }

// Silent acquires the exclusive borrow tagged DATA-only.
func (s *Stateful[V]) Silent() *WriteRef[V] { return s.writeRefFor(EffectData) }

// Shallow acquires the exclusive borrow tagged FRAMEWORK-only.
func (s *Stateful[V]) Shallow() *WriteRef[V] { return s.writeRefFor(EffectFramework) }

func (s *Stateful[V]) writeRefFor(effect ModifyEffect) *WriteRef[V] {
	g := s.cell.Write()
	return newWriteRef(g.Value(), newWriteBorrow(g.Release), s.info, Path{}, effect)
}

// CloneWriter duplicates the handle within the same scope.
func (s *Stateful[V]) CloneWriter() StateWriter[V] {
	s.cell.Retain()
	s.info.IncWriter()
	return &Stateful[V]{cell: s.cell, info: s.info, includePartial: s.includePartial}
}

// CloneReader returns a read-only handle on the same cell.
func (s *Stateful[V]) CloneReader() StateReader[V] {
	s.cell.Retain()
	return &Reader[V]{cell: s.cell}
}

// RawModifies streams every event of this scope.
func (s *Stateful[V]) RawModifies() ModifyStream { return s.info.RawModifies() }

// Modifies streams DATA-tagged events only.
func (s *Stateful[V]) Modifies() ModifyStream { return dataOnly(s.RawModifies()) }

// CloneWatcher bundles a cloned reader with the scope's stream.
func (s *Stateful[V]) CloneWatcher() *Watcher[V] {
	return NewWatcher(s.CloneReader(), s.RawModifies())
}

// IntoReader downgrades this handle to a reader if it is the scope's
// sole live writer; otherwise it reports false and the writer stays
// fully usable.
func (s *Stateful[V]) IntoReader() (StateReader[V], bool) {
	if s.released || s.info.WriterCount() != 1 {
		return nil, false
	}
	s.released = true
	s.info.DecWriter()
	return &Reader[V]{cell: s.cell}, true
}

// TryIntoValue moves the value out if nothing else shares the cell;
// otherwise it reports false and the writer stays fully usable.
func (s *Stateful[V]) TryIntoValue() (V, bool) {
	v, ok := s.cell.TryUnwrap()
	if ok {
		s.released = true
		s.info.DecWriter()
	}
	return v, ok
}

// ScopePath returns the root (empty) path.
func (s *Stateful[V]) ScopePath() Path { return Path{} }

// IncludePartialWriters opts subscribers of writers derived from this
// one into events scoped to their own derived part writers.
// Derivations inherit the flag.
func (s *Stateful[V]) IncludePartialWriters(include bool) *Stateful[V] {
	s.includePartial = include
	return s
}

// Release drops this handle's claim on the cell and scope.
func (s *Stateful[V]) Release() {
	if s.released {
		return
	}
	s.released = true
	s.cell.Release()
	s.info.DecWriter()
}

func (s *Stateful[V]) writerInfo() *WriterInfo  { return s.info }
func (s *Stateful[V]) writeSrc() writeSource[V] { return cellSource[V]{cell: s.cell} }
func (s *Stateful[V]) source() readSource[V]    { return cellSource[V]{cell: s.cell} }
func (s *Stateful[V]) partialIncluded() bool    { return s.includePartial }
