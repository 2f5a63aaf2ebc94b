package state

// SplitWriter writes through to a projected sub-field of its origin
// but owns an independent notification scope. Writes through the split
// never appear on the origin's stream, and the origin's writes never
// appear on the split's, even though both read and write the same
// backing cell. Use it when a view genuinely should not count as part
// of its logical parent for change detection.
type SplitWriter[U any] struct {
	data           writeSource[U]
	info           *WriterInfo
	includePartial bool
	released       bool
}

// NewSplitWriter splits proj of origin's value into its own scope. The
// split inherits the origin's scheduler and sits at the root of its
// own path hierarchy.
func NewSplitWriter[V, U any](origin StateWriter[V], proj func(*V) *U) *SplitWriter[U] {
	return &SplitWriter[U]{
		data: mappedSource[V, U]{origin: origin.writeSrc().cloneWrite(), proj: proj},
		info: newWriterInfo(origin.writerInfo().scheduler()),
	}
}

// Read acquires a shared borrow of the origin, projected.
func (s *SplitWriter[U]) Read() *ReadRef[U] { return s.data.readRef() }

// Write acquires the exclusive borrow tagged BOTH.
func (s *SplitWriter[U]) Write() *WriteRef[U] { return s.writeRefFor(EffectBoth) }

// Silent acquires the exclusive borrow tagged DATA-only.
func (s *SplitWriter[U]) Silent() *WriteRef[U] { return s.writeRefFor(EffectData) }

// Shallow acquires the exclusive borrow tagged FRAMEWORK-only.
func (s *SplitWriter[U]) Shallow() *WriteRef[U] { return s.writeRefFor(EffectFramework) }

func (s *SplitWriter[U]) writeRefFor(effect ModifyEffect) *WriteRef[U] {
	ptr, borrow := s.data.writeRef()
	return newWriteRef(ptr, borrow, s.info, Path{}, effect)
}

// CloneWriter duplicates the handle within the split's scope.
func (s *SplitWriter[U]) CloneWriter() StateWriter[U] {
	s.info.IncWriter()
	return &SplitWriter[U]{
		data:           s.data.cloneWrite(),
		info:           s.info,
		includePartial: s.includePartial,
	}
}

// CloneReader returns a read-only handle on the same projection.
func (s *SplitWriter[U]) CloneReader() StateReader[U] {
	return &PartReader[U]{data: s.data.cloneRead()}
}

// RawModifies streams every event of the split's own scope.
func (s *SplitWriter[U]) RawModifies() ModifyStream { return s.info.RawModifies() }

// Modifies streams DATA-tagged events only.
func (s *SplitWriter[U]) Modifies() ModifyStream { return dataOnly(s.RawModifies()) }

// CloneWatcher bundles a cloned reader with the split's stream.
func (s *SplitWriter[U]) CloneWatcher() *Watcher[U] {
	return NewWatcher(s.CloneReader(), s.RawModifies())
}

// IntoReader downgrades this handle to a reader if it is the split
// scope's sole live writer; otherwise it reports false and the writer
// stays fully usable.
func (s *SplitWriter[U]) IntoReader() (StateReader[U], bool) {
	if s.released || s.info.WriterCount() != 1 {
		return nil, false
	}
	s.released = true
	s.info.DecWriter()
	return &PartReader[U]{data: s.data}, true
}

// ScopePath returns the empty path: a split is the root of its own
// scope.
func (s *SplitWriter[U]) ScopePath() Path { return Path{} }

// IncludePartialWriters opts subscribers into events scoped to part
// writers derived below this split. Derivations inherit the flag.
func (s *SplitWriter[U]) IncludePartialWriters(include bool) *SplitWriter[U] {
	s.includePartial = include
	return s
}

// Release drops this handle's claim on its scope and storage.
func (s *SplitWriter[U]) Release() {
	if s.released {
		return
	}
	s.released = true
	s.data.releaseSource()
	s.info.DecWriter()
}

func (s *SplitWriter[U]) writerInfo() *WriterInfo  { return s.info }
func (s *SplitWriter[U]) writeSrc() writeSource[U] { return s.data }
func (s *SplitWriter[U]) source() readSource[U]    { return s.data }
func (s *SplitWriter[U]) partialIncluded() bool    { return s.includePartial }
