package state

// StateReader is the read capability over state: a root Stateful, a
// plain Reader, a derived part, or a watcher, behind one interface.
// The implementation set is closed to this package.
type StateReader[V any] interface {
	// Read acquires a shared borrow of the value.
	Read() *ReadRef[V]
	// CloneReader returns an independent read handle on the same
	// storage.
	CloneReader() StateReader[V]

	source() readSource[V]
}

// StateWatcher adds change observation to a reader.
type StateWatcher[V any] interface {
	StateReader[V]
	// Modifies streams DATA-tagged events only: the common
	// "re-render because the value changed" case.
	Modifies() ModifyStream
	// RawModifies streams every event of the scope, DATA and
	// FRAMEWORK alike.
	RawModifies() ModifyStream
	// CloneWatcher bundles a cloned reader with the scope's stream.
	CloneWatcher() *Watcher[V]
}

// StateWriter is the full capability set of the writer hierarchy:
// root cells, part and split derivations, and the boxed Writer.
type StateWriter[V any] interface {
	StateWatcher[V]
	// Write acquires the exclusive borrow; releasing a modified
	// reference notifies data and framework observers.
	Write() *WriteRef[V]
	// Silent is Write tagged DATA-only: the data changes without a
	// framework refresh.
	Silent() *WriteRef[V]
	// Shallow is Write tagged FRAMEWORK-only: a refresh is requested
	// without signaling data observers.
	Shallow() *WriteRef[V]
	// CloneWriter duplicates the handle within the same scope.
	CloneWriter() StateWriter[V]
	// IntoReader downgrades this handle to a reader if it is the
	// scope's sole live writer; otherwise it reports false and the
	// writer stays fully usable.
	IntoReader() (StateReader[V], bool)
	// ScopePath returns the writer's position in the derivation
	// hierarchy. Root and split writers sit at the empty path.
	ScopePath() Path
	// Release drops this handle's claim on its scope. Releasing is
	// what makes IntoReader and TryIntoValue exclusivity checks
	// meaningful; an unreleased clone keeps the scope shared.
	Release()

	writerInfo() *WriterInfo
	writeSrc() writeSource[V]
	partialIncluded() bool
}
