package state

// Watcher bundles a reader with the modification stream of the scope
// it came from, giving UI observers change subscription without a
// write capability.
type Watcher[V any] struct {
	reader StateReader[V]
	stream ModifyStream
}

// NewWatcher wraps reader with stream.
func NewWatcher[V any](reader StateReader[V], stream ModifyStream) *Watcher[V] {
	return &Watcher[V]{reader: reader, stream: stream}
}

// Read acquires a shared borrow of the value.
func (w *Watcher[V]) Read() *ReadRef[V] { return w.reader.Read() }

// CloneReader returns an independent read handle on the same storage.
func (w *Watcher[V]) CloneReader() StateReader[V] { return w.reader.CloneReader() }

// Modifies streams DATA-tagged events only.
func (w *Watcher[V]) Modifies() ModifyStream { return dataOnly(w.stream) }

// RawModifies streams every event of the watched scope.
func (w *Watcher[V]) RawModifies() ModifyStream { return w.stream }

// CloneWatcher duplicates the watcher.
func (w *Watcher[V]) CloneWatcher() *Watcher[V] {
	return NewWatcher(w.CloneReader(), w.stream)
}

func (w *Watcher[V]) source() readSource[V] { return w.reader.source() }

// NewPartWatcher composes a part reader over proj with the unfiltered
// parent stream. The derived watcher still hears every raw event of
// the parent scope, not only events that touched its projection;
// path-scoped narrowing belongs to part writers.
func NewPartWatcher[V, U any](origin StateWatcher[V], proj func(*V) *U) *Watcher[U] {
	return NewWatcher[U](NewPartReader[V, U](origin, proj), origin.RawModifies())
}
