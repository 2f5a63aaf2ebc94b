package state

// PartWriter writes through to a projected sub-field of its origin
// while sharing the origin's notification scope, distinguished from it
// only by its scope path. Mutations through a part writer and through
// its origin coalesce into the same batches and flow through the same
// notifier; subscribers tell them apart by the path on each event.
type PartWriter[U any] struct {
	data           writeSource[U]
	info           *WriterInfo
	path           Path
	includePartial bool
	released       bool
}

// NewPartWriter derives a part writer over proj of origin's value. id
// extends the origin's scope path; the wildcard id leaves the path
// unchanged, making the child transparent to path matching. proj must
// return a pointer into its argument, never a copy.
func NewPartWriter[V, U any](origin StateWriter[V], id PartialID, proj func(*V) *U) *PartWriter[U] {
	info := origin.writerInfo()
	info.IncWriter()
	return &PartWriter[U]{
		data:           mappedSource[V, U]{origin: origin.writeSrc().cloneWrite(), proj: proj},
		info:           info,
		path:           origin.ScopePath().Child(id),
		includePartial: origin.partialIncluded(),
	}
}

// MapWriter is NewPartWriter with the wildcard id.
func MapWriter[V, U any](origin StateWriter[V], proj func(*V) *U) *PartWriter[U] {
	return NewPartWriter(origin, AnyID(), proj)
}

// Read acquires a shared borrow of the origin, projected.
func (p *PartWriter[U]) Read() *ReadRef[U] { return p.data.readRef() }

// Write acquires the exclusive borrow tagged BOTH.
func (p *PartWriter[U]) Write() *WriteRef[U] { return p.writeRefFor(EffectBoth) }

// Silent acquires the exclusive borrow tagged DATA-only.
func (p *PartWriter[U]) Silent() *WriteRef[U] { return p.writeRefFor(EffectData) }

// Shallow acquires the exclusive borrow tagged FRAMEWORK-only.
func (p *PartWriter[U]) Shallow() *WriteRef[U] { return p.writeRefFor(EffectFramework) }

func (p *PartWriter[U]) writeRefFor(effect ModifyEffect) *WriteRef[U] {
	ptr, borrow := p.data.writeRef()
	return newWriteRef(ptr, borrow, p.info, p.path, effect)
}

// CloneWriter duplicates the handle within the same scope.
func (p *PartWriter[U]) CloneWriter() StateWriter[U] {
	p.info.IncWriter()
	return &PartWriter[U]{
		data:           p.data.cloneWrite(),
		info:           p.info,
		path:           p.path,
		includePartial: p.includePartial,
	}
}

// CloneReader returns a read-only handle on the same projection.
func (p *PartWriter[U]) CloneReader() StateReader[U] {
	return &PartReader[U]{data: p.data.cloneRead()}
}

// RawModifies streams the scope's events narrowed to this writer's
// path. A writer at the root (empty) path hears the whole scope; with
// IncludePartialWriters it also hears events scoped to its own derived
// part writers.
func (p *PartWriter[U]) RawModifies() ModifyStream {
	raw := p.info.RawModifies()
	if p.path.IsEmpty() {
		return raw
	}
	path := p.path
	include := p.includePartial
	return raw.Filter(func(info ModifyInfo) bool {
		return info.PathMatches(path, include)
	})
}

// Modifies streams DATA-tagged events only.
func (p *PartWriter[U]) Modifies() ModifyStream { return dataOnly(p.RawModifies()) }

// CloneWatcher bundles a cloned reader with this writer's stream.
func (p *PartWriter[U]) CloneWatcher() *Watcher[U] {
	return NewWatcher(p.CloneReader(), p.RawModifies())
}

// IntoReader downgrades this handle to a reader if it is the scope's
// sole live writer; otherwise it reports false and the writer stays
// fully usable.
func (p *PartWriter[U]) IntoReader() (StateReader[U], bool) {
	if p.released || p.info.WriterCount() != 1 {
		return nil, false
	}
	p.released = true
	p.info.DecWriter()
	return &PartReader[U]{data: p.data}, true
}

// ScopePath returns this writer's position in the hierarchy.
func (p *PartWriter[U]) ScopePath() Path { return p.path }

// IncludePartialWriters opts this writer's subscribers into events
// scoped to writers derived below it. Derivations inherit the flag.
func (p *PartWriter[U]) IncludePartialWriters(include bool) *PartWriter[U] {
	p.includePartial = include
	return p
}

// Release drops this handle's claim on its scope and storage.
func (p *PartWriter[U]) Release() {
	if p.released {
		return
	}
	p.released = true
	p.data.releaseSource()
	p.info.DecWriter()
}

func (p *PartWriter[U]) writerInfo() *WriterInfo  { return p.info }
func (p *PartWriter[U]) writeSrc() writeSource[U] { return p.data }
func (p *PartWriter[U]) source() readSource[U]    { return p.data }
func (p *PartWriter[U]) partialIncluded() bool    { return p.includePartial }
