package state

// readSource is the erased storage chain behind a reader: the root
// cell, or a stack of projections over it. Erasing the chain here
// keeps reader and writer types generic only over their own value.
type readSource[V any] interface {
	readRef() *ReadRef[V]
	cloneRead() readSource[V]
	tryUnwrap() (V, bool)
	releaseSource()
}

// writeSource extends the chain with exclusive access.
type writeSource[V any] interface {
	readSource[V]
	writeRef() (*V, *writeBorrow)
	cloneWrite() writeSource[V]
}

// cellSource is the chain's root: direct cell access.
type cellSource[V any] struct {
	cell *Cell[V]
}

func (s cellSource[V]) readRef() *ReadRef[V] {
	g := s.cell.Read()
	return &ReadRef[V]{ptr: g.Value(), release: g.Release}
}

func (s cellSource[V]) writeRef() (*V, *writeBorrow) {
	g := s.cell.Write()
	return g.Value(), newWriteBorrow(g.Release)
}

func (s cellSource[V]) cloneRead() readSource[V] {
	s.cell.Retain()
	return s
}

func (s cellSource[V]) cloneWrite() writeSource[V] {
	s.cell.Retain()
	return s
}

func (s cellSource[V]) tryUnwrap() (V, bool) { return s.cell.TryUnwrap() }

func (s cellSource[V]) releaseSource() { s.cell.Release() }

// mappedSource projects a writable chain into a sub-field. The
// projection must return a pointer into its argument; a projection
// that copies silently detaches the derived handle from updates.
type mappedSource[V, U any] struct {
	origin writeSource[V]
	proj   func(*V) *U
}

func (s mappedSource[V, U]) readRef() *ReadRef[U] {
	return MapReadRef(s.origin.readRef(), s.proj)
}

func (s mappedSource[V, U]) writeRef() (*U, *writeBorrow) {
	ptr, borrow := s.origin.writeRef()
	return s.proj(ptr), borrow
}

func (s mappedSource[V, U]) cloneRead() readSource[U] {
	return mappedSource[V, U]{origin: s.origin.cloneWrite(), proj: s.proj}
}

func (s mappedSource[V, U]) cloneWrite() writeSource[U] {
	return mappedSource[V, U]{origin: s.origin.cloneWrite(), proj: s.proj}
}

func (s mappedSource[V, U]) tryUnwrap() (U, bool) {
	var zero U
	return zero, false
}

func (s mappedSource[V, U]) releaseSource() { s.origin.releaseSource() }

// mappedReadSource projects a read-only chain into a sub-field.
type mappedReadSource[V, U any] struct {
	origin readSource[V]
	proj   func(*V) *U
}

func (s mappedReadSource[V, U]) readRef() *ReadRef[U] {
	return MapReadRef(s.origin.readRef(), s.proj)
}

func (s mappedReadSource[V, U]) cloneRead() readSource[U] {
	return mappedReadSource[V, U]{origin: s.origin.cloneRead(), proj: s.proj}
}

func (s mappedReadSource[V, U]) tryUnwrap() (U, bool) {
	var zero U
	return zero, false
}

func (s mappedReadSource[V, U]) releaseSource() { s.origin.releaseSource() }
