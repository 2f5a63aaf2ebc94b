package state

// Reader is a read-only handle on a root cell.
type Reader[V any] struct {
	cell     *Cell[V]
	released bool
}

// Read acquires a shared borrow of the value.
func (r *Reader[V]) Read() *ReadRef[V] {
	return cellSource[V]{cell: r.cell}.readRef()
}

// CloneReader returns an independent handle on the same cell.
func (r *Reader[V]) CloneReader() StateReader[V] {
	r.cell.Retain()
	return &Reader[V]{cell: r.cell}
}

// TryIntoValue moves the value out if this is the sole handle on the
// cell; otherwise it reports false and the reader stays usable.
func (r *Reader[V]) TryIntoValue() (V, bool) {
	v, ok := r.cell.TryUnwrap()
	if ok {
		r.released = true
	}
	return v, ok
}

// Release drops this handle's claim on the cell.
func (r *Reader[V]) Release() {
	if r.released {
		return
	}
	r.released = true
	r.cell.Release()
}

func (r *Reader[V]) source() readSource[V] { return cellSource[V]{cell: r.cell} }

// PartReader views a projected sub-value of its origin lazily, without
// copying. The projection must return a pointer into its argument; a
// reader projected onto a copied value silently never observes
// updates.
type PartReader[U any] struct {
	data     readSource[U]
	released bool
}

// NewPartReader derives a reader viewing proj of origin's value.
func NewPartReader[V, U any](origin StateReader[V], proj func(*V) *U) *PartReader[U] {
	return &PartReader[U]{
		data: mappedReadSource[V, U]{origin: origin.source().cloneRead(), proj: proj},
	}
}

// Read acquires a shared borrow of the origin, projected.
func (p *PartReader[U]) Read() *ReadRef[U] { return p.data.readRef() }

// CloneReader returns an independent handle on the same projection.
func (p *PartReader[U]) CloneReader() StateReader[U] {
	return &PartReader[U]{data: p.data.cloneRead()}
}

// TryIntoValue always refuses for a projected reader: the sub-value is
// owned by the origin's storage.
func (p *PartReader[U]) TryIntoValue() (U, bool) { return p.data.tryUnwrap() }

// Release drops this handle's claim on the origin storage.
func (p *PartReader[U]) Release() {
	if p.released {
		return
	}
	p.released = true
	p.data.releaseSource()
}

func (p *PartReader[U]) source() readSource[U] { return p.data }
