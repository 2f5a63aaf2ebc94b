package state

// ReadRef is a shared borrow of a state value, possibly projected into
// a sub-field of the storage it came from.
type ReadRef[V any] struct {
	ptr      *V
	release  func()
	released bool
}

// Value returns the borrowed value. The pointer is valid until the
// reference is released; callers must not mutate through it.
func (r *ReadRef[V]) Value() *V { return r.ptr }

// Get returns a copy of the borrowed value.
func (r *ReadRef[V]) Get() V { return *r.ptr }

// Release ends the underlying borrow. Safe to call more than once.
func (r *ReadRef[V]) Release() {
	if r.released {
		return
	}
	r.released = true
	if r.release != nil {
		r.release()
	}
}

// MapReadRef projects a read borrow into one of its sub-fields in
// place. orig is consumed; the projected reference takes over the
// borrow. proj must return a pointer into its argument, never a copy.
func MapReadRef[V, U any](orig *ReadRef[V], proj func(*V) *U) *ReadRef[U] {
	derived := &ReadRef[U]{ptr: proj(orig.ptr), release: orig.release}
	orig.release = nil
	orig.released = true
	return derived
}
