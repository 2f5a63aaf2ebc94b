package state

// writeBorrow shares one exclusive cell borrow between a WriteRef and
// the references projected from it. The borrow ends when the last
// holder drops.
type writeBorrow struct {
	release func()
	holds   int
}

func newWriteBorrow(release func()) *writeBorrow {
	return &writeBorrow{release: release, holds: 1}
}

func (b *writeBorrow) retain() { b.holds++ }

func (b *writeBorrow) drop() {
	b.holds--
	if b.holds == 0 && b.release != nil {
		b.release()
	}
}

// WriteRef is the scoped mutable borrow returned by every write
// accessor. Mutating through Value or Set marks it modified; Release
// then commits exactly one entry to the owning scope's notification
// batch. A WriteRef is a stack-scoped guard: release it before
// touching the same state through any other handle.
type WriteRef[V any] struct {
	ptr      *V
	borrow   *writeBorrow
	info     *WriterInfo
	effect   ModifyEffect
	modified bool
	path     Path
	released bool
}

func newWriteRef[V any](ptr *V, borrow *writeBorrow, info *WriterInfo, path Path, effect ModifyEffect) *WriteRef[V] {
	return &WriteRef[V]{ptr: ptr, borrow: borrow, info: info, path: path, effect: effect}
}

// Value returns the mutably borrowed value and marks the reference
// modified.
func (w *WriteRef[V]) Value() *V {
	w.modified = true
	return w.ptr
}

// Peek returns a copy of the borrowed value without marking a
// modification.
func (w *WriteRef[V]) Peek() V { return *w.ptr }

// Set replaces the borrowed value.
func (w *WriteRef[V]) Set(v V) {
	w.modified = true
	*w.ptr = v
}

// Silent commits any modification made so far under the current tag,
// then re-tags this reference DATA-only: further writes change the
// data without a framework refresh. Committing first keeps effects
// made under different tags from merging.
func (w *WriteRef[V]) Silent() *WriteRef[V] {
	w.commit()
	w.effect = EffectData
	return w
}

// Shallow commits any modification made so far, then re-tags this
// reference FRAMEWORK-only: further writes request a refresh without
// signaling data observers.
func (w *WriteRef[V]) Shallow() *WriteRef[V] {
	w.commit()
	w.effect = EffectFramework
	return w
}

// ForgetModifies clears the modified flag without notifying and
// reports whether a modification was pending.
func (w *WriteRef[V]) ForgetModifies() bool {
	was := w.modified
	w.modified = false
	return was
}

// Modified reports whether a modification is pending on this
// reference.
func (w *WriteRef[V]) Modified() bool { return w.modified }

// Effect returns the tag a pending modification would commit under.
func (w *WriteRef[V]) Effect() ModifyEffect { return w.effect }

// Release ends the borrow, committing one notification batch entry if
// the reference was modified. Safe to call more than once.
func (w *WriteRef[V]) Release() {
	if w.released {
		return
	}
	w.released = true
	w.commit()
	w.borrow.drop()
}

func (w *WriteRef[V]) commit() {
	if !w.modified {
		return
	}
	w.modified = false
	w.info.batchModify(w.effect, w.path)
}

// MapWriteRef projects the borrow into a sub-field in place. Pending
// modifications on orig are committed first so the projected reference
// starts clean; it keeps orig's scope, tag and path. orig is consumed.
func MapWriteRef[V, U any](orig *WriteRef[V], proj func(*V) *U) *WriteRef[U] {
	orig.commit()
	derived := &WriteRef[U]{
		ptr:    proj(orig.ptr),
		borrow: orig.borrow,
		info:   orig.info,
		effect: orig.effect,
		path:   orig.path,
	}
	orig.released = true
	return derived
}

// FilterMapWriteRef is MapWriteRef for projections that can miss, such
// as indexing an element that may be absent. On a miss it reports
// false and orig stays live and untouched.
func FilterMapWriteRef[V, U any](orig *WriteRef[V], proj func(*V) (*U, bool)) (*WriteRef[U], bool) {
	ptr, ok := proj(orig.ptr)
	if !ok {
		return nil, false
	}
	orig.commit()
	derived := &WriteRef[U]{
		ptr:    ptr,
		borrow: orig.borrow,
		info:   orig.info,
		effect: orig.effect,
		path:   orig.path,
	}
	orig.released = true
	return derived, true
}
