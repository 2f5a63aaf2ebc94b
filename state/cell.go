// Package state implements the reactive state substrate for lorikeet:
// runtime-borrow-checked shared cells, a reader/writer/watcher handle
// hierarchy with part and split derivation, and batched, path-scoped
// change notification.
//
// The substrate assumes one logical thread of control. Borrow
// conflicts it detects are reentrancy bugs inside that thread, not
// races, and they panic rather than return an error.
package state

// borrow states for a Cell: zero is unborrowed, positive values count
// shared read borrows, exclusiveBorrow marks the single write borrow.
const exclusiveBorrow = -1

// Cell is a shared mutable cell with runtime borrow checking. Many
// reader and writer handles may alias one Cell; the borrow counter
// catches a write overlapping any other access in the same
// cooperative turn.
//
// The handle reference count exists only to answer "is this the sole
// handle?" for TryUnwrap; the garbage collector owns the memory.
type Cell[V any] struct {
	value  V
	borrow int
	refs   int
}

// NewCell creates a cell holding value, counted as one handle.
func NewCell[V any](value V) *Cell[V] {
	return &Cell[V]{value: value, refs: 1}
}

// Retain records one more handle sharing this cell.
func (c *Cell[V]) Retain() *Cell[V] {
	c.refs++
	return c
}

// Release records that a handle no longer shares this cell.
func (c *Cell[V]) Release() {
	if c.refs > 0 {
		c.refs--
	}
}

// RefCount reports how many handles currently share this cell.
func (c *Cell[V]) RefCount() int { return c.refs }

// Read acquires a shared borrow of the value. It panics if the
// exclusive borrow is outstanding.
func (c *Cell[V]) Read() *ReadGuard[V] {
	if c.borrow == exclusiveBorrow {
		panic("state: cell is already mutably borrowed")
	}
	c.borrow++
	return &ReadGuard[V]{cell: c}
}

// Write acquires the exclusive borrow of the value. It panics if any
// borrow, shared or exclusive, is outstanding.
func (c *Cell[V]) Write() *WriteGuard[V] {
	if c.borrow != 0 {
		panic("state: cell is already borrowed")
	}
	c.borrow = exclusiveBorrow
	return &WriteGuard[V]{cell: c}
}

// TryUnwrap moves the value out when the caller holds the sole handle
// and no borrow is outstanding. On refusal the cell is untouched.
func (c *Cell[V]) TryUnwrap() (V, bool) {
	if c.refs != 1 || c.borrow != 0 {
		var zero V
		return zero, false
	}
	c.refs = 0
	return c.value, true
}

// ReadGuard is a live shared borrow of a cell's value.
type ReadGuard[V any] struct {
	cell     *Cell[V]
	released bool
}

// Value returns the borrowed value. The pointer is valid until the
// guard is released; callers must not mutate through it.
func (g *ReadGuard[V]) Value() *V { return &g.cell.value }

// Release ends the borrow. Safe to call more than once.
func (g *ReadGuard[V]) Release() {
	if g.released {
		return
	}
	g.released = true
	g.cell.borrow--
}

// WriteGuard is the live exclusive borrow of a cell's value.
type WriteGuard[V any] struct {
	cell     *Cell[V]
	released bool
}

// Value returns the mutably borrowed value.
func (g *WriteGuard[V]) Value() *V { return &g.cell.value }

// Release ends the borrow. Safe to call more than once.
func (g *WriteGuard[V]) Release() {
	if g.released {
		return
	}
	g.released = true
	g.cell.borrow = 0
}
