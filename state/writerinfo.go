package state

// WriterInfo is the shared notification state of one writer scope. The
// root Stateful and every split writer own one; part writers reuse
// their origin's. It tracks the live writer handles of the scope and
// the one in-flight notification batch.
type WriterInfo struct {
	writerCount int
	batched     ModifyEffect
	notifier    *Notifier
	sched       ChangeScheduler
}

func newWriterInfo(sched ChangeScheduler) *WriterInfo {
	if sched == nil {
		sched = DefaultScheduler()
	}
	return &WriterInfo{writerCount: 1, notifier: NewNotifier(), sched: sched}
}

// IncWriter records a new live writer handle in this scope.
func (w *WriterInfo) IncWriter() { w.writerCount++ }

// DecWriter records that a writer handle was released.
func (w *WriterInfo) DecWriter() {
	if w.writerCount > 0 {
		w.writerCount--
	}
}

// WriterCount reports the live writer handles of this scope.
func (w *WriterInfo) WriterCount() int { return w.writerCount }

// RawModifies returns the scope's unfiltered event stream.
func (w *WriterInfo) RawModifies() ModifyStream { return w.notifier.RawModifies() }

// BatchedEffect reports the pending effect union without draining it.
func (w *WriterInfo) BatchedEffect() ModifyEffect { return w.batched }

func (w *WriterInfo) scheduler() ChangeScheduler { return w.sched }

// batchModify coalesces effect into the pending batch. The scheduler
// hook fires only on the empty→non-empty transition, so a batch fed by
// any number of writes wakes the scheduler exactly once and is
// delivered as one event carrying the union of their effects.
func (w *WriterInfo) batchModify(effect ModifyEffect, path Path) {
	if effect.IsEmpty() {
		return
	}
	if w.batched.IsEmpty() {
		w.batched = effect
		w.sched.StateChanged(path, w)
		return
	}
	w.batched |= effect
}

// DeliverBatched drains the pending batch into the scope's notifier as
// a single ModifyInfo tagged with path. The scheduler that received
// the StateChanged hook calls this before the next refresh pass.
func (w *WriterInfo) DeliverBatched(path Path) {
	effect := w.batched
	w.batched = 0
	if effect.IsEmpty() {
		return
	}
	w.notifier.Emit(ModifyInfo{Effect: effect, Path: path})
}
