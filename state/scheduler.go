package state

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// ChangeScheduler is the single hook the state core consumes from its
// host: "state changed at path for this scope, deliver it before the
// next refresh pass". The core calls it at most once per notification
// batch; the scheduler owns the timing of DeliverBatched, the core
// owns what gets delivered.
type ChangeScheduler interface {
	StateChanged(path Path, info *WriterInfo)
}

// ChangeSchedulerFunc adapts a function into a ChangeScheduler.
type ChangeSchedulerFunc func(Path, *WriterInfo)

// StateChanged dispatches to the wrapped function.
func (f ChangeSchedulerFunc) StateChanged(path Path, info *WriterInfo) {
	if f != nil {
		f(path, info)
	}
}

type pendingChange struct {
	path Path
	info *WriterInfo
}

// ChangeQueue collects pending notification batches and delivers them
// on Flush, FIFO in arrival order. Each scope is queued at most once
// per batch.
type ChangeQueue struct {
	pending []pendingChange
	queued  mapset.Set[*WriterInfo]
	wake    func()
}

// NewChangeQueue creates an empty queue.
func NewChangeQueue() *ChangeQueue {
	return &ChangeQueue{queued: mapset.NewThreadUnsafeSet[*WriterInfo]()}
}

// SetWake registers fn to run whenever the queue goes from empty to
// non-empty. Hosts use it to schedule a flush in their own loop.
func (q *ChangeQueue) SetWake(fn func()) { q.wake = fn }

// StateChanged implements ChangeScheduler.
func (q *ChangeQueue) StateChanged(path Path, info *WriterInfo) {
	if info == nil || !q.queued.Add(info) {
		return
	}
	wasEmpty := len(q.pending) == 0
	q.pending = append(q.pending, pendingChange{path: path, info: info})
	if wasEmpty && q.wake != nil {
		q.wake()
	}
}

// Len reports the batches awaiting delivery.
func (q *ChangeQueue) Len() int { return len(q.pending) }

// Flush delivers every batch queued so far and returns the number
// delivered. Batches queued by subscriber callbacks during the flush
// are left for the next one.
func (q *ChangeQueue) Flush() int {
	pending := q.pending
	q.pending = nil
	q.queued.Clear()
	for _, p := range pending {
		p.info.DeliverBatched(p.path)
	}
	return len(pending)
}

// RunUntilStalled flushes repeatedly until subscriber callbacks stop
// producing new batches, then returns the total delivered.
func (q *ChangeQueue) RunUntilStalled() int {
	total := 0
	for {
		n := q.Flush()
		if n == 0 {
			return total
		}
		total += n
	}
}

// defaultQueue backs writers created with New. Hosts that own a loop
// create scopes with NewWithScheduler instead.
var defaultQueue = NewChangeQueue()

// DefaultScheduler returns the process-wide change queue.
func DefaultScheduler() ChangeScheduler { return defaultQueue }

// FlushChanges drains the process-wide queue until stalled and returns
// the number of batches delivered.
func FlushChanges() int { return defaultQueue.RunUntilStalled() }
