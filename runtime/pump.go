package runtime

import (
	"sync/atomic"

	"github.com/lorikeet-ui/lorikeet/state"
)

// StatePump connects a state change queue to an app loop. Writers use
// it as their ChangeScheduler; when the queue first fills it posts one
// StateFlushMsg so the loop knows to drain before the next render. The
// post is coalesced: while a flush message is in flight further batches
// accumulate in the queue without posting again.
type StatePump struct {
	queue   *state.ChangeQueue
	post    func(Message) bool
	pending atomic.Bool
}

// NewStatePump wires a queue to a post function. A nil queue gets a
// fresh one.
func NewStatePump(queue *state.ChangeQueue, post func(Message) bool) *StatePump {
	if queue == nil {
		queue = state.NewChangeQueue()
	}
	p := &StatePump{queue: queue, post: post}
	queue.SetWake(p.wakeLoop)
	return p
}

// Queue returns the underlying change queue.
func (p *StatePump) Queue() *state.ChangeQueue {
	if p == nil {
		return nil
	}
	return p.queue
}

// StateChanged implements state.ChangeScheduler by enqueueing into the
// pump's queue, so a pump can be handed to NewWithScheduler directly.
func (p *StatePump) StateChanged(path state.Path, info *state.WriterInfo) {
	if p == nil || p.queue == nil {
		return
	}
	p.queue.StateChanged(path, info)
}

func (p *StatePump) wakeLoop() {
	if p.post == nil {
		return
	}
	if p.pending.CompareAndSwap(false, true) {
		if !p.post(StateFlushMsg{}) {
			p.pending.Store(false)
		}
	}
}

// Flush clears the in-flight flag and drains the queue until stalled,
// returning the number of batches delivered.
func (p *StatePump) Flush() int {
	if p == nil || p.queue == nil {
		return 0
	}
	p.pending.Store(false)
	return p.queue.RunUntilStalled()
}

func (p *StatePump) resetPending() {
	if p == nil {
		return
	}
	p.pending.Store(false)
}
