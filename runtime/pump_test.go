package runtime

import (
	"testing"

	"github.com/lorikeet-ui/lorikeet/state"
)

func TestStatePump_PostsFlushOnFirstBatch(t *testing.T) {
	posted := 0
	pump := NewStatePump(nil, func(msg Message) bool {
		if _, ok := msg.(StateFlushMsg); ok {
			posted++
			return true
		}
		return false
	})

	s := state.NewWithScheduler(pump, 0)
	w := s.Write()
	*w.Value() = 1
	w.Release()
	if posted != 1 {
		t.Fatalf("expected 1 flush post, got %d", posted)
	}
}

func TestStatePump_CoalescesPosts(t *testing.T) {
	posted := 0
	pump := NewStatePump(nil, func(msg Message) bool {
		if _, ok := msg.(StateFlushMsg); ok {
			posted++
			return true
		}
		return false
	})

	a := state.NewWithScheduler(pump, 0)
	b := state.NewWithScheduler(pump, 0)
	for _, s := range []*state.Stateful[int]{a, b} {
		w := s.Write()
		*w.Value() = 1
		w.Release()
	}
	if posted != 1 {
		t.Fatalf("expected 1 flush post for two pending scopes, got %d", posted)
	}

	if flushed := pump.Flush(); flushed != 2 {
		t.Fatalf("expected 2 batches flushed, got %d", flushed)
	}
	w := a.Write()
	*w.Value() = 2
	w.Release()
	if posted != 2 {
		t.Fatalf("expected 2 flush posts after drain, got %d", posted)
	}
}

func TestStatePump_RepostsOnFailedSend(t *testing.T) {
	attempts := 0
	pump := NewStatePump(nil, func(msg Message) bool {
		attempts++
		return false
	})

	s := state.NewWithScheduler(pump, 0)
	w := s.Write()
	*w.Value() = 1
	w.Release()
	pump.Flush()
	w = s.Write()
	*w.Value() = 2
	w.Release()
	if attempts != 2 {
		t.Fatalf("expected 2 post attempts, got %d", attempts)
	}
}

func TestStatePump_FlushDeliversToSubscribers(t *testing.T) {
	pump := NewStatePump(state.NewChangeQueue(), func(Message) bool { return true })

	s := state.NewWithScheduler(pump, 0)
	heard := 0
	s.RawModifies().Subscribe(func(state.ModifyInfo) { heard++ })

	w := s.Write()
	*w.Value() = 1
	w.Release()
	if heard != 0 {
		t.Fatalf("expected delivery deferred to Flush, got %d events", heard)
	}
	pump.Flush()
	if heard != 1 {
		t.Fatalf("expected 1 event after Flush, got %d", heard)
	}
}
