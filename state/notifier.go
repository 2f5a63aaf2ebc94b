package state

// ModifyStream is a multicast stream of ModifyInfo events. Streams are
// cheap values; copies share the same source. Subscribers observe
// events in delivery order, and the stream has no error channel: it
// simply goes quiet once the last writer of its scope is gone.
type ModifyStream struct {
	subscribe func(fn func(ModifyInfo)) func()
}

// Subscribe registers fn for every event of the stream and returns an
// unsubscribe func. Unsubscribing twice is harmless.
func (s ModifyStream) Subscribe(fn func(ModifyInfo)) func() {
	if s.subscribe == nil || fn == nil {
		return func() {}
	}
	return s.subscribe(fn)
}

// Filter derives a stream delivering only events matching pred.
func (s ModifyStream) Filter(pred func(ModifyInfo) bool) ModifyStream {
	if pred == nil || s.subscribe == nil {
		return s
	}
	src := s.subscribe
	return ModifyStream{subscribe: func(fn func(ModifyInfo)) func() {
		return src(func(info ModifyInfo) {
			if pred(info) {
				fn(info)
			}
		})
	}}
}

func dataOnly(s ModifyStream) ModifyStream {
	return s.Filter(func(info ModifyInfo) bool { return info.Contains(EffectData) })
}

// Notifier is the multicast source behind a writer scope's streams.
type Notifier struct {
	subs []notifierSub
	next int
}

type notifierSub struct {
	id int
	fn func(ModifyInfo)
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier { return &Notifier{} }

// RawModifies returns the stream of every event this notifier emits.
func (n *Notifier) RawModifies() ModifyStream {
	return ModifyStream{subscribe: n.addSub}
}

func (n *Notifier) addSub(fn func(ModifyInfo)) func() {
	id := n.next
	n.next++
	n.subs = append(n.subs, notifierSub{id: id, fn: fn})
	var done bool
	return func() {
		if done {
			return
		}
		done = true
		for i, sub := range n.subs {
			if sub.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers info to every subscriber in subscription order. The
// subscriber list is snapshotted first, so callbacks may subscribe or
// unsubscribe without disturbing the current delivery.
func (n *Notifier) Emit(info ModifyInfo) {
	if len(n.subs) == 0 {
		return
	}
	subs := make([]notifierSub, len(n.subs))
	copy(subs, n.subs)
	for _, sub := range subs {
		sub.fn(info)
	}
}

// SubscriberCount reports the live subscriptions, for diagnostics.
func (n *Notifier) SubscriberCount() int { return len(n.subs) }
