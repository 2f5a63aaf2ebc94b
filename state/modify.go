package state

// ModifyEffect describes what kind of change a write produced. Effects
// combine with bitwise OR when several writes coalesce into one
// notification batch.
type ModifyEffect uint8

const (
	// EffectData marks a change to the state value itself. Data
	// observers (Modifies streams) react to it.
	EffectData ModifyEffect = 1 << iota
	// EffectFramework marks a framework-level touch with no data
	// change, such as a shallow write forcing a re-render.
	EffectFramework
)

// EffectBoth is the tag of a plain Write: the data changed and the
// framework should refresh.
const EffectBoth = EffectData | EffectFramework

// Contains reports whether e carries every bit of other.
func (e ModifyEffect) Contains(other ModifyEffect) bool { return e&other == other }

// IsEmpty reports whether no effect bit is set.
func (e ModifyEffect) IsEmpty() bool { return e == 0 }

// ModifyInfo is the event delivered to subscribers of a writer scope:
// the union of effects committed in one notification batch, tagged
// with the scope path of the writer that opened the batch.
type ModifyInfo struct {
	Effect ModifyEffect
	Path   Path
}

// Contains reports whether the event carries the given effect bits.
func (m ModifyInfo) Contains(e ModifyEffect) bool { return m.Effect.Contains(e) }

// PathMatches reports whether this event should reach a subscriber
// scoped at scope. An event matches its own scope exactly; with
// includePartial it also reaches subscribers whose scope is an
// ancestor of the event's path.
func (m ModifyInfo) PathMatches(scope Path, includePartial bool) bool {
	if m.Path.Equal(scope) {
		return true
	}
	return includePartial && scope.IsPrefixOf(m.Path)
}
