package state

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// PartialID identifies a derived writer's segment within its parent.
// The zero value is the wildcard: a wildcard child shares its parent's
// scope path and is transparent to path matching.
type PartialID struct {
	name  string
	named bool
}

// ID creates a named segment identifier. Names are stable identifiers
// chosen by the caller, never derived from addresses.
func ID(name string) PartialID { return PartialID{name: name, named: true} }

// AnyID returns the wildcard identifier.
func AnyID() PartialID { return PartialID{} }

// IsAny reports whether the identifier is the wildcard.
func (p PartialID) IsAny() bool { return !p.named }

// String returns the segment name, or "*" for the wildcard.
func (p PartialID) String() string {
	if p.IsAny() {
		return "*"
	}
	return p.name
}

// Path locates a writer in the parent→child derivation hierarchy as an
// ordered sequence of segment names. The root path is empty. Paths are
// immutable values; Child copies. A precomputed digest makes the
// equality check on the notification hot path cheap.
type Path struct {
	segments []string
	digest   uint64
}

// NewPath builds a path from segment names.
func NewPath(segments ...string) Path {
	if len(segments) == 0 {
		return Path{}
	}
	segs := make([]string, len(segments))
	copy(segs, segments)
	return makePath(segs)
}

func makePath(segs []string) Path {
	var h xxhash.Digest
	for _, s := range segs {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}
	return Path{segments: segs, digest: h.Sum64()}
}

// Child returns this path extended by id, or the path unchanged for
// the wildcard.
func (p Path) Child(id PartialID) Path {
	if id.IsAny() {
		return p
	}
	segs := make([]string, len(p.segments)+1)
	copy(segs, p.segments)
	segs[len(p.segments)] = id.name
	return makePath(segs)
}

// IsEmpty reports whether this is the root path.
func (p Path) IsEmpty() bool { return len(p.segments) == 0 }

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segments) }

// Segments returns a copy of the segment names.
func (p Path) Segments() []string {
	if len(p.segments) == 0 {
		return nil
	}
	segs := make([]string, len(p.segments))
	copy(segs, p.segments)
	return segs
}

// Equal reports whether both paths name the same position.
func (p Path) Equal(o Path) bool {
	if p.digest != o.digest || len(p.segments) != len(o.segments) {
		return false
	}
	for i, s := range p.segments {
		if o.segments[i] != s {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether o lies at or below p in the hierarchy.
func (p Path) IsPrefixOf(o Path) bool {
	if len(p.segments) > len(o.segments) {
		return false
	}
	for i, s := range p.segments {
		if o.segments[i] != s {
			return false
		}
	}
	return true
}

// String renders the path as slash-joined segments.
func (p Path) String() string { return strings.Join(p.segments, "/") }
