package tags

// Container is the collaborator interface the effects engine consumes for
// tag membership and set algebra. A host application supplies its own
// Container implementation (or uses Set, below) wherever spec §3's Entity
// exposes a "combined = base ∪ modifier tags" container.
type Container interface {
	// Has reports whether the container contains t directly or contains an
	// ancestor of t in the dotted hierarchy (so a container holding
	// "color" reports Has("color.red") as true).
	Has(t Tag) bool
	// HasExact reports whether the container contains t exactly, ignoring
	// hierarchical containment.
	HasExact(t Tag) bool
	// Tags returns the exact tags stored in the container, in no
	// particular order.
	Tags() []Tag
}

// Set is a concrete, mutable Container implementation: an unordered
// collection of interned tags supporting the union/intersect/subset
// algebra spec §6 names.
type Set struct {
	m map[Tag]struct{}
}

// NewSet builds a Set containing the given tags.
func NewSet(ts ...Tag) *Set {
	s := &Set{m: make(map[Tag]struct{}, len(ts))}
	for _, t := range ts {
		s.m[t] = struct{}{}
	}
	return s
}

// Add inserts t into the set.
func (s *Set) Add(t Tag) {
	s.m[t] = struct{}{}
}

// Remove deletes t from the set. Removing a tag that was never present is
// a no-op.
func (s *Set) Remove(t Tag) {
	delete(s.m, t)
}

// HasExact reports whether t is stored in the set exactly.
func (s *Set) HasExact(t Tag) bool {
	_, ok := s.m[t]
	return ok
}

// Has reports whether t is in the set, or t is hierarchically nested under
// a tag that is in the set ("color" ⊇ "color.red").
func (s *Set) Has(t Tag) bool {
	for stored := range s.m {
		if t.isOrUnderAncestor(stored) {
			return true
		}
	}
	return false
}

// Tags returns the tags stored in the set, in no particular order.
func (s *Set) Tags() []Tag {
	out := make([]Tag, 0, len(s.m))
	for t := range s.m {
		out = append(out, t)
	}
	return out
}

// Len returns the number of tags stored in the set.
func (s *Set) Len() int {
	return len(s.m)
}

// Union returns a new Set containing every tag in s or other.
func Union(s, other Container) *Set {
	out := NewSet(s.Tags()...)
	for _, t := range other.Tags() {
		out.Add(t)
	}
	return out
}

// Intersect returns a new Set containing every tag present in both s and
// other (by exact match).
func Intersect(s, other Container) *Set {
	b := NewSet(other.Tags()...)
	out := NewSet()
	for _, t := range s.Tags() {
		if b.HasExact(t) {
			out.Add(t)
		}
	}
	return out
}

// IsSubsetOf reports whether every tag in s is present (exactly) in
// superset.
func IsSubsetOf(s, superset Container) bool {
	sup := NewSet(superset.Tags()...)
	for _, t := range s.Tags() {
		if !sup.HasExact(t) {
			return false
		}
	}
	return true
}
