package attribute

import "fmt"

// Set is a named bag of attributes registered on an entity (spec §3).
// Keys are unique per Set.
type Set struct {
	name         string
	channelCount int
	attrs        map[string]*Attribute
	order        []string
}

// NewSet creates an empty, named AttributeSet whose attributes will each
// use channelCount aggregation channels.
func NewSet(name string, channelCount int) *Set {
	return &Set{
		name:         name,
		channelCount: channelCount,
		attrs:        make(map[string]*Attribute),
	}
}

// Name returns the attribute set's name.
func (s *Set) Name() string { return s.name }

// Register adds a new attribute to the set under "<SetName>.<shortKey>"
// and returns it. Registering a duplicate shortKey is a programmer error
// and panics, since attribute keys must be unique per entity (spec §3).
func (s *Set) Register(shortKey string, min, max, base int) *Attribute {
	key := fmt.Sprintf("%s.%s", s.name, shortKey)
	if _, exists := s.attrs[key]; exists {
		panic(fmt.Sprintf("attribute: duplicate key %q registered on set %q", key, s.name))
	}
	a := New(key, min, max, base, s.channelCount)
	s.attrs[key] = a
	s.order = append(s.order, key)
	return a
}

// Get returns the attribute with the given fully-qualified key and whether
// it was found. Spec §7: a target lacking a named attribute is a non-fatal
// condition for callers to handle (silently drop the modifier), not an
// error returned here.
func (s *Set) Get(key string) (*Attribute, bool) {
	a, ok := s.attrs[key]
	return a, ok
}

// Keys returns every attribute key registered on the set, in registration
// order.
func (s *Set) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of attributes registered on the set.
func (s *Set) Len() int { return len(s.attrs) }
