package tags

import "testing"

func TestSet_Has_Hierarchical(t *testing.T) {
	tests := []struct {
		name     string
		stored   []Tag
		query    Tag
		expected bool
	}{
		{
			name:     "exact match",
			stored:   []Tag{New("color.red")},
			query:    New("color.red"),
			expected: true,
		},
		{
			name:     "parent tag covers child",
			stored:   []Tag{New("color")},
			query:    New("color.red"),
			expected: true,
		},
		{
			name:     "grandparent tag covers grandchild",
			stored:   []Tag{New("color")},
			query:    New("color.red.dark"),
			expected: true,
		},
		{
			name:     "sibling does not match",
			stored:   []Tag{New("color.red")},
			query:    New("color.blue"),
			expected: false,
		},
		{
			name:     "child tag does not cover parent",
			stored:   []Tag{New("color.red")},
			query:    New("color"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet(tt.stored...)
			if got := s.Has(tt.query); got != tt.expected {
				t.Errorf("Has(%v) = %v, want %v", tt.query, got, tt.expected)
			}
		})
	}
}

func TestSet_AddRemove(t *testing.T) {
	s := NewSet()
	tag := New("debuff.stun")

	if s.HasExact(tag) {
		t.Fatal("new set should not contain tag")
	}
	s.Add(tag)
	if !s.HasExact(tag) {
		t.Fatal("expected tag after Add")
	}
	s.Remove(tag)
	if s.HasExact(tag) {
		t.Fatal("expected tag removed after Remove")
	}
}

func TestUnionIntersectSubset(t *testing.T) {
	a := NewSet(New("a"), New("b"))
	b := NewSet(New("b"), New("c"))

	union := Union(a, b)
	if union.Len() != 3 {
		t.Errorf("Union len = %d, want 3", union.Len())
	}

	inter := Intersect(a, b)
	if inter.Len() != 1 || !inter.HasExact(New("b")) {
		t.Errorf("Intersect = %v, want {b}", inter.Tags())
	}

	if !IsSubsetOf(inter, a) {
		t.Error("expected intersection to be subset of a")
	}
	if IsSubsetOf(a, inter) {
		t.Error("did not expect a to be subset of its intersection with b")
	}
}
