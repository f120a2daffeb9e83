package tags

import "testing"

func TestQuery_Matches(t *testing.T) {
	combined := NewSet(New("state.burning"), New("state.slowed"))

	tests := []struct {
		name     string
		query    Query
		expected bool
	}{
		{
			name:     "all expressions match - satisfied",
			query:    NewQuery(AllExpressionsMatch, New("state.burning"), New("state.slowed")),
			expected: true,
		},
		{
			name:     "all expressions match - missing one fails",
			query:    NewQuery(AllExpressionsMatch, New("state.burning"), New("state.frozen")),
			expected: false,
		},
		{
			name:     "any tags match - one present",
			query:    NewQuery(AnyTagsMatch, New("state.frozen"), New("state.slowed")),
			expected: true,
		},
		{
			name:     "any tags match - none present",
			query:    NewQuery(AnyTagsMatch, New("state.frozen"), New("state.rooted")),
			expected: false,
		},
		{
			name:     "no expressions match - none present succeeds",
			query:    NewQuery(NoExpressionsMatch, New("state.frozen")),
			expected: true,
		},
		{
			name:     "no expressions match - one present fails",
			query:    NewQuery(NoExpressionsMatch, New("state.burning")),
			expected: false,
		},
		{
			name:     "empty all-expressions query always matches",
			query:    NewQuery(AllExpressionsMatch),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Matches(combined); got != tt.expected {
				t.Errorf("Matches() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRequirement_Satisfied(t *testing.T) {
	combined := NewSet(New("buff.haste"))

	req := Requirement{
		Required: NewSet(New("buff.haste")),
		Ignored:  NewSet(New("debuff.silence")),
		Query:    NewQuery(AllExpressionsMatch),
	}
	if !req.Satisfied(combined) {
		t.Error("expected requirement to be satisfied")
	}

	combined.Add(New("debuff.silence"))
	if req.Satisfied(combined) {
		t.Error("expected ignored tag to fail the requirement")
	}
}
