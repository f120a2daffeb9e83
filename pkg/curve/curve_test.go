package curve

import "testing"

func TestCurve_Evaluate(t *testing.T) {
	tests := []struct {
		name     string
		keys     []Key
		x        float64
		expected float64
	}{
		{
			name:     "empty curve returns zero",
			keys:     nil,
			x:        5,
			expected: 0,
		},
		{
			name:     "before first key clamps to first y",
			keys:     []Key{{X: 1, Y: 10}, {X: 2, Y: 20}},
			x:        0,
			expected: 10,
		},
		{
			name:     "after last key clamps to last y",
			keys:     []Key{{X: 1, Y: 10}, {X: 2, Y: 20}},
			x:        5,
			expected: 20,
		},
		{
			name:     "exact key hit",
			keys:     []Key{{X: 1, Y: 10}, {X: 2, Y: 20}},
			x:        2,
			expected: 20,
		},
		{
			name:     "midpoint interpolates linearly",
			keys:     []Key{{X: 1, Y: 10}, {X: 3, Y: 30}},
			x:        2,
			expected: 20,
		},
		{
			name:     "unsorted input keys are sorted before evaluation",
			keys:     []Key{{X: 3, Y: 30}, {X: 1, Y: 10}},
			x:        2,
			expected: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCurve(tt.keys...)
			if got := c.Evaluate(tt.x); got != tt.expected {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.x, got, tt.expected)
			}
		})
	}
}

func TestCurve_IsEmpty(t *testing.T) {
	if !(NewCurve().IsEmpty()) {
		t.Error("expected empty curve to report IsEmpty")
	}
	if NewCurve(Key{X: 1, Y: 1}).IsEmpty() {
		t.Error("expected non-empty curve to report !IsEmpty")
	}
}
