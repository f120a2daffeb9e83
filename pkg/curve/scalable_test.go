package curve

import "testing"

func TestScalableFloat_ValueAt(t *testing.T) {
	tests := []struct {
		name     string
		sf       ScalableFloat
		level    float64
		expected float64
	}{
		{
			name:     "no curve returns base unchanged",
			sf:       NewScalableFloat(10),
			level:    5,
			expected: 10,
		},
		{
			name:     "curve scales base by evaluated multiplier",
			sf:       NewScalableFloatWithCurve(10, NewCurve(Key{X: 1, Y: 1}, Key{X: 2, Y: 2})),
			level:    2,
			expected: 20,
		},
		{
			name:     "curve clamps beyond last key",
			sf:       NewScalableFloatWithCurve(10, NewCurve(Key{X: 1, Y: 1}, Key{X: 2, Y: 2})),
			level:    99,
			expected: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sf.ValueAt(tt.level); got != tt.expected {
				t.Errorf("ValueAt(%v) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestScalableInt_ValueAt(t *testing.T) {
	tests := []struct {
		name     string
		si       ScalableInt
		level    float64
		expected int
	}{
		{
			name:     "no curve returns base unchanged",
			si:       NewScalableInt(3),
			level:    5,
			expected: 3,
		},
		{
			name:     "curve scales base and truncates toward zero",
			si:       ScalableInt{Base: 3, Curve: curvePtr(NewCurve(Key{X: 1, Y: 1}, Key{X: 2, Y: 1.9}))},
			level:    2,
			expected: 5, // 3 * 1.9 = 5.7 -> truncated to 5
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.si.ValueAt(tt.level); got != tt.expected {
				t.Errorf("ValueAt(%v) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func curvePtr(c Curve) *Curve { return &c }
