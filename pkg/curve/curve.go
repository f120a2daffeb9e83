package curve

import "sort"

// Key is a single (x, y) control point on a Curve.
type Key struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Curve is a monotone piecewise-linear interpolation over ordered keys.
// Evaluating before the first key returns the first key's Y; evaluating
// after the last key returns the last key's Y; evaluating between two keys
// linearly interpolates between them.
//
// The zero value is an empty Curve; Evaluate on an empty Curve always
// returns 0.
type Curve struct {
	keys []Key
}

// NewCurve builds a Curve from the given keys, sorting them by X. Keys
// sharing the same X keep their relative input order; the first one wins
// when evaluated exactly at that X (ties are resolved by encounter order,
// matching how a level-keyed table is normally authored).
func NewCurve(keys ...Key) Curve {
	sorted := make([]Key, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })
	return Curve{keys: sorted}
}

// IsEmpty reports whether the curve has no keys.
func (c Curve) IsEmpty() bool {
	return len(c.keys) == 0
}

// Evaluate returns the interpolated Y value for the given X.
func (c Curve) Evaluate(x float64) float64 {
	if len(c.keys) == 0 {
		return 0
	}
	if x <= c.keys[0].X {
		return c.keys[0].Y
	}
	last := c.keys[len(c.keys)-1]
	if x > last.X {
		return last.Y
	}

	// Find the first key whose X is >= x; the segment is (i-1, i).
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].X >= x })
	lo, hi := c.keys[i-1], c.keys[i]
	if hi.X == x {
		return hi.Y
	}
	if hi.X == lo.X {
		return lo.Y
	}
	t := (x - lo.X) / (hi.X - lo.X)
	return lo.Y + t*(hi.Y-lo.Y)
}
