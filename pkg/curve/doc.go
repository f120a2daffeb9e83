// Package curve provides monotone piecewise-linear interpolation and the
// level-scaled scalar types built on top of it.
//
// Curve, ScalableFloat and ScalableInt are the small, self-contained value
// types the rest of Forge composes magnitudes, durations and periods from:
// a Curve is an ordered set of (level, multiplier) keys, and a
// ScalableFloat/ScalableInt is a base value multiplied by a Curve evaluated
// at a given level (or left unscaled when no curve is attached).
package curve
