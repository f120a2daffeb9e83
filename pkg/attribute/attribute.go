package attribute

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Operation is the kind of contribution a Modifier makes to an attribute's
// per-channel aggregation (spec §3).
type Operation int

const (
	// FlatBonus adds its value to the running channel total.
	FlatBonus Operation = iota
	// PercentBonus multiplies the running channel total by (1 + value).
	PercentBonus
	// Override replaces the running channel total with value outright.
	Override
)

func (op Operation) String() string {
	switch op {
	case FlatBonus:
		return "FlatBonus"
	case PercentBonus:
		return "PercentBonus"
	case Override:
		return "Override"
	default:
		return "Unknown"
	}
}

// CalculationType selects which derived view of an Attribute a capture
// reads (spec §4.2's AttributeCalculationType).
type CalculationType int

const (
	BaseValue CalculationType = iota
	CurrentValue
	MinValue
	MaxValue
	ModifierValue
	OverflowValue
	// ValidModifierValue is the Modifier clamped to the range that keeps
	// CurrentValue in [Min,Max]. Since CurrentValue is already clamped by
	// construction (spec §4.1 step 5), this is always numerically equal to
	// ModifierValue; it is kept as a distinct constant so callers can
	// express capture intent explicitly, matching spec §4.2's naming.
	ValidModifierValue
	// MagnitudeEvaluatedUpToChannelValue reads the channel-folded running
	// value through channel Channel (inclusive), before the final clamp.
	// Callers must set Channel on the capture when using this type.
	MagnitudeEvaluatedUpToChannelValue
)

type contribution struct {
	value float64
}

type channelState struct {
	flats     []contribution
	percents  []contribution
	overrides []contribution
}

// Attribute is a named, integer-valued, range-clamped attribute backed by
// a per-channel aggregation pipeline (spec §3, §4.1).
type Attribute struct {
	key          string
	min          int
	max          int
	base         int
	channelCount int
	channels     []channelState

	// cached derived state, recomputed synchronously by recompute()
	current        int
	overflow       int
	channelRunning []float64 // unclamped running value after folding channel i

	observers   map[int]func()
	nextObserverID int
}

// Subscribe registers fn to be called synchronously at the end of every
// recompute (i.e. after every Apply, Unapply, or ApplyInstant). It
// supports the engine's non-snapshot attribute observation (spec §9:
// "a direct observer list per attribute... rather than a global bus").
// The returned unsubscribe function removes fn; calling it more than once
// is a no-op.
func (a *Attribute) Subscribe(fn func()) (unsubscribe func()) {
	if a.observers == nil {
		a.observers = make(map[int]func())
	}
	id := a.nextObserverID
	a.nextObserverID++
	a.observers[id] = fn
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		delete(a.observers, id)
	}
}

func (a *Attribute) notifyObservers() {
	for _, fn := range a.observers {
		fn()
	}
}

// New creates an Attribute with the given stable key, clamp range, initial
// base value, and number of aggregation channels. base is clamped into
// [min, max] on construction.
func New(key string, min, max, base, channelCount int) *Attribute {
	if channelCount < 1 {
		channelCount = 1
	}
	a := &Attribute{
		key:            key,
		min:            min,
		max:            max,
		base:           clamp(base, min, max),
		channelCount:   channelCount,
		channels:       make([]channelState, channelCount),
		channelRunning: make([]float64, channelCount),
	}
	a.recompute()
	return a
}

// Key returns the attribute's stable string key, e.g.
// "TestAttributeSet.Attribute1".
func (a *Attribute) Key() string { return a.key }

// BaseValue returns the attribute's base integer value.
func (a *Attribute) BaseValue() int { return a.base }

// Min returns the attribute's clamp floor.
func (a *Attribute) Min() int { return a.min }

// Max returns the attribute's clamp ceiling.
func (a *Attribute) Max() int { return a.max }

// CurrentValue returns clamp(Base + Modifier, Min, Max).
func (a *Attribute) CurrentValue() int { return a.current }

// Modifier returns CurrentValue - BaseValue (post-clamp), per spec §4.1.
func (a *Attribute) Modifier() int { return a.current - a.base }

// Overflow returns the signed amount clamped off of Base+Modifier, or 0 if
// the unclamped value was within [Min, Max].
func (a *Attribute) Overflow() int { return a.overflow }

// Apply registers a contribution on the given channel and recomputes the
// attribute's derived state. Apply and Unapply with the same (operation,
// value, channel) are exact inverses regardless of interleaving with other
// contributions (spec §4.1's invariant).
func (a *Attribute) Apply(op Operation, value float64, channel int) {
	channel = a.clampChannel(channel)
	cs := &a.channels[channel]
	switch op {
	case FlatBonus:
		cs.flats = append(cs.flats, contribution{value})
	case PercentBonus:
		cs.percents = append(cs.percents, contribution{value})
	case Override:
		cs.overrides = append(cs.overrides, contribution{value})
	}
	a.recompute()
}

// Unapply reverses a previously applied contribution with the same
// (operation, value, channel). Unapplying a contribution that was never
// applied is a programmer error (spec §7); ok reports whether a matching
// contribution was found and removed.
func (a *Attribute) Unapply(op Operation, value float64, channel int) (ok bool) {
	channel = a.clampChannel(channel)
	cs := &a.channels[channel]
	switch op {
	case FlatBonus:
		cs.flats, ok = removeOne(cs.flats, value)
	case PercentBonus:
		cs.percents, ok = removeOne(cs.percents, value)
	case Override:
		cs.overrides, ok = removeOne(cs.overrides, value)
	}
	if ok {
		a.recompute()
	}
	return ok
}

// ApplyInstant mutates BaseValue directly: Base' = clamp(Base + flat, ...)
// for FlatBonus, clamp(Base + Base*value, ...) for PercentBonus, or
// clamp(value, ...) for Override. Overflow is not persisted for instant
// application (spec §4.1).
func (a *Attribute) ApplyInstant(op Operation, value float64) {
	b := float64(a.base)
	switch op {
	case FlatBonus:
		b += value
	case PercentBonus:
		b += b * value
	case Override:
		b = value
	}
	a.base = clamp(roundToZero(b), a.min, a.max)
	a.recompute()
}

// Read returns the value of the requested CalculationType. channel is only
// consulted for MagnitudeEvaluatedUpToChannelValue.
func (a *Attribute) Read(calc CalculationType, channel int) float64 {
	switch calc {
	case BaseValue:
		return float64(a.base)
	case CurrentValue:
		return float64(a.current)
	case MinValue:
		return float64(a.min)
	case MaxValue:
		return float64(a.max)
	case ModifierValue, ValidModifierValue:
		return float64(a.current - a.base)
	case OverflowValue:
		return float64(a.overflow)
	case MagnitudeEvaluatedUpToChannelValue:
		channel = a.clampChannel(channel)
		return a.channelRunning[channel]
	default:
		return 0
	}
}

// recompute folds every channel's contributions per spec §4.1 and updates
// current and overflow.
func (a *Attribute) recompute() {
	v := float64(a.base)
	for ch := 0; ch < a.channelCount; ch++ {
		cs := &a.channels[ch]
		for _, f := range cs.flats {
			v += f.value
		}
		mult := 1.0
		for _, p := range cs.percents {
			mult *= 1 + p.value
		}
		v *= mult
		if n := len(cs.overrides); n > 0 {
			v = cs.overrides[n-1].value
		}
		a.channelRunning[ch] = v
	}

	clamped := clamp(roundToZero(v), a.min, a.max)
	a.overflow = roundToZero(v) - clamped
	a.current = clamped
	a.notifyObservers()
}

func (a *Attribute) clampChannel(channel int) int {
	if channel < 0 {
		return 0
	}
	if channel >= a.channelCount {
		return a.channelCount - 1
	}
	return channel
}

func removeOne(list []contribution, value float64) ([]contribution, bool) {
	for i, c := range list {
		if c.value == value {
			out := make([]contribution, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out, true
		}
	}
	return list, false
}

func roundToZero(f float64) int {
	return int(math.Trunc(f))
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
