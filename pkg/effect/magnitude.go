package effect

import (
	"forge/pkg/attribute"
	"forge/pkg/curve"
	"forge/pkg/tags"
)

// CaptureSide selects which side of an application an AttributeBased
// capture reads from (spec §4.2).
type CaptureSide int

const (
	CaptureSource CaptureSide = iota
	CaptureTarget
)

// AttributeCapture names one attribute to read off one side of an
// application, under a given CalculationType, optionally snapshotted once
// at apply time rather than observed continuously (spec §4.2, §4.3).
type AttributeCapture struct {
	Side         CaptureSide
	AttributeKey string
	Snapshot     bool
	Calc         attribute.CalculationType
	Channel      int // consulted only when Calc == MagnitudeEvaluatedUpToChannelValue
}

// MagnitudeCalculator is the capability object a host supplies to compute
// a custom base magnitude (spec §4.2, §9's "capability object" redesign
// note in place of an open inheritance hierarchy).
type MagnitudeCalculator interface {
	// CaptureDefinitions declares every attribute this calculator reads,
	// so the engine can fail the whole evaluation consistently with
	// AttributeBased captures when a declared capture is unsatisfiable.
	CaptureDefinitions() []AttributeCapture
	// CalculateBaseMagnitude computes the pre-pre/coeff/post base value.
	// ok is false if the calculator cannot produce a value (e.g. one of
	// its declared captures failed); the caller applies the same silent
	// zero-contribution policy as other capture failures (spec §7).
	CalculateBaseMagnitude(e *Effect, target Entity, payload any) (value float64, ok bool)
}

// Kind discriminates the ModifierMagnitude sum type (spec §3, §9: "model
// as a sum type rather than an options-struct with nullable fields").
type Kind int

const (
	KindScalableFloat Kind = iota
	KindAttributeBased
	KindCustomCalculator
	KindSetByCaller
)

// AttributeBasedMagnitude is the KindAttributeBased payload (spec §4.2).
type AttributeBasedMagnitude struct {
	Capture     AttributeCapture
	PreAdd      float64
	Coefficient float64
	PostAdd     float64
	Curve       *curve.Curve
}

// CustomCalculatorMagnitude is the KindCustomCalculator payload (spec
// §4.2), wrapping a host-supplied MagnitudeCalculator with the same
// ((base + PreAdd) * Coefficient + PostAdd), optional-curve
// post-processing AttributeBasedMagnitude applies to its capture.
type CustomCalculatorMagnitude struct {
	Calculator  MagnitudeCalculator
	PreAdd      float64
	Coefficient float64
	PostAdd     float64
	Curve       *curve.Curve
}

// ModifierMagnitude is a tagged union over the four ways a modifier's
// scalar value can be produced (spec §3). Exactly one of the payload
// fields is meaningful, selected by Kind.
type ModifierMagnitude struct {
	Kind Kind

	ScalableFloat    curve.ScalableFloat
	AttributeBased   AttributeBasedMagnitude
	CustomCalculator CustomCalculatorMagnitude
	SetByCallerTag   tags.Tag
}

// NewScalableFloatMagnitude builds a KindScalableFloat magnitude.
func NewScalableFloatMagnitude(sf curve.ScalableFloat) ModifierMagnitude {
	return ModifierMagnitude{Kind: KindScalableFloat, ScalableFloat: sf}
}

// NewAttributeBasedMagnitude builds a KindAttributeBased magnitude.
func NewAttributeBasedMagnitude(m AttributeBasedMagnitude) ModifierMagnitude {
	if m.Coefficient == 0 {
		m.Coefficient = 1
	}
	return ModifierMagnitude{Kind: KindAttributeBased, AttributeBased: m}
}

// NewCustomCalculatorMagnitude builds a KindCustomCalculator magnitude from
// m, defaulting a zero Coefficient to 1 the same way AttributeBased does.
func NewCustomCalculatorMagnitude(m CustomCalculatorMagnitude) ModifierMagnitude {
	if m.Coefficient == 0 {
		m.Coefficient = 1
	}
	return ModifierMagnitude{Kind: KindCustomCalculator, CustomCalculator: m}
}

// NewSetByCallerMagnitude builds a KindSetByCaller magnitude keyed on tag.
func NewSetByCallerMagnitude(tag tags.Tag) ModifierMagnitude {
	return ModifierMagnitude{Kind: KindSetByCaller, SetByCallerTag: tag}
}

// nonSnapshotWatches returns the (entity, attributeKey) pairs this
// magnitude would need to observe continuously, i.e. every declared
// capture with Snapshot=false (spec §4.3).
func (m ModifierMagnitude) nonSnapshotWatches(e *Effect, target Entity) []watchKey {
	switch m.Kind {
	case KindAttributeBased:
		if m.AttributeBased.Capture.Snapshot {
			return nil
		}
		if ent := resolveCaptureEntity(m.AttributeBased.Capture.Side, e, target); ent != nil {
			return []watchKey{{entity: ent, attributeKey: m.AttributeBased.Capture.AttributeKey}}
		}
		return nil
	case KindCustomCalculator:
		if m.CustomCalculator.Calculator == nil {
			return nil
		}
		var out []watchKey
		for _, c := range m.CustomCalculator.Calculator.CaptureDefinitions() {
			if c.Snapshot {
				continue
			}
			if ent := resolveCaptureEntity(c.Side, e, target); ent != nil {
				out = append(out, watchKey{entity: ent, attributeKey: c.AttributeKey})
			}
		}
		return out
	default:
		return nil
	}
}

// evaluate resolves m to a scalar for (e, target, payload). ok is false on
// capture failure, in which case the caller treats the contribution as a
// silent zero (spec §4.2, §7).
func (m ModifierMagnitude) evaluate(e *Effect, target Entity, payload any) (value float64, ok bool) {
	switch m.Kind {
	case KindScalableFloat:
		return m.ScalableFloat.ValueAt(float64(e.Level())), true

	case KindAttributeBased:
		ab := m.AttributeBased
		captured, ok := readCapture(ab.Capture, e, target)
		if !ok {
			return 0, false
		}
		v := (captured + ab.PreAdd) * ab.Coefficient
		v += ab.PostAdd
		if ab.Curve != nil {
			v = ab.Curve.Evaluate(v)
		}
		return v, true

	case KindCustomCalculator:
		cc := m.CustomCalculator
		if cc.Calculator == nil {
			return 0, false
		}
		for _, c := range cc.Calculator.CaptureDefinitions() {
			if _, ok := readCapture(c, e, target); !ok {
				return 0, false
			}
		}
		base, ok := cc.Calculator.CalculateBaseMagnitude(e, target, payload)
		if !ok {
			return 0, false
		}
		v := (base + cc.PreAdd) * cc.Coefficient
		v += cc.PostAdd
		if cc.Curve != nil {
			v = cc.Curve.Evaluate(v)
		}
		return v, true

	case KindSetByCaller:
		v, ok := e.setByCaller(m.SetByCallerTag)
		return v, ok

	default:
		return 0, false
	}
}

func resolveCaptureEntity(side CaptureSide, e *Effect, target Entity) Entity {
	if side == CaptureSource {
		return e.Source()
	}
	return target
}

func readCapture(c AttributeCapture, e *Effect, target Entity) (float64, bool) {
	ent := resolveCaptureEntity(c.Side, e, target)
	if ent == nil {
		return 0, false
	}
	attrs := ent.AttributeSet()
	if attrs == nil {
		return 0, false
	}
	a, found := attrs.Get(c.AttributeKey)
	if !found {
		return 0, false
	}
	return a.Read(c.Calc, c.Channel), true
}

// watchKey identifies one (entity, attribute) pair a non-snapshot capture
// observes.
type watchKey struct {
	entity       Entity
	attributeKey string
}
