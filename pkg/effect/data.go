package effect

import (
	"forge/pkg/attribute"
	"forge/pkg/curve"
	"forge/pkg/tags"
)

// Modifier is one (attribute, operation, magnitude, channel) contribution
// an EffectData declares (spec §3).
type Modifier struct {
	AttributeKey string
	Operation    attribute.Operation
	Magnitude    ModifierMagnitude
	Channel      int
}

// DurationKind discriminates DurationData (spec §3).
type DurationKind int

const (
	DurationInstant DurationKind = iota
	DurationInfinite
	DurationHasDuration
)

// DurationData describes how long an effect lasts. For DurationHasDuration,
// Magnitude is evaluated in seconds; the duration itself can be
// attribute-based, caller-set, or custom (spec §3). A duration that
// evaluates to 0 is allowed (expires on the next tick). A negative
// duration is handled the same way: the effect is installed and expires
// on the next tick, not during apply.
type DurationData struct {
	Kind      DurationKind
	Magnitude ModifierMagnitude
}

// InstantDuration returns an Instant DurationData.
func InstantDuration() DurationData { return DurationData{Kind: DurationInstant} }

// InfiniteDuration returns an Infinite DurationData.
func InfiniteDuration() DurationData { return DurationData{Kind: DurationInfinite} }

// HasDuration returns a duration-bounded DurationData evaluated from m.
func HasDuration(m ModifierMagnitude) DurationData {
	return DurationData{Kind: DurationHasDuration, Magnitude: m}
}

// InhibitionRemovedPolicy governs the period accumulator when an
// inhibited periodic effect becomes active again (spec §4.7).
type InhibitionRemovedPolicy int

const (
	NeverReset InhibitionRemovedPolicy = iota
	ResetPeriod
	ExecuteAndResetPeriod
)

// PeriodicData marks an effect as executing repeatedly while active
// (spec §3, §4.4).
type PeriodicData struct {
	Period                   curve.ScalableFloat
	ExecuteOnApply           bool
	InhibitionRemovedPolicy  InhibitionRemovedPolicy
}

// StackPolicy controls how re-applications from different sources bucket
// (spec §4.5).
type StackPolicy int

const (
	AggregateBySource StackPolicy = iota
	AggregateByTarget
)

// StackLevelPolicy controls whether distinct levels get distinct buckets.
type StackLevelPolicy int

const (
	SegregateLevels StackLevelPolicy = iota
	AggregateLevels
)

// StackMagnitudePolicy controls whether stack count scales modifier value.
type StackMagnitudePolicy int

const (
	StackSum StackMagnitudePolicy = iota
	StackDontStack
)

// StackOverflowPolicy controls behavior once a bucket is at its stack limit.
type StackOverflowPolicy int

const (
	DenyApplication StackOverflowPolicy = iota
	AllowApplication
)

// StackExpirationPolicy controls what happens when a stacked effect's
// duration expires.
type StackExpirationPolicy int

const (
	ClearEntireStack StackExpirationPolicy = iota
	RemoveSingleStackAndRefreshDuration
)

// StackOwnerDenialPolicy controls whether a re-apply from a different
// source is rejected outright.
type StackOwnerDenialPolicy int

const (
	AllowDifferentOwner StackOwnerDenialPolicy = iota
	DenyDifferentOwner
)

// StackOwnerOverridePolicy names whether an accepted different-source
// re-apply replaces the bucket's recorded source. The stack controller
// does not switch sources: a re-apply from a different source onto an
// existing instance adds a stack entry of its own, and OverrideOwner only
// rewrites the Source of the re-applying source's own entry with the
// same-ID entity.
type StackOwnerOverridePolicy int

const (
	KeepCurrentOwner StackOwnerOverridePolicy = iota
	OverrideOwner
)

// StackOwnerOverrideStackCountPolicy names the stack-count behavior when
// OwnerOverridePolicy accepts a new owner. The stack controller does not
// read it: a different-source re-apply always adds its initial stack
// count, subject to the limit.
type StackOwnerOverrideStackCountPolicy int

const (
	IncreaseStackCount StackOwnerOverrideStackCountPolicy = iota
	ResetStackCountToOne
)

// LevelComparison is a bit set over {Lower, Equal, Higher} used to key the
// Level*Policy fields on the comparison between a re-apply's level and the
// bucket's current level (spec §4.5).
type LevelComparison int

const (
	LevelLower LevelComparison = 1 << iota
	LevelEqual
	LevelHigher
)

func compareLevel(newLevel, bucketLevel int) LevelComparison {
	switch {
	case newLevel < bucketLevel:
		return LevelLower
	case newLevel > bucketLevel:
		return LevelHigher
	default:
		return LevelEqual
	}
}

// StackApplicationRefreshPolicy controls whether a successful re-apply
// resets the bucket's remaining duration.
type StackApplicationRefreshPolicy int

const (
	NeverRefresh StackApplicationRefreshPolicy = iota
	RefreshOnSuccessfulApplication
)

// StackApplicationResetPeriodPolicy controls whether a successful re-apply
// resets the bucket's period accumulator.
type StackApplicationResetPeriodPolicy int

const (
	NeverResetPeriodOnApply StackApplicationResetPeriodPolicy = iota
	ResetOnSuccessfulApplication
)

// StackingData parameterizes the stack controller (spec §4.5).
type StackingData struct {
	Limit         curve.ScalableInt
	InitialStacks curve.ScalableInt

	Policy          StackPolicy
	LevelPolicy     StackLevelPolicy
	MagnitudePolicy StackMagnitudePolicy
	OverflowPolicy  StackOverflowPolicy
	ExpirationPolicy StackExpirationPolicy

	OwnerDenialPolicy             StackOwnerDenialPolicy
	OwnerOverridePolicy           StackOwnerOverridePolicy
	OwnerOverrideStackCountPolicy StackOwnerOverrideStackCountPolicy

	LevelDenialPolicy              LevelComparison // bits where re-apply is denied
	LevelOverridePolicy            LevelComparison // bits where bucket level is overridden
	LevelOverrideStackCountPolicy  LevelComparison // bits where stack count resets to 1 instead of increasing

	ApplicationRefreshPolicy      StackApplicationRefreshPolicy
	ApplicationResetPeriodPolicy  StackApplicationResetPeriodPolicy
	ExecuteOnSuccessfulApplication bool
}

// TagRequirements groups the three tag-requirement sets an effect can
// declare (spec §4.7). A nil field means that requirement is not
// declared: Application and Ongoing are trivially satisfied, Removal is
// trivially unsatisfied (never triggers removal).
type TagRequirements struct {
	Application *tags.Requirement
	Removal     *tags.Requirement
	Ongoing     *tags.Requirement
}

func requirementSatisfied(r *tags.Requirement, combined tags.Container, defaultIfNil bool) bool {
	if r == nil {
		return defaultIfNil
	}
	return r.Satisfied(combined)
}

// EffectData is the immutable template an Effect instance is built from
// (spec §3).
type EffectData struct {
	Name          string
	Modifiers     []Modifier
	Duration      DurationData
	Periodic      *PeriodicData
	Stacking      *StackingData
	ModifierTags  *tags.Set
	TagReqs       *TagRequirements
	Executions    []Execution
	SnapshotLevel bool

	DispelInfo DispelInfo
}

// Effect is one instance of an EffectData applied against a source/owner
// pair at a level (spec §3). The same Effect may be applied to many
// targets; each application yields its own ActiveEffect.
type Effect struct {
	Data   *EffectData
	source Entity
	owner  Entity
	level  int

	caller map[tags.Tag]float64
}

// NewEffect creates an Effect instance of data at level (clamped to >= 1),
// with source and owner as its back-references. Either may be nil.
func NewEffect(data *EffectData, source, owner Entity, level int) *Effect {
	if level < 1 {
		level = 1
	}
	return &Effect{Data: data, source: source, owner: owner, level: level}
}

// Source returns the effect's source entity, or nil.
func (e *Effect) Source() Entity { return e.source }

// Owner returns the effect's owner entity, or nil.
func (e *Effect) Owner() Entity { return e.owner }

// Level returns the effect's level, >= 1.
func (e *Effect) Level() int { return e.level }

// SetLevel updates the effect's level; callers are responsible for
// triggering a recompute on any ActiveEffect built from it.
func (e *Effect) SetLevel(level int) {
	if level < 1 {
		level = 1
	}
	e.level = level
}

// SetByCaller records a caller-supplied magnitude under tag, consumed by
// KindSetByCaller modifiers (spec §3, §4.2).
func (e *Effect) SetByCaller(tag tags.Tag, value float64) {
	if e.caller == nil {
		e.caller = make(map[tags.Tag]float64)
	}
	e.caller[tag] = value
}

func (e *Effect) setByCaller(tag tags.Tag) (float64, bool) {
	v, ok := e.caller[tag]
	return v, ok
}

// Payload is the optional strongly-typed application-context value handed
// to custom executions and calculators (spec §4.8). TryGetPayload is the
// generic TryGet<T> type-assertion accessor.
func TryGetPayload[T any](payload any) (T, bool) {
	v, ok := payload.(T)
	return v, ok
}
