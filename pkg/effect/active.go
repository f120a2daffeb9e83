package effect

import (
	"time"

	"github.com/sirupsen/logrus"

	"forge/pkg/attribute"
)

// State is an ActiveEffect's lifecycle position (spec §4.4).
type State int

const (
	StateApplied State = iota
	StateActive
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateApplied:
		return "Applied"
	case StateActive:
		return "Active"
	case StateExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// StackEntry is per-stack-instance bookkeeping maintained for
// introspection (spec §4.5, §4.1's EvaluatedEffect stack count).
type StackEntry struct {
	Count  int
	Level  int
	Source Entity
}

type registeredMod struct {
	attrKey string
	op      attribute.Operation
	value   float64
	channel int
}

// ActiveEffect is the installed, lifecycle-managed instance of a
// non-instant Effect applied to one target (spec §3, §4.4). It is owned
// exclusively by the target's Manager.
type ActiveEffect struct {
	effect    *Effect
	evaluated *EvaluatedEffect
	target    Entity
	manager   *Manager

	state     State
	remaining time.Duration
	periodAcc time.Duration

	stacks []StackEntry

	registered  []registeredMod
	unsubscribe []func()

	handle      Handle
	resistScale float64
}

func newActiveEffect(effect *Effect, target Entity, manager *Manager, resistScale float64) *ActiveEffect {
	return &ActiveEffect{
		effect:      effect,
		target:      target,
		manager:     manager,
		state:       StateApplied,
		resistScale: resistScale,
	}
}

// Handle returns the opaque handle the manager issued for this instance.
func (ae *ActiveEffect) Handle() Handle { return ae.handle }

// State returns the ActiveEffect's current lifecycle state.
func (ae *ActiveEffect) State() State { return ae.state }

// StackCount returns the sum of every stack entry's count.
func (ae *ActiveEffect) StackCount() int {
	total := 0
	for _, s := range ae.stacks {
		total += s.Count
	}
	return total
}

// Remaining returns the time left before expiry. Meaningful only for
// DurationHasDuration effects.
func (ae *ActiveEffect) Remaining() time.Duration { return ae.remaining }

// install runs the full apply sequence of spec §4.4 steps 1-7. It returns
// errApplicationGateRejected if application tag gates rejected the
// install, or ErrInvalidPeriod if the period evaluates to <= 0.
func (ae *ActiveEffect) install(payload any) error {
	data := ae.effect.Data

	if data.TagReqs != nil && !requirementSatisfied(data.TagReqs.Application, ae.target.CombinedTags(), true) {
		return errApplicationGateRejected
	}

	if data.SnapshotLevel {
		frozen := *ae.effect
		ae.effect = &frozen
	}

	ev, err := buildEvaluatedEffect(ae.effect, ae.target, payload, ae.StackCount(), ae.resistScale)
	if err != nil {
		return err
	}
	ae.evaluated = ev

	if data.Duration.Kind == DurationHasDuration {
		ae.remaining = ev.Duration
	}

	ae.applyModifiers()

	if data.ModifierTags != nil {
		for _, t := range data.ModifierTags.Tags() {
			ae.target.ModifierTags().Add(t)
		}
	}

	ae.state = StateActive

	if data.TagReqs != nil && !requirementSatisfied(data.TagReqs.Ongoing, ae.target.CombinedTags(), true) {
		ae.setInhibited(true)
	}

	ae.manager.emitCue(cueOnApply, ae)

	if data.Periodic != nil && data.Periodic.ExecuteOnApply && !ae.inhibited() {
		ae.executePeriod()
	}

	ae.subscribeWatches()

	return nil
}

func (ae *ActiveEffect) inhibited() bool { return ae.state == StateApplied }

// setInhibited toggles the Applied/Active split used to represent
// tag-gated ongoing inhibition (spec §4.7). Applied here means "installed
// but inhibited"; Active means "contributing modifiers".
func (ae *ActiveEffect) setInhibited(inhibit bool) {
	if inhibit == ae.inhibited() {
		return
	}
	ae.manager.recordInhibitionToggle(ae)

	if inhibit {
		ae.unapplyModifiers()
		ae.state = StateApplied
		return
	}

	ae.state = StateActive
	ae.applyModifiers()

	if ae.evaluated.HasPeriod {
		switch policy := ae.effect.Data.Periodic.InhibitionRemovedPolicy; policy {
		case ResetPeriod:
			ae.periodAcc = 0
		case ExecuteAndResetPeriod:
			ae.executePeriod()
			ae.periodAcc = 0
		case NeverReset:
		}
	}
}

// tick advances the effect by dt per spec §4.4.
func (ae *ActiveEffect) tick(dt time.Duration) {
	if ae.state == StateExpired {
		return
	}

	if ae.effect.Data.Duration.Kind == DurationHasDuration {
		ae.remaining -= dt
	}

	if ae.evaluated.HasPeriod && !ae.inhibited() {
		ae.periodAcc += dt
		for ae.periodAcc >= ae.evaluated.Period {
			if ae.effect.Data.Duration.Kind == DurationHasDuration && ae.remaining < 0 {
				break
			}
			ae.executePeriod()
			ae.periodAcc -= ae.evaluated.Period
		}
	}

	if ae.effect.Data.Duration.Kind == DurationHasDuration && ae.remaining <= 0 {
		ae.onDurationExpired()
	}
}

// executePeriod applies the evaluated modifiers as instant mutations to
// the target's attribute bases (spec §4.4).
func (ae *ActiveEffect) executePeriod() {
	attrs := ae.target.AttributeSet()
	if attrs == nil {
		return
	}
	for _, m := range ae.evaluated.Modifiers {
		a, found := attrs.Get(m.AttributeKey)
		if !found {
			continue
		}
		a.ApplyInstant(m.Operation, m.Value)
	}
	ae.manager.emitCue(cueOnExecute, ae)
	ae.manager.recordExecution(ae)
}

// applyModifiers registers every evaluated modifier as a continuous
// per-channel contribution. A periodic effect's modifiers move the target
// exclusively through executePeriod's instant mutations (spec §4.4,
// §8 scenario 5), so it never registers a continuous contribution here.
func (ae *ActiveEffect) applyModifiers() {
	if ae.effect.Data.Periodic != nil {
		return
	}
	attrs := ae.target.AttributeSet()
	if attrs == nil {
		return
	}
	for _, m := range ae.evaluated.Modifiers {
		a, found := attrs.Get(m.AttributeKey)
		if !found {
			ae.manager.log().WithField("attribute", m.AttributeKey).Debug("effect: modifier targets unknown attribute, dropped")
			continue
		}
		a.Apply(m.Operation, m.Value, m.Channel)
		ae.registered = append(ae.registered, registeredMod{m.AttributeKey, m.Operation, m.Value, m.Channel})
	}
}

func (ae *ActiveEffect) unapplyModifiers() {
	attrs := ae.target.AttributeSet()
	for i := len(ae.registered) - 1; i >= 0; i-- {
		r := ae.registered[i]
		if attrs != nil {
			if a, found := attrs.Get(r.attrKey); found {
				if !a.Unapply(r.op, r.value, r.channel) {
					ae.onInvariantViolation(r.attrKey)
				}
			}
		}
	}
	ae.registered = nil
}

// onInvariantViolation handles an Apply/Unapply pairing mismatch: a
// programmer error (spec §7). StrictInvariants gates whether this fails
// loudly or is absorbed.
func (ae *ActiveEffect) onInvariantViolation(attrKey string) {
	entry := ae.manager.log().WithField("attribute", attrKey)
	if ae.manager.strictInvariants {
		entry.WithError(ErrUnappliedContribution).Panic("effect: unapply found no matching contribution")
		return
	}
	entry.WithError(ErrUnappliedContribution).Warn("effect: unapply found no matching contribution")
}

// subscribeWatches subscribes to every non-snapshot capture's backing
// attribute so source changes propagate into this effect (spec §4.3,
// §9's direct-observer-list redesign note).
func (ae *ActiveEffect) subscribeWatches() {
	for _, w := range ae.evaluated.Watch {
		attrs := w.entity.AttributeSet()
		if attrs == nil {
			continue
		}
		a, found := attrs.Get(w.attributeKey)
		if !found {
			continue
		}
		unsub := a.Subscribe(func() { ae.manager.onCaptureChanged(ae) })
		ae.unsubscribe = append(ae.unsubscribe, unsub)
	}
}

func (ae *ActiveEffect) unsubscribeWatches() {
	for _, fn := range ae.unsubscribe {
		fn()
	}
	ae.unsubscribe = nil
}

// recompute rebuilds the EvaluatedEffect and installs it through
// swapEvaluated, which unapplies every contribution of the prior snapshot
// with the exact values it registered and then applies the fresh ones, so
// the Apply/Unapply invariant of §4.1 never drifts (spec §4.4's
// "Recompute on capture change").
func (ae *ActiveEffect) recompute(payload any) {
	if ae.state == StateExpired {
		return
	}

	fresh, err := buildEvaluatedEffect(ae.effect, ae.target, payload, ae.StackCount(), ae.resistScale)
	if err != nil {
		ae.manager.log().WithError(err).Error("effect: recompute produced an invalid period, expiring effect")
		ae.expire()
		return
	}

	if ae.effect.Data.Duration.Kind == DurationHasDuration {
		elapsed := ae.evaluated.Duration - ae.remaining
		newRemaining := fresh.Duration - elapsed
		if newRemaining <= 0 {
			ae.swapEvaluated(fresh)
			ae.expire()
			return
		}
		ae.remaining = newRemaining
	}

	ae.swapEvaluated(fresh)
}

// swapEvaluated installs fresh as the current snapshot, unapplying every
// contribution the previous snapshot registered and applying fresh's in
// its place, and re-subscribing to watches if the watch set changed.
func (ae *ActiveEffect) swapEvaluated(fresh *EvaluatedEffect) {
	if !ae.inhibited() {
		ae.unapplyModifiers()
	}
	prevWatch := ae.evaluated.Watch
	ae.evaluated = fresh
	if !ae.inhibited() {
		ae.applyModifiers()
	}
	if !watchesEqual(prevWatch, fresh.Watch) {
		ae.unsubscribeWatches()
		ae.subscribeWatches()
	}
}

// rebuild recomputes the snapshot for a stack-count change (a re-apply or
// a single-stack expiration), optionally resetting the remaining duration
// to the freshly evaluated one.
func (ae *ActiveEffect) rebuild(payload any, resetDuration bool) error {
	fresh, err := buildEvaluatedEffect(ae.effect, ae.target, payload, ae.StackCount(), ae.resistScale)
	if err != nil {
		return err
	}
	ae.swapEvaluated(fresh)
	if resetDuration && ae.effect.Data.Duration.Kind == DurationHasDuration {
		ae.remaining = fresh.Duration
	}
	return nil
}

// onDurationExpired runs when remaining crosses zero. For a stacked
// effect with StackExpirationPolicy == RemoveSingleStackAndRefreshDuration
// and more than one stack remaining, one stack is removed and the
// duration refreshed instead of a full removal (spec §4.5).
func (ae *ActiveEffect) onDurationExpired() {
	sd := ae.effect.Data.Stacking
	if sd != nil && sd.ExpirationPolicy == RemoveSingleStackAndRefreshDuration && ae.StackCount() > 1 {
		ae.decrementOneStack()
		if err := ae.rebuild(nil, true); err != nil {
			ae.log().WithError(err).Error("effect: rebuild after stack decrement failed, expiring")
			ae.expire()
			return
		}
		ae.manager.emitCue(cueOnStackChange, ae)
		return
	}
	ae.expire()
}

// decrementOneStack removes one stack from the bucket's oldest entry,
// dropping the entry entirely if it reaches zero.
func (ae *ActiveEffect) decrementOneStack() {
	if len(ae.stacks) == 0 {
		return
	}
	ae.stacks[0].Count--
	if ae.stacks[0].Count <= 0 {
		ae.stacks = ae.stacks[1:]
	}
}

func watchesEqual(a, b []watchKey) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// expire terminates the ActiveEffect: reverses every registered
// contribution, removes granted modifier tags, unsubscribes from all
// watches, and emits OnRemove (spec §4.4's Unapply step).
func (ae *ActiveEffect) expire() {
	if ae.state == StateExpired {
		return
	}
	if !ae.inhibited() {
		ae.unapplyModifiers()
	}
	if data := ae.effect.Data; data.ModifierTags != nil {
		for _, t := range data.ModifierTags.Tags() {
			ae.target.ModifierTags().Remove(t)
		}
	}
	ae.unsubscribeWatches()
	ae.state = StateExpired
	ae.manager.emitCue(cueOnRemove, ae)
}

func (ae *ActiveEffect) log() *logrus.Entry {
	return ae.manager.log().WithField("effect", ae.effect.Data.Name)
}

var errApplicationGateRejected = &gateError{"effect: rejected by application tag requirements"}

type gateError struct{ msg string }

func (e *gateError) Error() string { return e.msg }
