package effect

import (
	"time"

	"forge/pkg/attribute"
)

// EvaluatedModifier is one modifier resolved to a concrete scalar for a
// specific application (spec §3).
type EvaluatedModifier struct {
	AttributeKey string
	Operation    attribute.Operation
	Channel      int
	Value        float64
}

// EvaluatedEffect is the immutable-per-build snapshot computed at apply
// time, on stack change, and whenever an observed non-snapshot capture
// changes (spec §4.3).
type EvaluatedEffect struct {
	DurationKind DurationKind
	Duration     time.Duration // meaningful only when DurationKind == DurationHasDuration

	HasPeriod bool
	Period    time.Duration

	StackCount int
	Modifiers  []EvaluatedModifier
	Watch      []watchKey
}

// buildEvaluatedEffect computes a fresh EvaluatedEffect for e applied to
// target with payload, at the given stack count, scaling every modifier
// contribution by resistScale (1.0 unless the target holds a partial
// immunity against e.Data.Name) (spec §4.3).
func buildEvaluatedEffect(e *Effect, target Entity, payload any, stackCount int, resistScale float64) (*EvaluatedEffect, error) {
	data := e.Data
	ev := &EvaluatedEffect{
		DurationKind: data.Duration.Kind,
		StackCount:   stackCount,
	}

	if data.Duration.Kind == DurationHasDuration {
		secs, ok := data.Duration.Magnitude.evaluate(e, target, payload)
		if !ok {
			secs = 0
		}
		ev.Duration = secondsToDuration(secs)
	}

	if data.Periodic != nil {
		period := data.Periodic.Period.ValueAt(float64(e.Level()))
		if period <= 0 {
			return nil, ErrInvalidPeriod
		}
		ev.HasPeriod = true
		ev.Period = secondsToDuration(period)
	}

	scale := 1.0
	if data.Stacking == nil || data.Stacking.MagnitudePolicy == StackSum {
		scale = float64(stackCount)
	}
	if scale == 0 {
		scale = 1
	}
	if resistScale != 1 {
		scale *= resistScale
	}

	for _, m := range data.Modifiers {
		value, ok := m.Magnitude.evaluate(e, target, payload)
		if !ok {
			continue // silent zero contribution, spec §7; modeled as "not present"
		}
		ev.Modifiers = append(ev.Modifiers, EvaluatedModifier{
			AttributeKey: m.AttributeKey,
			Operation:    m.Operation,
			Channel:      m.Channel,
			Value:        value * scale,
		})
	}

	for _, ex := range data.Executions {
		if !executionSatisfied(ex, e, target) {
			continue
		}
		if mods, ok := ex.Execute(e, target, payload); ok {
			for _, m := range mods {
				m.Value *= scale
				ev.Modifiers = append(ev.Modifiers, m)
			}
		}
	}

	ev.Watch = collectWatches(e, target, data)
	return ev, nil
}

func collectWatches(e *Effect, target Entity, data *EffectData) []watchKey {
	var out []watchKey
	seen := make(map[watchKey]struct{})
	add := func(ks []watchKey) {
		for _, k := range ks {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}

	if data.Duration.Kind == DurationHasDuration {
		add(data.Duration.Magnitude.nonSnapshotWatches(e, target))
	}
	for _, m := range data.Modifiers {
		add(m.Magnitude.nonSnapshotWatches(e, target))
	}
	for _, ex := range data.Executions {
		for _, c := range ex.CaptureDefinitions() {
			if c.Snapshot {
				continue
			}
			if ent := resolveCaptureEntity(c.Side, e, target); ent != nil {
				add([]watchKey{{entity: ent, attributeKey: c.AttributeKey}})
			}
		}
	}
	return out
}

func secondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
