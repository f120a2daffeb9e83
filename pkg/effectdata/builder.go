package effectdata

import (
	"fmt"

	"forge/pkg/curve"
	"forge/pkg/effect"
	"forge/pkg/tags"
)

func buildCurve(keys []CurveKeyDoc) curve.Curve {
	ks := make([]curve.Key, len(keys))
	for i, k := range keys {
		ks[i] = curve.Key{X: k.X, Y: k.Y}
	}
	return curve.NewCurve(ks...)
}

func (s ScalableFloatDoc) build() curve.ScalableFloat {
	sf := curve.ScalableFloat{Base: s.Base}
	if len(s.Curve) > 0 {
		c := buildCurve(s.Curve)
		sf.Curve = &c
	}
	return sf
}

func (s ScalableIntDoc) build() curve.ScalableInt {
	si := curve.ScalableInt{Base: s.Base}
	if len(s.Curve) > 0 {
		c := buildCurve(s.Curve)
		si.Curve = &c
	}
	return si
}

func (a AttributeBasedDoc) build() (effect.AttributeBasedMagnitude, error) {
	side, err := parseCaptureSide(a.Side)
	if err != nil {
		return effect.AttributeBasedMagnitude{}, err
	}
	calc, err := parseCalculationType(a.Calc)
	if err != nil {
		return effect.AttributeBasedMagnitude{}, err
	}
	ab := effect.AttributeBasedMagnitude{
		Capture: effect.AttributeCapture{
			Side:         side,
			AttributeKey: a.Attribute,
			Snapshot:     a.Snapshot,
			Calc:         calc,
			Channel:      a.Channel,
		},
		PreAdd:      a.PreAdd,
		Coefficient: a.Coefficient,
		PostAdd:     a.PostAdd,
	}
	if len(a.Curve) > 0 {
		c := buildCurve(a.Curve)
		ab.Curve = &c
	}
	return ab, nil
}

func (m MagnitudeDoc) build() (effect.ModifierMagnitude, error) {
	switch m.Kind {
	case "", "scalable_float":
		if m.ScalableFloat == nil {
			return effect.ModifierMagnitude{}, fmt.Errorf("scalable_float magnitude missing its scalable_float block")
		}
		return effect.NewScalableFloatMagnitude(m.ScalableFloat.build()), nil

	case "attribute_based":
		if m.AttributeBased == nil {
			return effect.ModifierMagnitude{}, fmt.Errorf("attribute_based magnitude missing its attribute_based block")
		}
		ab, err := m.AttributeBased.build()
		if err != nil {
			return effect.ModifierMagnitude{}, err
		}
		return effect.NewAttributeBasedMagnitude(ab), nil

	case "set_by_caller":
		if m.SetByCallerTag == "" {
			return effect.ModifierMagnitude{}, fmt.Errorf("set_by_caller magnitude missing set_by_caller_tag")
		}
		return effect.NewSetByCallerMagnitude(tags.New(m.SetByCallerTag)), nil

	case "custom_calculator":
		return effect.ModifierMagnitude{}, fmt.Errorf("custom_calculator magnitude cannot be decoded from YAML; build it in code and assign Modifier.Magnitude directly")

	default:
		return effect.ModifierMagnitude{}, fmt.Errorf("unknown magnitude_kind %q", m.Kind)
	}
}

func (m ModifierDoc) build() (effect.Modifier, error) {
	op, err := parseOperation(m.Operation)
	if err != nil {
		return effect.Modifier{}, err
	}
	mag, err := m.Magnitude.build()
	if err != nil {
		return effect.Modifier{}, fmt.Errorf("modifier %q: %w", m.Attribute, err)
	}
	return effect.Modifier{AttributeKey: m.Attribute, Operation: op, Magnitude: mag, Channel: m.Channel}, nil
}

func (d DurationDoc) build() (effect.DurationData, error) {
	kind, err := parseDurationKind(d.Kind)
	if err != nil {
		return effect.DurationData{}, err
	}
	switch kind {
	case effect.DurationInstant:
		return effect.InstantDuration(), nil
	case effect.DurationInfinite:
		return effect.InfiniteDuration(), nil
	default:
		if d.Magnitude == nil {
			return effect.DurationData{}, fmt.Errorf("duration kind %q requires a magnitude", d.Kind)
		}
		mag, err := d.Magnitude.build()
		if err != nil {
			return effect.DurationData{}, err
		}
		return effect.HasDuration(mag), nil
	}
}

func (p PeriodicDoc) build() (*effect.PeriodicData, error) {
	policy, err := parseInhibitionPolicy(p.InhibitionRemovedPolicy)
	if err != nil {
		return nil, err
	}
	return &effect.PeriodicData{
		Period:                  p.Period.build(),
		ExecuteOnApply:          p.ExecuteOnApply,
		InhibitionRemovedPolicy: policy,
	}, nil
}

func (s StackingDoc) build() (*effect.StackingData, error) {
	policy, err := parseStackPolicy(s.Policy)
	if err != nil {
		return nil, err
	}
	levelPolicy, err := parseStackLevelPolicy(s.LevelPolicy)
	if err != nil {
		return nil, err
	}
	magPolicy, err := parseStackMagnitudePolicy(s.MagnitudePolicy)
	if err != nil {
		return nil, err
	}
	overflowPolicy, err := parseStackOverflowPolicy(s.OverflowPolicy)
	if err != nil {
		return nil, err
	}
	expirationPolicy, err := parseStackExpirationPolicy(s.ExpirationPolicy)
	if err != nil {
		return nil, err
	}
	ownerDenial, err := parseOwnerDenialPolicy(s.OwnerDenialPolicy)
	if err != nil {
		return nil, err
	}
	ownerOverride, err := parseOwnerOverridePolicy(s.OwnerOverridePolicy)
	if err != nil {
		return nil, err
	}
	ownerOverrideCount, err := parseOwnerOverrideStackCountPolicy(s.OwnerOverrideStackCountPolicy)
	if err != nil {
		return nil, err
	}
	levelDenial, err := parseLevelComparison(s.LevelDenialPolicy)
	if err != nil {
		return nil, err
	}
	levelOverride, err := parseLevelComparison(s.LevelOverridePolicy)
	if err != nil {
		return nil, err
	}
	levelOverrideCount, err := parseLevelComparison(s.LevelOverrideStackCountPolicy)
	if err != nil {
		return nil, err
	}
	refreshPolicy, err := parseApplicationRefreshPolicy(s.ApplicationRefreshPolicy)
	if err != nil {
		return nil, err
	}
	resetPeriodPolicy, err := parseApplicationResetPeriodPolicy(s.ApplicationResetPeriodPolicy)
	if err != nil {
		return nil, err
	}

	return &effect.StackingData{
		Limit:                          s.Limit.build(),
		InitialStacks:                  s.InitialStacks.build(),
		Policy:                         policy,
		LevelPolicy:                    levelPolicy,
		MagnitudePolicy:                magPolicy,
		OverflowPolicy:                 overflowPolicy,
		ExpirationPolicy:               expirationPolicy,
		OwnerDenialPolicy:              ownerDenial,
		OwnerOverridePolicy:            ownerOverride,
		OwnerOverrideStackCountPolicy:  ownerOverrideCount,
		LevelDenialPolicy:              levelDenial,
		LevelOverridePolicy:            levelOverride,
		LevelOverrideStackCountPolicy:  levelOverrideCount,
		ApplicationRefreshPolicy:       refreshPolicy,
		ApplicationResetPeriodPolicy:   resetPeriodPolicy,
		ExecuteOnSuccessfulApplication: s.ExecuteOnSuccessfulApplication,
	}, nil
}

func (r *RequirementDoc) build() (*tags.Requirement, error) {
	if r == nil {
		return nil, nil
	}
	qt, err := parseQueryType(r.QueryType)
	if err != nil {
		return nil, err
	}
	req := &tags.Requirement{Query: tags.NewQuery(qt, toTags(r.QueryTags)...)}
	if len(r.Required) > 0 {
		req.Required = tags.NewSet(toTags(r.Required)...)
	}
	if len(r.Ignored) > 0 {
		req.Ignored = tags.NewSet(toTags(r.Ignored)...)
	}
	return req, nil
}

func (t TagReqsDoc) build() (*effect.TagRequirements, error) {
	app, err := t.Application.build()
	if err != nil {
		return nil, fmt.Errorf("application: %w", err)
	}
	rem, err := t.Removal.build()
	if err != nil {
		return nil, fmt.Errorf("removal: %w", err)
	}
	ong, err := t.Ongoing.build()
	if err != nil {
		return nil, fmt.Errorf("ongoing: %w", err)
	}
	return &effect.TagRequirements{Application: app, Removal: rem, Ongoing: ong}, nil
}

func (d DispelInfoDoc) build() (effect.DispelInfo, error) {
	prio, err := parseDispelPriority(d.Priority)
	if err != nil {
		return effect.DispelInfo{}, err
	}
	types := make([]effect.DispelType, len(d.Types))
	for i, t := range d.Types {
		types[i] = effect.DispelType(t)
	}
	return effect.DispelInfo{Priority: prio, Types: types, Removable: d.Removable}, nil
}

// Build converts d into an effect.EffectData. The returned EffectData has
// no Executions and no custom-calculator magnitudes; hosts that need
// either attach them to the returned value before registering it.
func (d Document) Build() (*effect.EffectData, error) {
	ed := &effect.EffectData{Name: d.Name, SnapshotLevel: d.SnapshotLevel}

	dur, err := d.Duration.build()
	if err != nil {
		return nil, fmt.Errorf("effectdata %q: duration: %w", d.Name, err)
	}
	ed.Duration = dur

	if d.Periodic != nil {
		p, err := d.Periodic.build()
		if err != nil {
			return nil, fmt.Errorf("effectdata %q: periodic: %w", d.Name, err)
		}
		ed.Periodic = p
	}

	for i, m := range d.Modifiers {
		mod, err := m.build()
		if err != nil {
			return nil, fmt.Errorf("effectdata %q: modifiers[%d]: %w", d.Name, i, err)
		}
		ed.Modifiers = append(ed.Modifiers, mod)
	}

	if d.Stacking != nil {
		sd, err := d.Stacking.build()
		if err != nil {
			return nil, fmt.Errorf("effectdata %q: stacking: %w", d.Name, err)
		}
		ed.Stacking = sd
	}

	if len(d.ModifierTags) > 0 {
		ed.ModifierTags = tags.NewSet(toTags(d.ModifierTags)...)
	}

	if d.TagReqs != nil {
		tr, err := d.TagReqs.build()
		if err != nil {
			return nil, fmt.Errorf("effectdata %q: tag_requirements: %w", d.Name, err)
		}
		ed.TagReqs = tr
	}

	di, err := d.DispelInfo.build()
	if err != nil {
		return nil, fmt.Errorf("effectdata %q: dispel_info: %w", d.Name, err)
	}
	ed.DispelInfo = di

	return ed, nil
}
