package effect

// applyStacked resolves a re-application of a stacking-enabled EffectData
// against the manager's entity, implementing the StackingData policy
// matrix of spec §4.5.
func (m *Manager) applyStacked(effect *Effect, payload any, resistScale float64) (Handle, error) {
	data := effect.Data
	sd := data.Stacking
	key := bucketKeyFor(data, effect.Level())

	b := m.buckets[key]
	if b == nil {
		b = &bucket{}
		m.buckets[key] = b
	}

	if sd.Policy == AggregateByTarget {
		if len(b.instances) == 0 {
			return m.installNewStacked(b, effect, payload, resistScale)
		}
		return m.reapplyStacked(b.instances[0], effect, payload)
	}

	// AggregateBySource: find an existing instance for this source.
	for _, ae := range b.instances {
		if sameSource(ae.primarySource(), effect.Source()) {
			return m.reapplyStacked(ae, effect, payload)
		}
	}
	return m.installNewStacked(b, effect, payload, resistScale)
}

func (m *Manager) installNewStacked(b *bucket, effect *Effect, payload any, resistScale float64) (Handle, error) {
	sd := effect.Data.Stacking
	initial := sd.InitialStacks.ValueAt(float64(effect.Level()))
	if initial < 1 {
		initial = 1
	}

	ae := newActiveEffect(effect, m.entity, m, resistScale)
	ae.stacks = []StackEntry{{Count: initial, Level: effect.Level(), Source: effect.Source()}}
	if err := ae.install(payload); err != nil {
		if err == ErrInvalidPeriod {
			return Handle{}, err
		}
		m.recordRejection()
		return Handle{}, nil
	}
	h := m.handles.alloc(ae)
	ae.handle = h
	b.instances = append(b.instances, ae)
	m.propagateTagConsistency()
	m.recordApply(ae)
	return h, nil
}

// reapplyStacked merges a re-application into an already-installed
// ActiveEffect per spec §4.5.
func (m *Manager) reapplyStacked(ae *ActiveEffect, effect *Effect, payload any) (Handle, error) {
	sd := effect.Data.Stacking

	entry, isNewSource := findEntryForSource(ae.stacks, effect.Source())

	if isNewSource && len(ae.stacks) > 0 && sd.OwnerDenialPolicy == DenyDifferentOwner {
		m.recordRejection()
		return Handle{}, nil
	}

	repLevel := effect.Level()
	if len(ae.stacks) > 0 {
		repLevel = ae.stacks[0].Level
	}
	cmp := compareLevel(effect.Level(), repLevel)
	if sd.LevelDenialPolicy&cmp != 0 {
		m.recordRejection()
		return Handle{}, nil
	}

	effectiveLevel := repLevel
	if sd.LevelOverridePolicy&cmp != 0 {
		effectiveLevel = effect.Level()
	}

	initial := sd.InitialStacks.ValueAt(float64(effect.Level()))
	if initial < 1 {
		initial = 1
	}
	limit := sd.Limit.ValueAt(float64(effect.Level()))

	prospective := ae.StackCount()
	addCount := 1
	if isNewSource {
		addCount = int(initial)
	} else if sd.LevelOverrideStackCountPolicy&cmp != 0 {
		addCount = 1 - entry.Count // reset this entry's count to 1
	}
	prospective += addCount

	if limit > 0 && prospective > int(limit) {
		if sd.OverflowPolicy == DenyApplication {
			m.recordRejection()
			return Handle{}, nil
		}
		addCount -= prospective - int(limit) // AllowApplication: clamp growth at the limit
	}

	if isNewSource {
		ae.stacks = append(ae.stacks, StackEntry{Count: addCount, Level: effectiveLevel, Source: effect.Source()})
	} else {
		entry.Count += addCount
		if entry.Count < 1 {
			entry.Count = 1
		}
		entry.Level = effectiveLevel
		if sd.OwnerOverridePolicy == OverrideOwner {
			entry.Source = effect.Source()
		}
	}

	resetDuration := sd.ApplicationRefreshPolicy == RefreshOnSuccessfulApplication
	if err := ae.rebuild(payload, resetDuration); err != nil {
		if err == ErrInvalidPeriod {
			return Handle{}, err
		}
		return Handle{}, nil
	}

	if sd.ApplicationResetPeriodPolicy == ResetOnSuccessfulApplication {
		ae.periodAcc = 0
	}
	if sd.ExecuteOnSuccessfulApplication && ae.evaluated.HasPeriod && !ae.inhibited() {
		ae.executePeriod()
	}

	m.emitCue(cueOnStackChange, ae)
	return ae.handle, nil
}

func findEntryForSource(stacks []StackEntry, source Entity) (entry *StackEntry, isNew bool) {
	for i := range stacks {
		if sameSource(stacks[i].Source, source) {
			return &stacks[i], false
		}
	}
	return nil, true
}

func sameSource(a, b Entity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID() == b.ID()
}

// primarySource returns the representative source of an AggregateBySource
// ActiveEffect, which always carries exactly one stack entry.
func (ae *ActiveEffect) primarySource() Entity {
	if len(ae.stacks) == 0 {
		return nil
	}
	return ae.stacks[0].Source
}
