package effect_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forge/pkg/attribute"
	"forge/pkg/curve"
	"forge/pkg/effect"
)

// TestApplyEffect_InstantFlat covers an Instant effect: the manager returns
// the zero Handle and the modifier mutates the base value directly.
func TestApplyEffect_InstantFlat(t *testing.T) {
	hero := newTestEntity("hero")

	data := &effect.EffectData{
		Name: "Heal",
		Modifiers: []effect.Modifier{
			{AttributeKey: "Health", Operation: attribute.FlatBonus, Magnitude: effect.NewScalableFloatMagnitude(curve.NewScalableFloat(15))},
		},
	}

	h, err := hero.Manager().ApplyEffect(effect.NewEffect(data, nil, nil, 1), nil)
	require.NoError(t, err)
	assert.True(t, h.IsZero())
	assert.Equal(t, 115, healthOf(hero))
}

// TestApplyEffect_DurationExpiry covers a duration-bound effect: the
// modifier contributes while active and is fully reversed once its
// duration elapses.
func TestApplyEffect_DurationExpiry(t *testing.T) {
	hero := newTestEntity("hero")

	data := &effect.EffectData{
		Name:     "Shield",
		Duration: effect.HasDuration(effect.NewScalableFloatMagnitude(curve.NewScalableFloat(5))),
		Modifiers: []effect.Modifier{
			{AttributeKey: "Health", Operation: attribute.FlatBonus, Magnitude: effect.NewScalableFloatMagnitude(curve.NewScalableFloat(20))},
		},
	}

	h, err := hero.Manager().ApplyEffect(effect.NewEffect(data, nil, nil, 1), nil)
	require.NoError(t, err)
	require.False(t, h.IsZero())
	assert.Equal(t, 120, healthOf(hero))

	hero.Manager().UpdateEffects(4 * time.Second)
	assert.Equal(t, 120, healthOf(hero), "still active before expiry")

	hero.Manager().UpdateEffects(2 * time.Second)
	assert.Equal(t, 100, healthOf(hero), "modifier reversed after expiry")
}

// TestApplyEffect_AttributeBasedNonSnapshot covers non-snapshot attribute
// observation: a modifier captured from the source's Mana recomputes the
// instant the source's Mana changes, with no manual recompute call.
func TestApplyEffect_AttributeBasedNonSnapshot(t *testing.T) {
	caster := newTestEntity("caster")
	hero := newTestEntity("hero")

	data := &effect.EffectData{
		Name:     "ManaShield",
		Duration: effect.InfiniteDuration(),
		Modifiers: []effect.Modifier{
			{
				AttributeKey: "Health",
				Operation:    attribute.FlatBonus,
				Magnitude: effect.NewAttributeBasedMagnitude(effect.AttributeBasedMagnitude{
					Capture: effect.AttributeCapture{
						Side:         effect.CaptureSource,
						AttributeKey: "Mana",
						Snapshot:     false,
						Calc:         attribute.CurrentValue,
					},
					Coefficient: 1,
				}),
			},
		},
	}

	_, err := hero.Manager().ApplyEffect(effect.NewEffect(data, caster, caster, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, 150, healthOf(hero), "base 100 + captured mana 50")

	casterMana, ok := caster.AttributeSet().Get("Mana")
	require.True(t, ok)
	casterMana.ApplyInstant(attribute.FlatBonus, 25)

	assert.Equal(t, 175, healthOf(hero), "recomputed without an explicit recompute call")
}

// TestApplyEffect_PeriodicLevelUp covers a periodic effect whose level is
// bumped mid-lifetime through SetEffectLevel: the next period executes at
// the new level's curve-scaled magnitude, with no re-apply involved.
func TestApplyEffect_PeriodicLevelUp(t *testing.T) {
	hero := newTestEntity("hero")

	data := &effect.EffectData{
		Name:     "Regenerate",
		Duration: effect.InfiniteDuration(),
		Periodic: &effect.PeriodicData{Period: curve.NewScalableFloat(1), ExecuteOnApply: true},
		Modifiers: []effect.Modifier{
			{AttributeKey: "Health", Operation: attribute.FlatBonus, Magnitude: effect.NewScalableFloatMagnitude(
				curve.NewScalableFloatWithCurve(10, curve.NewCurve(curve.Key{X: 1, Y: 1}, curve.Key{X: 2, Y: 2})),
			)},
		},
	}

	h, err := hero.Manager().ApplyEffect(effect.NewEffect(data, nil, nil, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, 110, healthOf(hero), "periodic effects contribute only through period execution: executeOnApply's immediate period (+10), no continuous channel contribution")

	hero.Manager().UpdateEffects(time.Second)
	assert.Equal(t, 120, healthOf(hero), "one more period at level 1: +10 to base")

	hero.Manager().SetEffectLevel(h, 2)
	assert.Equal(t, 120, healthOf(hero), "SetEffectLevel rebuilds the evaluated snapshot but does not itself execute a period")

	hero.Manager().UpdateEffects(time.Second)
	assert.Equal(t, 140, healthOf(hero), "next period executes at the rebuilt level-2 snapshot, curve doubles magnitude: +20 to base")
}

// TestApplyEffect_StackCapAndAggregateBySource covers AggregateBySource
// bucketing: repeated re-applies from the same source accumulate onto one
// stack entry, scaling the modifier contribution by stack count, and the
// bucket denies overflow past its limit.
func TestApplyEffect_StackCapAndAggregateBySource(t *testing.T) {
	hero := newTestEntity("hero")
	caster := newTestEntity("caster")

	data := &effect.EffectData{
		Name:     "Poison",
		Duration: effect.HasDuration(effect.NewScalableFloatMagnitude(curve.NewScalableFloat(10))),
		Modifiers: []effect.Modifier{
			{AttributeKey: "Health", Operation: attribute.FlatBonus, Magnitude: effect.NewScalableFloatMagnitude(curve.NewScalableFloat(-5))},
		},
		Stacking: &effect.StackingData{
			Limit:          curve.NewScalableInt(3),
			InitialStacks:  curve.NewScalableInt(1),
			Policy:         effect.AggregateBySource,
			OverflowPolicy: effect.DenyApplication,
		},
	}

	apply := func() effect.Handle {
		h, err := hero.Manager().ApplyEffect(effect.NewEffect(data, caster, caster, 1), nil)
		require.NoError(t, err)
		return h
	}

	h1 := apply()
	require.False(t, h1.IsZero())
	assert.Equal(t, 95, healthOf(hero), "one stack: -5")

	h2 := apply()
	require.False(t, h2.IsZero())
	assert.Equal(t, 90, healthOf(hero), "two stacks: -10")

	h3 := apply()
	require.False(t, h3.IsZero())
	assert.Equal(t, 85, healthOf(hero), "three stacks, at the limit: -15")

	// A fourth re-apply from the same source would exceed the limit.
	h4 := apply()
	assert.True(t, h4.IsZero(), "denied overflow returns the zero handle")
	assert.Equal(t, 85, healthOf(hero), "denied stack contributes nothing")
}

// TestApplyEffect_TagInhibition covers ongoing tag-gated inhibition: the
// effect's modifier is withdrawn while the target fails the Ongoing
// requirement and restored once the gating tag is removed.
func TestApplyEffect_TagInhibition(t *testing.T) {
	hero := newTestEntity("hero")
	hero.BaseTags().Add(tagSilenced)

	data := &effect.EffectData{
		Name:     "ManaRegenBuff",
		Duration: effect.InfiniteDuration(),
		Modifiers: []effect.Modifier{
			{AttributeKey: "Mana", Operation: attribute.FlatBonus, Magnitude: effect.NewScalableFloatMagnitude(curve.NewScalableFloat(30))},
		},
		TagReqs: &effect.TagRequirements{
			Ongoing: &effectOngoingRequirement,
		},
	}

	_, err := hero.Manager().ApplyEffect(effect.NewEffect(data, nil, nil, 1), nil)
	require.NoError(t, err)

	mana, _ := hero.AttributeSet().Get("Mana")
	assert.Equal(t, 50, mana.CurrentValue(), "inhibited at apply time: silenced tag present")

	hero.BaseTags().Remove(tagSilenced)
	hero.Manager().UpdateEffects(0)
	assert.Equal(t, 80, mana.CurrentValue(), "un-inhibited once silenced is removed")

	hero.BaseTags().Add(tagSilenced)
	hero.Manager().UpdateEffects(0)
	assert.Equal(t, 50, mana.CurrentValue(), "re-inhibited once silenced returns")
}

// TestApplyEffect_InvalidPeriod covers the fatal-error path: a Periodic
// whose Period evaluates to <= 0 is rejected with ErrInvalidPeriod rather
// than installed.
func TestApplyEffect_InvalidPeriod(t *testing.T) {
	hero := newTestEntity("hero")

	data := &effect.EffectData{
		Name:     "BrokenDot",
		Duration: effect.HasDuration(effect.NewScalableFloatMagnitude(curve.NewScalableFloat(10))),
		Periodic: &effect.PeriodicData{Period: curve.NewScalableFloat(0)},
	}

	h, err := hero.Manager().ApplyEffect(effect.NewEffect(data, nil, nil, 1), nil)
	assert.ErrorIs(t, err, effect.ErrInvalidPeriod)
	assert.True(t, h.IsZero())
}

// TestApplyEffect_SnapshotLevel covers level freezing at install time: a
// change to the originating Effect's level after apply does not affect an
// already-installed ActiveEffect when SnapshotLevel is set.
func TestApplyEffect_SnapshotLevel(t *testing.T) {
	hero := newTestEntity("hero")
	caster := newTestEntity("caster")

	data := &effect.EffectData{
		Name:          "FrozenNova",
		Duration:      effect.InfiniteDuration(),
		SnapshotLevel: true,
		Modifiers: []effect.Modifier{
			{AttributeKey: "Health", Operation: attribute.FlatBonus, Magnitude: effect.NewScalableFloatMagnitude(
				curve.NewScalableFloatWithCurve(1, curve.NewCurve(curve.Key{X: 1, Y: -10}, curve.Key{X: 5, Y: -50})),
			)},
		},
	}

	instance := effect.NewEffect(data, caster, caster, 1)
	_, err := hero.Manager().ApplyEffect(instance, nil)
	require.NoError(t, err)
	assert.Equal(t, 90, healthOf(hero))

	instance.SetLevel(5)
	hero.Manager().UpdateEffects(time.Second)
	assert.Equal(t, 90, healthOf(hero), "frozen at the level captured on install")
}

// TestDispelEffects covers priority-ordered, count-bounded dispel.
func TestDispelEffects(t *testing.T) {
	hero := newTestEntity("hero")

	low := &effect.EffectData{
		Name:       "WeakCurse",
		Duration:   effect.InfiniteDuration(),
		DispelInfo: effect.DispelInfo{Priority: effect.DispelPriorityLowest, Types: []effect.DispelType{"curse"}, Removable: true},
	}
	high := &effect.EffectData{
		Name:       "StrongCurse",
		Duration:   effect.InfiniteDuration(),
		DispelInfo: effect.DispelInfo{Priority: effect.DispelPriorityHighest, Types: []effect.DispelType{"curse"}, Removable: true},
	}
	permanent := &effect.EffectData{
		Name:       "Mark",
		Duration:   effect.InfiniteDuration(),
		DispelInfo: effect.DispelInfo{Removable: false},
	}

	_, err := hero.Manager().ApplyEffect(effect.NewEffect(low, nil, nil, 1), nil)
	require.NoError(t, err)
	_, err = hero.Manager().ApplyEffect(effect.NewEffect(high, nil, nil, 1), nil)
	require.NoError(t, err)
	_, err = hero.Manager().ApplyEffect(effect.NewEffect(permanent, nil, nil, 1), nil)
	require.NoError(t, err)

	removed := hero.Manager().DispelEffects("curse", 1)
	require.Len(t, removed, 1)
	assert.Equal(t, "StrongCurse", removed[0], "highest priority dispelled first")

	removed = hero.Manager().DispelEffects("curse", 5)
	require.Len(t, removed, 1)
	assert.Equal(t, "WeakCurse", removed[0])

	removed = hero.Manager().DispelEffects("curse", 5)
	assert.Empty(t, removed, "Mark is not removable and not dispelled")
}

// TestImmunity covers both full block and partial resistance scaling.
func TestImmunity(t *testing.T) {
	hero := newTestEntity("hero")

	fireball := &effect.EffectData{
		Name: "Fireball",
		Modifiers: []effect.Modifier{
			{AttributeKey: "Health", Operation: attribute.FlatBonus, Magnitude: effect.NewScalableFloatMagnitude(curve.NewScalableFloat(-40))},
		},
		DispelInfo: effect.DispelInfo{Types: []effect.DispelType{"fire"}},
	}

	hero.Manager().AddImmunity("Fireball", effect.ImmunityData{Resistance: 1})
	_, err := hero.Manager().ApplyEffect(effect.NewEffect(fireball, nil, nil, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, 100, healthOf(hero), "fully blocked")

	hero.Manager().RemoveImmunity("Fireball")
	hero.Manager().AddImmunity("Fireball", effect.ImmunityData{Resistance: 0.5})
	_, err = hero.Manager().ApplyEffect(effect.NewEffect(fireball, nil, nil, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, 80, healthOf(hero), "half-resisted: -20 instead of -40")
}

// TestApplyEffect_RemoveSingleStackAndRefreshDuration covers a stacked
// effect whose ExpirationPolicy removes one stack (instead of clearing the
// whole bucket) on duration expiry, and whose same-source re-apply adds
// the removed stack back while ApplicationRefreshPolicy resets the
// remaining duration.
func TestApplyEffect_RemoveSingleStackAndRefreshDuration(t *testing.T) {
	hero := newTestEntity("hero")
	caster := newTestEntity("caster")

	data := &effect.EffectData{
		Name:     "Blessing",
		Duration: effect.HasDuration(effect.NewScalableFloatMagnitude(curve.NewScalableFloat(2))),
		Modifiers: []effect.Modifier{
			{AttributeKey: "Mana", Operation: attribute.FlatBonus, Magnitude: effect.NewScalableFloatMagnitude(curve.NewScalableFloat(1))},
		},
		Stacking: &effect.StackingData{
			Limit:                    curve.NewScalableInt(5),
			InitialStacks:            curve.NewScalableInt(3),
			Policy:                   effect.AggregateBySource,
			ExpirationPolicy:         effect.RemoveSingleStackAndRefreshDuration,
			ApplicationRefreshPolicy: effect.RefreshOnSuccessfulApplication,
		},
	}

	h, err := hero.Manager().ApplyEffect(effect.NewEffect(data, caster, caster, 1), nil)
	require.NoError(t, err)
	require.False(t, h.IsZero())
	mana, _ := hero.AttributeSet().Get("Mana")
	assert.Equal(t, 53, mana.CurrentValue(), "three initial stacks: +3")

	hero.Manager().UpdateEffects(2 * time.Second)
	assert.Equal(t, 52, mana.CurrentValue(), "duration expiry removes one stack instead of clearing the bucket: +2")

	h2, err := hero.Manager().ApplyEffect(effect.NewEffect(data, caster, caster, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, h, h2, "same-source re-apply merges into the existing bucket entry")
	assert.Equal(t, 53, mana.CurrentValue(), "the re-apply adds one stack back, restoring the count to three: +3")

	hero.Manager().UpdateEffects(time.Second)
	assert.Equal(t, 53, mana.CurrentValue(), "the re-apply refreshed the remaining duration, so one second isn't enough to expire again")
}
