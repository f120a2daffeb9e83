package effectdata

import (
	"strings"
	"testing"

	"forge/pkg/effect"
)

const burningYAML = `
effect_name: Burning
effect_duration:
  kind: duration
  magnitude:
    scalable_float:
      base: 6
effect_periodic:
  period:
    base: 1
  execute_on_apply: true
effect_modifiers:
  - attribute: Health
    operation: flat
    magnitude:
      scalable_float:
        base: -2
effect_modifier_tags: [status.burning]
dispel_info:
  priority: normal
  types: [fire]
  removable: true
`

func TestLoad_Burning(t *testing.T) {
	ed, err := Load(strings.NewReader(burningYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ed.Name != "Burning" {
		t.Errorf("Name = %q, want Burning", ed.Name)
	}
	if ed.Duration.Kind != effect.DurationHasDuration {
		t.Errorf("Duration.Kind = %v, want DurationHasDuration", ed.Duration.Kind)
	}
	if ed.Periodic == nil || !ed.Periodic.ExecuteOnApply {
		t.Fatalf("Periodic = %+v, want non-nil with ExecuteOnApply", ed.Periodic)
	}
	if len(ed.Modifiers) != 1 || ed.Modifiers[0].AttributeKey != "Health" {
		t.Fatalf("Modifiers = %+v, want one Health modifier", ed.Modifiers)
	}
	if ed.Modifiers[0].Magnitude.ScalableFloat.Base != -2 {
		t.Errorf("modifier base = %v, want -2", ed.Modifiers[0].Magnitude.ScalableFloat.Base)
	}
	if ed.ModifierTags == nil || ed.ModifierTags.Len() != 1 {
		t.Fatalf("ModifierTags = %+v, want one tag", ed.ModifierTags)
	}
	if !ed.DispelInfo.Removable || ed.DispelInfo.Priority != effect.DispelPriorityNormal {
		t.Errorf("DispelInfo = %+v, want removable/normal", ed.DispelInfo)
	}
}

const stackingYAML = `
effect_name: Poison
effect_duration:
  kind: duration
  magnitude:
    scalable_float:
      base: 10
effect_modifiers:
  - attribute: Health
    operation: flat
    magnitude:
      scalable_float:
        base: -1
effect_stacking:
  limit:
    base: 3
  initial_stacks:
    base: 3
  policy: aggregate_by_source
  expiration_policy: remove_single_stack_and_refresh_duration
`

func TestLoad_Stacking(t *testing.T) {
	ed, err := Load(strings.NewReader(stackingYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ed.Stacking == nil {
		t.Fatal("Stacking = nil, want non-nil")
	}
	if ed.Stacking.Policy != effect.AggregateBySource {
		t.Errorf("Policy = %v, want AggregateBySource", ed.Stacking.Policy)
	}
	if ed.Stacking.ExpirationPolicy != effect.RemoveSingleStackAndRefreshDuration {
		t.Errorf("ExpirationPolicy = %v, want RemoveSingleStackAndRefreshDuration", ed.Stacking.ExpirationPolicy)
	}
	if ed.Stacking.Limit.ValueAt(1) != 3 {
		t.Errorf("Limit = %v, want 3", ed.Stacking.Limit.ValueAt(1))
	}
}

func TestLoad_UnknownMagnitudeKind(t *testing.T) {
	doc := `
effect_name: Bad
effect_duration:
  kind: instant
effect_modifiers:
  - attribute: Health
    magnitude:
      magnitude_kind: not_a_kind
`
	if _, err := Load(strings.NewReader(doc)); err == nil {
		t.Fatal("expected an error for an unknown magnitude_kind")
	}
}

func TestLoad_CustomCalculatorRejected(t *testing.T) {
	doc := `
effect_name: Bad
effect_duration:
  kind: instant
effect_modifiers:
  - attribute: Health
    magnitude:
      magnitude_kind: custom_calculator
`
	if _, err := Load(strings.NewReader(doc)); err == nil {
		t.Fatal("expected an error for a custom_calculator magnitude")
	}
}

func TestLoadAll_MultiDocument(t *testing.T) {
	stream := burningYAML + "\n---\n" + stackingYAML
	eds, err := LoadAll(strings.NewReader(stream))
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(eds) != 2 {
		t.Fatalf("len(eds) = %d, want 2", len(eds))
	}
	if eds[0].Name != "Burning" || eds[1].Name != "Poison" {
		t.Errorf("names = %q, %q", eds[0].Name, eds[1].Name)
	}
}
