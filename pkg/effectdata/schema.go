package effectdata

// Document is the on-disk shape of one EffectData, decoded from YAML.
type Document struct {
	Name          string        `yaml:"effect_name"`
	Duration      DurationDoc   `yaml:"effect_duration"`
	Periodic      *PeriodicDoc  `yaml:"effect_periodic,omitempty"`
	Modifiers     []ModifierDoc `yaml:"effect_modifiers,omitempty"`
	Stacking      *StackingDoc  `yaml:"effect_stacking,omitempty"`
	ModifierTags  []string      `yaml:"effect_modifier_tags,omitempty"`
	TagReqs       *TagReqsDoc   `yaml:"effect_tag_requirements,omitempty"`
	SnapshotLevel bool          `yaml:"effect_snapshot_level,omitempty"`
	DispelInfo    DispelInfoDoc `yaml:"dispel_info,omitempty"`
}

// CurveKeyDoc is one (x, y) control point of a curve.Curve.
type CurveKeyDoc struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ScalableFloatDoc decodes a curve.ScalableFloat.
type ScalableFloatDoc struct {
	Base  float64       `yaml:"base"`
	Curve []CurveKeyDoc `yaml:"curve,omitempty"`
}

// ScalableIntDoc decodes a curve.ScalableInt.
type ScalableIntDoc struct {
	Base  int           `yaml:"base"`
	Curve []CurveKeyDoc `yaml:"curve,omitempty"`
}

// AttributeBasedDoc decodes an effect.AttributeBasedMagnitude.
type AttributeBasedDoc struct {
	Side        string        `yaml:"side,omitempty"` // "source" | "target" (default)
	Attribute   string        `yaml:"attribute"`
	Snapshot    bool          `yaml:"snapshot,omitempty"`
	Calc        string        `yaml:"calc,omitempty"`
	Channel     int           `yaml:"channel,omitempty"`
	PreAdd      float64       `yaml:"pre_add,omitempty"`
	Coefficient float64       `yaml:"coefficient,omitempty"`
	PostAdd     float64       `yaml:"post_add,omitempty"`
	Curve       []CurveKeyDoc `yaml:"curve,omitempty"`
}

// MagnitudeDoc decodes the ModifierMagnitude tagged union. Kind selects
// which payload field is consulted; "custom_calculator" is rejected since
// it names a Go capability object YAML cannot express.
type MagnitudeDoc struct {
	Kind           string             `yaml:"magnitude_kind,omitempty"`
	ScalableFloat  *ScalableFloatDoc  `yaml:"scalable_float,omitempty"`
	AttributeBased *AttributeBasedDoc `yaml:"attribute_based,omitempty"`
	SetByCallerTag string             `yaml:"set_by_caller_tag,omitempty"`
}

// ModifierDoc decodes an effect.Modifier.
type ModifierDoc struct {
	Attribute string       `yaml:"attribute"`
	Operation string       `yaml:"operation,omitempty"`
	Channel   int          `yaml:"channel,omitempty"`
	Magnitude MagnitudeDoc `yaml:"magnitude"`
}

// DurationDoc decodes an effect.DurationData.
type DurationDoc struct {
	Kind      string        `yaml:"kind,omitempty"` // "instant" | "infinite" | "duration"
	Magnitude *MagnitudeDoc `yaml:"magnitude,omitempty"`
}

// PeriodicDoc decodes an effect.PeriodicData.
type PeriodicDoc struct {
	Period                  ScalableFloatDoc `yaml:"period"`
	ExecuteOnApply          bool             `yaml:"execute_on_apply,omitempty"`
	InhibitionRemovedPolicy string           `yaml:"inhibition_removed_policy,omitempty"`
}

// StackingDoc decodes an effect.StackingData.
type StackingDoc struct {
	Limit         ScalableIntDoc `yaml:"limit"`
	InitialStacks ScalableIntDoc `yaml:"initial_stacks"`

	Policy           string `yaml:"policy,omitempty"`
	LevelPolicy      string `yaml:"level_policy,omitempty"`
	MagnitudePolicy  string `yaml:"magnitude_policy,omitempty"`
	OverflowPolicy   string `yaml:"overflow_policy,omitempty"`
	ExpirationPolicy string `yaml:"expiration_policy,omitempty"`

	OwnerDenialPolicy             string `yaml:"owner_denial_policy,omitempty"`
	OwnerOverridePolicy           string `yaml:"owner_override_policy,omitempty"`
	OwnerOverrideStackCountPolicy string `yaml:"owner_override_stack_count_policy,omitempty"`

	LevelDenialPolicy             []string `yaml:"level_denial_policy,omitempty"`
	LevelOverridePolicy           []string `yaml:"level_override_policy,omitempty"`
	LevelOverrideStackCountPolicy []string `yaml:"level_override_stack_count_policy,omitempty"`

	ApplicationRefreshPolicy       string `yaml:"application_refresh_policy,omitempty"`
	ApplicationResetPeriodPolicy   string `yaml:"application_reset_period_policy,omitempty"`
	ExecuteOnSuccessfulApplication bool   `yaml:"execute_on_successful_application,omitempty"`
}

// RequirementDoc decodes a tags.Requirement.
type RequirementDoc struct {
	Required  []string `yaml:"required,omitempty"`
	Ignored   []string `yaml:"ignored,omitempty"`
	QueryType string   `yaml:"query_type,omitempty"`
	QueryTags []string `yaml:"query_tags,omitempty"`
}

// TagReqsDoc decodes an effect.TagRequirements.
type TagReqsDoc struct {
	Application *RequirementDoc `yaml:"application,omitempty"`
	Removal     *RequirementDoc `yaml:"removal,omitempty"`
	Ongoing     *RequirementDoc `yaml:"ongoing,omitempty"`
}

// DispelInfoDoc decodes an effect.DispelInfo.
type DispelInfoDoc struct {
	Priority  string   `yaml:"priority,omitempty"`
	Types     []string `yaml:"types,omitempty"`
	Removable bool     `yaml:"removable,omitempty"`
}
