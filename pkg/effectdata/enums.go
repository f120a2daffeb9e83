package effectdata

import (
	"fmt"

	"forge/pkg/attribute"
	"forge/pkg/effect"
	"forge/pkg/tags"
)

func parseOperation(s string) (attribute.Operation, error) {
	switch s {
	case "", "flat", "flat_bonus":
		return attribute.FlatBonus, nil
	case "percent", "percent_bonus":
		return attribute.PercentBonus, nil
	case "override":
		return attribute.Override, nil
	default:
		return 0, fmt.Errorf("unknown operation %q", s)
	}
}

func parseCalculationType(s string) (attribute.CalculationType, error) {
	switch s {
	case "", "current", "current_value":
		return attribute.CurrentValue, nil
	case "base", "base_value":
		return attribute.BaseValue, nil
	case "min", "min_value":
		return attribute.MinValue, nil
	case "max", "max_value":
		return attribute.MaxValue, nil
	case "modifier", "modifier_value":
		return attribute.ModifierValue, nil
	case "overflow", "overflow_value":
		return attribute.OverflowValue, nil
	case "valid_modifier", "valid_modifier_value":
		return attribute.ValidModifierValue, nil
	case "evaluated_up_to_channel", "magnitude_evaluated_up_to_channel_value":
		return attribute.MagnitudeEvaluatedUpToChannelValue, nil
	default:
		return 0, fmt.Errorf("unknown calc %q", s)
	}
}

func parseCaptureSide(s string) (effect.CaptureSide, error) {
	switch s {
	case "", "target":
		return effect.CaptureTarget, nil
	case "source":
		return effect.CaptureSource, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

func parseDurationKind(s string) (effect.DurationKind, error) {
	switch s {
	case "instant":
		return effect.DurationInstant, nil
	case "infinite":
		return effect.DurationInfinite, nil
	case "duration", "has_duration":
		return effect.DurationHasDuration, nil
	default:
		return 0, fmt.Errorf("unknown duration kind %q", s)
	}
}

func parseInhibitionPolicy(s string) (effect.InhibitionRemovedPolicy, error) {
	switch s {
	case "", "never_reset":
		return effect.NeverReset, nil
	case "reset_period":
		return effect.ResetPeriod, nil
	case "execute_and_reset_period":
		return effect.ExecuteAndResetPeriod, nil
	default:
		return 0, fmt.Errorf("unknown inhibition_removed_policy %q", s)
	}
}

func parseStackPolicy(s string) (effect.StackPolicy, error) {
	switch s {
	case "", "aggregate_by_source":
		return effect.AggregateBySource, nil
	case "aggregate_by_target":
		return effect.AggregateByTarget, nil
	default:
		return 0, fmt.Errorf("unknown policy %q", s)
	}
}

func parseStackLevelPolicy(s string) (effect.StackLevelPolicy, error) {
	switch s {
	case "", "segregate_levels":
		return effect.SegregateLevels, nil
	case "aggregate_levels":
		return effect.AggregateLevels, nil
	default:
		return 0, fmt.Errorf("unknown level_policy %q", s)
	}
}

func parseStackMagnitudePolicy(s string) (effect.StackMagnitudePolicy, error) {
	switch s {
	case "", "sum":
		return effect.StackSum, nil
	case "dont_stack":
		return effect.StackDontStack, nil
	default:
		return 0, fmt.Errorf("unknown magnitude_policy %q", s)
	}
}

func parseStackOverflowPolicy(s string) (effect.StackOverflowPolicy, error) {
	switch s {
	case "", "deny", "deny_application":
		return effect.DenyApplication, nil
	case "allow", "allow_application":
		return effect.AllowApplication, nil
	default:
		return 0, fmt.Errorf("unknown overflow_policy %q", s)
	}
}

func parseStackExpirationPolicy(s string) (effect.StackExpirationPolicy, error) {
	switch s {
	case "", "clear_entire_stack":
		return effect.ClearEntireStack, nil
	case "remove_single_stack_and_refresh_duration":
		return effect.RemoveSingleStackAndRefreshDuration, nil
	default:
		return 0, fmt.Errorf("unknown expiration_policy %q", s)
	}
}

func parseOwnerDenialPolicy(s string) (effect.StackOwnerDenialPolicy, error) {
	switch s {
	case "", "allow_different_owner":
		return effect.AllowDifferentOwner, nil
	case "deny_different_owner":
		return effect.DenyDifferentOwner, nil
	default:
		return 0, fmt.Errorf("unknown owner_denial_policy %q", s)
	}
}

func parseOwnerOverridePolicy(s string) (effect.StackOwnerOverridePolicy, error) {
	switch s {
	case "", "keep_current_owner":
		return effect.KeepCurrentOwner, nil
	case "override_owner":
		return effect.OverrideOwner, nil
	default:
		return 0, fmt.Errorf("unknown owner_override_policy %q", s)
	}
}

func parseOwnerOverrideStackCountPolicy(s string) (effect.StackOwnerOverrideStackCountPolicy, error) {
	switch s {
	case "", "increase_stack_count":
		return effect.IncreaseStackCount, nil
	case "reset_stack_count_to_one":
		return effect.ResetStackCountToOne, nil
	default:
		return 0, fmt.Errorf("unknown owner_override_stack_count_policy %q", s)
	}
}

func parseApplicationRefreshPolicy(s string) (effect.StackApplicationRefreshPolicy, error) {
	switch s {
	case "", "never_refresh":
		return effect.NeverRefresh, nil
	case "refresh_on_successful_application":
		return effect.RefreshOnSuccessfulApplication, nil
	default:
		return 0, fmt.Errorf("unknown application_refresh_policy %q", s)
	}
}

func parseApplicationResetPeriodPolicy(s string) (effect.StackApplicationResetPeriodPolicy, error) {
	switch s {
	case "", "never_reset_period_on_apply":
		return effect.NeverResetPeriodOnApply, nil
	case "reset_on_successful_application":
		return effect.ResetOnSuccessfulApplication, nil
	default:
		return 0, fmt.Errorf("unknown application_reset_period_policy %q", s)
	}
}

func parseLevelComparison(ss []string) (effect.LevelComparison, error) {
	var out effect.LevelComparison
	for _, s := range ss {
		switch s {
		case "lower":
			out |= effect.LevelLower
		case "equal":
			out |= effect.LevelEqual
		case "higher":
			out |= effect.LevelHigher
		default:
			return 0, fmt.Errorf("unknown level comparison %q", s)
		}
	}
	return out, nil
}

func parseDispelPriority(s string) (effect.DispelPriority, error) {
	switch s {
	case "", "normal":
		return effect.DispelPriorityNormal, nil
	case "lowest":
		return effect.DispelPriorityLowest, nil
	case "highest":
		return effect.DispelPriorityHighest, nil
	default:
		return 0, fmt.Errorf("unknown dispel priority %q", s)
	}
}

func parseQueryType(s string) (tags.ExpressionType, error) {
	switch s {
	case "", "all":
		return tags.AllExpressionsMatch, nil
	case "any":
		return tags.AnyTagsMatch, nil
	case "none":
		return tags.NoExpressionsMatch, nil
	default:
		return 0, fmt.Errorf("unknown query_type %q", s)
	}
}

func toTags(ss []string) []tags.Tag {
	out := make([]tags.Tag, len(ss))
	for i, s := range ss {
		out[i] = tags.New(s)
	}
	return out
}
