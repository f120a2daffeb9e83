// Package attribute implements Forge's integer-valued, channel-aggregated
// attributes (spec §3, §4.1): Attribute and AttributeSet.
//
// Each Attribute tracks a base integer value plus, per channel, a set of
// Flat/Percent/Override contributions. Apply and Unapply are exact
// inverses for any interleaving: unapplying every applied contribution in
// any order returns Base, Modifier, CurrentValue and Overflow to their
// pre-application values.
package attribute
