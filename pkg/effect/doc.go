// Package effect implements Forge's effects engine: the evaluation,
// aggregation, and lifecycle management of effects applied to entities
// (spec §3, §4). It is the hard core of the engine; the tag registry and
// cue notification layer it depends on (pkg/tags, pkg/cues) are external
// collaborators consumed through narrow interfaces, not implemented here.
package effect
