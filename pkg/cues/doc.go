// Package cues provides the outbound cue-notification collaborator the
// effects engine emits to, without awaiting, per spec §6: OnApply,
// OnExecute (periodic and instant), OnRemove, and OnStackChange for every
// active effect. Event.Params can carry custom cue parameters; the
// engine's own events leave it nil.
package cues
