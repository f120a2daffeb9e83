package effect

// Execution is a user-supplied capability object producing evaluated
// modifiers for attributes an effect's Modifier list does not name (spec
// §4.6, §9's capability-object redesign note). If any capture it declares
// cannot be satisfied, the whole execution is skipped for that
// application; the rest of the effect still applies.
type Execution interface {
	// CaptureDefinitions declares every attribute this execution reads.
	CaptureDefinitions() []AttributeCapture
	// Execute produces the modifiers this execution contributes for this
	// application. ok is false if a declared capture could not be
	// satisfied, in which case the execution contributes nothing.
	Execute(e *Effect, target Entity, payload any) (mods []EvaluatedModifier, ok bool)
}

// executionSatisfied reports whether every capture ex declares against
// (e, target) resolves to a live entity and attribute, independent of
// whatever Execute itself decides to do with the values.
func executionSatisfied(ex Execution, e *Effect, target Entity) bool {
	for _, c := range ex.CaptureDefinitions() {
		if _, ok := readCapture(c, e, target); !ok {
			return false
		}
	}
	return true
}
