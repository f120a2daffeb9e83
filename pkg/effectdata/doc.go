// Package effectdata decodes YAML documents into effect.EffectData
// templates, mirroring the extensive yaml tagging the host RPG engine
// puts on its own Effect/Modifier/Duration/DispelInfo structs in
// pkg/game/effects.go. CustomCalculatorClass magnitudes and Executions are
// capability objects supplied in Go code; a document that needs one leaves
// the corresponding field unset and the caller wires it in after Build.
package effectdata
