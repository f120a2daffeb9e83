// Package e2e exercises Forge end to end: YAML effect data on disk, loaded
// through pkg/effectdata, applied and ticked through a real pkg/effect
// Manager, with cues and metrics wired in the way a host application
// would wire them.
package e2e

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"forge/pkg/attribute"
	"forge/pkg/cues"
	"forge/pkg/effect"
	"forge/pkg/effectdata"
	"forge/pkg/effectmetrics"
	"forge/pkg/tags"
)

const channelCount = 4

// writeEffectData writes doc to a temp YAML file under t's scratch
// directory and loads it back through effectdata, so these tests exercise
// the same on-disk path a host driving Forge from content files would.
func writeEffectData(t *testing.T, name, doc string) *effect.EffectData {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	ed, err := effectdata.LoadFile(path)
	require.NoError(t, err)
	return ed
}

// newHarnessEntity builds a BasicEntity with a Health/Mana attribute set
// and a Manager wired to sink and rec, mirroring how a game loop would
// construct one per actor.
func newHarnessEntity(t *testing.T, id string, sink cues.Sink, rec *effectmetrics.Recorder) *effect.BasicEntity {
	t.Helper()
	attrs := attribute.NewSet(id, channelCount)
	attrs.Register("Health", -9999, 9999, 100)
	attrs.Register("Mana", 0, 9999, 50)
	return effect.NewBasicEntity(id, attrs, tags.NewSet(),
		effect.WithCueSink(sink),
		effect.WithMetrics(rec),
	)
}

func healthOf(t *testing.T, e *effect.BasicEntity) int {
	t.Helper()
	a, ok := e.AttributeSet().Get("Health")
	require.True(t, ok)
	return a.CurrentValue()
}

func manaOf(t *testing.T, e *effect.BasicEntity) int {
	t.Helper()
	a, ok := e.AttributeSet().Get("Mana")
	require.True(t, ok)
	return a.CurrentValue()
}
