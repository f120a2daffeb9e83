package effect

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"forge/pkg/cues"
	"forge/pkg/effectmetrics"
	"forge/pkg/engineconfig"
)

const defaultMaxFixedPointPasses = 64

type bucketKey struct {
	data  *EffectData
	level int
}

type bucket struct {
	instances []*ActiveEffect
}

// ManagerOption configures a Manager at construction time.
type ManagerOption func(*Manager)

// WithCueSink overrides the Manager's cue.Sink; the default is
// cues.NoopSink{}.
func WithCueSink(sink cues.Sink) ManagerOption {
	return func(m *Manager) { m.cues = sink }
}

// WithMetrics attaches a metrics recorder; nil (the default) disables
// metrics entirely.
func WithMetrics(rec *effectmetrics.Recorder) ManagerOption {
	return func(m *Manager) { m.metrics = rec }
}

// WithMaxFixedPointPasses bounds the tag-consistency propagation loop of
// spec §4.7. The default is 64.
func WithMaxFixedPointPasses(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.maxFixedPointPasses = n
		}
	}
}

// WithLogger overrides the package-default logger.
func WithLogger(l *logrus.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// WithConfig applies an engineconfig.Config's MaxFixedPointPasses and
// StrictInvariants to the Manager. ChannelCount and MetricsEnabled are
// consumed by the host when building the entity's AttributeSet and
// deciding whether to pass WithMetrics, not by the Manager itself.
func WithConfig(cfg *engineconfig.Config) ManagerOption {
	return func(m *Manager) {
		if cfg == nil {
			return
		}
		if cfg.MaxFixedPointPasses > 0 {
			m.maxFixedPointPasses = cfg.MaxFixedPointPasses
		}
		m.strictInvariants = cfg.StrictInvariants
	}
}

// Manager is the per-entity registry of active effects: the public
// surface of the effects engine (spec §2, §6).
type Manager struct {
	entity  Entity
	handles *handleTable
	buckets map[bucketKey]*bucket

	cues    cues.Sink
	metrics *effectmetrics.Recorder
	logger  *logrus.Logger

	maxFixedPointPasses int
	strictInvariants    bool

	propagating bool

	immunities map[string]*ImmunityData
}

// NewManager creates a Manager for entity.
func NewManager(entity Entity, opts ...ManagerOption) *Manager {
	m := &Manager{
		entity:              entity,
		handles:             newHandleTable(),
		buckets:             make(map[bucketKey]*bucket),
		cues:                cues.NoopSink{},
		logger:              logrus.StandardLogger(),
		maxFixedPointPasses: defaultMaxFixedPointPasses,
		immunities:          make(map[string]*ImmunityData),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) log() *logrus.Entry {
	return m.logger.WithField("entity", m.entity.ID())
}

// ApplyEffect evaluates and installs effect against the manager's entity
// (spec §6). It returns the zero Handle, with no error, both when the
// effect was an Instant effect (nothing to track) and when it was
// rejected by application tag gates or stacking overflow under
// DenyApplication. err is non-nil only for a fatal condition (spec §7),
// e.g. ErrInvalidPeriod.
func (m *Manager) ApplyEffect(effect *Effect, payload any) (Handle, error) {
	data := effect.Data

	if data.TagReqs != nil && !requirementSatisfied(data.TagReqs.Application, m.entity.CombinedTags(), true) {
		m.recordRejection()
		return Handle{}, nil
	}

	resistScale := 1.0
	if im := m.immunityFor(data.Name); im != nil {
		if im.Blocks(data.DispelInfo, time.Now()) {
			m.recordRejection()
			return Handle{}, nil
		}
		if im.Resistance > 0 {
			resistScale = 1 - im.Resistance
		}
	}

	if data.Duration.Kind == DurationInstant {
		m.applyInstant(effect, payload, resistScale)
		return Handle{}, nil
	}

	if data.Stacking != nil {
		h, err := m.applyStacked(effect, payload, resistScale)
		if err == ErrInvalidPeriod {
			m.recordInvalidPeriod()
		}
		if err != nil {
			return Handle{}, err
		}
		return h, nil
	}

	ae := newActiveEffect(effect, m.entity, m, resistScale)
	ae.stacks = []StackEntry{{Count: 1, Level: effect.Level(), Source: effect.Source()}}
	if err := ae.install(payload); err != nil {
		if err == ErrInvalidPeriod {
			m.recordInvalidPeriod()
			return Handle{}, err
		}
		m.recordRejection()
		return Handle{}, nil
	}
	h := m.handles.alloc(ae)
	ae.handle = h
	m.propagateTagConsistency()
	m.recordApply(ae)
	return h, nil
}

func (m *Manager) applyInstant(effect *Effect, payload any, resistScale float64) {
	ev, err := buildEvaluatedEffect(effect, m.entity, payload, 1, resistScale)
	if err != nil {
		m.log().WithError(err).Error("effect: instant effect evaluation failed")
		return
	}
	attrs := m.entity.AttributeSet()
	if attrs == nil {
		return
	}
	for _, mod := range ev.Modifiers {
		a, found := attrs.Get(mod.AttributeKey)
		if !found {
			continue
		}
		a.ApplyInstant(mod.Operation, mod.Value)
	}
	sourceID := ""
	if s := effect.Source(); s != nil {
		sourceID = s.ID()
	}
	m.cues.OnExecute(cues.NewEvent(effect.Data.Name, m.entity.ID(), sourceID, 1))
}

// UnapplyEffect removes one stack from the ActiveEffect h refers to, or
// the whole bucket if forceRemoveAllStacks is true. It is synchronous and
// idempotent on an already-expired handle (spec §5, §6).
func (m *Manager) UnapplyEffect(h Handle, forceRemoveAllStacks bool) {
	ae := m.handles.resolve(h)
	if ae == nil {
		return
	}
	if !forceRemoveAllStacks && ae.StackCount() > 1 {
		ae.decrementOneStack()
		if err := ae.rebuild(nil, false); err != nil {
			m.log().WithError(err).Error("effect: rebuild after manual stack removal failed, expiring")
		} else {
			m.emitCue(cueOnStackChange, ae)
			return
		}
	}
	ae.expire()
	m.removeFromBucket(ae)
	m.handles.release(h)
	m.propagateTagConsistency()
}

// UpdateEffects advances every active effect on the manager's entity by
// dt (spec §4.4, §6).
func (m *Manager) UpdateEffects(dt time.Duration) {
	for _, ae := range m.handles.active() {
		wasExpired := ae.state == StateExpired
		ae.tick(dt)
		if !wasExpired && ae.state == StateExpired {
			m.removeFromBucket(ae)
			m.recordExpiration(ae)
		}
	}
	m.reclaimExpiredHandles()
	m.propagateTagConsistency()
}

func (m *Manager) reclaimExpiredHandles() {
	for _, ae := range m.handles.active() {
		if ae.state == StateExpired {
			m.handles.release(ae.handle)
		}
	}
}

// SetEffectLevel updates the level of the ActiveEffect h refers to and
// rebuilds its evaluated snapshot against the new level, so a level-keyed
// magnitude, duration, or period curve takes effect immediately rather
// than waiting on an unrelated recompute trigger. It is a no-op on a
// stale or zero handle.
func (m *Manager) SetEffectLevel(h Handle, level int) {
	ae := m.handles.resolve(h)
	if ae == nil {
		return
	}
	ae.effect.SetLevel(level)
	if err := ae.rebuild(nil, false); err != nil {
		ae.log().WithError(err).Error("effect: rebuild after level change failed, expiring")
		ae.expire()
		m.removeFromBucket(ae)
		m.propagateTagConsistency()
		return
	}
	m.propagateTagConsistency()
}

// EffectInfo is one bucket's introspection snapshot (spec §4.5's
// GetEffectInfo).
type EffectInfo struct {
	Data   *EffectData
	Stacks []StackEntry
	Handle Handle
}

// GetEffectInfo returns per-bucket stack-instance data for every
// installed ActiveEffect built from data.
func (m *Manager) GetEffectInfo(data *EffectData) []EffectInfo {
	var out []EffectInfo
	for _, ae := range m.handles.active() {
		if ae.effect.Data == data {
			out = append(out, EffectInfo{Data: data, Stacks: append([]StackEntry(nil), ae.stacks...), Handle: ae.handle})
		}
	}
	return out
}

func (m *Manager) removeFromBucket(ae *ActiveEffect) {
	if ae.effect.Data.Stacking == nil {
		return
	}
	key := bucketKeyFor(ae.effect.Data, ae.effect.Level())
	b, ok := m.buckets[key]
	if !ok {
		return
	}
	for i, inst := range b.instances {
		if inst == ae {
			b.instances = append(b.instances[:i], b.instances[i+1:]...)
			break
		}
	}
	if len(b.instances) == 0 {
		delete(m.buckets, key)
	}
}

func bucketKeyFor(data *EffectData, level int) bucketKey {
	key := bucketKey{data: data}
	if data.Stacking != nil && data.Stacking.LevelPolicy == SegregateLevels {
		key.level = level
	}
	return key
}

// onCaptureChanged is invoked synchronously (from an Attribute's observer
// callback) whenever a backing attribute ae depends on via a non-snapshot
// capture changes (spec §4.3, §4.4's "Recompute on capture change").
func (m *Manager) onCaptureChanged(ae *ActiveEffect) {
	ae.recompute(nil)
	m.propagateTagConsistency()
}

func (m *Manager) emitCue(kind cueKind, ae *ActiveEffect) {
	sourceID := ""
	if s := ae.effect.Source(); s != nil {
		sourceID = s.ID()
	}
	ev := cues.NewEvent(ae.effect.Data.Name, m.entity.ID(), sourceID, ae.StackCount())
	switch kind {
	case cueOnApply:
		m.cues.OnApply(ev)
	case cueOnExecute:
		m.cues.OnExecute(ev)
	case cueOnRemove:
		m.cues.OnRemove(ev)
	case cueOnStackChange:
		m.cues.OnStackChange(ev)
	}
}

type cueKind int

const (
	cueOnApply cueKind = iota
	cueOnExecute
	cueOnRemove
	cueOnStackChange
)

func (m *Manager) recordApply(ae *ActiveEffect) {
	if m.metrics != nil {
		m.metrics.RecordApply(ae.effect.Data.Name)
		m.metrics.SetActiveEffects(ae.effect.Data.Name, len(m.handles.active()))
	}
}

func (m *Manager) recordRejection() {
	if m.metrics != nil {
		m.metrics.RecordRejection()
	}
}

func (m *Manager) recordExpiration(ae *ActiveEffect) {
	if m.metrics != nil {
		m.metrics.RecordExpiration(ae.effect.Data.Name)
	}
}

func (m *Manager) recordExecution(ae *ActiveEffect) {
	if m.metrics != nil {
		m.metrics.RecordExecution(ae.effect.Data.Name)
	}
}

func (m *Manager) recordInvalidPeriod() {
	if m.metrics != nil {
		m.metrics.RecordInvalidPeriod()
	}
}

func (m *Manager) recordInhibitionToggle(ae *ActiveEffect) {
	if m.metrics != nil {
		m.metrics.RecordInhibitionToggle(ae.effect.Data.Name)
	}
}

// AddImmunity registers immunity against effects whose EffectData.Name is
// name, replacing any immunity previously registered under that name.
func (m *Manager) AddImmunity(name string, immunity ImmunityData) {
	m.immunities[name] = &immunity
}

// RemoveImmunity revokes a previously registered immunity, if any.
func (m *Manager) RemoveImmunity(name string) {
	delete(m.immunities, name)
}

// immunityFor returns the live immunity registered against name, pruning
// it first if it has expired.
func (m *Manager) immunityFor(name string) *ImmunityData {
	im, ok := m.immunities[name]
	if !ok {
		return nil
	}
	if !im.Active(time.Now()) {
		delete(m.immunities, name)
		return nil
	}
	return im
}

// DispelEffects removes up to count active effects whose DispelInfo marks
// them Removable and DispellableBy dispelType, highest DispelPriority
// first, breaking ties by installation order. It returns the names of the
// effects removed.
func (m *Manager) DispelEffects(dispelType DispelType, count int) []string {
	if count <= 0 {
		return nil
	}

	type candidate struct {
		ae       *ActiveEffect
		priority DispelPriority
	}

	var candidates []candidate
	for _, ae := range m.handles.active() {
		if ae.state == StateExpired {
			continue
		}
		di := ae.effect.Data.DispelInfo
		if !di.DispellableBy(dispelType) {
			continue
		}
		candidates = append(candidates, candidate{ae: ae, priority: di.Priority})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].priority > candidates[j].priority
	})

	var removed []string
	for i := 0; i < len(candidates) && i < count; i++ {
		ae := candidates[i].ae
		removed = append(removed, ae.effect.Data.Name)
		ae.expire()
		m.removeFromBucket(ae)
		m.handles.release(ae.handle)
		m.recordExpiration(ae)
	}

	if len(removed) > 0 {
		m.propagateTagConsistency()
	}
	return removed
}
