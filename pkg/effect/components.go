package effect

// propagateTagConsistency re-evaluates every installed effect's Removal
// and Ongoing tag requirements against the entity's current combined tags
// until a fixed point is reached, implementing spec §4.7's "propagate a
// consistency pass after any tag change until a fixed point is reached".
// Termination is guaranteed because each pass can only inhibit,
// un-inhibit, or remove an effect, and the state space per tick is
// finite; maxFixedPointPasses is a hard backstop against a misbehaving
// TagRequirements configuration that never settles.
func (m *Manager) propagateTagConsistency() {
	if m.propagating {
		return
	}
	m.propagating = true
	defer func() {
		m.propagating = false
		m.reclaimExpiredHandles()
	}()

	for pass := 0; pass < m.maxFixedPointPasses; pass++ {
		changed := false

		for _, ae := range m.handles.active() {
			if ae.state == StateExpired {
				continue
			}
			reqs := ae.effect.Data.TagReqs
			if reqs == nil {
				continue
			}
			combined := m.entity.CombinedTags()

			if requirementSatisfied(reqs.Removal, combined, false) {
				ae.expire()
				m.removeFromBucket(ae)
				m.recordExpiration(ae)
				changed = true
				continue
			}

			wantInhibited := !requirementSatisfied(reqs.Ongoing, combined, true)
			if wantInhibited != ae.inhibited() {
				ae.setInhibited(wantInhibited)
				changed = true
			}
		}

		if !changed {
			return
		}
	}

	m.log().Warn("effect: tag consistency propagation did not reach a fixed point within the pass budget")
}
