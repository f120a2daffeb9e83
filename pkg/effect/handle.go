package effect

// Handle is an opaque, generation-indexed reference to an ActiveEffect
// (spec §9: "use generation-indexed slots so an expired handle cannot
// accidentally alias a reused slot"). The zero Handle never refers to a
// live ActiveEffect.
type Handle struct {
	slot       int
	generation uint64
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.generation == 0 }

// handleTable allocates and recycles Handles for a single EffectsManager.
// Slots are reused after an ActiveEffect is removed, but the generation
// counter for that slot is bumped first, so any previously issued Handle
// referencing the old occupant compares unequal to the new one.
type handleTable struct {
	slots []handleSlot
	free  []int
}

type handleSlot struct {
	generation uint64
	occupied   bool
	active     *ActiveEffect
}

func newHandleTable() *handleTable {
	return &handleTable{}
}

// alloc reserves a slot for active and returns its Handle.
func (t *handleTable) alloc(active *ActiveEffect) Handle {
	if n := len(t.free); n > 0 {
		slot := t.free[n-1]
		t.free = t.free[:n-1]
		s := &t.slots[slot]
		s.generation++
		s.occupied = true
		s.active = active
		return Handle{slot: slot, generation: s.generation}
	}
	slot := len(t.slots)
	t.slots = append(t.slots, handleSlot{generation: 1, occupied: true, active: active})
	return Handle{slot: slot, generation: 1}
}

// resolve returns the ActiveEffect referenced by h, or nil if h is stale
// or zero. Using an expired handle fails silently (spec §5).
func (t *handleTable) resolve(h Handle) *ActiveEffect {
	if h.IsZero() || h.slot < 0 || h.slot >= len(t.slots) {
		return nil
	}
	s := &t.slots[h.slot]
	if !s.occupied || s.generation != h.generation {
		return nil
	}
	return s.active
}

// release frees h's slot for reuse and invalidates h.
func (t *handleTable) release(h Handle) {
	if h.IsZero() || h.slot < 0 || h.slot >= len(t.slots) {
		return
	}
	s := &t.slots[h.slot]
	if !s.occupied || s.generation != h.generation {
		return
	}
	s.occupied = false
	s.active = nil
	t.free = append(t.free, h.slot)
}

// active returns every currently occupied slot's ActiveEffect, in slot
// order (which is installation order for slots never recycled within the
// same run, matching spec §5's "installation order is stable").
func (t *handleTable) active() []*ActiveEffect {
	out := make([]*ActiveEffect, 0, len(t.slots))
	for i := range t.slots {
		if t.slots[i].occupied {
			out = append(out, t.slots[i].active)
		}
	}
	return out
}
