package cues

import (
	"sync"

	"github.com/google/uuid"
)

// Event carries the identifying information common to every cue
// notification. EffectName is the owning EffectData's name, not a
// per-application instance ID, so hosts can key presentation assets off of
// it directly. EventID is a fresh correlation ID stamped on every emitted
// cue, following the same request-correlation-ID pattern the host RPG
// engine uses for its HTTP middleware, so a presentation layer fanning a
// single cue out to multiple subscribers (VFX, audio, UI) can de-duplicate
// or trace them back to one emission.
type Event struct {
	EventID    string
	EffectName string
	TargetID   string
	SourceID   string
	StackCount int
	// Params holds custom cue parameters. Events emitted by the effects
	// engine always carry nil Params: calculator and execution output is
	// not forwarded into it.
	Params map[string]any
}

// NewEvent returns an Event with a freshly generated EventID and the given
// fields set.
func NewEvent(effectName, targetID, sourceID string, stackCount int) Event {
	return Event{
		EventID:    uuid.New().String(),
		EffectName: effectName,
		TargetID:   targetID,
		SourceID:   sourceID,
		StackCount: stackCount,
	}
}

// Sink is the collaborator interface the EffectsManager calls synchronously
// and without awaiting. Implementations must not block: the engine is
// single-threaded and a blocking sink stalls the caller's tick.
type Sink interface {
	OnApply(Event)
	OnExecute(Event)
	OnRemove(Event)
	OnStackChange(Event)
}

// NoopSink discards every cue. It is the EffectsManager's default Sink
// when none is supplied.
type NoopSink struct{}

func (NoopSink) OnApply(Event)       {}
func (NoopSink) OnExecute(Event)     {}
func (NoopSink) OnRemove(Event)      {}
func (NoopSink) OnStackChange(Event) {}

// Record is a single captured cue, tagged with the method that produced
// it, for assertions in tests.
type Record struct {
	Method string
	Event  Event
}

// RecordingSink captures every cue it receives, in order, for use in
// tests that assert on cue sequencing (spec §8: "Cue notifications fire
// on apply, on stack change, on periodic execution, and on removal").
type RecordingSink struct {
	mu      sync.Mutex
	records []Record
}

// NewRecordingSink returns an empty RecordingSink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) record(method string, e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, Record{Method: method, Event: e})
}

func (s *RecordingSink) OnApply(e Event)       { s.record("OnApply", e) }
func (s *RecordingSink) OnExecute(e Event)     { s.record("OnExecute", e) }
func (s *RecordingSink) OnRemove(e Event)      { s.record("OnRemove", e) }
func (s *RecordingSink) OnStackChange(e Event) { s.record("OnStackChange", e) }

// Records returns a copy of every cue captured so far, in emission order.
func (s *RecordingSink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}
