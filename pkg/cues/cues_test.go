package cues

import "testing"

func TestRecordingSink_CapturesInOrder(t *testing.T) {
	sink := NewRecordingSink()

	sink.OnApply(Event{EffectName: "Burning", TargetID: "t1"})
	sink.OnExecute(Event{EffectName: "Burning", TargetID: "t1"})
	sink.OnRemove(Event{EffectName: "Burning", TargetID: "t1"})

	records := sink.Records()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	wantMethods := []string{"OnApply", "OnExecute", "OnRemove"}
	for i, want := range wantMethods {
		if records[i].Method != want {
			t.Errorf("records[%d].Method = %s, want %s", i, records[i].Method, want)
		}
	}
}

func TestNoopSink_NeverPanics(t *testing.T) {
	var s Sink = NoopSink{}
	s.OnApply(Event{})
	s.OnExecute(Event{})
	s.OnRemove(Event{})
	s.OnStackChange(Event{})
}
