package attribute

import "testing"

func TestSet_RegisterAndGet(t *testing.T) {
	s := NewSet("TestAttributeSet", 4)

	s.Register("Attribute1", 0, 9999, 1)
	s.Register("Attribute2", -10, 10, 0)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	a, ok := s.Get("TestAttributeSet.Attribute1")
	if !ok {
		t.Fatal("expected to find TestAttributeSet.Attribute1")
	}
	if a.BaseValue() != 1 {
		t.Errorf("BaseValue = %d, want 1", a.BaseValue())
	}

	if _, ok := s.Get("TestAttributeSet.NoSuchAttribute"); ok {
		t.Error("expected lookup of unregistered key to fail")
	}
}

func TestSet_Keys_PreservesRegistrationOrder(t *testing.T) {
	s := NewSet("Set", 4)
	s.Register("C", 0, 1, 0)
	s.Register("A", 0, 1, 0)
	s.Register("B", 0, 1, 0)

	got := s.Keys()
	want := []string{"Set.C", "Set.A", "Set.B"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSet_Register_DuplicateKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()

	s := NewSet("Set", 4)
	s.Register("Attr", 0, 1, 0)
	s.Register("Attr", 0, 1, 0)
}

func TestSet_Name(t *testing.T) {
	s := NewSet("TestAttributeSet", 4)
	if s.Name() != "TestAttributeSet" {
		t.Errorf("Name() = %q, want %q", s.Name(), "TestAttributeSet")
	}
}
