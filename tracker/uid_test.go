package tracker

import (
	"errors"
	"testing"
	"time"
)

func TestDeriveUID_Deterministic(t *testing.T) {
	a := Assignment{Due: due(t, "2025-03-01T08:00:00-05:00"), Name: "HW1"}
	b := Assignment{Due: due(t, "2025-03-01T08:00:00-05:00"), Name: "HW1"}

	if DeriveUID(a) != DeriveUID(b) {
		t.Fatalf("equal assignments produced different UIDs: %s vs %s", DeriveUID(a), DeriveUID(b))
	}
}

func TestDeriveUID_SameInstantDifferentOffset(t *testing.T) {
	a := Assignment{Due: due(t, "2025-03-01T08:00:00-05:00"), Name: "HW1"}
	b := Assignment{Due: due(t, "2025-03-01T13:00:00Z"), Name: "HW1"}

	if DeriveUID(a) != DeriveUID(b) {
		t.Fatalf("same instant in different offsets produced different UIDs")
	}
}

func TestDeriveUID_ChangesWithEachField(t *testing.T) {
	base := Assignment{Due: due(t, "2025-03-01T08:00:00Z"), Name: "HW1"}

	renamed := base
	renamed.Name = "HW2"
	if DeriveUID(base) == DeriveUID(renamed) {
		t.Error("changing the name should change the UID")
	}

	moved := base
	moved.Due = base.Due.Add(time.Minute)
	if DeriveUID(base) == DeriveUID(moved) {
		t.Error("changing the due time should change the UID")
	}
}

func TestUIDStringRoundTrip(t *testing.T) {
	uid := DeriveUID(Assignment{Due: due(t, "2025-03-01T08:00:00Z"), Name: "HW1"})

	text := uid.String()
	if len(text) != 16 {
		t.Fatalf("expected 16 hex digits, got %q", text)
	}

	parsed, err := ParseUID(text)
	if err != nil {
		t.Fatalf("parse uid: %v", err)
	}
	if parsed != uid {
		t.Fatalf("expected %s, got %s", uid, parsed)
	}
}

func TestParseUID_Invalid(t *testing.T) {
	for _, value := range []string{"", "abc", "zzzzzzzzzzzzzzzz", "0123456789abcdef0"} {
		if _, err := ParseUID(value); !errors.Is(err, ErrInvalidUID) {
			t.Errorf("ParseUID(%q) error = %v, want ErrInvalidUID", value, err)
		}
	}
}

func TestCompletionDoesNotChangeIdentity(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreateClass(t, store, "CS101")
	a := Assignment{Due: due(t, "2025-03-01T08:00:00Z"), Name: "HW1"}
	uid := mustCreateAssignment(t, store, "CS101", a)

	for _, completed := range []bool{true, false} {
		if err := store.SetCompletion(uid, completed); err != nil {
			t.Fatalf("set completion: %v", err)
		}
		got, err := store.Assignment(uid)
		if err != nil {
			t.Fatalf("assignment lookup after toggle: %v", err)
		}
		if !got.Equal(a) || DeriveUID(got) != uid {
			t.Fatalf("toggling completion changed the assignment: %+v", got)
		}
	}
}
