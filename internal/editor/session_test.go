package editor

import (
	"errors"
	"testing"
)

func TestStart_TriggeringDigit(t *testing.T) {
	for _, kind := range []NumericKind{Integer, Float} {
		s := Start(NewNumeric(kind), InitParams{Value: int64(10), CharPress: "5"})

		if s.State() != StateEditing {
			t.Errorf("%s: state = %s, want editing", kind, s.State())
		}
		if s.Cancelled() {
			t.Errorf("%s: session cancelled", kind)
		}
		if got := s.CurrentValue(); got != "5" {
			t.Errorf("%s: CurrentValue() = %q, want %q", kind, got, "5")
		}
		if got := s.InitialCharacter(); got != "5" {
			t.Errorf("%s: InitialCharacter() = %q, want %q", kind, got, "5")
		}
	}
}

func TestStart_TriggeringLetterCancels(t *testing.T) {
	for _, kind := range []NumericKind{Integer, Float} {
		s := Start(NewNumeric(kind), InitParams{Value: int64(10), CharPress: "a"})

		if !s.Cancelled() {
			t.Fatalf("%s: session not cancelled", kind)
		}
		if err := s.Attach(); !errors.Is(err, ErrNotEditing) {
			t.Errorf("%s: Attach() error = %v, want ErrNotEditing", kind, err)
		}
		if _, err := s.Key("1"); !errors.Is(err, ErrNotEditing) {
			t.Errorf("%s: Key() error = %v, want ErrNotEditing", kind, err)
		}
		if _, err := s.Commit(); !errors.Is(err, ErrCancelledBeforeStart) {
			t.Errorf("%s: Commit() error = %v, want ErrCancelledBeforeStart", kind, err)
		}
	}
}

func TestStart_NoKeystrokeUsesPriorValue(t *testing.T) {
	s := Start(NewNumeric(Integer), InitParams{Value: int64(42)})
	if got := s.CurrentValue(); got != "42" {
		t.Errorf("CurrentValue() = %q, want %q", got, "42")
	}
}

func TestSession_AttachFocuses(t *testing.T) {
	s := Start(NewNumeric(Float), InitParams{Value: 1.5})
	if s.Editor().View().Focused {
		t.Fatal("focused before attach")
	}
	if err := s.Attach(); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if !s.Editor().View().Focused {
		t.Error("not focused after attach")
	}
}

func TestSession_CommitIdempotent(t *testing.T) {
	s := Start(NewNumeric(Float), InitParams{CharPress: "3"})
	s.Key(".")
	s.Key("1")

	first, err := s.Commit()
	if err != nil {
		t.Fatalf("first Commit() error = %v", err)
	}
	second, err := s.Commit()
	if err != nil {
		t.Fatalf("second Commit() error = %v", err)
	}
	if first != "3.10" || second != first {
		t.Errorf("commits = %q, %q, want %q twice", first, second, "3.10")
	}
	if s.State() != StateCommitted {
		t.Errorf("state = %s, want committed", s.State())
	}
	if _, err := s.Key("2"); !errors.Is(err, ErrNotEditing) {
		t.Errorf("Key() after commit error = %v, want ErrNotEditing", err)
	}
}

func TestSession_MalformedCommitKeepsEditing(t *testing.T) {
	s := Start(NewNumeric(Float), InitParams{CharPress: "1"})
	s.Key(".")
	s.Key(".")

	if _, err := s.Commit(); !errors.Is(err, ErrMalformedCommit) {
		t.Fatalf("Commit() error = %v, want ErrMalformedCommit", err)
	}
	if s.State() != StateEditing {
		t.Errorf("state = %s, want editing", s.State())
	}

	s.Key(KeyBackspace)
	got, err := s.Commit()
	if err != nil {
		t.Fatalf("Commit() after fix error = %v", err)
	}
	if got != "1.00" {
		t.Errorf("Commit() = %q, want %q", got, "1.00")
	}
}
