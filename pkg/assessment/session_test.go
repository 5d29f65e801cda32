package assessment

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func newSignedSession(t *testing.T, opts ...SessionOption) *Session {
	t.Helper()
	a := New("A1", "Durban Logistics", "Ops Baseline")
	a.NDA = ConsentSigned
	s, err := NewSession(a, opts...)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestSession_SetScoreCreatesSubCriterion(t *testing.T) {
	stamp := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newSignedSession(t, WithClock(func() time.Time { return stamp }))

	if err := s.SetScore(Operations, Functionality, "sops", 4); err != nil {
		t.Fatalf("SetScore: %v", err)
	}

	a := s.Snapshot()
	sub := a.Function(Operations).Component(Functionality).Lookup("sops")
	if sub == nil || sub.Score == nil || *sub.Score != 4 {
		t.Fatalf("expected sops answered with 4, got %+v", sub)
	}
	if !a.UpdatedAt.Equal(stamp) {
		t.Errorf("expected UpdatedAt %v, got %v", stamp, a.UpdatedAt)
	}
}

func TestSession_SetScoreUpdatesInPlace(t *testing.T) {
	s := newSignedSession(t)
	_ = s.SetScore(Operations, Friction, "rework", 1)
	if err := s.SetScore(Operations, Friction, "rework", 3); err != nil {
		t.Fatalf("SetScore: %v", err)
	}

	comp := s.Snapshot().Function(Operations).Component(Friction)
	if len(comp.Sub) != 1 {
		t.Fatalf("expected a single rework entry, got %d", len(comp.Sub))
	}
	if *comp.Sub[0].Score != 3 {
		t.Errorf("expected score 3, got %d", *comp.Sub[0].Score)
	}
}

func TestSession_NoteLeavesCriterionUnanswered(t *testing.T) {
	s := newSignedSession(t)
	if err := s.SetNote(CustomerExperience, DataFitness, "accuracy", "wrong entitlements, weekly"); err != nil {
		t.Fatalf("SetNote: %v", err)
	}

	sub := s.Snapshot().Function(CustomerExperience).Component(DataFitness).Lookup("accuracy")
	if sub == nil {
		t.Fatal("expected accuracy sub-criterion to exist")
	}
	if sub.Answered() {
		t.Errorf("a note alone must not answer the question, got score %d", *sub.Score)
	}
	if sub.Note != "wrong entitlements, weekly" {
		t.Errorf("unexpected note %q", sub.Note)
	}
}

func TestSession_EditsBlockedUntilSigned(t *testing.T) {
	a := New("A1", "c", "t")
	a.NDA = ConsentSent
	s, err := NewSession(a)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if err := s.SetScore(Operations, Functionality, "sops", 5); !errors.Is(err, ErrEditsLocked) {
		t.Errorf("expected ErrEditsLocked, got %v", err)
	}
	if err := s.SetNote(Operations, Functionality, "sops", "x"); !errors.Is(err, ErrEditsLocked) {
		t.Errorf("expected ErrEditsLocked for notes, got %v", err)
	}

	if err := s.SetConsent(ConsentSigned); err != nil {
		t.Fatalf("SetConsent: %v", err)
	}
	if err := s.SetScore(Operations, Functionality, "sops", 5); err != nil {
		t.Errorf("expected edit to succeed once signed, got %v", err)
	}
}

func TestSession_RejectsUnknownCriterion(t *testing.T) {
	s := newSignedSession(t)
	err := s.SetScore(SalesMarketing, Functionality, "sops", 3)
	if !errors.Is(err, ErrUnknownCriterion) {
		t.Errorf("expected ErrUnknownCriterion, got %v", err)
	}
	err = s.SetScore(Operations, Friction, "sops", 3)
	if !errors.Is(err, ErrUnknownCriterion) {
		t.Errorf("expected ErrUnknownCriterion for wrong dimension, got %v", err)
	}
}

func TestSession_FailedEditLeavesTreeUntouched(t *testing.T) {
	s := newSignedSession(t)
	before := s.Snapshot()

	err := s.Apply(func(a *Assessment) error {
		a.Client = "mutated"
		a.Functions = a.Functions[:2]
		return nil
	})
	if !errors.Is(err, ErrMissingFunction) {
		t.Fatalf("expected ErrMissingFunction, got %v", err)
	}

	after := s.Snapshot()
	if after.Client != before.Client || len(after.Functions) != len(before.Functions) {
		t.Errorf("failed edit leaked into session: %+v", after)
	}
}

func TestSession_SnapshotIsIsolated(t *testing.T) {
	s := newSignedSession(t)
	snap := s.Snapshot()
	snap.Client = "changed outside"

	if got := s.Snapshot().Client; got == "changed outside" {
		t.Error("mutating a snapshot must not change the session")
	}
}

func TestSession_ConcurrentEdits(t *testing.T) {
	s := newSignedSession(t)
	keys := []string{"sops", "roles", "systems", "integration", "measurement"}

	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(key string, score int) {
			defer wg.Done()
			if err := s.SetScore(Operations, Functionality, key, score); err != nil {
				t.Errorf("SetScore(%s): %v", key, err)
			}
			_ = s.Snapshot()
		}(key, i)
	}
	wg.Wait()

	comp := s.Snapshot().Function(Operations).Component(Functionality)
	if len(comp.Sub) != len(keys) {
		t.Errorf("expected %d answers, got %d", len(keys), len(comp.Sub))
	}
}

func TestNewSession_RejectsInvalidTree(t *testing.T) {
	a := New("A1", "c", "t")
	a.Functions = a.Functions[1:]
	if _, err := NewSession(a); !errors.Is(err, ErrMissingFunction) {
		t.Errorf("expected ErrMissingFunction, got %v", err)
	}
}
