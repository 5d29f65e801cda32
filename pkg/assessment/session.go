package assessment

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Edit errors returned by Session.
var (
	ErrEditsLocked      = errors.New("assessment: edits are blocked until the NDA is signed")
	ErrUnknownCriterion = errors.New("assessment: sub-criterion not in catalog")
)

// Edit transforms a private copy of the assessment.
type Edit func(a *Assessment) error

// Session is the single owned handle over an assessment. Every edit is
// applied to a copy which replaces the current tree only if the edit and
// validation succeed, so readers never observe a half-applied edit.
type Session struct {
	mu      sync.RWMutex
	current *Assessment
	now     func() time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock overrides the clock used to stamp UpdatedAt.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession validates a and takes ownership of a private copy of it.
func NewSession(a *Assessment, opts ...SessionOption) (*Session, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		current: a.Clone(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Snapshot returns a copy of the current assessment.
func (s *Session) Snapshot() *Assessment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Apply runs edit against a copy of the current tree, validates the result,
// stamps UpdatedAt and swaps it in.
func (s *Session) Apply(edit Edit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	if err := edit(next); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("assessment: edit left an invalid tree: %w", err)
	}
	next.UpdatedAt = s.now()
	s.current = next
	return nil
}

// SetScore records an answer for a catalog question.
func (s *Session) SetScore(fn FunctionName, d Dimension, key string, score int) error {
	return s.Apply(func(a *Assessment) error {
		sub, err := editableSub(a, fn, d, key)
		if err != nil {
			return err
		}
		sub.Score = IntPtr(score)
		slog.Debug("score recorded", "function", fn, "component", d, "key", key, "score", score)
		return nil
	})
}

// ClearScore marks a question as unanswered again.
func (s *Session) ClearScore(fn FunctionName, d Dimension, key string) error {
	return s.Apply(func(a *Assessment) error {
		sub, err := editableSub(a, fn, d, key)
		if err != nil {
			return err
		}
		sub.Score = nil
		return nil
	})
}

// SetNote records a note for a catalog question. Creating a sub-criterion
// through a note leaves it unanswered.
func (s *Session) SetNote(fn FunctionName, d Dimension, key, note string) error {
	return s.Apply(func(a *Assessment) error {
		sub, err := editableSub(a, fn, d, key)
		if err != nil {
			return err
		}
		sub.Note = note
		return nil
	})
}

// SetConsent changes the NDA state. It is always permitted.
func (s *Session) SetConsent(c Consent) error {
	if _, err := ParseConsent(string(c)); err != nil {
		return err
	}
	return s.Apply(func(a *Assessment) error {
		a.NDA = c
		return nil
	})
}

// SetScope replaces the functions flagged as in scope.
func (s *Session) SetScope(names ...FunctionName) error {
	return s.Apply(func(a *Assessment) error {
		a.Scope = NewActiveSet(names...).Names()
		return nil
	})
}

// editableSub enforces the consent gate and catalog membership, then returns
// the sub-criterion for key, creating it if this is the first edit.
func editableSub(a *Assessment, fn FunctionName, d Dimension, key string) (*SubCriterion, error) {
	if a.NDA != ConsentSigned {
		return nil, ErrEditsLocked
	}
	if _, ok := CatalogItem(fn, d, key); !ok {
		return nil, fmt.Errorf("%w: %s/%s/%s", ErrUnknownCriterion, fn, d, key)
	}
	bf := a.Function(fn)
	if bf == nil {
		return nil, fmt.Errorf("%s: %w", fn, ErrMissingFunction)
	}
	comp := bf.Component(d)
	if comp == nil {
		return nil, fmt.Errorf("%s/%s: %w", fn, d, ErrMissingDimension)
	}
	if sub := comp.Lookup(key); sub != nil {
		return sub, nil
	}
	comp.Sub = append(comp.Sub, SubCriterion{Key: key})
	return &comp.Sub[len(comp.Sub)-1], nil
}
