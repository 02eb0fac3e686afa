// Package history keeps the submission log, newest first.
package history

import (
	"context"
	"fmt"
	"sync"

	"github.com/sandeepkv93/focusboard/internal/model"
)

// Mirror persists the log. SaveSubmissions receives the whole log, newest
// first, after every append.
type Mirror interface {
	SaveSubmissions(ctx context.Context, subs []model.Submission) error
	ClearSubmissions(ctx context.Context) error
}

// Store holds the log oldest first so Append is a slice append; readers see
// it newest first.
type Store struct {
	mu     sync.RWMutex
	subs   []model.Submission
	mirror Mirror
}

// NewStore seeds the log with initial, which must already be newest first.
// mirror may be nil.
func NewStore(initial []model.Submission, mirror Mirror) *Store {
	subs := make([]model.Submission, 0, len(initial))
	for i := len(initial) - 1; i >= 0; i-- {
		subs = append(subs, initial[i].Clone())
	}
	return &Store{subs: subs, mirror: mirror}
}

// Append places s at the front of the log. A mirror failure is returned but
// the in-memory append stands.
func (s *Store) Append(ctx context.Context, sub model.Submission) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.subs = append(s.subs, sub.Clone())
	snapshot := s.newestFirstLocked()
	s.mu.Unlock()
	if s.mirror == nil {
		return nil
	}
	if err := s.mirror.SaveSubmissions(ctx, snapshot); err != nil {
		return fmt.Errorf("history: persist submissions: %w", err)
	}
	return nil
}

// Clear drops every submission. Callers confirm with the user first.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.subs = nil
	s.mu.Unlock()
	if s.mirror == nil {
		return nil
	}
	if err := s.mirror.ClearSubmissions(ctx); err != nil {
		return fmt.Errorf("history: clear submissions: %w", err)
	}
	return nil
}

// All returns a copy of the log, newest first.
func (s *Store) All() []model.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestFirstLocked()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *Store) newestFirstLocked() []model.Submission {
	out := make([]model.Submission, 0, len(s.subs))
	for i := len(s.subs) - 1; i >= 0; i-- {
		out = append(out, s.subs[i].Clone())
	}
	return out
}
