// Package memstore is an in-memory store.Store for tests and examples.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/internalerr"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu          sync.RWMutex
	ids         *store.IDSource
	sessions    map[string]store.Session
	submissions map[string][]store.Submission
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		ids:         store.NewIDSource(),
		sessions:    make(map[string]store.Session),
		submissions: make(map[string][]store.Submission),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// CreateSession implements store.Store.
func (s *Store) CreateSession(ctx context.Context, question string) (store.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := store.Session{
		ID:       s.ids.Next(),
		Question: question,
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

// GetSession implements store.Store.
func (s *Store) GetSession(ctx context.Context, id string) (store.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	return sess, ok, nil
}

// Sessions returns all sessions ordered by ID (ULIDs sort by creation
// time).
func (s *Store) Sessions(ctx context.Context) ([]store.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteSession implements store.Store.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return internalerr.ErrNotFound
	}
	delete(s.sessions, id)
	delete(s.submissions, id)
	return nil
}

// AppendSubmission implements store.Store.
func (s *Store) AppendSubmission(ctx context.Context, sessionID string, sub store.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return internalerr.ErrNotFound
	}
	s.submissions[sessionID] = append(s.submissions[sessionID], sub)
	return nil
}

// Snapshot implements store.Store.
func (s *Store) Snapshot(ctx context.Context, sessionID string) ([]store.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := s.submissions[sessionID]
	out := make([]store.Submission, len(subs))
	copy(out, subs)
	return out, nil
}
