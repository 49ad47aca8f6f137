// Package store persists sessions and their raw submissions. The
// pipeline itself is read-only toward it: each poll cycle takes a full
// snapshot and rebuilds every group from scratch.
package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Session is one word-cloud collection round.
type Session struct {
	ID        string
	Question  string
	CreatedAt time.Time
}

// Submission is one raw participant entry. Immutable once stored; the
// core only reads it.
type Submission struct {
	Text             string
	Color            string
	ParticipantLabel string
	CreatedAt        time.Time
}

// Store is the entry-store interface shared by the sqlite and in-memory
// implementations.
type Store interface {
	Close() error

	CreateSession(ctx context.Context, question string) (Session, error)
	GetSession(ctx context.Context, id string) (Session, bool, error)
	Sessions(ctx context.Context) ([]Session, error)
	DeleteSession(ctx context.Context, id string) error

	AppendSubmission(ctx context.Context, sessionID string, s Submission) error
	// Snapshot returns all submissions for a session in insertion order.
	Snapshot(ctx context.Context, sessionID string) ([]Submission, error)
}

// IDSource mints session identifiers. Safe for concurrent use: the
// monotonic entropy source is not, so Next serializes access to it.
type IDSource struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewIDSource creates a ULID generator backed by crypto/rand.
func NewIDSource() *IDSource {
	return &IDSource{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// Next returns a fresh session ID.
func (s *IDSource) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}
