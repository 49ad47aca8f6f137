// Package sqlite is the durable store.Store implementation.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/internalerr"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/store"
)

type sqliteStore struct {
	db  *sql.DB
	ids *store.IDSource
}

// Open opens (creating if needed) a SQLite database with WAL mode
// enabled and the schema initialized.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL for concurrent readers during ingest.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db, ids: store.NewIDSource()}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	question TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS submissions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	text TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	participant TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_submissions_session ON submissions(session_id);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *sqliteStore) CreateSession(ctx context.Context, question string) (store.Session, error) {
	sess := store.Session{
		ID:        s.ids.Next(),
		Question:  question,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, question, created_at) VALUES (?, ?, ?)",
		sess.ID, sess.Question, sess.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return store.Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *sqliteStore) GetSession(ctx context.Context, id string) (store.Session, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, question, created_at FROM sessions WHERE id = ?", id)

	var sess store.Session
	var createdAt string
	if err := row.Scan(&sess.ID, &sess.Question, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return store.Session{}, false, nil
		}
		return store.Session{}, false, err
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return sess, true, nil
}

func (s *sqliteStore) Sessions(ctx context.Context) ([]store.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, question, created_at FROM sessions ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Session
	for rows.Next() {
		var sess store.Session
		var createdAt string
		if err := rows.Scan(&sess.ID, &sess.Question, &createdAt); err != nil {
			return nil, err
		}
		sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *sqliteStore) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return internalerr.ErrNotFound
	}
	return nil
}

func (s *sqliteStore) AppendSubmission(ctx context.Context, sessionID string, sub store.Submission) error {
	if _, found, err := s.GetSession(ctx, sessionID); err != nil {
		return err
	} else if !found {
		return internalerr.ErrNotFound
	}

	createdAt := sub.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO submissions (session_id, text, color, participant, created_at) VALUES (?, ?, ?, ?, ?)",
		sessionID, sub.Text, sub.Color, sub.ParticipantLabel, createdAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append submission: %w", err)
	}
	return nil
}

func (s *sqliteStore) Snapshot(ctx context.Context, sessionID string) ([]store.Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT text, color, participant, created_at FROM submissions WHERE session_id = ? ORDER BY id",
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Submission
	for rows.Next() {
		var sub store.Submission
		var createdAt string
		if err := rows.Scan(&sub.Text, &sub.Color, &sub.ParticipantLabel, &createdAt); err != nil {
			return nil, err
		}
		sub.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, sub)
	}
	return out, rows.Err()
}
