package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/internalerr"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/store"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	sess, err := s.CreateSession(ctx, "favourite food?")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("session ID empty")
	}

	got, found, err := s.GetSession(ctx, sess.ID)
	if err != nil || !found {
		t.Fatalf("GetSession: found=%v err=%v", found, err)
	}
	if got.Question != "favourite food?" {
		t.Errorf("question = %q", got.Question)
	}

	if err := s.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, found, _ := s.GetSession(ctx, sess.ID); found {
		t.Error("session survived deletion")
	}
}

func TestDeleteMissingSession(t *testing.T) {
	s := New()
	err := s.DeleteSession(context.Background(), "nope")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSnapshotPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()

	sess, err := s.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if err := s.AppendSubmission(ctx, sess.ID, store.Submission{Text: text}); err != nil {
			t.Fatalf("AppendSubmission(%q): %v", text, err)
		}
	}

	snap, err := s.Snapshot(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap) != len(texts) {
		t.Fatalf("snapshot len = %d, want %d", len(snap), len(texts))
	}
	for i, text := range texts {
		if snap[i].Text != text {
			t.Errorf("snapshot[%d] = %q, want %q", i, snap[i].Text, text)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	sess, _ := s.CreateSession(ctx, "")
	s.AppendSubmission(ctx, sess.ID, store.Submission{Text: "original"})

	snap, _ := s.Snapshot(ctx, sess.ID)
	snap[0].Text = "mutated"

	again, _ := s.Snapshot(ctx, sess.ID)
	if again[0].Text != "original" {
		t.Error("snapshot aliases internal storage")
	}
}

func TestAppendToMissingSession(t *testing.T) {
	s := New()
	err := s.AppendSubmission(context.Background(), "ghost", store.Submission{Text: "x"})
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSessionsSortedByID(t *testing.T) {
	ctx := context.Background()
	s := New()
	for i := 0; i < 5; i++ {
		if _, err := s.CreateSession(ctx, ""); err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
	}

	sessions, err := s.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 5 {
		t.Fatalf("len = %d, want 5", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i-1].ID >= sessions[i].ID {
			t.Errorf("sessions out of order at %d: %s >= %s", i, sessions[i-1].ID, sessions[i].ID)
		}
	}
}
