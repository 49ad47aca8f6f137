// Command wordcloud-ingest appends submissions from a JSONL export to a
// session store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/cjzhi98/wordcloud/internal/feed"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/store"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/store/sqlite"
)

func main() {
	var (
		dbPath   = flag.String("db", "wordcloud.db", "Path to the SQLite store")
		session  = flag.String("session", "", "Session ID (empty creates a new session)")
		question = flag.String("question", "", "Question for a newly created session")
		input    = flag.String("input", "", "Path to JSONL file (required)")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	sessionID := *session
	if sessionID == "" {
		sess, err := st.CreateSession(ctx, *question)
		if err != nil {
			log.Fatalf("create session: %v", err)
		}
		sessionID = sess.ID
	} else {
		if _, found, err := st.GetSession(ctx, sessionID); err != nil {
			log.Fatalf("get session: %v", err)
		} else if !found {
			log.Fatalf("session %s not found", sessionID)
		}
	}

	entries, err := feed.LoadJSONL(*input)
	if err != nil {
		log.Fatalf("load input: %v", err)
	}

	for _, entry := range entries {
		sub := store.Submission{
			Text:             entry.Text,
			Color:            entry.Color,
			ParticipantLabel: entry.ParticipantLabel,
			CreatedAt:        entry.CreatedAt,
		}
		if err := st.AppendSubmission(ctx, sessionID, sub); err != nil {
			log.Fatalf("append submission: %v", err)
		}
	}

	fmt.Printf("session %s: %d submissions appended\n", sessionID, len(entries))
}
