// Command wordcloud-run executes the aggregation pipeline over a
// session snapshot (or a JSONL export) and prints the ranked groups and
// run diagnostics as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/cjzhi98/wordcloud/internal/feed"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/config"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/store"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/store/sqlite"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/threshold"
)

func main() {
	var (
		dbPath      = flag.String("db", "", "Path to the SQLite store")
		session     = flag.String("session", "", "Session ID to process")
		input       = flag.String("input", "", "JSONL file to process instead of a stored session")
		lexicon     = flag.String("lexicon", "", "Optional lexicon YAML overriding the embedded defaults")
		density     = flag.String("density", "medium", "Display density: low, medium or high")
		fullPhrases = flag.Bool("full-phrases", true, "Surface dominant full variants as display text")
		minMode     = flag.String("min-mode", "auto", "Minimum-occurrence mode: auto or manual")
		minOcc      = flag.Int("min", 1, "Manual minimum occurrence (1..10)")
		sensitivity = flag.String("spam-sensitivity", "medium", "Spam sensitivity: low, medium or high")
		spamFilter  = flag.Bool("spam-filter", true, "Reject gibberish before tokenization")
		grouping    = flag.Bool("grouping", true, "Cluster phrase variants into semantic groups")
		stripFill   = flag.Bool("strip-fillers", false, "Strip filler words from the normalized form")
		stem        = flag.Bool("stem", false, "Stem English key phrases before clustering")
	)
	flag.Parse()

	if *input == "" && (*dbPath == "" || *session == "") {
		log.Fatal("either --input or both --db and --session required")
	}

	loader := &config.Loader{
		LexiconPath:    *lexicon,
		StripFillers:   *stripFill,
		StemKeyPhrases: *stem,
	}
	components, err := loader.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	engine := wordcloud.New(components.Dispatcher, components.Spam)

	submissions, err := loadSubmissions(*dbPath, *session, *input)
	if err != nil {
		log.Fatalf("load submissions: %v", err)
	}

	opts := wordcloud.Options{
		DisplayDensity:         wordcloud.DisplayDensity(*density),
		ShowFullPhrases:        *fullPhrases,
		MinOccurrenceMode:      wordcloud.MinOccurrenceMode(*minMode),
		ManualMinOccurrence:    *minOcc,
		SpamSensitivity:        threshold.Sensitivity(*sensitivity),
		EnableSpamFilter:       *spamFilter,
		EnableSemanticGrouping: *grouping,
	}

	result := engine.Process(submissions, opts)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}

func loadSubmissions(dbPath, session, input string) ([]wordcloud.Submission, error) {
	if input != "" {
		entries, err := feed.LoadJSONL(input)
		if err != nil {
			return nil, err
		}
		subs := make([]wordcloud.Submission, len(entries))
		for i, e := range entries {
			subs[i] = wordcloud.Submission{
				Text:             e.Text,
				Color:            e.Color,
				ParticipantLabel: e.ParticipantLabel,
				CreatedAt:        e.CreatedAt,
			}
		}
		return subs, nil
	}

	ctx := context.Background()
	st, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	snapshot, err := st.Snapshot(ctx, session)
	if err != nil {
		return nil, err
	}
	return fromStore(snapshot), nil
}

func fromStore(snapshot []store.Submission) []wordcloud.Submission {
	subs := make([]wordcloud.Submission, len(snapshot))
	for i, s := range snapshot {
		subs[i] = wordcloud.Submission{
			Text:             s.Text,
			Color:            s.Color,
			ParticipantLabel: s.ParticipantLabel,
			CreatedAt:        s.CreatedAt,
		}
	}
	return subs
}
