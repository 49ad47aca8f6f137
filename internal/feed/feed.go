// Package feed loads submissions from JSONL files for the CLIs.
package feed

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Entry is one submission line in a JSONL export.
type Entry struct {
	Text             string    `json:"text"`
	Color            string    `json:"color"`
	ParticipantLabel string    `json:"participant"`
	CreatedAt        time.Time `json:"created_at"`
}

// LoadJSONL reads entries from a JSONL file, skipping malformed lines
// with a warning rather than failing the whole load.
func LoadJSONL(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var entries []Entry
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			logrus.WithFields(logrus.Fields{
				"file": path,
				"line": i + 1,
			}).Warnf("skipping malformed JSON: %v", err)
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no valid entries found in %s", path)
	}
	return entries, nil
}
