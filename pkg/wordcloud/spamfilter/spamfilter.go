// Package spamfilter rejects low-information input before tokenization.
//
// The rules are intentionally conservative: this is a backstop against
// keyboard mashing, not a quality classifier. Aggressive heuristics were
// tried during tuning and removed again after producing false positives
// on legitimate input:
//
//   - no-vowel detection flagged loanwords and abbreviations ("hmm",
//     "tq", "grrr", "nvm")
//   - alphanumeric-mix detection flagged things like "mbti", "iphone15"
//   - a short-word whitelist rejected every legitimate word it had not
//     seen before
//
// Do not reintroduce those without new evidence; the regression tests in
// spamfilter_test.go pin the survivors.
package spamfilter

import (
	"strings"
	"unicode"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/langdetect"
)

// maxSingleWordLen caps a single Latin word with no internal whitespace.
// Anything longer is almost certainly mashing.
const maxSingleWordLen = 30

// keyboardRows lists full keyboard-row strings that only appear when
// someone drags a finger across the keyboard.
var keyboardRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"1234567890",
	"qwertyuiopasdfghjkl",
}

// Filter classifies gibberish. The zero value uses the default keyboard
// rows; construct with New to override them from config.
type Filter struct {
	rows []string
}

// New creates a filter. An empty rows slice keeps the defaults.
func New(rows []string) *Filter {
	if len(rows) == 0 {
		rows = keyboardRows
	}
	f := &Filter{rows: make([]string, 0, len(rows))}
	for _, r := range rows {
		f.rows = append(f.rows, strings.ToLower(r))
	}
	return f
}

// IsSpam applies the rule chain in order; the first matching rule wins.
// Pure function of its input, safe for concurrent use.
func (f *Filter) IsSpam(text string) bool {
	trimmed := strings.TrimSpace(text)

	// Rule 1: nothing there.
	if trimmed == "" {
		return true
	}

	// Rule 2: CJK is assumed intentional at any length. A single Chinese
	// character can be a complete legitimate word, and repetition like
	// "哈哈哈哈" is expressive, not mashing.
	if langdetect.ContainsCJK(trimmed) {
		return false
	}

	lower := strings.ToLower(trimmed)

	// Rule 3: 4+ identical consecutive characters ("aaaa", "!!!!").
	// Substring-based, so padding cannot launder a run.
	if hasRepeatedRun(lower, 4) {
		return true
	}

	// Rule 4: a short chunk repeated 3+ times contiguously ("asdasdasd").
	if hasRepeatedChunk(lower) {
		return true
	}

	// Rule 5: full keyboard rows anywhere in the text.
	for _, row := range f.rows {
		if strings.Contains(lower, row) {
			return true
		}
	}

	// Rule 6: one enormous Latin "word" with no whitespace. Any kind of
	// whitespace separator, newlines included, makes it a sentence.
	if !hasWhitespace(trimmed) && len([]rune(trimmed)) > maxSingleWordLen {
		return true
	}

	return false
}

func hasWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// hasRepeatedRun reports a run of n identical consecutive runes.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	count := 0
	for _, r := range s {
		if r == prev {
			count++
			if count >= n {
				return true
			}
		} else {
			prev = r
			count = 1
		}
	}
	return false
}

// hasRepeatedChunk reports a 2-3 rune substring repeated 3+ times
// contiguously, the classic "asdasdasd" keyboard-mash shape.
func hasRepeatedChunk(s string) bool {
	runes := []rune(s)
	for size := 2; size <= 3; size++ {
		if len(runes) < size*3 {
			continue
		}
		for start := 0; start+size*3 <= len(runes); start++ {
			chunk := string(runes[start : start+size])
			repeated := true
			for rep := 1; rep < 3; rep++ {
				if string(runes[start+rep*size:start+(rep+1)*size]) != chunk {
					repeated = false
					break
				}
			}
			if repeated {
				return true
			}
		}
	}
	return false
}
