package tokenize

import (
	"strings"
	"unicode/utf8"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/langdetect"
)

// MixedStrategy handles code-mixed input (CJK plus Latin script in one
// submission) by running both the Chinese and English strategies and
// keeping whichever produced the longer normalized form, i.e. the one
// that understood more of the input.
type MixedStrategy struct {
	Chinese Strategy
	English Strategy
}

// Tokenize implements Strategy.
func (m *MixedStrategy) Tokenize(text string) (Token, error) {
	zh, zhErr := m.Chinese.Tokenize(text)
	en, enErr := m.English.Tokenize(text)

	if zhErr != nil && enErr != nil {
		return Token{}, zhErr
	}
	if zhErr != nil {
		return tagMixed(en), nil
	}
	if enErr != nil {
		return tagMixed(zh), nil
	}

	// Spaces are stripped from the comparison so that the segmenter's
	// concatenated output competes fairly with a spaced English phrase.
	if meaningfulLen(zh.Normalized) >= meaningfulLen(en.Normalized) {
		return tagMixed(zh), nil
	}
	return tagMixed(en), nil
}

func tagMixed(tok Token) Token {
	tok.Language = langdetect.Mixed
	return tok
}

func meaningfulLen(s string) int {
	return utf8.RuneCountInString(strings.ReplaceAll(s, " ", ""))
}
