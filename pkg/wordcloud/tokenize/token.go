// Package tokenize turns one surviving submission into a normalized form
// and a single extracted key phrase, with one strategy per detected
// language.
package tokenize

import (
	"strings"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/langdetect"
)

// Type describes the shape of the extracted token. Informational only;
// grouping does not branch on it.
type Type string

const (
	TypeWord     Type = "word"
	TypePhrase   Type = "phrase"
	TypeCompound Type = "compound"
)

// Token is the unit produced by tokenization.
//
// Normalized is the within-group dedup key; KeyPhrase is the
// across-variant clustering key. Both are non-empty whenever Original is
// non-empty.
type Token struct {
	Original   string
	Normalized string
	KeyPhrase  string
	Language   langdetect.Language
	Type       Type
}

// Strategy extracts a token for one language family.
type Strategy interface {
	Tokenize(text string) (Token, error)
}

// Fallback treats the whole trimmed, lower-cased input as both the
// normalized form and the key phrase. Every strategy degrades to this on
// internal failure so that one bad input never aborts a batch.
func Fallback(text string, lang langdetect.Language) Token {
	norm := strings.ToLower(strings.TrimSpace(text))
	return Token{
		Original:   text,
		Normalized: norm,
		KeyPhrase:  norm,
		Language:   lang,
		Type:       TypeWord,
	}
}

// Dispatcher routes a text to the strategy for its detected language.
// It is the failure boundary demanded of tokenization: strategy errors
// and panics both degrade to the identity fallback.
type Dispatcher struct {
	detector *langdetect.Detector
	chinese  Strategy
	english  Strategy
	malay    Strategy
	mixed    Strategy

	// OnFallback, when set, observes every degraded tokenization.
	OnFallback func(text string, lang langdetect.Language, err error)
}

// NewDispatcher wires the per-language strategies. The mixed composite is
// built from the given Chinese and English strategies.
func NewDispatcher(detector *langdetect.Detector, chinese, english, malay Strategy) *Dispatcher {
	return &Dispatcher{
		detector: detector,
		chinese:  chinese,
		english:  english,
		malay:    malay,
		mixed:    &MixedStrategy{Chinese: chinese, English: english},
	}
}

// Tokenize detects the language and runs the matching strategy. It never
// returns an error and never panics past this boundary.
func (d *Dispatcher) Tokenize(text string) Token {
	lang := d.detector.Detect(text)

	var strat Strategy
	switch lang {
	case langdetect.Chinese:
		strat = d.chinese
	case langdetect.Malay:
		strat = d.malay
	case langdetect.Mixed:
		strat = d.mixed
	default:
		strat = d.english
	}

	tok, err := safeTokenize(strat, text)
	if err != nil {
		if d.OnFallback != nil {
			d.OnFallback(text, lang, err)
		}
		tok = Fallback(text, lang)
	}
	tok.Language = lang
	if tok.Normalized == "" || tok.KeyPhrase == "" {
		tok = Fallback(text, lang)
		tok.Language = lang
	}
	return tok
}

func safeTokenize(s Strategy, text string) (tok Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{val: r}
		}
	}()
	return s.Tokenize(text)
}

type panicError struct{ val any }

func (e *panicError) Error() string { return "tokenize: strategy panic" }
