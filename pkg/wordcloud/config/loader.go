package config

import (
	"fmt"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/langdetect"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/spamfilter"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/tokenize"
)

// Loader constructs wired pipeline components from a lexicon.
type Loader struct {
	// LexiconPath is optional; empty means embedded defaults.
	LexiconPath string
	// StripFillers enables the opt-in stop-word normalization stage.
	// Default off: the grouping key input keeps all words.
	StripFillers bool
	// StemKeyPhrases enables snowball stemming of English key phrases.
	StemKeyPhrases bool
}

// Components holds the loaded pipeline components.
type Components struct {
	Lexicon    *Lexicon
	Detector   *langdetect.Detector
	Spam       *spamfilter.Filter
	Segmenter  *tokenize.Segmenter
	Dispatcher *tokenize.Dispatcher
}

// Load builds every component. The segmenter handle is created here but
// loads its dictionary lazily on first use.
func (l *Loader) Load() (*Components, error) {
	lex := DefaultLexicon()
	if l.LexiconPath != "" {
		loaded, err := LoadLexicon(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		lex = loaded
	}

	var detector *langdetect.Detector
	if len(lex.MalayMarkers) > 0 {
		detector = langdetect.New(langdetect.WithMalayMarkers(lex.MalayMarkers))
	} else {
		detector = langdetect.New()
	}

	segmenter := tokenize.NewSegmenter()
	chinese := &tokenize.ChineseStrategy{
		Segmenter:  segmenter,
		Normalizer: tokenize.NewNormalizer(l.StripFillers, lex.Fillers["zh"]),
	}
	english := &tokenize.EnglishStrategy{
		Normalizer:     tokenize.NewNormalizer(l.StripFillers, lex.Fillers["en"]),
		StemKeyPhrases: l.StemKeyPhrases,
	}
	malay := tokenize.NewMalayStrategy(
		tokenize.NewNormalizer(l.StripFillers, lex.Fillers["ms"]),
		lex.MalayCompounds,
	)

	return &Components{
		Lexicon:    lex,
		Detector:   detector,
		Spam:       spamfilter.New(lex.KeyboardRows),
		Segmenter:  segmenter,
		Dispatcher: tokenize.NewDispatcher(detector, chinese, english, malay),
	}, nil
}
