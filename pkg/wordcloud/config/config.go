// Package config loads lexicon files and wires pipeline components.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/internalerr"
)

// Lexicon holds the tunable word lists the pipeline consults. Every
// field has an embedded default; a YAML file only needs the lists it
// wants to override.
type Lexicon struct {
	// MalayCompounds are multi-word nouns treated as a single unit.
	MalayCompounds []string `yaml:"malay_compounds"`
	// MalayMarkers back up language detection when the statistical
	// model has no confident verdict.
	MalayMarkers []string `yaml:"malay_markers"`
	// KeyboardRows extend the spam filter's mash detection.
	KeyboardRows []string `yaml:"keyboard_rows"`
	// Fillers lists stop words per language tag ("en", "zh", "ms"),
	// consulted only when filler stripping is enabled.
	Fillers map[string][]string `yaml:"fillers"`
}

// DefaultLexicon returns the embedded defaults.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Fillers: map[string][]string{
			"en": {
				"the", "a", "an", "and", "or", "but", "of", "to", "in",
				"on", "at", "is", "are", "was", "were", "be", "very",
				"really", "so", "just", "like",
			},
			"zh": {
				"的", "了", "是", "在", "和", "就", "都", "也", "很",
				"啊", "吧", "呢", "吗", "嘛", "哦",
			},
			"ms": {
				"yang", "dan", "di", "ke", "itu", "ini", "ada", "pada",
				"untuk", "dengan", "sangat", "lah",
			},
		},
	}
}

// LoadLexicon reads a YAML lexicon file and overlays it on the defaults.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}

	var file Lexicon
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse lexicon %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	lex := DefaultLexicon()
	if len(file.MalayCompounds) > 0 {
		lex.MalayCompounds = file.MalayCompounds
	}
	if len(file.MalayMarkers) > 0 {
		lex.MalayMarkers = file.MalayMarkers
	}
	if len(file.KeyboardRows) > 0 {
		lex.KeyboardRows = file.KeyboardRows
	}
	for lang, words := range file.Fillers {
		lex.Fillers[lang] = words
	}
	return lex, nil
}
