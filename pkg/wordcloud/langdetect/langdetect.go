// Package langdetect classifies short submission texts into the four
// language tags the tokenizer dispatches on.
package langdetect

import (
	"strings"
	"unicode"

	"github.com/pemistahl/lingua-go"
)

// Language is the four-way tag consumed by the tokenizer dispatch.
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
	Malay   Language = "ms"
	Mixed   Language = "mixed"
)

// defaultMalayMarkers is the fallback keyword set used when the
// statistical model has no confident verdict. Short exclamatory
// submissions ("sedap", "best gila") often carry one of these.
var defaultMalayMarkers = []string{
	"saya", "awak", "kamu", "yang", "adalah", "tidak", "tak",
	"makan", "suka", "sedap", "gila", "boleh", "nak", "sangat",
	"lah", "kat", "dengan", "untuk", "ini", "itu",
}

// Detector classifies one input string. Detect never fails and never
// blocks; building the statistical model happens once in New.
type Detector struct {
	model   lingua.LanguageDetector
	markers map[string]struct{}
}

// Option customizes a Detector.
type Option func(*Detector)

// WithMalayMarkers replaces the fallback Malay keyword set.
func WithMalayMarkers(words []string) Option {
	return func(d *Detector) {
		d.markers = make(map[string]struct{}, len(words))
		for _, w := range words {
			d.markers[strings.ToLower(w)] = struct{}{}
		}
	}
}

// New creates a detector with the statistical model restricted to the
// candidate set {Chinese, English, Malay}.
func New(opts ...Option) *Detector {
	d := &Detector{
		model: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Chinese, lingua.English, lingua.Malay).
			Build(),
	}
	WithMalayMarkers(defaultMalayMarkers)(d)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect classifies text. Empty or whitespace-only input returns English:
// a harmless default, since the spam filter rejects empty input before
// any group could be created from it.
func (d *Detector) Detect(text string) Language {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return English
	}

	hasCJK := ContainsCJK(trimmed)
	hasLatin := containsLatin(trimmed)

	// Script evidence beats statistics for code-mixed short strings.
	if hasCJK && hasLatin {
		return Mixed
	}

	if lang, ok := d.model.DetectLanguageOf(trimmed); ok {
		switch lang {
		case lingua.Chinese:
			return Chinese
		case lingua.Malay:
			return Malay
		case lingua.English:
			return English
		}
	}

	// No confident statistical verdict: fall back to script and keyword
	// evidence.
	if hasCJK {
		return Chinese
	}
	if d.hasMalayMarker(trimmed) {
		return Malay
	}
	return English
}

func (d *Detector) hasMalayMarker(text string) bool {
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?;:\"'()")
		if _, ok := d.markers[w]; ok {
			return true
		}
	}
	return false
}

// ContainsCJK reports whether any rune falls in a CJK unicode range.
// Shared with the spam filter, which treats CJK input as intentional.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
		// CJK punctuation and full-width forms still signal intent.
		if r >= 0x3000 && r <= 0x303F || r >= 0xFF00 && r <= 0xFFEF {
			return true
		}
	}
	return false
}

func containsLatin(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}
