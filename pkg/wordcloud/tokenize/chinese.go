package tokenize

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-ego/gse"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/langdetect"
)

// Segmenter is the shared handle around the gse dictionary segmenter.
//
// Loading the embedded Chinese dictionary is expensive, so it happens
// once, on first use, behind a sync.Once: concurrent first callers all
// block on the same initialization and observe the same ready state.
// The handle is owned by the composition root and injected into the
// Chinese strategy rather than living in package-level state.
type Segmenter struct {
	once sync.Once
	err  error
	seg  gse.Segmenter
}

// NewSegmenter returns an unloaded handle. The dictionary is loaded
// lazily by the first Segment call.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

func (s *Segmenter) ensureReady() error {
	s.once.Do(func() {
		s.seg.AlphaNum = true
		if err := s.seg.LoadDictEmbed("zh"); err != nil {
			s.err = fmt.Errorf("load zh dict: %w", err)
		}
	})
	return s.err
}

// Segment splits text into word-like units using the loaded dictionary.
func (s *Segmenter) Segment(text string) ([]string, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	return s.seg.Slice(text), nil
}

// ChineseStrategy extracts tokens via dictionary segmentation.
//
// The key phrase is the single longest segment, ties broken by first
// occurrence: multi-character segments are usually the content-bearing
// noun/verb compound, while short segments tend to be grammatical
// particles.
type ChineseStrategy struct {
	Segmenter  *Segmenter
	Normalizer *Normalizer
}

// Tokenize implements Strategy.
func (c *ChineseStrategy) Tokenize(text string) (Token, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Fallback(text, langdetect.Chinese), nil
	}

	segments, err := c.Segmenter.Segment(trimmed)
	if err != nil {
		return Token{}, err
	}

	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" || !hasLetterOrCJK(seg) {
			continue
		}
		if c.Normalizer != nil && c.Normalizer.StripFillers && c.Normalizer.IsFiller(seg) {
			continue
		}
		kept = append(kept, strings.ToLower(seg))
	}
	if len(kept) == 0 {
		return Fallback(text, langdetect.Chinese), nil
	}

	longest := kept[0]
	for _, seg := range kept[1:] {
		if utf8.RuneCountInString(seg) > utf8.RuneCountInString(longest) {
			longest = seg
		}
	}

	typ := TypeWord
	if len(kept) > 1 {
		typ = TypePhrase
	}
	return Token{
		Original:   text,
		Normalized: strings.Join(kept, ""),
		KeyPhrase:  longest,
		Language:   langdetect.Chinese,
		Type:       typ,
	}, nil
}

// hasLetterOrCJK drops punctuation-only segments the segmenter emits for
// 。，！ and friends.
func hasLetterOrCJK(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
