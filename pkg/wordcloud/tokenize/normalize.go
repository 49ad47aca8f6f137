package tokenize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalize canonicalizes a submission for use as a dedup key: NFKC plus
// width folding (full-width latin and punctuation are common in CJK input
// methods), lower-casing, punctuation stripping and whitespace collapse.
//
// Filler words are kept by default. Aggressive stripping destroyed
// meaning for short inputs, so the stop-list pass is a separate opt-in
// stage (see Normalizer.StripFillers).
func Normalize(text string) string {
	folded := width.Fold.String(norm.NFKC.String(text))

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case r == '-' || r == '\'':
			// Kept inside words: "nasi-lemak", "don't".
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Normalizer applies Normalize plus the optional filler-word policy.
type Normalizer struct {
	// StripFillers enables stop-word removal from the normalized form.
	// Off by default: the grouping key input keeps all words.
	StripFillers bool
	fillers      map[string]struct{}
}

// NewNormalizer builds a normalizer over the given filler list. The list
// is only consulted when StripFillers is on.
func NewNormalizer(stripFillers bool, fillers []string) *Normalizer {
	set := make(map[string]struct{}, len(fillers))
	for _, f := range fillers {
		set[strings.ToLower(f)] = struct{}{}
	}
	return &Normalizer{StripFillers: stripFillers, fillers: set}
}

// Apply normalizes text under the configured policy. If stripping would
// leave nothing, the unstripped form is returned instead: an all-filler
// submission still needs a non-empty dedup key.
func (n *Normalizer) Apply(text string) string {
	normalized := Normalize(text)
	if n == nil || !n.StripFillers || normalized == "" {
		return normalized
	}
	kept := make([]string, 0, 4)
	for _, w := range strings.Fields(normalized) {
		if _, ok := n.fillers[w]; ok {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return normalized
	}
	return strings.Join(kept, " ")
}

// IsFiller reports whether a single word is on the filler list.
func (n *Normalizer) IsFiller(word string) bool {
	if n == nil {
		return false
	}
	_, ok := n.fillers[strings.ToLower(word)]
	return ok
}
