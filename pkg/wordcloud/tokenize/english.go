package tokenize

import (
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/langdetect"
)

// questionWords is the closed set that marks an input as a question when
// it appears first. Questions keep the whole normalized phrase as the
// key phrase: "why is the canteen closed" reduced to "canteen" loses the
// point of the submission.
var questionWords = map[string]struct{}{
	"what": {}, "why": {}, "how": {}, "when": {}, "where": {},
	"who": {}, "which": {}, "can": {}, "could": {}, "should": {},
	"would": {}, "is": {}, "are": {}, "do": {}, "does": {}, "did": {},
	"will": {},
}

// pronouns guards the rightmost-noun heuristic: a pronoun is never an
// acceptable key phrase.
var pronouns = map[string]struct{}{
	"i": {}, "me": {}, "my": {}, "mine": {}, "you": {}, "your": {},
	"yours": {}, "he": {}, "him": {}, "his": {}, "she": {}, "her": {},
	"hers": {}, "it": {}, "its": {}, "we": {}, "us": {}, "our": {},
	"ours": {}, "they": {}, "them": {}, "their": {}, "theirs": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "something": {},
	"anything": {}, "everything": {}, "nothing": {},
}

// EnglishStrategy extracts the rightmost non-pronoun noun as the key
// phrase, via a part-of-speech pass. In "I like chicken" the rightmost
// noun is usually the object the submission is about.
//
// Known limitation: no stemming by default, so "song" and "songs" form
// separate canonicals. StemKeyPhrases turns on snowball stemming of
// single-word key phrases for callers that prefer merging over fidelity.
type EnglishStrategy struct {
	Normalizer     *Normalizer
	StemKeyPhrases bool
}

// Tokenize implements Strategy.
func (e *EnglishStrategy) Tokenize(text string) (Token, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Fallback(text, langdetect.English), nil
	}

	normalized := e.Normalizer.Apply(trimmed)
	if normalized == "" {
		return Fallback(text, langdetect.English), nil
	}
	words := strings.Fields(normalized)

	if isQuestion(trimmed, words) {
		return Token{
			Original:   text,
			Normalized: normalized,
			KeyPhrase:  normalized,
			Language:   langdetect.English,
			Type:       phraseOrWord(len(words) > 1),
		}, nil
	}

	doc, err := prose.NewDocument(trimmed,
		prose.WithExtraction(false),
		prose.WithSegmentation(false))
	if err != nil {
		return Token{}, err
	}

	var nouns []string
	sawNoun, sawVerb, sawAdj := false, false, false
	for _, tok := range doc.Tokens() {
		switch {
		case strings.HasPrefix(tok.Tag, "NN"):
			sawNoun = true
			word := strings.ToLower(tok.Text)
			if _, pron := pronouns[word]; !pron {
				nouns = append(nouns, word)
			}
		case strings.HasPrefix(tok.Tag, "VB"):
			sawVerb = true
		case strings.HasPrefix(tok.Tag, "JJ"):
			sawAdj = true
		}
	}

	keyPhrase := ""
	if len(nouns) > 0 {
		keyPhrase = nouns[len(nouns)-1]
	} else {
		// No noun survived the POS pass: last whitespace token.
		keyPhrase = words[len(words)-1]
	}

	if _, pron := pronouns[keyPhrase]; pron {
		keyPhrase = backOffFromPronoun(nouns, words, normalized)
	}

	if e.StemKeyPhrases && !strings.Contains(keyPhrase, " ") {
		if stemmed, serr := snowball.Stem(keyPhrase, "english", true); serr == nil && stemmed != "" {
			keyPhrase = stemmed
		}
	}

	isPhrase := len(words) > 1 || (sawNoun && (sawVerb || sawAdj))
	return Token{
		Original:   text,
		Normalized: normalized,
		KeyPhrase:  keyPhrase,
		Language:   langdetect.English,
		Type:       phraseOrWord(isPhrase),
	}, nil
}

// backOffFromPronoun searches backward through the noun candidates for
// the nearest non-pronoun; failing that, a multi-word phrase falls back
// to its full normalized form rather than surfacing a pronoun.
func backOffFromPronoun(nouns, words []string, normalized string) string {
	for i := len(nouns) - 1; i >= 0; i-- {
		if _, pron := pronouns[nouns[i]]; !pron {
			return nouns[i]
		}
	}
	if len(words) > 1 {
		return normalized
	}
	return words[len(words)-1]
}

func isQuestion(trimmed string, words []string) bool {
	if strings.HasSuffix(trimmed, "?") || strings.HasSuffix(trimmed, "？") {
		return true
	}
	if len(words) == 0 {
		return false
	}
	_, ok := questionWords[words[0]]
	// A bare "can" or "will" on its own is a word, not a question.
	return ok && len(words) > 1
}

func phraseOrWord(isPhrase bool) Type {
	if isPhrase {
		return TypePhrase
	}
	return TypeWord
}
