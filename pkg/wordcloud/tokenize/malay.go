package tokenize

import (
	"regexp"
	"strings"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/langdetect"
)

// defaultMalayCompounds are multi-word nouns that lose their meaning when
// split: "nasi lemak" is a dish, "nasi" is just rice.
var defaultMalayCompounds = []string{
	"nasi lemak",
	"nasi goreng",
	"teh tarik",
	"roti canai",
	"mee goreng",
	"char kuey teow",
	"ayam goreng",
	"air bandung",
	"kuih lapis",
	"satay celup",
}

// MalayStrategy extracts the last word as the key phrase; Malay noun
// phrases in this domain's short exclamatory submissions are head-final
// ("nasi lemak sedap" is about the nasi lemak). A compound lexicon takes
// priority: a matched compound becomes both the normalized form and the
// key phrase, matched as a substring anywhere in the text.
type MalayStrategy struct {
	Normalizer *Normalizer
	compounds  *regexp.Regexp
}

// NewMalayStrategy compiles the compound lexicon. An empty list keeps the
// defaults.
func NewMalayStrategy(normalizer *Normalizer, compounds []string) *MalayStrategy {
	if len(compounds) == 0 {
		compounds = defaultMalayCompounds
	}
	quoted := make([]string, 0, len(compounds))
	for _, c := range compounds {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(c))
	}
	return &MalayStrategy{
		Normalizer: normalizer,
		compounds:  regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`),
	}
}

// Tokenize implements Strategy.
func (m *MalayStrategy) Tokenize(text string) (Token, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Fallback(text, langdetect.Malay), nil
	}

	normalized := m.Normalizer.Apply(trimmed)
	if normalized == "" {
		return Fallback(text, langdetect.Malay), nil
	}

	if compound := m.compounds.FindString(normalized); compound != "" {
		return Token{
			Original:   text,
			Normalized: compound,
			KeyPhrase:  compound,
			Language:   langdetect.Malay,
			Type:       TypeCompound,
		}, nil
	}

	words := strings.Fields(normalized)
	return Token{
		Original:   text,
		Normalized: normalized,
		KeyPhrase:  words[len(words)-1],
		Language:   langdetect.Malay,
		Type:       phraseOrWord(len(words) > 1),
	}, nil
}
