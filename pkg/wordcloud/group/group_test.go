package group

import (
	"testing"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/langdetect"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/tokenize"
)

func tok(original, normalized, keyPhrase string, lang langdetect.Language) tokenize.Token {
	return tokenize.Token{
		Original:   original,
		Normalized: normalized,
		KeyPhrase:  keyPhrase,
		Language:   lang,
		Type:       tokenize.TypePhrase,
	}
}

func TestVariantsClusterByKeyPhrase(t *testing.T) {
	tokens := []tokenize.Token{
		tok("I like chicken", "i like chicken", "chicken", langdetect.English),
		tok("buy a chicken", "buy a chicken", "chicken", langdetect.English),
		tok("fried chicken", "fried chicken", "chicken", langdetect.English),
	}
	groups := Build(tokens, nil, nil, Options{})

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	g := groups[0]
	if g.Canonical != "chicken" {
		t.Errorf("canonical = %q, want chicken", g.Canonical)
	}
	if len(g.Variants) != 3 {
		t.Errorf("got %d variants, want 3", len(g.Variants))
	}
	if g.TotalCount != 3 {
		t.Errorf("totalCount = %d, want 3", g.TotalCount)
	}
	// No variant dominates, so the bare key phrase wins.
	if g.DisplayText != "chicken" {
		t.Errorf("displayText = %q, want chicken", g.DisplayText)
	}
}

func TestOccurrenceCountsResolve(t *testing.T) {
	tokens := []tokenize.Token{
		tok("nasi lemak", "nasi lemak", "nasi lemak", langdetect.Malay),
		tok("nasi lemak sedap", "nasi lemak sedap", "nasi lemak", langdetect.Malay),
	}
	occurrence := map[string]int{
		"nasi lemak":       5,
		"nasi lemak sedap": 2,
	}
	groups := Build(tokens, occurrence, nil, Options{})

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].TotalCount != 7 {
		t.Errorf("totalCount = %d, want 7", groups[0].TotalCount)
	}
}

func TestRepeatedNormalizedAccumulates(t *testing.T) {
	tokens := []tokenize.Token{
		tok("Badminton", "badminton", "badminton", langdetect.English),
		tok("badminton!", "badminton", "badminton", langdetect.English),
	}
	occurrence := map[string]int{"badminton": 2}
	groups := Build(tokens, occurrence, nil, Options{})

	if len(groups) != 1 || len(groups[0].Variants) != 1 {
		t.Fatalf("expected one group with one variant, got %+v", groups)
	}
	if groups[0].Variants[0].Count != 4 {
		t.Errorf("variant count = %d, want 4 (accumulated)", groups[0].Variants[0].Count)
	}
}

func TestNoCrossLanguageMerge(t *testing.T) {
	tokens := []tokenize.Token{
		tok("badminton", "badminton", "badminton", langdetect.English),
		tok("羽毛球", "羽毛球", "羽毛球", langdetect.Chinese),
	}
	groups := Build(tokens, nil, nil, Options{})
	// The clustering key is per-language; translation alignment is a
	// deliberate feature gap.
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 (no cross-language merge)", len(groups))
	}
}

func TestDominantVariantShownVerbatim(t *testing.T) {
	tokens := []tokenize.Token{
		tok("free ice cream please", "free ice cream please", "cream", langdetect.English),
		tok("ice cream", "ice cream", "cream", langdetect.English),
	}
	occurrence := map[string]int{
		"free ice cream please": 9,
		"ice cream":             2,
	}
	groups := Build(tokens, occurrence, nil, Options{})
	// 9 > 2*2: the dominant phrasing is shown for context.
	if groups[0].DisplayText != "free ice cream please" {
		t.Errorf("displayText = %q, want dominant variant", groups[0].DisplayText)
	}
}

func TestCanonicalOnlyCollapsesDisplay(t *testing.T) {
	tokens := []tokenize.Token{
		tok("free ice cream please", "free ice cream please", "cream", langdetect.English),
	}
	occurrence := map[string]int{"free ice cream please": 9}
	groups := Build(tokens, occurrence, nil, Options{CanonicalOnly: true})
	if groups[0].DisplayText != "cream" {
		t.Errorf("displayText = %q, want canonical", groups[0].DisplayText)
	}
}

func TestTopVariantEqualsKeyPhrase(t *testing.T) {
	tokens := []tokenize.Token{
		tok("Chicken", "chicken", "chicken", langdetect.English),
		tok("i like chicken", "i like chicken", "chicken", langdetect.English),
	}
	occurrence := map[string]int{"chicken": 10, "i like chicken": 1}
	groups := Build(tokens, occurrence, nil, Options{})
	// Cleanest case: the most common phrasing is the key phrase itself.
	if groups[0].DisplayText != "chicken" {
		t.Errorf("displayText = %q, want chicken", groups[0].DisplayText)
	}
}

func TestLanguagesAndColorsUnion(t *testing.T) {
	tokens := []tokenize.Token{
		tok("chicken rice", "chicken rice", "rice", langdetect.English),
		tok("nasi ayam rice", "nasi ayam rice", "rice", langdetect.Malay),
	}
	colors := map[string][]string{
		"chicken rice":   {"#ff0000", "#00ff00"},
		"nasi ayam rice": {"#ff0000", "#0000ff"},
	}
	groups := Build(tokens, nil, colors, Options{})

	g := groups[0]
	if len(g.Languages) != 2 {
		t.Errorf("languages = %v, want union of en and ms", g.Languages)
	}
	if len(g.Colors) != 3 {
		t.Errorf("colors = %v, want 3 distinct", g.Colors)
	}
}

func TestMultilingualScoreBonus(t *testing.T) {
	mono := Build([]tokenize.Token{
		tok("a", "a", "k", langdetect.English),
		tok("b", "b", "k", langdetect.English),
	}, nil, nil, Options{})
	multi := Build([]tokenize.Token{
		tok("a", "a", "k", langdetect.English),
		tok("b", "b", "k", langdetect.Malay),
	}, nil, nil, Options{})

	if multi[0].SemanticScore <= mono[0].SemanticScore {
		t.Errorf("multilingual score %f should exceed monolingual %f",
			multi[0].SemanticScore, mono[0].SemanticScore)
	}
}

func TestBuildIndividualNoMerging(t *testing.T) {
	tokens := []tokenize.Token{
		tok("i like chicken", "i like chicken", "chicken", langdetect.English),
		tok("fried chicken", "fried chicken", "chicken", langdetect.English),
	}
	groups := BuildIndividual(tokens, map[string]int{"i like chicken": 3}, nil)

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 (1:1 mode)", len(groups))
	}
	if groups[0].Canonical != "i like chicken" || groups[0].TotalCount != 3 {
		t.Errorf("unexpected first group %+v", groups[0])
	}
}

func TestEmptyTokensSkipped(t *testing.T) {
	tokens := []tokenize.Token{
		{Original: "x", Normalized: "", KeyPhrase: ""},
	}
	if groups := Build(tokens, nil, nil, Options{}); len(groups) != 0 {
		t.Errorf("tokens without keys produced %d groups", len(groups))
	}
}

func TestDeterministicOrdering(t *testing.T) {
	tokens := []tokenize.Token{
		tok("beta", "beta", "beta", langdetect.English),
		tok("alpha", "alpha", "alpha", langdetect.English),
	}
	a := Build(tokens, nil, nil, Options{})
	b := Build(tokens, nil, nil, Options{})
	for i := range a {
		if a[i].Canonical != b[i].Canonical {
			t.Fatalf("ordering differs between runs")
		}
	}
	// Equal counts: alphabetical tie-break.
	if a[0].Canonical != "alpha" {
		t.Errorf("first group = %q, want alpha", a[0].Canonical)
	}
}
