// Package group clusters tokens that share a key phrase into canonical
// display groups and merges occurrence counts across phrasings.
//
// Clustering is strictly per-language: "badminton" and "羽毛球" stay
// separate groups because the clustering key is the extracted key phrase,
// never a translation. Cross-language alignment is a feature gap, not an
// oversight; merging them needs a translation design of its own.
package group

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/langdetect"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/tokenize"
)

// Tier is the discrete visual-importance bucket, assigned after ranking.
type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

// Variant is one distinct phrasing folded into a group, with the
// aggregated occurrence count of all submissions sharing its normalized
// form.
type Variant struct {
	Text       string              `json:"text"`
	Normalized string              `json:"normalized"`
	Count      int                 `json:"count"`
	Language   langdetect.Language `json:"language"`
}

// Group is the unit exposed to rendering. Canonical is the group's
// identity for the life of one processing run; groups are rebuilt from
// scratch on every run.
type Group struct {
	Canonical     string                `json:"canonical"`
	DisplayText   string                `json:"displayText"`
	Variants      []Variant             `json:"variants"`
	TotalCount    int                   `json:"totalCount"`
	Tier          Tier                  `json:"tier"`
	SemanticScore float64               `json:"semanticScore"`
	Languages     []langdetect.Language `json:"languages"`
	Colors        []string              `json:"colors"`
}

// Options controls display-text selection.
type Options struct {
	// CanonicalOnly forces DisplayText to the canonical key phrase,
	// skipping the dominant-variant policy.
	CanonicalOnly bool
}

// Build clusters tokens by lower-cased key phrase.
//
// occurrence maps a token's normalized form to the number of submissions
// sharing it (default 1 when absent); colors maps the same key to the
// distinct participant colors observed for those submissions. Callers
// pass one token per distinct normalized form, which makes the sum of
// all TotalCounts equal the number of contributing submissions.
func Build(tokens []tokenize.Token, occurrence map[string]int, colors map[string][]string, opts Options) []*Group {
	byCanonical := make(map[string]*Group)
	var order []string

	for _, tok := range tokens {
		if tok.KeyPhrase == "" || tok.Normalized == "" {
			continue
		}
		canonical := strings.ToLower(tok.KeyPhrase)

		g, ok := byCanonical[canonical]
		if !ok {
			g = &Group{Canonical: canonical, DisplayText: canonical}
			byCanonical[canonical] = g
			order = append(order, canonical)
		}

		count := 1
		if c, ok := occurrence[tok.Normalized]; ok && c > 0 {
			count = c
		}

		if i := variantIndex(g.Variants, tok.Normalized); i >= 0 {
			g.Variants[i].Count += count
		} else {
			g.Variants = append(g.Variants, Variant{
				Text:       tok.Original,
				Normalized: tok.Normalized,
				Count:      count,
				Language:   tok.Language,
			})
		}
		g.TotalCount += count

		g.Languages = appendUniqueLang(g.Languages, tok.Language)
		for _, c := range colors[tok.Normalized] {
			g.Colors = appendUnique(g.Colors, c)
		}
	}

	groups := make([]*Group, 0, len(order))
	for _, canonical := range order {
		g := byCanonical[canonical]
		g.DisplayText = selectDisplayText(g, opts)
		g.SemanticScore = semanticScore(g)
		groups = append(groups, g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].TotalCount != groups[j].TotalCount {
			return groups[i].TotalCount > groups[j].TotalCount
		}
		return groups[i].Canonical < groups[j].Canonical
	})
	return groups
}

// BuildIndividual is the non-clustering mode: one group per distinct
// normalized text, no cross-phrasing merging, same output shape.
func BuildIndividual(tokens []tokenize.Token, occurrence map[string]int, colors map[string][]string) []*Group {
	seen := make(map[string]struct{}, len(tokens))
	groups := make([]*Group, 0, len(tokens))

	for _, tok := range tokens {
		if tok.Normalized == "" {
			continue
		}
		canonical := strings.ToLower(tok.Normalized)
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}

		count := 1
		if c, ok := occurrence[tok.Normalized]; ok && c > 0 {
			count = c
		}
		g := &Group{
			Canonical:   canonical,
			DisplayText: canonical,
			Variants: []Variant{{
				Text:       tok.Original,
				Normalized: tok.Normalized,
				Count:      count,
				Language:   tok.Language,
			}},
			TotalCount: count,
			Languages:  []langdetect.Language{tok.Language},
		}
		for _, c := range colors[tok.Normalized] {
			g.Colors = appendUnique(g.Colors, c)
		}
		g.SemanticScore = semanticScore(g)
		groups = append(groups, g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].TotalCount != groups[j].TotalCount {
			return groups[i].TotalCount > groups[j].TotalCount
		}
		return groups[i].Canonical < groups[j].Canonical
	})
	return groups
}

// selectDisplayText applies the tie-break policy once per group, after
// all tokens are folded in.
func selectDisplayText(g *Group, opts Options) string {
	if opts.CanonicalOnly || len(g.Variants) == 0 {
		return g.Canonical
	}

	sorted := make([]Variant, len(g.Variants))
	copy(sorted, g.Variants)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return utf8.RuneCountInString(sorted[i].Text) > utf8.RuneCountInString(sorted[j].Text)
	})

	top := sorted[0]
	// Cleanest case: the most common phrasing is the key phrase itself.
	if strings.EqualFold(strings.TrimSpace(top.Text), g.Canonical) {
		return g.Canonical
	}
	// A single phrasing clearly dominates: show it verbatim for context.
	second := 0
	if len(sorted) > 1 {
		second = sorted[1].Count
	}
	if top.Count > second*2 {
		return top.Text
	}
	// Otherwise the bare key phrase beats an arbitrarily chosen variant.
	return g.Canonical
}

// semanticScore ranks broad significance: logarithmic in raw count so a
// flood of one literal phrase cannot dominate, super-linear in variant
// diversity because many different phrasings signal a genuinely shared
// topic, with a flat bonus for multilingual groups.
func semanticScore(g *Group) float64 {
	score := math.Log(float64(g.TotalCount)+1) * math.Sqrt(float64(len(g.Variants)))
	if len(g.Languages) > 1 {
		score *= 1.2
	}
	return score
}

func variantIndex(variants []Variant, normalized string) int {
	for i := range variants {
		if variants[i].Normalized == normalized {
			return i
		}
	}
	return -1
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func appendUniqueLang(list []langdetect.Language, v langdetect.Language) []langdetect.Language {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
