// Package wordcloud aggregates raw multilingual submissions into a
// ranked, deduplicated, tiered set of display groups.
//
// The pipeline runs strictly forward: raw entries → spam filtering →
// per-language tokenization → semantic grouping → auto-thresholding →
// tier assignment. Every invocation is a pure function of its input
// snapshot; no state leaks between runs, so callers may re-run it on
// every poll cycle and for many sessions concurrently.
package wordcloud

import (
	"crypto/rand"
	"runtime"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/cjzhi98/wordcloud/internal/htmltext"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/group"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/langdetect"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/spamfilter"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/threshold"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/tier"
	"github.com/cjzhi98/wordcloud/pkg/wordcloud/tokenize"
)

// Submission is one raw participant entry, read-only to the pipeline.
type Submission struct {
	Text             string
	Color            string
	ParticipantLabel string
	CreatedAt        time.Time
}

// DisplayDensity selects the preferred visible-group count.
type DisplayDensity string

const (
	DensityLow    DisplayDensity = "low"    // ~25 groups
	DensityMedium DisplayDensity = "medium" // ~45 groups
	DensityHigh   DisplayDensity = "high"   // ~90 groups
)

// MinOccurrenceMode selects the computed threshold or a caller literal.
type MinOccurrenceMode string

const (
	MinOccurrenceAuto   MinOccurrenceMode = "auto"
	MinOccurrenceManual MinOccurrenceMode = "manual"
)

// Options is the caller configuration recognized by Process.
type Options struct {
	DisplayDensity DisplayDensity
	// ShowFullPhrases surfaces a dominant full variant as a group's
	// display text; false collapses every group to its canonical key
	// phrase.
	ShowFullPhrases     bool
	MinOccurrenceMode   MinOccurrenceMode
	ManualMinOccurrence int
	SpamSensitivity     threshold.Sensitivity
	EnableSpamFilter    bool
	// EnableSemanticGrouping toggles cross-phrasing clustering; off
	// routes through the 1:1 individual-group fallback.
	EnableSemanticGrouping bool
}

// DefaultOptions matches the host application's defaults.
func DefaultOptions() Options {
	return Options{
		DisplayDensity:         DensityMedium,
		ShowFullPhrases:        true,
		MinOccurrenceMode:      MinOccurrenceAuto,
		ManualMinOccurrence:    1,
		SpamSensitivity:        threshold.SensitivityMedium,
		EnableSpamFilter:       true,
		EnableSemanticGrouping: true,
	}
}

// PreferredVisibleCount maps the density to its group-count target.
func (d DisplayDensity) PreferredVisibleCount() int {
	switch d {
	case DensityLow:
		return 25
	case DensityHigh:
		return 90
	default:
		return 45
	}
}

// Diagnostics is the operator-facing summary of one run. Purely derived;
// nothing feeds back into the pipeline.
type Diagnostics struct {
	RunID            string                      `json:"runId"`
	TotalEntries     int                         `json:"totalEntries"`
	UniqueTexts      int                         `json:"uniqueTexts"`
	SpamFiltered     int                         `json:"spamFiltered"`
	GroupsCreated    int                         `json:"groupsCreated"`
	MinOccurrence    int                         `json:"minOccurrence"`
	Languages        map[langdetect.Language]int `json:"languages"`
	TierDistribution map[group.Tier]int          `json:"tierDistribution"`
}

// Result is the output of one pipeline invocation.
type Result struct {
	Groups      []*group.Group `json:"groups"`
	Diagnostics Diagnostics    `json:"diagnostics"`
}

// Engine runs the pipeline. Safe for concurrent use: all per-run state
// is local, and the token memo and segmenter handle are both
// concurrency-safe.
type Engine struct {
	dispatcher *tokenize.Dispatcher
	spam       *spamfilter.Filter
	log        logrus.FieldLogger
	cache      *lru.Cache[string, tokenize.Token]
	workers    int

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithLogger replaces the default logger.
func WithLogger(l logrus.FieldLogger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// WithWorkers sets the tokenization fan-out width.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithCacheSize sets the token memo capacity. Poll cycles re-process
// near-identical snapshots; memoising deterministic tokenization keeps
// re-runs cheap without breaking snapshot purity.
func WithCacheSize(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			cache, err := lru.New[string, tokenize.Token](n)
			if err == nil {
				e.cache = cache
			}
		}
	}
}

// New creates an Engine around the wired tokenizer dispatcher and spam
// filter (see config.Loader).
func New(dispatcher *tokenize.Dispatcher, spam *spamfilter.Filter, opts ...EngineOption) *Engine {
	e := &Engine{
		dispatcher: dispatcher,
		spam:       spam,
		log:        logrus.StandardLogger(),
		workers:    runtime.NumCPU(),
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}
	cache, err := lru.New[string, tokenize.Token](4096)
	if err == nil {
		e.cache = cache
	}
	for _, opt := range opts {
		opt(e)
	}
	e.dispatcher.OnFallback = func(text string, lang langdetect.Language, ferr error) {
		e.log.WithFields(logrus.Fields{
			"language": lang,
			"error":    ferr,
		}).Warn("tokenizer degraded to identity fallback")
	}
	return e
}

// Process runs the full pipeline over a snapshot. It never fails: the
// worst case for any internal fault is an undersized or empty result for
// this poll cycle.
func (e *Engine) Process(submissions []Submission, opts Options) Result {
	diag := Diagnostics{
		RunID:            e.newRunID(),
		TotalEntries:     len(submissions),
		Languages:        make(map[langdetect.Language]int),
		TierDistribution: make(map[group.Tier]int),
		MinOccurrence:    1,
	}
	if len(submissions) == 0 {
		return Result{Groups: []*group.Group{}, Diagnostics: diag}
	}

	// Spam filtering runs before tokenization; empty input counts as
	// filtered even when the filter is disabled, since no group may ever
	// be created from it.
	rawTexts := make([]string, 0, len(submissions))
	surviving := make([]Submission, 0, len(submissions))
	for _, sub := range submissions {
		text := htmltext.Strip(sub.Text)
		rawTexts = append(rawTexts, text)
		if strings.TrimSpace(text) == "" {
			diag.SpamFiltered++
			continue
		}
		if opts.EnableSpamFilter && e.spam.IsSpam(text) {
			diag.SpamFiltered++
			continue
		}
		sub.Text = text
		surviving = append(surviving, sub)
	}

	// Dedup identical submissions before the (expensive) tokenizers.
	byKey := make(map[string]*distinctEntry)
	var order []string
	for _, sub := range surviving {
		key := strings.ToLower(strings.TrimSpace(sub.Text))
		d, ok := byKey[key]
		if !ok {
			d = &distinctEntry{text: sub.Text}
			byKey[key] = d
			order = append(order, key)
		}
		d.count++
		d.colors = appendUnique(d.colors, sub.Color)
	}
	diag.UniqueTexts = len(order)

	tokens := e.tokenizeAll(order, byKey)

	// Re-key occurrence counts and colors by the normalized form, which
	// is the within-group dedup key; distinct raw texts that normalize
	// identically collapse into one token here so that every submission
	// is counted exactly once.
	occurrence := make(map[string]int, len(tokens))
	colors := make(map[string][]string, len(tokens))
	merged := make([]tokenize.Token, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for i, tok := range tokens {
		d := byKey[order[i]]
		diag.Languages[tok.Language] += d.count
		occurrence[tok.Normalized] += d.count
		for _, c := range d.colors {
			colors[tok.Normalized] = appendUnique(colors[tok.Normalized], c)
		}
		if _, dup := seen[tok.Normalized]; !dup {
			seen[tok.Normalized] = struct{}{}
			merged = append(merged, tok)
		}
	}

	var groups []*group.Group
	if opts.EnableSemanticGrouping {
		groups = group.Build(merged, occurrence, colors, group.Options{
			CanonicalOnly: !opts.ShowFullPhrases,
		})
	} else {
		groups = group.BuildIndividual(merged, occurrence, colors)
	}
	diag.GroupsCreated = len(groups)

	minOccurrence := 1
	switch opts.MinOccurrenceMode {
	case MinOccurrenceManual:
		minOccurrence = clamp(opts.ManualMinOccurrence, threshold.MinThreshold, threshold.MaxThreshold)
	default:
		minOccurrence = threshold.AutoMinOccurrence(rawTexts, threshold.Params{
			PreferredVisibleCount: opts.DisplayDensity.PreferredVisibleCount(),
			SpamSensitivity:       opts.SpamSensitivity,
		})
	}
	diag.MinOccurrence = minOccurrence

	visible := groups[:0:0]
	for _, g := range groups {
		if g.TotalCount >= minOccurrence {
			visible = append(visible, g)
		}
	}

	tier.Assign(visible)
	tier.SortForDisplay(visible)
	if limit := opts.DisplayDensity.PreferredVisibleCount(); len(visible) > limit {
		visible = visible[:limit]
	}
	for _, g := range visible {
		diag.TierDistribution[g.Tier]++
	}

	return Result{Groups: visible, Diagnostics: diag}
}

// distinctEntry aggregates identical submissions ahead of tokenization.
type distinctEntry struct {
	text   string
	count  int
	colors []string
}

// tokenizeAll fans out tokenization of independent texts and fans back
// in with input order preserved. Grouping and everything after it need
// the complete token set, so this is the only parallel stage.
func (e *Engine) tokenizeAll(order []string, byKey map[string]*distinctEntry) []tokenize.Token {
	tokens := make([]tokenize.Token, len(order))

	workers := e.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(order) {
		workers = len(order)
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, key := range order {
		text := byKey[key].text
		if cached, ok := e.cacheGet(text); ok {
			tokens[i] = cached
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, text string) {
			defer wg.Done()
			defer func() { <-sem }()
			tok := e.dispatcher.Tokenize(text)
			e.cachePut(text, tok)
			tokens[i] = tok
		}(i, text)
	}
	wg.Wait()
	return tokens
}

func (e *Engine) cacheGet(text string) (tokenize.Token, bool) {
	if e.cache == nil {
		return tokenize.Token{}, false
	}
	return e.cache.Get(text)
}

func (e *Engine) cachePut(text string, tok tokenize.Token) {
	if e.cache != nil {
		e.cache.Add(text, tok)
	}
}

func (e *Engine) newRunID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ulid.MustNew(ulid.Now(), e.entropy).String()
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

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
