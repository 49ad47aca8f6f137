// Package threshold picks the minimum occurrence count a group must
// reach to be displayed, adapting to how repetitive or diverse a
// session's submissions are so the caller's requested display density is
// approximately met without manual tuning.
package threshold

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Sensitivity controls how aggressively a high spam ratio raises the
// threshold.
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

// Params tunes the calculation.
type Params struct {
	// PreferredVisibleCount is the display-density target the refinement
	// loop steers toward. Defaults to 45 (medium density).
	PreferredVisibleCount int
	// SpamSensitivity defaults to medium.
	SpamSensitivity Sensitivity
}

// Bounds on the returned threshold.
const (
	MinThreshold = 1
	MaxThreshold = 10
)

// AutoMinOccurrence inspects the full frequency distribution of the raw
// (pre-filter) texts and returns a threshold in [1,10].
//
// Sessions with fewer than 10 submissions always get 1: never filter a
// tiny session.
func AutoMinOccurrence(texts []string, p Params) int {
	if p.PreferredVisibleCount <= 0 {
		p.PreferredVisibleCount = 45
	}
	if p.SpamSensitivity == "" {
		p.SpamSensitivity = SensitivityMedium
	}

	total := len(texts)
	if total < 10 {
		return MinThreshold
	}

	freq := make(map[string]int, total)
	for _, t := range texts {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" {
			continue
		}
		freq[key]++
	}
	if len(freq) == 0 {
		return MinThreshold
	}

	counts := make([]int, 0, len(freq))
	maxFreq := 0
	for _, c := range freq {
		counts = append(counts, c)
		if c > maxFreq {
			maxFreq = c
		}
	}
	sort.Ints(counts)

	diversity := float64(len(freq)) / float64(total)
	dominance := float64(maxFreq) / float64(total)
	med := median(counts)
	spamRatio := estimateSpamRatio(texts)

	// Everything is novel and clean: show it all.
	if diversity >= 0.8 && spamRatio < 0.15 {
		return MinThreshold
	}

	var t int
	switch {
	case dominance > 0.4:
		// One runaway term; force alternatives into view.
		t = clamp(int(math.Ceil(0.15*float64(maxFreq))), 2, MaxThreshold)
	case diversity < 0.3:
		// Heavily repetitive data; filter to the repeated core.
		if dominance > 0.25 {
			t = int(math.Ceil(0.20 * float64(maxFreq)))
		} else {
			t = int(math.Ceil(med))
			if t < 2 {
				t = 2
			}
		}
	default:
		t = int(math.Ceil(med))
	}

	// Scale with session size.
	switch {
	case total > 500:
		t += 2
	case total > 200:
		t++
	case total < 50:
		if t > 1 {
			t--
		}
	}

	t += spamBonus(spamRatio, p.SpamSensitivity)

	// Refine against the density target. Visible distinct texts stand in
	// for visible groups; grouping only ever merges, so this errs toward
	// showing more.
	visible := visibleAt(counts, t)
	if float64(visible) > 1.5*float64(p.PreferredVisibleCount) {
		t++
		if float64(visibleAt(counts, t)) > 1.8*float64(p.PreferredVisibleCount) {
			t++
		}
	} else if 2*visible < p.PreferredVisibleCount && t > 1 {
		t--
	}

	t = clamp(t, MinThreshold, MaxThreshold)

	// Safety net: spam floods on diverse-looking data must not slip
	// through at threshold 1.
	if spamRatio > 0.2 && t < 2 {
		t = 2
	}
	return t
}

func spamBonus(ratio float64, s Sensitivity) int {
	switch s {
	case SensitivityLow:
		return 0
	case SensitivityHigh:
		if ratio > 0.25 {
			return 3
		}
		if ratio > 0.1 {
			return 2
		}
		return 0
	default: // medium
		if ratio > 0.15 {
			return 1
		}
		return 0
	}
}

func visibleAt(counts []int, t int) int {
	n := 0
	for _, c := range counts {
		if c >= t {
			n++
		}
	}
	return n
}

func median(sorted []int) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
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

// estimateSpamRatio is a deliberately independent, lightweight
// re-estimate over the pre-filter population. It does not reuse the
// spam filter's verdict, since this runs for diagnostic ratios even when
// the filter is disabled.
func estimateSpamRatio(texts []string) float64 {
	if len(texts) == 0 {
		return 0
	}
	spam := 0
	for _, t := range texts {
		if looksLikeSpam(t) {
			spam++
		}
	}
	return float64(spam) / float64(len(texts))
}

func looksLikeSpam(text string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return true
	}
	// Same CJK carve-out as the real filter: repetition like 哈哈哈哈 is
	// expressive, not mashing.
	for _, r := range trimmed {
		if unicode.Is(unicode.Han, r) {
			return false
		}
	}
	// Runs of 4+ identical characters.
	var prev rune
	run := 0
	for _, r := range trimmed {
		if r == prev {
			run++
			if run >= 4 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	if strings.Contains(trimmed, "qwerty") || strings.Contains(trimmed, "asdfgh") {
		return true
	}
	return !strings.Contains(trimmed, " ") && len([]rune(trimmed)) > 30
}
