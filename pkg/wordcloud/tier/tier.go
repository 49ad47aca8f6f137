// Package tier assigns the discrete visual-importance bucket (S > A > B
// > C) using a rank-and-coverage hybrid rather than a pure percentile
// cut: hard caps on the number of S and A items hold regardless of
// distribution shape, while cumulative-share ceilings stop a long flat
// tail from being over-promoted.
package tier

import (
	"sort"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/group"
)

// Rank caps and cumulative-share ceilings for each tier.
const (
	sMaxRank    = 5
	sMaxPercent = 65.0
	aMaxRank    = 20
	aMaxPercent = 90.0
	bMaxRank    = 50
)

// Assign sorts groups by total count descending and walks the ranking,
// accumulating each group's share of all submissions. A group's tier is
// decided by the coverage of the groups ranked above it, so the top
// group is always S no matter how dominant it is. At most 5 groups ever
// receive tier S and at most 20 receive S or A.
func Assign(groups []*group.Group) []*group.Group {
	if len(groups) == 0 {
		return groups
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].TotalCount != groups[j].TotalCount {
			return groups[i].TotalCount > groups[j].TotalCount
		}
		if groups[i].SemanticScore != groups[j].SemanticScore {
			return groups[i].SemanticScore > groups[j].SemanticScore
		}
		return groups[i].Canonical < groups[j].Canonical
	})

	grandTotal := 0
	for _, g := range groups {
		grandTotal += g.TotalCount
	}
	if grandTotal == 0 {
		for _, g := range groups {
			g.Tier = group.TierC
		}
		return groups
	}

	running := 0
	for i, g := range groups {
		cumulative := float64(running) / float64(grandTotal) * 100
		running += g.TotalCount

		switch {
		case i < sMaxRank && cumulative <= sMaxPercent:
			g.Tier = group.TierS
		case i < aMaxRank && cumulative <= aMaxPercent:
			g.Tier = group.TierA
		case i < bMaxRank:
			g.Tier = group.TierB
		default:
			g.Tier = group.TierC
		}
	}
	return groups
}

// SortForDisplay orders groups for the caller: tier is the primary sort
// key, count breaks ties within a tier.
func SortForDisplay(groups []*group.Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		ri, rj := tierRank(groups[i].Tier), tierRank(groups[j].Tier)
		if ri != rj {
			return ri < rj
		}
		if groups[i].TotalCount != groups[j].TotalCount {
			return groups[i].TotalCount > groups[j].TotalCount
		}
		if groups[i].SemanticScore != groups[j].SemanticScore {
			return groups[i].SemanticScore > groups[j].SemanticScore
		}
		return groups[i].Canonical < groups[j].Canonical
	})
}

func tierRank(t group.Tier) int {
	switch t {
	case group.TierS:
		return 0
	case group.TierA:
		return 1
	case group.TierB:
		return 2
	default:
		return 3
	}
}
