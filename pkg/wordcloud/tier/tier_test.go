package tier

import (
	"fmt"
	"testing"

	"github.com/cjzhi98/wordcloud/pkg/wordcloud/group"
)

func makeGroups(counts ...int) []*group.Group {
	groups := make([]*group.Group, len(counts))
	for i, c := range counts {
		groups[i] = &group.Group{
			Canonical:  fmt.Sprintf("topic-%02d", i),
			TotalCount: c,
		}
	}
	return groups
}

func countTiers(groups []*group.Group) map[group.Tier]int {
	dist := make(map[group.Tier]int)
	for _, g := range groups {
		dist[g.Tier]++
	}
	return dist
}

func TestTierCaps(t *testing.T) {
	// 80 groups with identical counts: rank caps must still hold.
	counts := make([]int, 80)
	for i := range counts {
		counts[i] = 3
	}
	groups := Assign(makeGroups(counts...))
	dist := countTiers(groups)

	if dist[group.TierS] > 5 {
		t.Errorf("%d S-tier groups, cap is 5", dist[group.TierS])
	}
	if dist[group.TierS]+dist[group.TierA] > 20 {
		t.Errorf("%d S+A groups, cap is 20", dist[group.TierS]+dist[group.TierA])
	}
	if dist[group.TierB] > 50 {
		t.Errorf("%d B-tier groups, cap is 50", dist[group.TierB])
	}
}

func TestCumulativeShareStopsPromotion(t *testing.T) {
	// One group holding ~91% of all submissions: it is S itself (the
	// top group always is), but the coverage it leaves behind stops
	// every later group from reaching S or A.
	groups := Assign(makeGroups(100, 3, 3, 2, 1, 1))
	if groups[0].Tier != group.TierS {
		t.Errorf("dominant group tier = %s, want S", groups[0].Tier)
	}
	for _, g := range groups[1:] {
		if g.Tier == group.TierS || g.Tier == group.TierA {
			t.Errorf("group %s promoted to %s behind a 91%% dominant", g.Canonical, g.Tier)
		}
	}
}

func TestTopGroupGetsS(t *testing.T) {
	groups := Assign(makeGroups(30, 20, 15, 10, 8, 7, 5, 3, 2))
	// 30 of 100 = 30% cumulative, rank 0: tier S.
	if groups[0].Tier != group.TierS {
		t.Errorf("top group tier = %s, want S", groups[0].Tier)
	}
	// Everything beyond rank 50 would be C; here all groups rank < 50.
	for _, g := range groups {
		if g.Tier == "" {
			t.Errorf("group %s left untiered", g.Canonical)
		}
	}
}

func TestAssignEmpty(t *testing.T) {
	if got := Assign(nil); len(got) != 0 {
		t.Errorf("Assign(nil) returned %d groups", len(got))
	}
}

func TestSortForDisplayTierFirst(t *testing.T) {
	groups := Assign(makeGroups(30, 20, 15, 10, 8, 7, 5, 3, 2, 1))
	SortForDisplay(groups)

	lastRank := -1
	lastCount := 1 << 30
	for _, g := range groups {
		r := tierRank(g.Tier)
		if r < lastRank {
			t.Fatalf("tier order violated at %s", g.Canonical)
		}
		if r > lastRank {
			lastRank = r
			lastCount = 1 << 30
			continue
		}
		if g.TotalCount > lastCount {
			t.Fatalf("count order violated within tier at %s", g.Canonical)
		}
		lastCount = g.TotalCount
	}
}
