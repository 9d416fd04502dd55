package groundlink

import (
	"math"
	"testing"
)

func TestPlanGroupsSingleGroupCases(t *testing.T) {
	cases := []struct {
		k         int
		ratio     float64
		wantGSize int
		wantM     int
		wantNG    int
	}{
		{1, 0.25, 1, 1, 1}, // scenario 1: 200-byte file
		{5, 0.25, 5, 2, 1}, // scenario 2: 1000-byte file
	}
	for _, c := range cases {
		p := PlanGroups(c.k, c.ratio)
		if p.GSize != c.wantGSize || p.MPerGroup != c.wantM || p.NumGroups != c.wantNG {
			t.Errorf("PlanGroups(%d, %v) = %+v, want {GSize:%d MPerGroup:%d NumGroups:%d}",
				c.k, c.ratio, p, c.wantGSize, c.wantM, c.wantNG)
		}
	}
}

// TestPlanGroupsMultiGroup exercises the multi-group branch of the
// planning algorithm for k=300 and k=1000 at r=0.25. A "single group"
// outcome is impossible at k=300: it already exceeds the 255-symbol
// limit on its own, so it cannot be a single group at any m.
// DESIGN.md records this as resolved in favour of the explicit formula.
func TestPlanGroupsMultiGroup(t *testing.T) {
	cases := []struct {
		k         int
		ratio     float64
		wantGSize int
		wantM     int
		wantNG    int
	}{
		{300, 0.25, 204, 51, 2},
		{1000, 0.25, 204, 51, 5},
	}
	for _, c := range cases {
		p := PlanGroups(c.k, c.ratio)
		if p.GSize != c.wantGSize || p.MPerGroup != c.wantM || p.NumGroups != c.wantNG {
			t.Errorf("PlanGroups(%d, %v) = %+v, want {GSize:%d MPerGroup:%d NumGroups:%d}",
				c.k, c.ratio, p, c.wantGSize, c.wantM, c.wantNG)
		}
		if p.GSize+p.MPerGroup > rsMax {
			t.Errorf("k=%d: codeword exceeds GF(2^8): gSize=%d m=%d", c.k, p.GSize, p.MPerGroup)
		}
		if p.NumGroups*p.GSize < c.k {
			t.Errorf("k=%d: groups do not cover all data blocks: ng=%d gsize=%d", c.k, p.NumGroups, p.GSize)
		}
	}
}

// TestPlanGroupsInvariants is testable property 8, fuzzed over a
// grid of (k, r).
func TestPlanGroupsInvariants(t *testing.T) {
	ratios := []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 1.5, 2.0}
	ks := []int{1, 2, 5, 50, 127, 200, 255, 300, 1000, 5000, 65000}

	for _, k := range ks {
		for _, r := range ratios {
			p := PlanGroups(k, r)
			if p.GSize+p.MPerGroup > rsMax {
				t.Errorf("k=%d r=%v: gSize+m=%d exceeds %d", k, r, p.GSize+p.MPerGroup, rsMax)
			}
			if p.MPerGroup < 1 || p.MPerGroup > 127 {
				t.Errorf("k=%d r=%v: m_per_group=%d out of [1,127]", k, r, p.MPerGroup)
			}
			if p.NumGroups*p.GSize < k {
				t.Errorf("k=%d r=%v: ng*gsize=%d < k=%d", k, r, p.NumGroups*p.GSize, k)
			}
		}
	}
}

func TestGroupMembersPartitionsByModulo(t *testing.T) {
	k, numGroups := 11, 3
	seen := make(map[int]int)
	for g := 0; g < numGroups; g++ {
		for _, blockID := range GroupMembers(k, numGroups, g) {
			if blockID%numGroups != g {
				t.Errorf("block %d assigned to group %d, want %d", blockID, g, blockID%numGroups)
			}
			seen[blockID]++
		}
	}
	if len(seen) != k {
		t.Fatalf("covered %d of %d blocks", len(seen), k)
	}
	for blockID, n := range seen {
		if n != 1 {
			t.Errorf("block %d assigned to %d groups, want 1", blockID, n)
		}
	}
}

func TestClampRatio(t *testing.T) {
	if got := clampRatio(0); got != 0.01 {
		t.Errorf("clampRatio(0) = %v, want 0.01", got)
	}
	if got := clampRatio(5); got != 2.0 {
		t.Errorf("clampRatio(5) = %v, want 2.0", got)
	}
	if got := clampRatio(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("clampRatio(0.5) = %v, want 0.5", got)
	}
}
