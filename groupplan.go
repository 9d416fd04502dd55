package groundlink

import "math"

// GroupPlan describes how k data blocks are split into Reed-Solomon
// groups that each fit inside the 255-symbol GF(2^8) limit.
type GroupPlan struct {
	GSize     int // data positions per group, including zero-padding
	MPerGroup int // parity blocks per group
	NumGroups int
}

// clampRatio restricts fec_ratio to documented range.
func clampRatio(r float64) float64 {
	if r < 0.01 {
		return 0.01
	}
	if r > 2.0 {
		return 2.0
	}
	return r
}

// PlanGroups implements three-step rule: a single
// undivided group when k+m_desired fits in GF(2^8), otherwise a clamped
// per-group parity count and enough groups to cover all k data blocks.
func PlanGroups(k int, fecRatio float64) GroupPlan {
	r := clampRatio(fecRatio)
	mDesired := int(math.Ceil(float64(k) * r))
	if mDesired < 1 {
		mDesired = 1
	}

	if k+mDesired <= rsMax {
		return GroupPlan{GSize: k, MPerGroup: mDesired, NumGroups: 1}
	}

	mPerGroup := int(math.Round(r * float64(rsMax) / (1 + r)))
	if mPerGroup < 1 {
		mPerGroup = 1
	}
	if mPerGroup > 127 {
		mPerGroup = 127
	}
	gSize := rsMax - mPerGroup
	numGroups := int(math.Ceil(float64(k) / float64(gSize)))
	return GroupPlan{GSize: gSize, MPerGroup: mPerGroup, NumGroups: numGroups}
}

// MTotal returns the total parity block count num_groups * m_per_group.
func (p GroupPlan) MTotal() int {
	return p.NumGroups * p.MPerGroup
}

// NTotal returns k + MTotal() for the given k.
func (p GroupPlan) NTotal(k int) int {
	return k + p.MTotal()
}

// GroupMembers returns, for group g (0-indexed), the block_ids of the
// data blocks assigned to it: every i in [0,k) with i % numGroups == g,
// in ascending order.
func GroupMembers(k, numGroups, g int) []int {
	members := make([]int, 0, k/numGroups+1)
	for i := g; i < k; i += numGroups {
		members = append(members, i)
	}
	return members
}
