package domain

import "sort"

// Prioritize orders findings for processing: safest first, highest value
// within the same safety band.
//
// Key: risk ascending, then action blast radius ascending, then token
// estimate descending. Target path is the final tiebreak so the order is
// reproducible across runs.
func Prioritize(findings []Finding) []Finding {
	ordered := append([]Finding(nil), findings...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Risk != b.Risk {
			return a.Risk < b.Risk
		}
		if ActionRank(a.Action) != ActionRank(b.Action) {
			return ActionRank(a.Action) < ActionRank(b.Action)
		}
		if a.TokenEstimate != b.TokenEstimate {
			return a.TokenEstimate > b.TokenEstimate
		}
		return a.Target < b.Target
	})
	return ordered
}
