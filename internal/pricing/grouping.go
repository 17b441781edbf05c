// internal/pricing/grouping.go
package pricing

// buildAreaGroupIndex maps each area id to the id of the group that claims
// it. Groups are walked in their given order (the fetch layer orders them by
// sort_order), so when an area id appears in more than one group the later
// group wins. Admin validation rejects such overlaps for active groups; the
// index keeps the precedence deterministic anyway for hand-edited data.
func buildAreaGroupIndex(groups []Group) map[string]string {
	index := make(map[string]string)
	for _, g := range groups {
		for _, areaID := range g.AreaIDs {
			index[areaID] = g.ID
		}
	}
	return index
}

// GroupSubmissions partitions submissions into per-group lists and an
// ungrouped remainder. Order within every list follows input order. The
// inputs are not mutated.
func GroupSubmissions(subs []Submission, groups []Group) (map[string][]Submission, []Submission) {
	index := buildAreaGroupIndex(groups)

	grouped := make(map[string][]Submission)
	var ungrouped []Submission

	for _, sub := range subs {
		if groupID, ok := index[sub.AreaID]; ok {
			grouped[groupID] = append(grouped[groupID], sub)
		} else {
			ungrouped = append(ungrouped, sub)
		}
	}

	return grouped, ungrouped
}

// TierMultiplier returns the volume discount for a tiered group based on how
// many submissions target areas of that group: 4 or more earn 30% off, 2-3
// earn 15% off, fewer get no discount.
func TierMultiplier(used int) float64 {
	switch {
	case used >= 4:
		return 0.70
	case used >= 2:
		return 0.85
	default:
		return 1.0
	}
}
