// internal/pricing/grouping_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupSubmissionsAssignsByAreaID(t *testing.T) {
	groups := []Group{
		{ID: "g1", AreaIDs: []string{"front", "back"}},
		{ID: "g2", AreaIDs: []string{"sleeve"}},
	}
	subs := []Submission{
		{AreaID: "front"},
		{AreaID: "sleeve"},
		{AreaID: "back"},
		{AreaID: "pocket"},
	}

	grouped, ungrouped := GroupSubmissions(subs, groups)

	assert.Len(t, grouped["g1"], 2)
	assert.Len(t, grouped["g2"], 1)
	assert.Len(t, ungrouped, 1)
	assert.Equal(t, "pocket", ungrouped[0].AreaID)
}

func TestGroupSubmissionsLastGroupWinsOnOverlap(t *testing.T) {
	groups := []Group{
		{ID: "g1", AreaIDs: []string{"front"}},
		{ID: "g2", AreaIDs: []string{"front"}},
	}
	subs := []Submission{{AreaID: "front"}}

	grouped, ungrouped := GroupSubmissions(subs, groups)

	assert.Empty(t, grouped["g1"])
	assert.Len(t, grouped["g2"], 1)
	assert.Empty(t, ungrouped)
}

func TestGroupSubmissionsPreservesInputOrder(t *testing.T) {
	groups := []Group{{ID: "g1", AreaIDs: []string{"front", "back", "sleeve"}}}
	subs := []Submission{
		{AreaID: "sleeve", Colors: 1},
		{AreaID: "front", Colors: 2},
		{AreaID: "sleeve", Colors: 3},
		{AreaID: "back", Colors: 4},
	}

	grouped, _ := GroupSubmissions(subs, groups)

	colors := make([]int, 0, len(grouped["g1"]))
	for _, sub := range grouped["g1"] {
		colors = append(colors, sub.Colors)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, colors)
}

func TestGroupSubmissionsNoGroups(t *testing.T) {
	subs := []Submission{{AreaID: "front"}, {AreaID: "back"}}

	grouped, ungrouped := GroupSubmissions(subs, nil)

	assert.Empty(t, grouped)
	assert.Equal(t, subs, ungrouped)
}

func TestTierMultiplier(t *testing.T) {
	tests := []struct {
		used int
		want float64
	}{
		{0, 1.0},
		{1, 1.0},
		{2, 0.85},
		{3, 0.85},
		{4, 0.70},
		{7, 0.70},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierMultiplier(tt.used), "used=%d", tt.used)
	}
}
