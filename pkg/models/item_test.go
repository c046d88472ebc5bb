package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Coffee Maker", "coffee-maker"},
		{"  Trimmed  Name  ", "trimmed-name"},
		{"Deluxe! Model #7", "deluxe-model-7"},
		{"already-slugged", "already-slugged"},
		{"MiXeD CaSe", "mixed-case"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.name), "Slugify(%q)", tc.name)
	}
}

func TestSuggestItemRequestToItem(t *testing.T) {
	req := SuggestItemRequest{
		Name:        "Espresso Machine Deluxe Edition",
		Category:    "appliances",
		Description: "Makes espresso.",
	}

	item := req.ToItem()

	assert.Equal(t, "espresso-machine-deluxe-edition", item.Slug)
	assert.Equal(t, 0, item.ReviewCount)
	assert.Equal(t, 0.0, item.AverageRating)
	// Category plus at most the first three name words.
	require.Len(t, item.Tags, 4)
	assert.Equal(t, "appliances", item.Tags[0])
	assert.Equal(t, []string{"espresso", "machine", "deluxe"}, item.Tags[1:])
}

func TestItemDetailMergesSummary(t *testing.T) {
	item := Item{Slug: "coffee-maker", Name: "Coffee Maker", Category: "appliances"}
	summary := RatingSummary{
		AverageRating:   4.3,
		TotalReviews:    3,
		RatingBreakdown: FillRatingBreakdown(map[int]int64{5: 1, 4: 2}),
	}

	detail := item.Detail(summary)

	assert.Equal(t, "coffee-maker", detail.Slug)
	assert.Equal(t, 4.3, detail.OverallRating)
	assert.Equal(t, int64(3), detail.TotalReviews)
	assert.Len(t, detail.RatingBreakdown, 6)
}
