package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextAverage(t *testing.T) {
	avg, count := NextAverage(4.0, 2, 5)
	assert.Equal(t, 3, count)
	assert.InDelta(t, 4.3333, avg, 0.0001)
	assert.Equal(t, 4.3, RoundRating(avg))

	avg, count = NextAverage(0, 0, 4)
	assert.Equal(t, 1, count)
	assert.Equal(t, 4.0, avg)
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.3, RoundRating(4.333333))
	assert.Equal(t, 4.7, RoundRating(4.666666))
	assert.Equal(t, 0.0, RoundRating(0))
	assert.Equal(t, 5.0, RoundRating(4.95))
}

func TestFillRatingBreakdown(t *testing.T) {
	breakdown := FillRatingBreakdown(map[int]int64{5: 3, 4: 1, 0: 2})

	assert.Len(t, breakdown, 6)
	assert.Equal(t, 5, breakdown[0].Rating)
	assert.Equal(t, 0, breakdown[5].Rating)

	byRating := map[int]int64{}
	var total int64
	for _, b := range breakdown {
		byRating[b.Rating] = b.Count
		total += b.Count
	}
	assert.Equal(t, int64(3), byRating[5])
	assert.Equal(t, int64(1), byRating[4])
	assert.Equal(t, int64(0), byRating[3])
	assert.Equal(t, int64(0), byRating[2])
	assert.Equal(t, int64(0), byRating[1])
	assert.Equal(t, int64(2), byRating[0])
	assert.Equal(t, int64(6), total)
}

func TestFillRatingBreakdownEmpty(t *testing.T) {
	breakdown := FillRatingBreakdown(nil)
	assert.Len(t, breakdown, 6)
	for _, b := range breakdown {
		assert.Equal(t, int64(0), b.Count)
	}
}
