package models

import "math"

// RatingBucket is one entry of the 6-bucket rating histogram.
type RatingBucket struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

// RatingSummary is the aggregate view of all ratings for one item.
type RatingSummary struct {
	AverageRating   float64        `json:"averageRating"`
	TotalReviews    int64          `json:"totalReviews"`
	RatingBreakdown []RatingBucket `json:"ratingBreakdown"`
}

// RoundRating rounds an average to one decimal place for display.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// FillRatingBreakdown produces the dense 6-bucket histogram, ratings 5 down
// to 0, substituting zero for any value absent from the grouped counts.
func FillRatingBreakdown(counts map[int]int64) []RatingBucket {
	breakdown := make([]RatingBucket, 0, 6)
	for rating := 5; rating >= 0; rating-- {
		breakdown = append(breakdown, RatingBucket{Rating: rating, Count: counts[rating]})
	}
	return breakdown
}

// NextAverage applies one new rating to a running average over count prior
// reviews and returns the new average and count.
func NextAverage(avg float64, count int, rating int) (float64, int) {
	newCount := count + 1
	return (avg*float64(count) + float64(rating)) / float64(newCount), newCount
}
