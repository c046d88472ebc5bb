package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Item represents a reviewable subject (product, service, place).
// ReviewCount and AverageRating are denormalized aggregates, mutated only by
// review creation; the detail endpoint recomputes the full breakdown on
// demand without persisting it back.
type Item struct {
	ID            bson.ObjectID `json:"-" bson:"_id,omitempty"`
	Slug          string        `json:"id" bson:"id"`
	Name          string        `json:"name" bson:"name"`
	Description   string        `json:"description" bson:"description"`
	Image         string        `json:"image,omitempty" bson:"image,omitempty"`
	Category      string        `json:"category" bson:"category"`
	Tags          []string      `json:"tags" bson:"tags"`
	ReviewCount   int           `json:"reviewCount" bson:"reviewCount"`
	AverageRating float64       `json:"averageRating" bson:"averageRating"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// ItemDetail is the detail-page view: item metadata merged with the
// on-demand rating summary.
type ItemDetail struct {
	Slug            string         `json:"id"`
	Name            string         `json:"name"`
	Category        string         `json:"category"`
	Description     string         `json:"description"`
	Image           string         `json:"image,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	OverallRating   float64        `json:"overallRating"`
	TotalReviews    int64          `json:"totalReviews"`
	RatingBreakdown []RatingBucket `json:"ratingBreakdown"`
}

type SuggestItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"required"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9\s-]`)
var whitespace = regexp.MustCompile(`\s+`)

// Slugify converts a display name into the URL-friendly unique item id.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = strings.TrimSpace(slug)
	return whitespace.ReplaceAllString(slug, "-")
}

// ToItem builds a fresh Item from a suggestion. Review metrics start at zero
// and tags are seeded from the category plus the first words of the name.
func (req *SuggestItemRequest) ToItem() *Item {
	nameWords := strings.Fields(strings.ToLower(req.Name))
	if len(nameWords) > 3 {
		nameWords = nameWords[:3]
	}

	now := time.Now().UTC()
	return &Item{
		ID:            bson.NewObjectID(),
		Slug:          Slugify(req.Name),
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Tags:          append([]string{req.Category}, nameWords...),
		ReviewCount:   0,
		AverageRating: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Detail merges the item with a computed rating summary.
func (i *Item) Detail(summary RatingSummary) *ItemDetail {
	return &ItemDetail{
		Slug:            i.Slug,
		Name:            i.Name,
		Category:        i.Category,
		Description:     i.Description,
		Image:           i.Image,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
		OverallRating:   summary.AverageRating,
		TotalReviews:    summary.TotalReviews,
		RatingBreakdown: summary.RatingBreakdown,
	}
}
