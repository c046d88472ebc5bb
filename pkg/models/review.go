package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Review is a rated write-up tied to one item and one author. A user may
// submit several reviews for the same item.
type Review struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	User      bson.ObjectID `json:"-" bson:"user"`
	Category  string        `json:"category" bson:"category"`
	ItemID    bson.ObjectID `json:"-" bson:"itemId"`
	Title     string        `json:"title,omitempty" bson:"title,omitempty"`
	Content   string        `json:"content" bson:"content"`
	Rating    int           `json:"rating" bson:"rating"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// ReviewView is the annotated response shape for one review.
type ReviewView struct {
	ID                   bson.ObjectID `json:"id"`
	Author               *Author       `json:"author,omitempty"`
	Category             string        `json:"category"`
	Title                string        `json:"title,omitempty"`
	Content              string        `json:"content"`
	Rating               int           `json:"rating"`
	CreatedAt            time.Time     `json:"createdAt"`
	LikesCount           int64         `json:"likesCount"`
	IsLikedByCurrentUser bool          `json:"isLikedByCurrentUser"`
}

type CreateReviewRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Category string `json:"category" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Title    string `json:"title,omitempty"`
	Rating   int    `json:"rating" binding:"min=0,max=5"`
}

// NewReview builds a review from a validated request.
func (req *CreateReviewRequest) NewReview(author, item bson.ObjectID) *Review {
	now := time.Now().UTC()
	return &Review{
		ID:        bson.NewObjectID(),
		User:      author,
		Category:  req.Category,
		ItemID:    item,
		Title:     req.Title,
		Content:   req.Content,
		Rating:    req.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BuildReviewViews converts stored reviews into response views with author
// names resolved.
func BuildReviewViews(reviews []Review, names map[bson.ObjectID]string) []*ReviewView {
	views := make([]*ReviewView, 0, len(reviews))
	for _, r := range reviews {
		view := &ReviewView{
			ID:        r.ID,
			Category:  r.Category,
			Title:     r.Title,
			Content:   r.Content,
			Rating:    r.Rating,
			CreatedAt: r.CreatedAt,
		}
		if name, ok := names[r.User]; ok {
			view.Author = &Author{Name: name}
		}
		views = append(views, view)
	}
	return views
}

// CollectReviewIDs flattens review identifiers for the batch like lookup.
func CollectReviewIDs(views []*ReviewView) []bson.ObjectID {
	ids := make([]bson.ObjectID, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}

// AnnotateReviews sets IsLikedByCurrentUser and LikesCount on every view
// from the viewer's like membership set and the per-target counts.
func AnnotateReviews(views []*ReviewView, liked map[bson.ObjectID]struct{}, counts map[bson.ObjectID]int64) {
	for _, v := range views {
		_, isLiked := liked[v.ID]
		v.IsLikedByCurrentUser = isLiked
		v.LikesCount = counts[v.ID]
	}
}

// TrendingReview is one row of the trending listing: a review joined with
// its item and ranked by like count.
type TrendingReview struct {
	ID         bson.ObjectID `json:"id" bson:"_id"`
	Author     *Author       `json:"author,omitempty" bson:"author,omitempty"`
	ItemSlug   string        `json:"itemId" bson:"itemSlug"`
	ItemName   string        `json:"name" bson:"itemName"`
	Category   string        `json:"category" bson:"category"`
	Title      string        `json:"title,omitempty" bson:"title,omitempty"`
	Content    string        `json:"content" bson:"content"`
	Rating     int           `json:"rating" bson:"rating"`
	LikesCount int64         `json:"likesCount" bson:"likesCount"`
	CreatedAt  time.Time     `json:"createdAt" bson:"createdAt"`
}
