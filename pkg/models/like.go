package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// LikeKind discriminates what a like points at.
type LikeKind string

const (
	LikeKindComment LikeKind = "comment"
	LikeKindReview  LikeKind = "review"
)

func (k LikeKind) IsValid() bool {
	return k == LikeKindComment || k == LikeKindReview
}

// LikeTarget is the tagged variant identifying a likeable entity, so the
// "exactly one of comment/review" rule holds structurally.
type LikeTarget struct {
	Kind LikeKind      `json:"kind" bson:"kind"`
	ID   bson.ObjectID `json:"targetId" bson:"target"`
}

// Like records one viewer's endorsement of a comment or review. At most one
// Like exists per (user, target); toggling is the only mutation.
type Like struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	User      bson.ObjectID `json:"user" bson:"user"`
	Kind      LikeKind      `json:"type" bson:"kind"`
	Target    bson.ObjectID `json:"targetId" bson:"target"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}

// NewLike builds a like for the given viewer and target.
func NewLike(user bson.ObjectID, target LikeTarget) *Like {
	return &Like{
		ID:        bson.NewObjectID(),
		User:      user,
		Kind:      target.Kind,
		Target:    target.ID,
		CreatedAt: time.Now().UTC(),
	}
}

type ToggleLikeRequest struct {
	CommentID string `json:"commentId,omitempty"`
	ReviewID  string `json:"reviewId,omitempty"`
}
