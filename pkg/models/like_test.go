package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestLikeKindIsValid(t *testing.T) {
	assert.True(t, LikeKindComment.IsValid())
	assert.True(t, LikeKindReview.IsValid())
	assert.False(t, LikeKind("item").IsValid())
	assert.False(t, LikeKind("").IsValid())
}

// Toggling the same target twice returns the viewer's membership set to its
// starting state, and the annotators reflect that.
func TestLikeMembershipToggleTwice(t *testing.T) {
	view := &ReviewView{ID: bson.NewObjectID()}
	liked := map[bson.ObjectID]struct{}{}

	liked[view.ID] = struct{}{}
	AnnotateReviews([]*ReviewView{view}, liked, nil)
	assert.True(t, view.IsLikedByCurrentUser)

	delete(liked, view.ID)
	AnnotateReviews([]*ReviewView{view}, liked, nil)
	assert.False(t, view.IsLikedByCurrentUser)
}

func TestNewLike(t *testing.T) {
	user := bson.NewObjectID()
	target := LikeTarget{Kind: LikeKindReview, ID: bson.NewObjectID()}

	like := NewLike(user, target)

	assert.Equal(t, user, like.User)
	assert.Equal(t, LikeKindReview, like.Kind)
	assert.Equal(t, target.ID, like.Target)
	assert.False(t, like.ID.IsZero())
	assert.False(t, like.CreatedAt.IsZero())
}
