package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestBuildReviewViews(t *testing.T) {
	author := bson.NewObjectID()
	stranger := bson.NewObjectID()

	reviews := []Review{
		{ID: bson.NewObjectID(), User: author, Category: "tech", Content: "great", Rating: 5},
		{ID: bson.NewObjectID(), User: stranger, Category: "tech", Content: "meh", Rating: 2},
	}
	names := map[bson.ObjectID]string{author: "Dana"}

	views := BuildReviewViews(reviews, names)

	require.Len(t, views, 2)
	require.NotNil(t, views[0].Author)
	assert.Equal(t, "Dana", views[0].Author.Name)
	assert.Nil(t, views[1].Author)
	assert.Equal(t, 5, views[0].Rating)
}

func TestAnnotateReviews(t *testing.T) {
	r1 := &ReviewView{ID: bson.NewObjectID()}
	r2 := &ReviewView{ID: bson.NewObjectID()}
	views := []*ReviewView{r1, r2}

	AnnotateReviews(views,
		map[bson.ObjectID]struct{}{r1.ID: {}},
		map[bson.ObjectID]int64{r1.ID: 4},
	)

	assert.True(t, r1.IsLikedByCurrentUser)
	assert.Equal(t, int64(4), r1.LikesCount)
	assert.False(t, r2.IsLikedByCurrentUser)
	assert.Equal(t, int64(0), r2.LikesCount)
}

func TestCollectReviewIDs(t *testing.T) {
	r1 := &ReviewView{ID: bson.NewObjectID()}
	r2 := &ReviewView{ID: bson.NewObjectID()}

	ids := CollectReviewIDs([]*ReviewView{r1, r2})

	assert.Equal(t, []bson.ObjectID{r1.ID, r2.ID}, ids)
	assert.Empty(t, CollectReviewIDs(nil))
}

func TestNewReviewFromRequest(t *testing.T) {
	req := CreateReviewRequest{
		ItemID:   "coffee-maker",
		Category: "appliances",
		Content:  "does the job",
		Rating:   4,
	}
	author := bson.NewObjectID()
	item := bson.NewObjectID()

	review := req.NewReview(author, item)

	assert.Equal(t, author, review.User)
	assert.Equal(t, item, review.ItemID)
	assert.Equal(t, 4, review.Rating)
	assert.False(t, review.ID.IsZero())
	assert.False(t, review.CreatedAt.IsZero())
	assert.Equal(t, review.CreatedAt, review.UpdatedAt)
}
