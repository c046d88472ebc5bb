package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func makeComment(at time.Time, parent *bson.ObjectID) Comment {
	return Comment{
		ID:            bson.NewObjectID(),
		Content:       "some thoughts",
		ParentComment: parent,
		CreatedAt:     at,
	}
}

func TestBuildCommentTree(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	c1 := makeComment(base, nil)
	c2 := makeComment(base.Add(time.Hour), nil)
	c1a := makeComment(base.Add(10*time.Minute), &c1.ID)
	c1b := makeComment(base.Add(20*time.Minute), &c1.ID)

	nodes := BuildCommentTree([]Comment{c1, c2}, []Comment{c1a, c1b}, nil)

	require.Len(t, nodes, 2)
	// Newest first among top-level comments.
	assert.Equal(t, c2.ID, nodes[0].ID)
	assert.Equal(t, c1.ID, nodes[1].ID)
	assert.Empty(t, nodes[0].Replies)

	require.Len(t, nodes[1].Replies, 2)
	assert.Equal(t, c1b.ID, nodes[1].Replies[0].ID)
	assert.Equal(t, c1a.ID, nodes[1].Replies[1].ID)

	// Replies never surface at the top level.
	for _, n := range nodes {
		assert.NotEqual(t, c1a.ID, n.ID)
		assert.NotEqual(t, c1b.ID, n.ID)
	}
}

func TestBuildCommentTreeDropsOrphanReplies(t *testing.T) {
	base := time.Now().UTC()
	c1 := makeComment(base, nil)
	missing := bson.NewObjectID()
	orphan := makeComment(base.Add(time.Minute), &missing)

	nodes := BuildCommentTree([]Comment{c1}, []Comment{orphan}, nil)

	require.Len(t, nodes, 1)
	assert.Empty(t, nodes[0].Replies)
}

func TestBuildCommentTreeTiebreakIsDeterministic(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := makeComment(at, nil)
	b := makeComment(at, nil)

	first := BuildCommentTree([]Comment{a, b}, nil, nil)
	second := BuildCommentTree([]Comment{b, a}, nil, nil)

	require.Len(t, first, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
}

func TestBuildCommentTreeResolvesAuthors(t *testing.T) {
	author := bson.NewObjectID()
	c := makeComment(time.Now().UTC(), nil)
	c.User = &author

	nodes := BuildCommentTree([]Comment{c}, nil, map[bson.ObjectID]string{author: "Dana"})

	require.Len(t, nodes, 1)
	require.NotNil(t, nodes[0].Author)
	assert.Equal(t, "Dana", nodes[0].Author.Name)

	// Anonymous comments carry no author.
	anon := BuildCommentTree([]Comment{makeComment(time.Now().UTC(), nil)}, nil, nil)
	assert.Nil(t, anon[0].Author)
}

func TestBuildCommentListResolvesAuthors(t *testing.T) {
	author := bson.NewObjectID()
	c := makeComment(time.Now().UTC(), nil)
	c.User = &author

	nodes := BuildCommentList([]Comment{c}, map[bson.ObjectID]string{author: "Dana"})

	require.Len(t, nodes, 1)
	require.NotNil(t, nodes[0].Author)
	assert.Equal(t, "Dana", nodes[0].Author.Name)
}

func TestCollectCommentIDs(t *testing.T) {
	base := time.Now().UTC()
	c1 := makeComment(base, nil)
	c2 := makeComment(base.Add(time.Hour), nil)
	c1a := makeComment(base.Add(time.Minute), &c1.ID)
	c1b := makeComment(base.Add(2*time.Minute), &c1.ID)

	nodes := BuildCommentTree([]Comment{c1, c2}, []Comment{c1a, c1b}, nil)
	ids := CollectCommentIDs(nodes)

	assert.Len(t, ids, 4)
	seen := map[bson.ObjectID]struct{}{}
	for _, id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id in collected set")
		seen[id] = struct{}{}
	}
	for _, want := range []bson.ObjectID{c1.ID, c2.ID, c1a.ID, c1b.ID} {
		assert.Contains(t, seen, want)
	}
}

func TestAnnotateCommentTree(t *testing.T) {
	base := time.Now().UTC()
	c1 := makeComment(base, nil)
	c2 := makeComment(base.Add(time.Hour), nil)
	c1a := makeComment(base.Add(time.Minute), &c1.ID)
	c1b := makeComment(base.Add(2*time.Minute), &c1.ID)

	nodes := BuildCommentTree([]Comment{c1, c2}, []Comment{c1a, c1b}, nil)

	liked := map[bson.ObjectID]struct{}{c1b.ID: {}}
	counts := map[bson.ObjectID]int64{c1b.ID: 3, c2.ID: 1}
	AnnotateCommentTree(nodes, liked, counts)

	flat := map[bson.ObjectID]*CommentNode{}
	var visit func(ns []*CommentNode)
	visit = func(ns []*CommentNode) {
		for _, n := range ns {
			flat[n.ID] = n
			visit(n.Replies)
		}
	}
	visit(nodes)

	// Only the liked reply is flagged; the flag reaches nested nodes.
	assert.True(t, flat[c1b.ID].IsLikedByCurrentUser)
	assert.False(t, flat[c1.ID].IsLikedByCurrentUser)
	assert.False(t, flat[c1a.ID].IsLikedByCurrentUser)
	assert.False(t, flat[c2.ID].IsLikedByCurrentUser)

	assert.Equal(t, int64(3), flat[c1b.ID].LikesCount)
	assert.Equal(t, int64(1), flat[c2.ID].LikesCount)
	assert.Equal(t, int64(0), flat[c1.ID].LikesCount)
}

func TestAnnotateCommentTreeAnonymousViewer(t *testing.T) {
	c1 := makeComment(time.Now().UTC(), nil)
	nodes := BuildCommentTree([]Comment{c1}, nil, nil)

	AnnotateCommentTree(nodes, map[bson.ObjectID]struct{}{}, map[bson.ObjectID]int64{c1.ID: 7})

	assert.False(t, nodes[0].IsLikedByCurrentUser)
	assert.Equal(t, int64(7), nodes[0].LikesCount)
}
