package models

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment is a discussion post on an item, optionally carrying its own
// rating and optionally replying to another comment. A nil ParentComment
// means top-level; replies are stored recursively but the read path only
// fetches one level.
type Comment struct {
	ID            bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	User          *bson.ObjectID `json:"-" bson:"user,omitempty"`
	Item          *bson.ObjectID `json:"-" bson:"item,omitempty"`
	Content       string         `json:"content" bson:"content"`
	Rating        *int           `json:"rating,omitempty" bson:"rating,omitempty"`
	ParentComment *bson.ObjectID `json:"parentComment,omitempty" bson:"parentComment,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
}

// Author is the display attribution attached to comments and reviews.
type Author struct {
	Name string `json:"name"`
}

// CommentNode is the annotated response shape for one comment. Replies is
// populated for top-level nodes only; the tree is explicitly two-tier.
type CommentNode struct {
	ID                   bson.ObjectID  `json:"id"`
	Author               *Author        `json:"author,omitempty"`
	Content              string         `json:"content"`
	Rating               *int           `json:"rating,omitempty"`
	CreatedAt            time.Time      `json:"createdAt"`
	LikesCount           int64          `json:"likesCount"`
	IsLikedByCurrentUser bool           `json:"isLikedByCurrentUser"`
	Replies              []*CommentNode `json:"replies"`
}

type CreateCommentRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Rating   *int   `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	ParentID string `json:"parentId,omitempty"`
}

func newCommentNode(c Comment, names map[bson.ObjectID]string) *CommentNode {
	node := &CommentNode{
		ID:        c.ID,
		Content:   c.Content,
		Rating:    c.Rating,
		CreatedAt: c.CreatedAt,
		Replies:   []*CommentNode{},
	}
	if c.User != nil {
		if name, ok := names[*c.User]; ok {
			node.Author = &Author{Name: name}
		}
	}
	return node
}

// sortNewestFirst orders siblings strictly descending by creation time, with
// the identifier as a deterministic tiebreak.
func sortNewestFirst(nodes []*CommentNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if !nodes[i].CreatedAt.Equal(nodes[j].CreatedAt) {
			return nodes[i].CreatedAt.After(nodes[j].CreatedAt)
		}
		return nodes[i].ID.Hex() > nodes[j].ID.Hex()
	})
}

// BuildCommentTree assembles the two-tier tree from top-level comments and
// their (already fetched) replies, resolving author display names from the
// given lookup. Replies whose parent is not in the top-level set are dropped.
func BuildCommentTree(topLevel []Comment, replies []Comment, names map[bson.ObjectID]string) []*CommentNode {
	nodes := make([]*CommentNode, 0, len(topLevel))
	byID := make(map[bson.ObjectID]*CommentNode, len(topLevel))
	for _, c := range topLevel {
		node := newCommentNode(c, names)
		nodes = append(nodes, node)
		byID[c.ID] = node
	}

	for _, r := range replies {
		if r.ParentComment == nil {
			continue
		}
		if parent, ok := byID[*r.ParentComment]; ok {
			parent.Replies = append(parent.Replies, newCommentNode(r, names))
		}
	}

	sortNewestFirst(nodes)
	for _, node := range nodes {
		sortNewestFirst(node.Replies)
	}
	return nodes
}

// BuildCommentList turns a flat set of comments into nodes with no nesting,
// used for the reply and single-comment query modes.
func BuildCommentList(comments []Comment, names map[bson.ObjectID]string) []*CommentNode {
	nodes := make([]*CommentNode, 0, len(comments))
	for _, c := range comments {
		nodes = append(nodes, newCommentNode(c, names))
	}
	sortNewestFirst(nodes)
	return nodes
}

// CollectCommentIDs flattens every node identifier across the tree, replies
// included, in a single pass. The result contains no duplicates.
func CollectCommentIDs(nodes []*CommentNode) []bson.ObjectID {
	seen := make(map[bson.ObjectID]struct{}, len(nodes))
	ids := make([]bson.ObjectID, 0, len(nodes))
	var visit func(n *CommentNode)
	visit = func(n *CommentNode) {
		if _, dup := seen[n.ID]; !dup {
			seen[n.ID] = struct{}{}
			ids = append(ids, n.ID)
		}
		for _, r := range n.Replies {
			visit(r)
		}
	}
	for _, n := range nodes {
		visit(n)
	}
	return ids
}

// AnnotateCommentTree sets IsLikedByCurrentUser on every node, top-level and
// reply alike, from the viewer's like membership set. LikesCount is filled
// from the per-target counts. No other field is touched.
func AnnotateCommentTree(nodes []*CommentNode, liked map[bson.ObjectID]struct{}, counts map[bson.ObjectID]int64) {
	for _, n := range nodes {
		_, isLiked := liked[n.ID]
		n.IsLikedByCurrentUser = isLiked
		n.LikesCount = counts[n.ID]
		AnnotateCommentTree(n.Replies, liked, counts)
	}
}
