package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/Debian1107/Reviewed/pkg/global"
	"github.com/Debian1107/Reviewed/pkg/logger"
	"github.com/Debian1107/Reviewed/pkg/models"
	"github.com/Debian1107/Reviewed/pkg/mongo"
)

// GetComments serves three query modes: a single comment by id, the replies
// of a parent comment, or the full two-tier tree for an item. Every returned
// node carries like counts and the viewer's like state.
func GetComments(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.L().Named("comments")

	var nodes []*models.CommentNode

	switch {
	case c.Query("id") != "":
		commentID, err := bson.ObjectIDFromHex(c.Query("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid commentid: No item found.", nil))
			return
		}
		nodes, err = mongo.FetchCommentNode(ctx, commentID)
		if err != nil {
			if errors.Is(err, mongo.ErrNotFound) {
				c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid commentid: No item found.", nil))
				return
			}
			log.Error("failed to fetch comment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch comments", nil))
			return
		}

	case c.Query("parentComment") != "":
		parentID, err := bson.ObjectIDFromHex(c.Query("parentComment"))
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("No replies comments found", nil))
			return
		}
		nodes, err = mongo.FetchReplies(ctx, parentID)
		if err != nil {
			log.Error("failed to fetch replies", zap.Error(err))
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch comments", nil))
			return
		}

	default:
		item, err := mongo.FindItemBySlug(ctx, c.Query("itemid"))
		if err != nil {
			if errors.Is(err, mongo.ErrNotFound) {
				c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid itemId: No item found.", nil))
				return
			}
			log.Error("failed to resolve item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch comments", nil))
			return
		}
		nodes, err = mongo.FetchCommentsForItem(ctx, item.ID)
		if err != nil {
			log.Error("failed to fetch comment tree", zap.Error(err))
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch comments", nil))
			return
		}
	}

	if err := annotateCommentLikes(c, nodes); err != nil {
		log.Error("failed to annotate likes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch comments", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(nodes))
}

// annotateCommentLikes flattens every node id across the tree in one pass,
// fetches the viewer's likes and the per-target counts in one batch query
// each, and merges the results back onto every node - top-level and reply
// alike. Never one query per node.
func annotateCommentLikes(c *gin.Context, nodes []*models.CommentNode) error {
	ctx := c.Request.Context()
	ids := models.CollectCommentIDs(nodes)

	counts, err := mongo.CountLikesForTargets(ctx, models.LikeKindComment, ids)
	if err != nil {
		return err
	}

	liked := map[bson.ObjectID]struct{}{}
	if viewer := currentViewer(c); viewer != nil {
		liked, err = mongo.FindLikedTargets(ctx, *viewer, models.LikeKindComment, ids)
		if err != nil {
			return err
		}
	}

	models.AnnotateCommentTree(nodes, liked, counts)
	return nil
}

// CreateComment stores a new comment, top-level or reply. An unresolvable
// parent id degrades to a top-level comment rather than failing the post.
func CreateComment(c *gin.Context) {
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Missing required fields: Item ID, content.", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()
	item, err := mongo.FindItemBySlug(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, mongo.ErrNotFound) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid itemId: No item found.", nil))
			return
		}
		logger.L().Named("comments").Error("failed to resolve item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create comment.", nil))
		return
	}

	var parentRef *bson.ObjectID
	if req.ParentID != "" {
		if parentID, err := bson.ObjectIDFromHex(req.ParentID); err == nil {
			if parent, err := mongo.FetchCommentByID(ctx, parentID); err == nil {
				parentRef = &parent.ID
			}
		}
	}

	comment := &models.Comment{
		ID:            bson.NewObjectID(),
		User:          currentViewer(c),
		Item:          &item.ID,
		Content:       req.Content,
		Rating:        req.Rating,
		ParentComment: parentRef,
		CreatedAt:     time.Now().UTC(),
	}

	if err := mongo.CreateComment(ctx, comment); err != nil {
		logger.L().Named("comments").Error("failed to create comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create comment.", nil))
		return
	}

	c.JSON(http.StatusCreated, global.MessageResponse("comment added successfully."))
}
