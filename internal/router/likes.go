package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/Debian1107/Reviewed/pkg/global"
	"github.com/Debian1107/Reviewed/pkg/logger"
	"github.com/Debian1107/Reviewed/pkg/models"
	"github.com/Debian1107/Reviewed/pkg/mongo"
)

// ToggleLike flips the viewer's like on a comment or a review. The request
// must name exactly one target; the same call likes an unliked target and
// unlikes a liked one.
func ToggleLike(c *gin.Context) {
	viewer := currentViewer(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Unauthorized", nil))
		return
	}

	var req models.ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Either commentId or reviewId is required.", nil))
		return
	}
	if (req.CommentID == "") == (req.ReviewID == "") {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Either commentId or reviewId is required.", []global.ValidationError{
			{Field: "commentId", Message: "Provide exactly one of commentId or reviewId", Code: "invalid_target"},
		}))
		return
	}

	target, err := resolveLikeTarget(c, &req)
	if err != nil {
		if errors.Is(err, mongo.ErrNotFound) || errors.Is(err, mongo.ErrInvalidReference) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid target: no such comment or review.", nil))
			return
		}
		logger.L().Named("likes").Error("failed to resolve like target", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to toggle like.", nil))
		return
	}

	outcome, err := mongo.ToggleLike(c.Request.Context(), *viewer, target)
	if err != nil {
		logger.L().Named("likes").Error("failed to toggle like",
			zap.String("kind", string(target.Kind)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to toggle like.", nil))
		return
	}

	message := "Like added"
	if outcome == mongo.LikeRemoved {
		message = "Like removed"
	}
	c.JSON(http.StatusOK, global.APIResponse{
		Success: true,
		Data:    map[string]string{"action": outcome},
		Message: message,
	})
}

// resolveLikeTarget verifies the named target exists before the toggle
// touches the likes collection.
func resolveLikeTarget(c *gin.Context, req *models.ToggleLikeRequest) (models.LikeTarget, error) {
	ctx := c.Request.Context()

	if req.CommentID != "" {
		commentID, err := bson.ObjectIDFromHex(req.CommentID)
		if err != nil {
			return models.LikeTarget{}, mongo.ErrInvalidReference
		}
		comment, err := mongo.FetchCommentByID(ctx, commentID)
		if err != nil {
			return models.LikeTarget{}, err
		}
		return models.LikeTarget{Kind: models.LikeKindComment, ID: comment.ID}, nil
	}

	reviewID, err := bson.ObjectIDFromHex(req.ReviewID)
	if err != nil {
		return models.LikeTarget{}, mongo.ErrInvalidReference
	}
	review, err := mongo.FindReviewByID(ctx, reviewID)
	if err != nil {
		return models.LikeTarget{}, err
	}
	return models.LikeTarget{Kind: models.LikeKindReview, ID: review.ID}, nil
}
