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

const trendingLimit = 5

// GetReviews serves three query modes: trending reviews, the viewer's own
// reviews, and an item's reviews annotated with the viewer's like state.
func GetReviews(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("trending") != "" {
		trending, err := mongo.TrendingReviews(ctx, trendingLimit)
		if err != nil {
			logger.L().Named("reviews").Error("failed to fetch trending reviews", zap.Error(err))
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch reviews", nil))
			return
		}
		c.JSON(http.StatusOK, global.SuccessResponse(trending))
		return
	}

	if c.Query("userReviews") != "" {
		viewer := currentViewer(c)
		if viewer == nil {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Unauthorized", nil))
			return
		}
		reviews, err := mongo.FindReviewsByUser(ctx, *viewer)
		if err != nil {
			logger.L().Named("reviews").Error("failed to fetch user reviews", zap.Error(err))
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch reviews", nil))
			return
		}
		c.JSON(http.StatusOK, global.SuccessResponse(reviews))
		return
	}

	slug := c.Query("id")
	if slug == "" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Missing itemid parameter.", []global.ValidationError{
			{Field: "id", Message: "id query parameter is required", Code: "required"},
		}))
		return
	}

	item, err := mongo.FindItemBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNotFound) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid itemId: No item found.", nil))
			return
		}
		logger.L().Named("reviews").Error("failed to resolve item", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch reviews", nil))
		return
	}

	views, err := mongo.FindReviewsForItem(ctx, item.ID)
	if err != nil {
		logger.L().Named("reviews").Error("failed to fetch reviews", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch reviews", nil))
		return
	}

	if err := annotateReviewLikes(c, views); err != nil {
		logger.L().Named("reviews").Error("failed to annotate likes", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch reviews", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(views))
}

// annotateReviewLikes decorates review views with like counts and, for a
// signed-in viewer, their like membership - one batch query each, never one
// per review.
func annotateReviewLikes(c *gin.Context, views []*models.ReviewView) error {
	ctx := c.Request.Context()
	ids := models.CollectReviewIDs(views)

	counts, err := mongo.CountLikesForTargets(ctx, models.LikeKindReview, ids)
	if err != nil {
		return err
	}

	liked := map[bson.ObjectID]struct{}{}
	if viewer := currentViewer(c); viewer != nil {
		liked, err = mongo.FindLikedTargets(ctx, *viewer, models.LikeKindReview, ids)
		if err != nil {
			return err
		}
	}

	models.AnnotateReviews(views, liked, counts)
	return nil
}

// CreateReview stores a new review and folds its rating into the item's
// denormalized aggregates. The review's category must match the item's.
func CreateReview(c *gin.Context) {
	viewer := currentViewer(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Unauthorized", nil))
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Missing required fields: category, itemId, or content.", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()
	item, err := mongo.FindItemBySlug(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, mongo.ErrNotFound) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid itemId: No item found with the provided ID.", nil))
			return
		}
		logger.L().Named("reviews").Error("failed to resolve item", zap.String("slug", req.ItemID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create review.", nil))
		return
	}
	if item.Category != req.Category {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Item category does not match the provided category.", []global.ValidationError{
			{Field: "category", Message: "Category must match the item's category", Code: "category_mismatch"},
		}))
		return
	}

	review := req.NewReview(*viewer, item.ID)
	if err := mongo.CreateReview(ctx, review); err != nil {
		logger.L().Named("reviews").Error("failed to create review", zap.String("slug", req.ItemID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create review.", nil))
		return
	}

	// The review is already committed; a failure here leaves the item's
	// aggregate stale until the next successful update.
	if err := mongo.ApplyNewRating(ctx, item, review.Rating); err != nil {
		logger.L().Named("reviews").Error("failed to update item rating",
			zap.String("slug", item.Slug), zap.Error(err))
	}

	c.JSON(http.StatusCreated, global.APIResponse{
		Success: true,
		Data:    review,
		Message: "Review created successfully.",
	})
}
