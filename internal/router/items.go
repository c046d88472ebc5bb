package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Debian1107/Reviewed/pkg/ai"
	"github.com/Debian1107/Reviewed/pkg/global"
	"github.com/Debian1107/Reviewed/pkg/logger"
	"github.com/Debian1107/Reviewed/pkg/models"
	"github.com/Debian1107/Reviewed/pkg/mongo"
)

// GetItems serves the item listing, an optional text search, and the item
// detail view merged with its on-demand rating summary.
func GetItems(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Query("id")

	if slug == "" {
		items, err := mongo.ListItems(ctx, c.Query("search"))
		if err != nil {
			logger.L().Named("items").Error("failed to list items", zap.Error(err))
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch items list", nil))
			return
		}
		c.JSON(http.StatusOK, global.SuccessResponse(items))
		return
	}

	item, err := mongo.FindItemBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Item not found", []global.ValidationError{
				{Field: "id", Message: "No item exists with this ID", Code: "not_found"},
			}))
			return
		}
		logger.L().Named("items").Error("failed to fetch item", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch item", nil))
		return
	}

	summary, err := mongo.SummarizeRatings(ctx, item.ID)
	if err != nil {
		logger.L().Named("items").Error("failed to summarize ratings", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch item", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(item.Detail(summary)))
}

// SuggestItem creates a new reviewable item from a user suggestion, gated by
// the AI content check.
func SuggestItem(c *gin.Context) {
	var req models.SuggestItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Missing required fields: name, category, or description.", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	item := req.ToItem()

	verdict := ai.CheckItem(c.Request.Context(), item.Name, item.Description, item.Category, item.Tags)
	if !verdict.IsValid {
		c.JSON(http.StatusBadRequest, global.ErrorResponse(verdict.Reason, []global.ValidationError{
			{Field: "name", Message: verdict.Reason, Code: "content_rejected"},
		}))
		return
	}

	if err := mongo.CreateItem(c.Request.Context(), item); err != nil {
		if errors.Is(err, mongo.ErrConflict) {
			c.JSON(http.StatusConflict, global.ErrorResponse(
				fmt.Sprintf("Item '%s' already exists in the index.", item.Name), nil))
			return
		}
		logger.L().Named("items").Error("failed to create item", zap.String("slug", item.Slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create item.", nil))
		return
	}

	c.JSON(http.StatusCreated, global.APIResponse{
		Success: true,
		Data:    item,
		Message: fmt.Sprintf("Item '%s' suggested and added successfully.", item.Name),
	})
}
