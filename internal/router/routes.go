package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Debian1107/Reviewed/pkg/global"
	"github.com/Debian1107/Reviewed/pkg/mongo"
)

func InitializeRoutes() {
	Router.Use(SessionMiddleware())

	api := Router.Group("/api")
	{
		api.GET("/health", HealthCheck)

		items := api.Group("/items")
		{
			items.GET("/", GetItems)
			items.POST("/", RateLimitMiddleware(), SuggestItem)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("/", GetReviews)
			reviews.POST("/", RateLimitMiddleware(), RequireAuth(), CreateReview)
		}

		comments := api.Group("/comments")
		{
			comments.GET("/", GetComments)
			comments.POST("/", RateLimitMiddleware(), CreateComment)
		}

		likes := api.Group("/likes")
		{
			likes.POST("/", RateLimitMiddleware(), RequireAuth(), ToggleLike)
		}

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", RateLimitMiddleware(), Signup)
			authRoutes.POST("/login", RateLimitMiddleware(), Login)
			authRoutes.POST("/reset", RateLimitMiddleware(), RequireAuth(), ResetPassword)
			authRoutes.POST("/logout", Logout)
			authRoutes.GET("/userdetails", RequireAuth(), UserDetails)
		}
	}
}

func HealthCheck(c *gin.Context) {
	if err := mongo.GetMongoClient().Ping(c.Request.Context(), nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}
