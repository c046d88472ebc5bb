package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/Debian1107/Reviewed/internal/config"
	"github.com/Debian1107/Reviewed/pkg/auth"
	"github.com/Debian1107/Reviewed/pkg/global"
	"github.com/Debian1107/Reviewed/pkg/logger"
	"github.com/Debian1107/Reviewed/pkg/redis"
)

const viewerKey = "viewerID"

var rateLimiter *redis.RateLimiter

// InitRateLimiter wires the shared redis-backed request counter used by the
// mutating routes.
func InitRateLimiter(limiter *redis.RateLimiter) {
	rateLimiter = limiter
}

// SessionMiddleware resolves the viewer from the auth cookie when present.
// Requests without a valid session proceed anonymously.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(auth.SessionCookieName)
		if err != nil || tokenString == "" {
			c.Next()
			return
		}

		userHex, err := auth.ParseToken(tokenString, config.C.JWTSecret)
		if err != nil {
			c.Next()
			return
		}
		viewerID, err := bson.ObjectIDFromHex(userHex)
		if err != nil {
			c.Next()
			return
		}

		c.Set(viewerKey, viewerID)
		c.Next()
	}
}

// RequireAuth rejects requests that did not resolve to a viewer.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(viewerKey); !ok {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Unauthorized", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware throttles mutating requests per client IP.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rateLimiter == nil {
			c.Next()
			return
		}

		ctx, cancel := global.GetDefaultTimer()
		defer cancel()

		allowed, err := rateLimiter.Allow(ctx, c.ClientIP())
		if err != nil {
			// Counter unavailable: log and let the request through rather
			// than failing every write while redis is down.
			logger.L().Named("ratelimit").Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, global.ErrorResponse("Too many requests", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentViewer returns the resolved viewer id, or nil for anonymous
// requests.
func currentViewer(c *gin.Context) *bson.ObjectID {
	value, ok := c.Get(viewerKey)
	if !ok {
		return nil
	}
	viewerID, ok := value.(bson.ObjectID)
	if !ok {
		return nil
	}
	return &viewerID
}

// sessionCookieMaxAge is the cookie lifetime in seconds.
var sessionCookieMaxAge = int(auth.SessionTTL / time.Second)
