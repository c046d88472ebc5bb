package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Debian1107/Reviewed/internal/config"
	"github.com/Debian1107/Reviewed/internal/router"
	"github.com/Debian1107/Reviewed/pkg/ai"
	"github.com/Debian1107/Reviewed/pkg/logger"
	"github.com/Debian1107/Reviewed/pkg/mongo"
	"github.com/Debian1107/Reviewed/pkg/redis"
)

func main() {

	// .env is optional; real deployments configure through the environment.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl := logger.Init(cfg.LogLevel, cfg.LogFormat)
	defer zl.Sync()

	if err := mongo.InitMongoDB(); err != nil {
		zl.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	if err := mongo.EnsureIndexes(); err != nil {
		zl.Fatal("failed to ensure indexes", zap.Error(err))
	}

	redisClient := redis.NewClient()
	router.InitRateLimiter(redis.NewRateLimiter(
		redisClient,
		cfg.RateLimitMax,
		time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
	))

	ai.InitializeAIService()

	router.InitEngine()
	router.InitializeRoutes()

	zl.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := router.Router.Run(":" + cfg.Port); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}
