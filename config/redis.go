package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var (
	// RedisClient backs the fixed-window rate limiter on the public
	// directory group.
	RedisClient *redis.Client
	Ctx         = context.Background()
)

func redisURL() string {
	if url := os.Getenv("DIRECTORY_REDIS_URL"); url != "" {
		return url
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		return url
	}
	log.Println("⚠️ DIRECTORY_REDIS_URL not set, using local Redis")
	return "redis://localhost:6379"
}

func ConnectRedis() {
	opt, err := redis.ParseURL(redisURL())
	if err != nil {
		log.Fatalf("❌ Invalid directory Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	if _, err := RedisClient.Ping(Ctx).Result(); err != nil {
		log.Fatalf("❌ Directory Redis ping failed: %v", err)
	}
	log.Println("✅ Directory Redis connected (rate limiting)")
}
