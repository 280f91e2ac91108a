package main

import (
	"fmt"
	"time"

	"github.com/3lokai/icb-directory-backend/config"
	"github.com/3lokai/icb-directory-backend/middleware"
	"github.com/3lokai/icb-directory-backend/routes/directory_routes"
	"github.com/3lokai/icb-directory-backend/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	// Connect to DB
	config.InitDB()
	defer config.CloseDB()
	// Redis connection
	config.ConnectRedis()

	// Slug/key → internal ID resolution backed by the lookup tables
	services.InitDirectoryLookup(config.DirectoryGorm)

	corsCfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://indiacoffeebeans.com"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"X-Request-ID"},
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))
	router.Use(middleware.RequestID())

	// Register API routes
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimiter(300, time.Minute))

	directory_routes.SetupDirectoryRoutes(api)

	fmt.Println("🚀 Directory API running on http://localhost:8081")
	router.Run(":8081")
}
