package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// DirectoryDB is the pgx pool used for hot-path raw queries (facet
	// tallies, ID-set resolution). DirectoryGorm serves model reads and the
	// count/data listing pair.
	DirectoryDB   *pgxpool.Pool
	DirectoryGorm *gorm.DB
)

func InitDB() {
	initPgx()
	initGORM()
}

func directoryURL() string {
	if url := os.Getenv("DIRECTORY_DB_URL"); url != "" {
		return url
	}
	log.Println("⚠️ DIRECTORY_DB_URL not set, using local default")
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/icb_directory?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
	)
}

func initPgx() {
	var err error
	DirectoryDB, err = pgxpool.New(context.Background(), directoryURL())
	if err != nil {
		log.Fatalf("❌ Unable to connect to directory database: %v", err)
	}
	if err = DirectoryDB.Ping(context.Background()); err != nil {
		log.Fatalf("❌ Directory database ping failed: %v", err)
	}
	log.Println("✅ Directory database connected (pgx)")
}

func initGORM() {
	gormLogger := logger.Default.LogMode(logger.Info)
	if os.Getenv("APP_ENV") == "production" {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var err error
	DirectoryGorm, err = gorm.Open(postgres.Open(directoryURL()), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to directory database with GORM: %v", err)
	}
	if sqlDB, err := DirectoryGorm.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	log.Println("✅ Directory database connected (GORM)")
}

func CloseDB() {
	if DirectoryDB != nil {
		DirectoryDB.Close()
		log.Println("✅ Directory database connection closed (pgx)")
	}
	if DirectoryGorm != nil {
		sqlDB, _ := DirectoryGorm.DB()
		if sqlDB != nil {
			sqlDB.Close()
			log.Println("✅ Directory database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout (bumped from 5s for Neon cold starts)
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
