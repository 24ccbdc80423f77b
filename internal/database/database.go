package database

import (
	"context"
	"fmt"
	"time"

	"events-api/internal/config"
	"events-api/internal/models"
	"events-api/pkg/logging"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Connect opens the database connection. PostgreSQL when DATABASE_URL is set,
// SQLite otherwise (development fallback). The caller owns the returned handle.
func Connect() (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if dsn := config.AppConfig.DatabaseURL; dsn == "" {
		logging.Infof("Database URL not set, using SQLite for development")
		db, err = gorm.Open(sqlite.Open("events-api.db"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
			NamingStrategy: schema.NamingStrategy{
				SingularTable: true,
			},
		})
	} else {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
			NamingStrategy: schema.NamingStrategy{
				SingularTable: true,
			},
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Migrate the local audit table. Purchase and ticket state is owned by the
	// database procedures and is never migrated from here.
	if err := db.AutoMigrate(&models.WebhookDelivery{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logging.Infof("Database connected successfully")
	return db, nil
}

// ConnectRedis opens the Redis connection used for scan rate limiting.
func ConnectRedis() (*redis.Client, error) {
	redisURL := config.AppConfig.RedisURL
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is not set")
	}

	logging.Infof("Connecting to Redis: %s", maskRedisURL(redisURL))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.Infof("Redis connected successfully")
	return client, nil
}

// maskRedisURL masks sensitive information in Redis URL for logging
func maskRedisURL(url string) string {
	if len(url) > 20 {
		return url[:10] + "***" + url[len(url)-10:]
	}
	return "***"
}

// Close closes the database and Redis connections.
func Close(db *gorm.DB, redisClient *redis.Client) {
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logging.Errorf("Failed to close database: %v", err)
			}
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logging.Errorf("Failed to close Redis: %v", err)
		}
	}
}
