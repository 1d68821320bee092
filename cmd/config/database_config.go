package config

import (
	"context"
	"cookbook-backend/internal/utils"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		utils.Logger.Error("database connection failed", zap.Error(err))
		return nil, err
	}
	return db, nil
}

func ConnectRedis(ctx context.Context) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     utils.GetConfigOr("REDIS_ADDR", "localhost:6379"),
		Password: utils.GetConfig("REDIS_PASSWORD"),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		utils.Logger.Error("redis connection failed", zap.Error(err))
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
