package main

import (
	"context"
	"cookbook-backend/cmd/config"
	"cookbook-backend/cmd/database/migrate"
	"cookbook-backend/internal/utils"
	"log"

	"go.uber.org/zap"
)

func main() {
	utils.LoadConfig()
	utils.InitLogger(utils.GetConfigOr("LOG_LEVEL", "info"))
	defer func() { _ = utils.Logger.Sync() }()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	rdb, err := config.ConnectRedis(context.Background())
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	defer rdb.Close()

	app, err := config.NewApp(db, rdb)
	if err != nil {
		log.Fatalf("build app: %v", err)
	}

	port := utils.GetConfigOr("APP_PORT", "8080")
	utils.Logger.Info("server starting", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		utils.Logger.Fatal("server stopped", zap.Error(err))
	}
}
