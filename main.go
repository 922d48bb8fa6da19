package main

import (
	"PriVault/config"
	"PriVault/internal/handler"
	"PriVault/internal/logger"
	"PriVault/internal/repo"
	"PriVault/internal/service"
	"PriVault/internal/storage"
	"PriVault/internal/task"
	"PriVault/router"
)

// main initializes services and starts the HTTP server.
func main() {
	config.InitConfig()
	logger.Init(config.AppConfig.Env)
	repo.InitMysql()
	repo.InitRedis()
	storage.InitMinio()

	handler.Preview = service.NewPreviewService(
		storage.Default,
		config.AppConfig.BucketName,
		config.AppConfig.SignedURLTTL,
	)
	service.CleanupEnqueue = task.EnqueueOrphanCleanup

	router := router.InitRouter()

	router.Run(":8000")
}
