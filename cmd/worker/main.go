package main

import (
	"PriVault/config"
	"PriVault/internal/logger"
	"PriVault/internal/repo"
	"PriVault/internal/storage"
	"PriVault/internal/worker"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	config.InitConfig()
	logger.Init(config.AppConfig.Env)
	repo.InitMysql()
	storage.InitMinio()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("cleanup worker started")
	if err := worker.RunCleanupWorker(ctx); err != nil {
		log.Fatalf("cleanup worker stopped: %v", err)
	}
}
