package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AnthoniusHendriyanto/user-service/config"
	"github.com/AnthoniusHendriyanto/user-service/db"
	"github.com/AnthoniusHendriyanto/user-service/internal/auth/handler"
	repo "github.com/AnthoniusHendriyanto/user-service/internal/auth/repository/postgres"
	"github.com/AnthoniusHendriyanto/user-service/internal/auth/service"
	"github.com/AnthoniusHendriyanto/user-service/internal/logging"
	"github.com/AnthoniusHendriyanto/user-service/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Env)
	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer dbPool.Close()

	if err := db.MigratePool(ctx, dbPool); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	tokenService, err := service.NewTokenService(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL())
	if err != nil {
		log.Fatalf("init token service: %v", err)
	}

	userRepo := repo.NewPostgresRepository(dbPool)
	userService := service.NewUserService(userRepo, service.NewBcryptHasher(cfg.BcryptCost), tokenService, logger)
	validate := handler.NewValidator()

	srv := server.New(cfg, handler.Handlers{
		Auth:   handler.NewAuthHandler(userService, validate, logger),
		Users:  handler.NewUserHandler(userService, validate, logger),
		Health: handler.NewHealthHandler(dbPool, cfg.ProjectName, logger),
		Gate:   service.NewAuthGate(tokenService, userService),
		Logger: logger,
	}, logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error(ctx, "http server stopped", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error(ctxShutdown, "graceful shutdown error", "error", err)
	}
}
