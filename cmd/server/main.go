package main

import (
	"CurtainSamples/internal/config"
	"CurtainSamples/internal/handlers"
	"CurtainSamples/internal/middleware"
	"CurtainSamples/internal/repo"
	"CurtainSamples/internal/service"
	"CurtainSamples/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	userService := service.NewUserService(userRepo)

	created, err := userService.EnsureAdmin(ctx, cfg.AdminLogin, cfg.AdminPassword)
	if err != nil {
		sugar.Fatalw("failed to bootstrap admin account", "login", cfg.AdminLogin, "error", err)
	}
	if created {
		sugar.Infow("Admin account created", "login", cfg.AdminLogin)
	}

	objects, err := storage.New(ctx, cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize image storage", "backend", cfg.UploadBackend, "error", err)
	}

	catalogService := service.NewCatalogService(
		repo.NewCategoryRepository(gormDB),
		repo.NewCurtainRepository(gormDB),
		sugar,
	)
	imageService := service.NewImageService(objects, sugar)

	h := handlers.NewHandler(userService, catalogService, imageService, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"UploadBackend", cfg.UploadBackend,
		"UploadBucket", objects.Bucket(),
	)

	go func() {
		sugar.Infow("Starting server", "addr", srv.Addr, "url", cfg.ServerURL)
		var err error
		if cfg.EnableHTTPS {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Errorw("Server failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	sugar.Infow("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
