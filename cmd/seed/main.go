package main

import (
	"CurtainSamples/internal/config"
	"CurtainSamples/internal/repo"
	"CurtainSamples/internal/seed"
	"CurtainSamples/internal/service"
	"context"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	defer func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	catalog := service.NewCatalogService(
		repo.NewCategoryRepository(gormDB),
		repo.NewCurtainRepository(gormDB),
		sugar,
	)

	sum, err := seed.Run(ctx, catalog, cfg.SeedTarget, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), sugar)
	if err != nil {
		sugar.Errorw("seeding failed", "error", err)
		cancel()
		os.Exit(1)
	}
	sugar.Infow("seeding finished",
		"categories_created", sum.CategoriesCreated,
		"curtains_before", sum.ExistingCurtains,
		"curtains_created", sum.CurtainsCreated,
	)
}
