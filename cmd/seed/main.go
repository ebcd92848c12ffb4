package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/mytheresa/storefront/config"
	"github.com/mytheresa/storefront/logging"
	"github.com/mytheresa/storefront/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.New(logging.Options{Service: "seed", Env: cfg.AppEnv, Level: cfg.LogLevel})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := models.Open(cfg.Postgres.DSN())
	if err != nil {
		log.Error("open database", zap.Error(err))
		os.Exit(1)
	}
	if err := models.Migrate(db); err != nil {
		log.Error("migrate", zap.Error(err))
		os.Exit(1)
	}
	if err := models.Seed(db); err != nil {
		log.Error("seed", zap.Error(err))
		os.Exit(1)
	}

	log.Info("catalog seeded",
		zap.Int("categories", len(models.DefaultCategories())),
		zap.Int("products", len(models.DefaultProducts())),
	)
}
