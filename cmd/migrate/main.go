package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ghuser/usedmarket/migrations"
	"github.com/ghuser/usedmarket/pkg/config"
	"github.com/ghuser/usedmarket/pkg/logger"
	"github.com/ghuser/usedmarket/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, migrations.FS); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")
}
