package main

import (
	"embed"
	"log/slog"
	"os"

	"github.com/ghuser/newsletter/pkg/config"
	"github.com/ghuser/newsletter/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := migrator.RunMigrations(cfg.DatabaseURL, MigrationsFS, "subscription_goose_db_version"); err != nil {
		slog.Error("subscription migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("subscription migrations applied")
}
