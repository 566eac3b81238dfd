// Package cli holds the startup steps shared by cmd/conti and
// cmd/conti-worker.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"conti/internal/config"
	applog "conti/internal/log"
	"conti/internal/storage"
)

// Bootstrap loads .env, builds the component logger and installs it as
// the slog default, then loads and validates configuration. It exits
// the process on invalid configuration.
func Bootstrap(component string) (*config.Config, *applog.Logger) {
	// .env is for local development; absence is fine in containers.
	_ = godotenv.Load()

	logger := applog.NewFromEnv(component)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg, logger
}

// MustSQLite opens the repository or exits the process.
func MustSQLite(logger *applog.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}
