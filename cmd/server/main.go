// Package main is the entry point for the API catalog server.
//
// Its job is limited to reading configuration, building the logger, and
// handing both to internal/server. All behavior lives in the internal
// packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sakif/api-catalog/internal/server"
)

// devSecret is the fallback session-signing secret when SECRET_KEY is not
// set. Fine for local development, never for a deployment.
const devSecret = "dev-secret-change-me"

func main() {
	// A local .env, if present, populates the environment before we read
	// it. Missing file is not an error — deployments set real env vars.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 5000
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		logger.Warn("SECRET_KEY not set — using insecure development secret")
		secret = devSecret
	}

	// DATABASE_URL selects Postgres; when unset we fall back to a local
	// SQLite file (overridable via DB_PATH).
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		dbPath := "data/catalog.db"
		if envDB := os.Getenv("DB_PATH"); envDB != "" {
			dbPath = envDB
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", filepath.Dir(dbPath)),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		databaseURL = dbPath
		logger.Info("DATABASE_URL not set — using local SQLite file",
			slog.String("path", dbPath),
		)
	}

	templateDir, _ := filepath.Abs("web/templates")

	cfg := server.Config{
		Port:        port,
		TemplateDir: templateDir,
		DatabaseURL: databaseURL,
		SecretKey:   secret,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
