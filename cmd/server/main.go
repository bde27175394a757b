package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/WolfDWyc/obscure-sorrows-browser/internal/app"
	"github.com/WolfDWyc/obscure-sorrows-browser/internal/catalog"
	"github.com/WolfDWyc/obscure-sorrows-browser/internal/config"
	"github.com/WolfDWyc/obscure-sorrows-browser/internal/database"
	"github.com/WolfDWyc/obscure-sorrows-browser/internal/logging"
	"github.com/WolfDWyc/obscure-sorrows-browser/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrationsWithLock(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

// loadCatalog syncs the dictionary export into the word store. The service
// must not accept ranking-sensitive traffic before this completes.
func loadCatalog(cfg *config.Config, appSvc *app.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	entries, err := catalog.LoadFile(cfg.DictionaryPath)
	if err != nil {
		slog.Error("Failed to load dictionary file", "path", cfg.DictionaryPath, "error", err)
		os.Exit(1)
	}

	n, err := appSvc.ReloadCatalog(ctx, entries)
	if err != nil {
		slog.Error("Failed to sync catalog", "error", err)
		os.Exit(1)
	}

	slog.Info("Catalog synced", "entries", n, "path", cfg.DictionaryPath)
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	wordRepo := database.NewWordRepo(pool)
	ratingRepo := database.NewRatingRepo(pool)

	appSvc := app.NewService(wordRepo, ratingRepo, clock)

	loadCatalog(cfg, appSvc)

	srv := server.NewServer(cfg, appSvc, pool)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
