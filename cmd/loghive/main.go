package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/loghive/loghive/internal/auth"
	"github.com/loghive/loghive/internal/config"
	"github.com/loghive/loghive/internal/database"
	"github.com/loghive/loghive/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	creds, err := auth.ParseCredentials(cfg.Auth.Credentials)
	if err != nil {
		log.Fatalf("credentials: %v", err)
	}
	registry, err := auth.NewRegistry(creds)
	if err != nil {
		log.Fatalf("credential registry: %v", err)
	}

	nrApp, err := cfg.Observability.NewApplication()
	if err != nil {
		log.Fatalf("new relic: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("component", "pgx").Logger()
	pool, err := database.NewPool(ctx, cfg.Database, logger, nrApp)
	if err != nil {
		log.Fatalf("database pool: %v", err)
	}
	defer pool.Close()

	srv := server.New(cfg, pool, registry, nrApp)
	if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server exited: %v", err)
		os.Exit(1)
	}
}
