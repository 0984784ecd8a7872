package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/and161185/autotrade/internal/auth"
	"github.com/and161185/autotrade/internal/config"
	"github.com/and161185/autotrade/internal/deps"
	"github.com/and161185/autotrade/internal/server"
	"github.com/and161185/autotrade/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	config := config.NewConfig()
	deps, err := deps.NewDependencies(config)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Logger.Sync()

	hash, err := auth.HashPassword(config.DemoPassword)
	if err != nil {
		deps.Logger.Fatal(err)
	}
	fixtures := storage.DemoFixtures(hash)

	var store server.Storage
	if config.DatabaseURI == "" {
		deps.Logger.Info("no database configured, using in-memory demo data")
		store, err = storage.NewMemoryStorage(fixtures)
		if err != nil {
			deps.Logger.Fatal(err)
		}
	} else {
		pg, err := storage.NewPostgresStorage(ctx, config.DatabaseURI)
		if err != nil {
			deps.Logger.Fatal(err)
		}
		defer pg.Close()

		seeded, err := pg.SeedIfEmpty(ctx, fixtures)
		if err != nil {
			deps.Logger.Fatal(err)
		}
		if seeded {
			deps.Logger.Info("database was empty, demo data loaded")
		}
		store = pg
	}

	srv := server.NewServer(store, store, store, config, deps)
	if err := srv.Run(ctx); err != nil {
		deps.Logger.Fatal(err)
	}
}
