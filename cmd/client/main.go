package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/babyguessr/internal/buildinfo"
	"github.com/dmitrijs2005/babyguessr/internal/client/cli"
	"github.com/dmitrijs2005/babyguessr/internal/client/client"
	"github.com/dmitrijs2005/babyguessr/internal/client/config"
	"github.com/dmitrijs2005/babyguessr/internal/client/identity"
	"github.com/dmitrijs2005/babyguessr/internal/client/live"
	"github.com/dmitrijs2005/babyguessr/internal/client/services"
	"github.com/dmitrijs2005/babyguessr/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	var db *sql.DB
	var store identity.Store
	if cfg.Ephemeral {
		store = identity.NewMemoryStore()
	} else {
		db, err = client.InitDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			log.Fatalf("error initializing database: %v", err)
		}
		store = identity.NewSQLiteStore(db)
	}

	api, err := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := api.Ping(ctx); err != nil {
		logger.Warn(ctx, "server not reachable, commands will fail until it is", "url", cfg.ServerURL, "error", err)
	}

	app := cli.NewApp(cli.Services{
		Loader:  services.NewLoader(api, logger),
		Admin:   services.NewAdminService(api, store, logger),
		Guesses: services.NewGuessService(api, store, logger, time.Now),
		Live:    live.NewChannel(api, logger),
		Log:     logger,
	}, os.Stdin, os.Stdout)

	app.Run(ctx)

	if db != nil {
		if err := db.Close(); err != nil {
			logger.Warn(ctx, "closing database", "error", err)
		}
	}
}
