package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"

	"github.com/bankline/bankline/infra/initializer"
	"github.com/bankline/bankline/pkg/config"
	"github.com/bankline/bankline/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(slog.Default())
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	app := webapi.NewApp(deps)

	deps.Logger.Info("starting server", "addr", cfg.Server.Addr)
	return app.Listen(cfg.Server.Addr)
}
