package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/markglenn/orbbs/internal/observability"
	"github.com/markglenn/orbbs/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	logger := observability.InitLogger("orbbs", *debug)

	cfg := server.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *configPath).Msg("invalid config")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid server config")
	}

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
