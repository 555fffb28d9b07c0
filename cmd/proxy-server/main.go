package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pigi/proxy/internal/adapters/registry"
	"github.com/pigi/proxy/internal/api/handlers"
	"github.com/pigi/proxy/internal/config"
	"github.com/pigi/proxy/internal/util/logging"
)

func main() {
	configPath := flag.String("config", "", "path to optional config file")
	flag.Parse()

	logger := logging.New(os.Stdout, "pigi-proxy")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Load the package registry. A missing or malformed source means the
	// process cannot start.
	reg, err := registry.Load(cfg.Registry.Path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Registry.Path).Msg("failed to load registry")
	}
	logger.Info().Int("packages", reg.Len()).Str("path", cfg.Registry.Path).Msg("registry loaded")

	handler := handlers.New(reg, cfg.GitHub.BaseURL, cfg.GitHub.Token, logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler.Router(),
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info().Msg("shutting down server")
		srv.Close()
	}()

	logger.Info().Str("addr", addr).Msg("starting pigi proxy")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server error")
	}
}
