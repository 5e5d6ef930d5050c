package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pixibai/internal/appstate"
	"pixibai/internal/assistant"
	"pixibai/internal/cart"
	"pixibai/internal/catalog"
	"pixibai/internal/config"
	"pixibai/internal/httpserver"
	"pixibai/internal/session"
)

func main() {
	// .env is a development convenience; in production the variables are
	// set directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			logger.Fatalf("load catalog: %v", err)
		}
		cat = loaded
		logger.Printf("loaded catalog from %s", cfg.CatalogPath)
	}

	assistantClient, err := assistant.New(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Fatalf("init assistant: %v", err)
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Catalog:   cat,
		Sessions:  session.NewStore(),
		Cart:      cart.NewStore(),
		App:       appstate.NewContainer(),
		Assistant: assistantClient,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
