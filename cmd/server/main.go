package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/korjavin/smartpantry/pkg/api"
	"github.com/korjavin/smartpantry/pkg/config"
	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/pantry"
	"github.com/korjavin/smartpantry/pkg/recipes"
	"github.com/korjavin/smartpantry/pkg/recommend"
)

func main() {
	log := logger.Global
	log.Info("Starting Smart Pantry server...")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger.Configure(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	log = logger.Global

	store, closer, err := pantry.Open(cfg)
	if err != nil {
		log.Error("Failed to open pantry store: %v", err)
		os.Exit(1)
	}
	defer closer.Close()

	catalog, err := recipes.LoadFile(cfg.RecipesPath)
	if err != nil {
		log.Error("Failed to load recipes: %v", err)
		os.Exit(1)
	}

	pantryService := pantry.New(store)
	recommender := recommend.New(pantryService, catalog)
	handler := api.NewHandler(pantryService, recommender, catalog)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(handler, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed: %v", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed: %v", err)
	}
}
