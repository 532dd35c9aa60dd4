package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jmreyes/dicesheet-backend/internal/config"
	"github.com/jmreyes/dicesheet-backend/internal/httpapi"
	"github.com/jmreyes/dicesheet-backend/internal/hub"
	"github.com/jmreyes/dicesheet-backend/internal/store"
)

func main() {
	_ = godotenv.Load() // optional .env for local dev

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}

	ctx := context.Background()
	h := hub.NewHub(ctx, st, logger)

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, st, logger)

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
