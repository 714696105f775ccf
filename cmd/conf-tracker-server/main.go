package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pfrederiksen/conf-tracker/internal/api"
	"github.com/pfrederiksen/conf-tracker/internal/fetch"
	"github.com/pfrederiksen/conf-tracker/internal/logger"
	"github.com/pfrederiksen/conf-tracker/internal/pipeline"
	"github.com/pfrederiksen/conf-tracker/internal/store"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Error("DATABASE_URL is required", nil, nil)
		os.Exit(1)
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	db, err := store.Connect(dsn)
	if err != nil {
		logger.Error("connecting to store failed", nil, err)
		os.Exit(1)
	}
	defer db.Close() // nolint:errcheck

	sqlStore := store.New(db)
	if err := sqlStore.Migrate(context.Background()); err != nil {
		logger.Error("migrating store failed", nil, err)
		os.Exit(1)
	}

	handler := api.NewHandler(fetch.New(), pipeline.NewRunner(sqlStore))

	router := gin.Default()
	handler.Register(router)

	logger.Info("server listening", logger.Fields{"addr": addr})
	if err := router.Run(addr); err != nil {
		logger.Error("server stopped", nil, err)
		os.Exit(1)
	}
}
