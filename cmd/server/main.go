package main

import (
	"flag"
	"log/slog"
	"os"

	"anchor/internal/config"
	"anchor/internal/handler"
	"anchor/internal/logger"
	"anchor/internal/middleware"
	"anchor/internal/store"
	"anchor/internal/store/memory"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)
	if cfg.Auth.Secret != "" {
		middleware.JWTSecret = []byte(cfg.Auth.Secret)
	}

	var stores *store.Stores
	switch cfg.Database.Driver {
	case "memory":
		slog.Warn("using in-memory store, nothing will persist")
		stores = memory.New()
	default:
		db, err := cfg.OpenGormDB()
		if err != nil {
			slog.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		if err := store.AutoMigrate(db); err != nil {
			slog.Error("db migrate failed", "err", err)
			os.Exit(1)
		}
		stores = store.NewGormStores(db)
	}

	r := handler.NewRouter(stores)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
