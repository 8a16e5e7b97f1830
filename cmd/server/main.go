package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/peakflames/riddle-sub001/internal/engine"
	"github.com/peakflames/riddle-sub001/internal/infrastructure/storage"
	"github.com/peakflames/riddle-sub001/internal/network"
	"github.com/peakflames/riddle-sub001/internal/server"
	"github.com/peakflames/riddle-sub001/internal/version"
	"github.com/peakflames/riddle-sub001/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	logger.Log.Info("Starting Riddle session server...")
	logger.Log.Info(version.String())

	// 1. Конфигурация из окружения
	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.Fatal("Config error: ", err)
	}

	// 2. Хранилище сессий
	var store storage.Store
	if cfg.DBPath == "" || cfg.DBPath == "memory" {
		logger.Log.Warn("Using in-memory session store, state is lost on restart")
		store = storage.NewMemoryStore()
	} else {
		sqlStore, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			logger.Log.Fatal("Storage error: ", err)
		}
		defer func() {
			if err := sqlStore.Close(); err != nil {
				logger.Log.WithError(err).Warn("failed to close storage")
			}
		}()
		logger.Log.Infof("💾 Session store: %s", cfg.DBPath)
		store = sqlStore
	}

	// 3. Ядро: хаб, реестр подключений, диспетчер
	hub := network.NewHub()
	registry := network.NewRegistry()
	service := engine.NewService(store, hub, registry)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 4. Запуск сервера
	srv := server.New(service, cfg.Port)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")
	logger.Log.Info("Done.")
}
