package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/miskatonicsociety/keeperbot/internal/character"
	"github.com/miskatonicsociety/keeperbot/internal/command"
	"github.com/miskatonicsociety/keeperbot/internal/config"
	"github.com/miskatonicsociety/keeperbot/internal/dice"
	"github.com/miskatonicsociety/keeperbot/internal/logger"
	"github.com/miskatonicsociety/keeperbot/internal/server"
	"github.com/miskatonicsociety/keeperbot/internal/storage"
)

func main() {
	// Parse command-line flags
	configFile := flag.String("config", "data/config.yaml", "Path to bot config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	flag.Parse()

	// Load .env before anything reads the environment
	godotenv.Load()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	logger.Info("Starting keeperbot")

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("Config load failed, using defaults", "path", *configFile, "error", err)
	}

	backend, err := storage.Open(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open character storage: %v", err)
	}

	store := character.NewStore(backend)
	logger.Info("Character storage ready",
		"driver", cfg.Storage.Driver,
		"characters", store.Len())

	resolver := command.NewResolver(store, cfg, dice.NewRoller(nil))
	gateway := server.NewServer(cfg, resolver)

	// Shut down cleanly on SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Received shutdown signal", "signal", sig.String())
		gateway.Shutdown()
	}()

	if err := gateway.Start(); err != nil {
		logger.Error("Gateway stopped with error", "error", err)
	}

	if err := store.Flush(); err != nil {
		logger.Error("Failed to flush character data on shutdown", "error", err)
	}
	if err := backend.Close(); err != nil {
		logger.Error("Failed to close character storage", "error", err)
	}

	logger.Info("Shutdown complete")
}
