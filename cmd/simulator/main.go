package main

import (
	"log"

	"vitalwatch/internal/config"
	"vitalwatch/internal/logging"
	"vitalwatch/internal/mockdata"
	"vitalwatch/internal/simulator"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// Seed the simulated backend
	gen := mockdata.New(nil)
	store := simulator.NewStore()
	store.Seed(gen, 5)

	srv := simulator.NewServer(store, gen, logger)
	router := srv.Router(cfg.Server.BasePath)

	logger.Infof("Simulator listening on %s (base path %s)", cfg.Server.Addr, cfg.Server.BasePath)
	if err := router.Run(cfg.Server.Addr); err != nil {
		logger.Errorf("Simulator failed: %v", err)
	}
}
