package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"vitalwatch/internal/alerts"
	"vitalwatch/internal/client"
	"vitalwatch/internal/config"
	"vitalwatch/internal/logging"
	"vitalwatch/internal/mockdata"
	"vitalwatch/internal/notify"
	"vitalwatch/internal/watch"
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

	// Notification dispatch
	notifier := notify.New(logger, cfg)
	var wg sync.WaitGroup
	notifier.Start(&wg)

	// API client facade with mock fallback
	api := client.New(client.Config{
		BaseURL:      cfg.API.BaseURL,
		MockFallback: cfg.API.MockFallback,
		Timeout:      cfg.API.Timeout,
	}, logger, mockdata.New(nil), notifier)

	// Track the backend's patient roster
	patients, err := api.ListPatients(context.Background())
	if err != nil {
		logger.Errorf("Failed to list patients: %v", err)
	}
	ids := make([]string, 0, len(patients))
	for _, p := range patients {
		ids = append(ids, p.ID)
	}
	logger.Infof("Watching %d patients every %v", len(ids), cfg.Watch.Interval)

	svc := watch.New(api, alerts.NewStore(), notifier, logger, cfg.Watch.Interval, ids)
	svc.Start(&wg)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Info("Shutting down...")
	svc.Stop()
	notifier.Stop()
	wg.Wait()
	logger.Info("Service stopped")
}
