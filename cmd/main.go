package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tableside/internal/config"
	"tableside/internal/database"
	"tableside/internal/logger"
	"tableside/internal/messaging"
	"tableside/internal/models"
	"tableside/internal/store"
	"tableside/internal/sync"
)

func main() {
	var (
		mode       = flag.String("mode", "", "Run mode (seed, monitor)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), map[string]any{"mode": *mode})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", nil)
		cancel()
	}()

	switch *mode {
	case "seed":
		err = runSeed(ctx, cfg, log)
	case "monitor":
		err = runMonitor(ctx, cfg, log)
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), nil, nil)
		os.Exit(1)
	}

	if err != nil && err != context.Canceled {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", nil)
}

// runSeed writes the default menu and floor plan to the shared medium for keys
// that have never been written. Existing collections are left alone.
func runSeed(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	db, err := database.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	seeds := []struct {
		key   store.Collection
		value any
	}{
		{store.CollectionMenu, models.DefaultMenu()},
		{store.CollectionTables, models.DefaultTables()},
		{store.CollectionOrders, []models.Order{}},
	}

	for _, seed := range seeds {
		existing, err := db.Load(ctx, string(seed.key))
		if err != nil {
			return err
		}
		if existing != nil {
			log.Info("seed_skipped", "Collection already present", map[string]any{"key": seed.key})
			continue
		}

		raw, err := json.Marshal(seed.value)
		if err != nil {
			return fmt.Errorf("failed to serialize seed for %s: %w", seed.key, err)
		}
		if err := db.Save(ctx, string(seed.key), raw); err != nil {
			return err
		}
		log.Info("seed_written", "Seeded collection", map[string]any{"key": seed.key, "size": len(raw)})
	}
	return nil
}

// runMonitor starts a read-only session: load the shared state, go live, and log
// every externally-originated change until shutdown.
func runMonitor(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	db, err := database.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", nil)

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", nil)

	st := store.New()
	notifier := messaging.NewNotifier(conn, log, "session."+logger.GenerateRequestID())
	session := sync.NewSession(st, db, notifier, log)
	session.Observe(func(ev sync.Event) {
		log.Info("collection_changed", "Shared collection changed externally", map[string]any{
			"key":    ev.Key,
			"origin": ev.Origin,
			"size":   len(ev.Value),
		})
	})

	if err := session.Load(ctx); err != nil {
		return err
	}

	return session.GoLive(ctx)
}
