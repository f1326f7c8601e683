package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"partflow/internal/config"
	"partflow/internal/monitor"
	"partflow/internal/notify/noop"
	"partflow/internal/notify/ses"
	"partflow/internal/notify/teams"
	"partflow/internal/port"
	"partflow/internal/repository/partsdb"
	"partflow/internal/repository/postgres"
	"partflow/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to tracking database: %w", err)
	}
	defer db.Close()

	partsDB, err := partsdb.Connect(ctx, &cfg.PartsDB)
	if err != nil {
		return fmt.Errorf("failed to connect to parts database: %w", err)
	}
	defer partsDB.Close()

	fileRepo := postgres.NewImageFileRepo(db)
	overrideRepo := postgres.NewOverrideRepo(db)
	partsRepo := partsdb.NewPartsRepo(partsDB)

	cache := service.NewInterchangeCache(partsRepo)
	if err := cache.Load(ctx); err != nil {
		log.Printf("interchange cache load failed, starting empty: %v", err)
	} else {
		log.Printf("interchange cache loaded (%d mappings)", cache.Size())
	}

	notifier, err := buildNotifier(cfg)
	if err != nil {
		return err
	}

	mappingSvc := service.NewPartMappingService(partsRepo, cache)
	fileSvc := service.NewFileService(fileRepo, overrideRepo, mappingSvc, notifier)

	m := monitor.New(fileSvc, monitor.Config{
		InputDir:     cfg.Monitor.InputDir,
		ScanInterval: cfg.Monitor.ScanInterval,
		MinFileSize:  cfg.Monitor.MinFileSize,
	})
	return m.Run(ctx)
}

func buildNotifier(cfg *config.Config) (port.Notifier, error) {
	switch cfg.Notify.Provider {
	case "teams":
		return teams.NewTeamsNotifier(cfg.Notify.TeamsWebhook, cfg.Notify.DashboardURL), nil
	case "ses":
		n, err := ses.NewSESNotifier(
			cfg.Notify.Region, cfg.Notify.FromAddress, cfg.Notify.FromName,
			cfg.Notify.ToAddress, cfg.Notify.DashboardURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
		return n, nil
	case "noop":
		return noop.NewNoopNotifier(), nil
	default:
		return nil, fmt.Errorf("unknown notify provider %q", cfg.Notify.Provider)
	}
}
