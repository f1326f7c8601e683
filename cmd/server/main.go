package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"partflow/internal/bgremove"
	"partflow/internal/config"
	"partflow/internal/handler"
	"partflow/internal/notify/noop"
	"partflow/internal/notify/ses"
	"partflow/internal/notify/teams"
	"partflow/internal/port"
	"partflow/internal/render"
	"partflow/internal/repository/partsdb"
	"partflow/internal/repository/postgres"
	"partflow/internal/router"
	"partflow/internal/service"
	s3storage "partflow/internal/storage/s3"
)

// @title PartFlow API
// @version 1.0
// @description Part-number resolution and catalog image production pipeline.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
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

	// Initialize repositories
	fileRepo := postgres.NewImageFileRepo(db)
	overrideRepo := postgres.NewOverrideRepo(db)
	partsRepo := partsdb.NewPartsRepo(partsDB)

	// Interchange cache: a load failure at startup leaves the cache empty
	// and degrades interchange hits to best guess until the next refresh.
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

	// Archive storage is optional: no bucket, no S3 client.
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewArchiveStore(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	remover := bgremove.NewClient(cfg.Render.RemovalURL)
	renderer := render.New(render.Config{
		OutputDir:     cfg.Render.OutputDir,
		WatermarkPath: cfg.Render.WatermarkPath,
		BrandIconPath: cfg.Render.BrandIconPath,
	})

	// Initialize services
	mappingSvc := service.NewPartMappingService(partsRepo, cache)
	fileSvc := service.NewFileService(fileRepo, overrideRepo, mappingSvc, notifier)
	processingSvc := service.NewProcessingService(
		fileRepo, partsRepo, remover, renderer, storage, notifier,
		cfg.Render.PreviewDir, cfg.S3.Bucket, cfg.S3.PresignExpiry,
	)

	// Initialize handlers
	mappingH := handler.NewMappingHandler(mappingSvc)
	fileH := handler.NewFileHandler(fileSvc, processingSvc)
	healthH := handler.NewHealthHandler(db, partsRepo, mappingSvc)

	// Start the processing worker
	worker := service.NewProcessingWorker(fileRepo, processingSvc, service.ProcessingWorkerConfig{
		PollInterval: cfg.Worker.PollInterval,
		Concurrency:  cfg.Worker.Concurrency,
		JobTimeout:   cfg.Worker.JobTimeout,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	// Setup router
	r := router.Setup(cfg, mappingH, fileH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-workerDone
	return nil
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
