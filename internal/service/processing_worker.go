package service

import (
	"context"
	"log"
	"sync"
	"time"

	"partflow/internal/port"
)

// ProcessingWorkerConfig holds settings for the processing queue worker.
type ProcessingWorkerConfig struct {
	PollInterval time.Duration
	Concurrency  int
	JobTimeout   time.Duration
}

// ProcessingWorker polls for queued image files and dispatches them for
// background removal.
type ProcessingWorker struct {
	fileRepo   port.ImageFileRepository
	processing ProcessingService
	cfg        ProcessingWorkerConfig
	wg         sync.WaitGroup
}

// NewProcessingWorker creates a new ProcessingWorker.
func NewProcessingWorker(fileRepo port.ImageFileRepository, processing ProcessingService, cfg ProcessingWorkerConfig) *ProcessingWorker {
	return &ProcessingWorker{
		fileRepo:   fileRepo,
		processing: processing,
		cfg:        cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight processing goroutines have finished.
func (w *ProcessingWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("processingWorker: started (poll=%s, concurrency=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("processingWorker: shutting down, waiting for in-flight jobs...")
			w.wg.Wait()
			log.Printf("processingWorker: shutdown complete")
			return
		case <-ticker.C:
			// A tick can race cancellation; skip the claim once ctx is done
			// and let the ctx.Done case drain in-flight jobs.
			if ctx.Err() != nil {
				continue
			}

			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			files, err := w.fileRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					// Context canceled during poll — exit gracefully
					continue
				}
				log.Printf("processingWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range files {
				f := files[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight jobs complete even during shutdown.
					jobCtx, cancel := context.WithTimeout(context.Background(), w.cfg.JobTimeout)
					defer cancel()

					log.Printf("processingWorker: dispatching file %s (%s)", f.ID, f.Filename)
					if err := w.processing.Process(jobCtx, &f); err != nil {
						log.Printf("processingWorker: processing %s failed: %v", f.ID, err)
					}
				}()
			}
		}
	}
}
