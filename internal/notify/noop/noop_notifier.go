package noop

import (
	"context"
	"log"

	"partflow/internal/domain"
	"partflow/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a no-op Notifier that logs events to stdout.
func NewNoopNotifier() port.Notifier {
	return &noopNotifier{}
}

func (n *noopNotifier) FileDiscovered(_ context.Context, f *domain.ImageFile) error {
	log.Printf("[NOOP NOTIFY] discovered %s (part=%q, confidence=%.2f, review=%t)",
		f.Filename, f.PartNumber, f.MappingConfidence, f.RequiresReview)
	return nil
}

func (n *noopNotifier) ReviewReady(_ context.Context, f *domain.ImageFile) error {
	log.Printf("[NOOP NOTIFY] review ready for %s (%s)", f.Filename, f.ID)
	return nil
}

func (n *noopNotifier) ProcessingComplete(_ context.Context, f *domain.ImageFile, renditions int) error {
	log.Printf("[NOOP NOTIFY] processing complete for %s (%d renditions)", f.Filename, renditions)
	return nil
}

func (n *noopNotifier) ProcessingFailed(_ context.Context, f *domain.ImageFile, stage, message string) error {
	log.Printf("[NOOP NOTIFY] processing FAILED for %s at %s: %s", f.Filename, stage, message)
	return nil
}
