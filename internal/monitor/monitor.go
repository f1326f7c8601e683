package monitor

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"partflow/internal/domain"
	"partflow/internal/service"
)

// Config holds settings for the drop-directory monitor.
type Config struct {
	InputDir     string
	ScanInterval time.Duration
	MinFileSize  int64

	// SettleDelay is how long a file must sit unchanged after a write event
	// before it is registered. Network copies arrive in bursts; registering
	// mid-copy would checksum a partial file.
	SettleDelay time.Duration
}

// Monitor watches the drop directory for new image files and registers them
// with the file service. It combines inotify events with a periodic rescan,
// since inotify misses files that land while the process is down.
type Monitor struct {
	files service.FileService
	cfg   Config
}

// New creates a drop-directory monitor.
func New(files service.FileService, cfg Config) *Monitor {
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = 2 * time.Second
	}
	return &Monitor{files: files, cfg: cfg}
}

// Run watches the input directory until ctx is canceled.
func (m *Monitor) Run(ctx context.Context) error {
	if err := os.MkdirAll(m.cfg.InputDir, 0o755); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(m.cfg.InputDir); err != nil {
		return err
	}

	log.Printf("monitor: watching %s (rescan every %s)", m.cfg.InputDir, m.cfg.ScanInterval)

	// Pick up anything already sitting in the directory.
	m.scan(ctx)

	ticker := time.NewTicker(m.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("monitor: shutting down")
			return nil
		case <-ticker.C:
			m.scan(ctx)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			go m.settle(ctx, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("monitor: watch error: %v", err)
		}
	}
}

// scan walks the input directory and registers every eligible file. Known
// and in-flight files are rejected by the registration dedupe, so rescans
// are cheap to repeat.
func (m *Monitor) scan(ctx context.Context) {
	entries, err := os.ReadDir(m.cfg.InputDir)
	if err != nil {
		log.Printf("monitor: scanning %s: %v", m.cfg.InputDir, err)
		return
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if entry.IsDir() {
			continue
		}
		m.register(ctx, filepath.Join(m.cfg.InputDir, entry.Name()))
	}
}

// settle waits for the file to stop growing, then registers it.
func (m *Monitor) settle(ctx context.Context, path string) {
	var lastSize int64 = -1
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(m.cfg.SettleDelay):
		}

		info, err := os.Stat(path)
		if err != nil {
			// Deleted or renamed mid-copy; the rescan catches the final name.
			return
		}
		if info.Size() == lastSize {
			break
		}
		lastSize = info.Size()
	}
	m.register(ctx, path)
}

func (m *Monitor) register(ctx context.Context, path string) {
	if !m.eligible(path) {
		return
	}

	f, err := m.files.Register(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateFile) {
			return
		}
		log.Printf("monitor: registering %s: %v", path, err)
		return
	}
	log.Printf("monitor: registered %s as %s (part=%q, confidence=%.2f)",
		f.Filename, f.ID, f.PartNumber, f.MappingConfidence)
}

func (m *Monitor) eligible(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(base)), ".")
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if info.Size() < m.cfg.MinFileSize {
		return false
	}
	return true
}
