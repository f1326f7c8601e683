// Package bgremove is the HTTP client for the background-removal service.
// The service wraps an ML segmentation model; this side only speaks its
// multipart request/response contract.
package bgremove

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"partflow/internal/port"
)

type client struct {
	http *resty.Client
}

// NewClient creates a background-removal client for the given base URL.
func NewClient(baseURL string) port.BackgroundRemover {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(2 * time.Minute). // large PSD sources take a while
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second)

	return &client{http: c}
}

// RemoveBackground posts the source image to the removal service and writes
// the returned PNG to dstPath. It returns the path of the written preview.
func (c *client) RemoveBackground(ctx context.Context, srcPath, dstPath string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return "", fmt.Errorf("creating preview directory: %w", err)
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetFile("image", srcPath).
		SetQueryParam("format", "png").
		SetOutput(dstPath).
		Post("/v1/remove")
	if err != nil {
		return "", fmt.Errorf("calling background removal service: %w", err)
	}
	if resp.IsError() {
		// SetOutput wrote the error body to dstPath; discard it.
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("background removal service returned %d", resp.StatusCode())
	}

	log.Printf("bgremove: %s processed in %s", filepath.Base(srcPath), time.Since(start).Round(time.Millisecond))
	return dstPath, nil
}
