// Package render generates the output renditions for approved images.
package render

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"partflow/internal/domain"
	"partflow/internal/port"
)

// Config holds renderer settings. Watermark and brand icon are optional
// overlay assets; formats that request a missing asset render without it.
type Config struct {
	OutputDir     string
	WatermarkPath string
	BrandIconPath string
}

type renderer struct {
	cfg       Config
	watermark image.Image
	brandIcon image.Image
}

// New creates a Renderer. Overlay assets are loaded once at startup; a
// missing asset disables that overlay with a warning rather than failing.
func New(cfg Config) port.Renderer {
	r := &renderer{cfg: cfg}
	r.watermark = loadOverlay("watermark", cfg.WatermarkPath)
	r.brandIcon = loadOverlay("brand icon", cfg.BrandIconPath)
	return r
}

func loadOverlay(name, path string) image.Image {
	if path == "" {
		return nil
	}
	img, err := imaging.Open(path)
	if err != nil {
		log.Printf("render: %s %s not loadable, overlay disabled: %v", name, path, err)
		return nil
	}
	return img
}

// GenerateRenditions produces every configured output format from the
// background-removed source. Renditions are grouped per format under the
// output directory and named by part number when one is mapped.
func (r *renderer) GenerateRenditions(ctx context.Context, srcPath string, meta *domain.PartMetadata) ([]domain.Rendition, error) {
	src, err := imaging.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("opening source image: %w", err)
	}

	baseName := meta.PartNumber
	if baseName == "" {
		baseName = stripExt(filepath.Base(srcPath))
	}

	var out []domain.Rendition
	for _, spec := range OutputSpecs {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		rend, err := r.renderOne(src, spec, baseName)
		if err != nil {
			return out, fmt.Errorf("rendering %s: %w", spec.Name, err)
		}
		out = append(out, *rend)
	}
	return out, nil
}

func (r *renderer) renderOne(src image.Image, spec FormatSpec, baseName string) (*domain.Rendition, error) {
	img := src

	if spec.ResizeLongest > 0 {
		img = resizeLongest(img, spec.ResizeLongest)
	}

	// Flatten onto the background before padding so the pad color matches.
	if spec.Background != nil {
		flat := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), spec.Background)
		img = imaging.OverlayCenter(flat, img, 1.0)
	}

	if spec.Extent[0] > 0 && spec.Extent[1] > 0 {
		bg := spec.Background
		if bg == nil {
			bg = white
		}
		canvas := imaging.New(spec.Extent[0], spec.Extent[1], bg)
		img = imaging.OverlayCenter(canvas, img, 1.0)
	}

	if spec.Watermark && r.watermark != nil {
		img = applyWatermark(img, r.watermark)
	}
	if spec.BrandIcon && r.brandIcon != nil {
		img = applyBrandIcon(img, r.brandIcon, spec.IconOffset)
	}

	dir := filepath.Join(r.cfg.OutputDir, spec.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, baseName+"."+spec.Ext)

	var opts []imaging.EncodeOption
	if spec.JPEGQuality > 0 {
		opts = append(opts, imaging.JPEGQuality(spec.JPEGQuality))
	}
	if err := imaging.Save(img, path, opts...); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &domain.Rendition{
		FormatName: spec.Name,
		Path:       path,
		Width:      img.Bounds().Dx(),
		Height:     img.Bounds().Dy(),
		SizeBytes:  info.Size(),
	}, nil
}

// resizeLongest scales so the longest side equals target, preserving aspect
// ratio. Images already smaller than target are left alone.
func resizeLongest(img image.Image, target int) image.Image {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= target && h <= target {
		return img
	}
	if w >= h {
		return imaging.Resize(img, target, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, target, imaging.Lanczos)
}

// applyWatermark scales the watermark to 80% of the base and centers it.
func applyWatermark(base, mark image.Image) image.Image {
	maxW := base.Bounds().Dx() * 8 / 10
	maxH := base.Bounds().Dy() * 8 / 10
	scaled := imaging.Fit(mark, maxW, maxH, imaging.Lanczos)
	return imaging.OverlayCenter(base, scaled, 1.0)
}

// applyBrandIcon places the icon in the top-right corner at the given offset.
func applyBrandIcon(base, icon image.Image, offset [2]int) image.Image {
	x := base.Bounds().Dx() - icon.Bounds().Dx() - offset[0]
	y := offset[1]
	return imaging.Overlay(base, icon, image.Pt(x, y), 1.0)
}

func stripExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
