// Package extract normalizes the embedded raster images of a digital PDF
// into the archive's F{n}.png sequence.
package extract

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	_ "image/jpeg" // decode registration for the corruption check

	"github.com/research-center/paper-ingest/internal/index"
)

// RasterExtractor is satisfied by pdftool.RasterExtractor.
type RasterExtractor interface {
	Extract(ctx context.Context, pdfPath, prefix string) error
}

// ImageExtractor drives raster extraction for one document: dump the raw
// images, re-encode each as PNG under a dense F{n}.png numbering, and clean
// up the intermediates.
type ImageExtractor struct {
	imagesDir string
	raster    RasterExtractor
	logger    *slog.Logger
}

func NewImageExtractor(imagesDir string, raster RasterExtractor, logger *slog.Logger) *ImageExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageExtractor{imagesDir: imagesDir, raster: raster, logger: logger}
}

// ExtractFigures extracts the embedded raster images of pdfPath and returns
// one FigureRecord per successfully converted image, in raw-filename order
// (which mirrors in-document sequence as far as pdfimages numbers them).
// Numbering starts at 1 and stays dense: an image that fails conversion is
// skipped without reserving its number. The returned slice may be empty if
// the PDF embeds no raster images or every conversion failed.
func (e *ImageExtractor) ExtractFigures(ctx context.Context, pdfPath, stem string) ([]index.FigureRecord, error) {
	prefix := filepath.Join(e.imagesDir, stem+"_RAW_")

	// leftovers from a previous or aborted run must not mix with new output
	e.clearRaw(prefix)

	if err := e.raster.Extract(ctx, pdfPath, prefix); err != nil {
		return nil, err
	}

	raws, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return nil, fmt.Errorf("collect raw images: %w", err)
	}
	sort.Strings(raws)

	figures := []index.FigureRecord{}
	next := 1
	for _, raw := range raws {
		img, err := decodeImage(raw)
		if err == nil {
			name := fmt.Sprintf("F%d.png", next)
			if err = encodePNG(filepath.Join(e.imagesDir, name), img); err == nil {
				next++
				_ = os.Remove(raw) // best-effort cleanup, missing file is fine
				figures = append(figures, index.FigureRecord{
					FigureID:  name,
					Caption:   "",
					ImagePath: index.ArchivePath(stem, name),
				})
				continue
			}
		}
		e.logger.Warn("could not convert raw image, skipping", "raw", filepath.Base(raw), "error", err)
	}
	return figures, nil
}

func (e *ImageExtractor) clearRaw(prefix string) {
	stale, _ := filepath.Glob(prefix + "*.png")
	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			e.logger.Warn("could not remove stale raw image", "path", path, "error", err)
		}
	}
}

// decodeImage opens and fully decodes an image; a failed decode marks the
// file as corrupt.
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func encodePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
