package pdftool

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/research-center/paper-ingest/internal/toolexec"
)

// RasterExtractor dumps the embedded raster images of a PDF via pdfimages.
// Vector graphics are not extracted; those go through the manual indexer.
type RasterExtractor struct {
	bin    string
	runner toolexec.Runner
	logger *slog.Logger
}

func NewRasterExtractor(bin string, runner toolexec.Runner, logger *slog.Logger) *RasterExtractor {
	if bin == "" {
		bin = "pdfimages"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RasterExtractor{bin: bin, runner: runner, logger: logger}
}

// Extract writes each embedded raster image as a numbered PNG sharing prefix
// (prefix-000.png, prefix-001.png, ...). The numbering follows the order the
// images appear in the document.
func (r *RasterExtractor) Extract(ctx context.Context, pdfPath, prefix string) error {
	_, errb, err := r.runner.Run(ctx, r.bin, "-png", pdfPath, prefix)
	if err != nil {
		return fmt.Errorf("pdfimages: %w: %s", err, strings.TrimSpace(string(errb)))
	}
	return nil
}
