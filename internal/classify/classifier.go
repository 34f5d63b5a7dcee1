// Package classify decides whether a PDF is digital (text-bearing) or scanned.
package classify

import (
	"context"
	"log/slog"
)

// Classification of a source PDF.
type Classification string

const (
	Digital Classification = "DIGITAL"
	Scanned Classification = "SCANNED"
)

// fontReportHeaderLines is the size of the pdffonts header (column names plus
// separator). Anything beyond it means at least one embedded font.
const fontReportHeaderLines = 2

// FontReporter is satisfied by pdftool.FontInspector.
type FontReporter interface {
	Report(ctx context.Context, pdfPath string) ([]string, error)
}

// Classifier routes documents by embedded fonts: digital PDFs have them,
// scanned ones usually don't.
type Classifier struct {
	fonts  FontReporter
	logger *slog.Logger
}

func NewClassifier(fonts FontReporter, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{fonts: fonts, logger: logger}
}

// Classify inspects the font report of a PDF. The check is a heuristic: a
// scanned PDF with a stray embedded font classifies as digital, and a digital
// PDF whose fonts carry no real text layer classifies as digital too. A
// failed inspection degrades to Scanned so the document is still routed
// through OCR rather than dropped.
func (c *Classifier) Classify(ctx context.Context, pdfPath string) Classification {
	lines, err := c.fonts.Report(ctx, pdfPath)
	if err != nil {
		c.logger.Warn("font inspection failed, treating as scanned", "path", pdfPath, "error", err)
		return Scanned
	}
	if len(lines) > fontReportHeaderLines {
		return Digital
	}
	return Scanned
}
