package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/research-center/paper-ingest/internal/archive"
	"github.com/research-center/paper-ingest/internal/common"
	"github.com/research-center/paper-ingest/internal/pdftool"
)

// OCRTransformer is satisfied by pdftool.OCRTransformer.
type OCRTransformer interface {
	Transform(ctx context.Context, inputPath, outputPath string, opts pdftool.OCROptions) (stderr string, err error)
}

// OCRStage turns one scanned PDF into ocr_output/{stem}_ocr.pdf.
type OCRStage struct {
	ws     *archive.Workspace
	ocr    OCRTransformer
	opts   pdftool.OCROptions
	logger *slog.Logger
}

func NewOCRStage(ws *archive.Workspace, ocr OCRTransformer, opts pdftool.OCROptions, logger *slog.Logger) *OCRStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &OCRStage{ws: ws, ocr: ocr, opts: opts, logger: logger}
}

// Run OCRs pdfPath and returns the output path. Success is judged by a
// postcondition, not by the tool's exit status: the output must exist and be
// non-empty. OCR tools can exit zero while producing empty or partial output
// on edge-case inputs, and the artifact is what downstream actually needs.
// Re-running overwrites the previous output for the same document.
func (s *OCRStage) Run(ctx context.Context, pdfPath, stem string) (string, error) {
	outPath := s.ws.OCROutputPath(stem)

	stderr, runErr := s.ocr.Transform(ctx, pdfPath, outPath, s.opts)

	st, statErr := os.Stat(outPath)
	if statErr != nil || st.Size() == 0 {
		diag := strings.TrimSpace(stderr)
		s.logger.Error("ocr produced no usable output",
			"paper_id", stem, "exec_error", runErr, "stderr", diag)
		return "", common.NewAppError("OCR_FAILED",
			fmt.Sprintf("no OCR output for %s", filepath.Base(pdfPath)), common.ErrToolFailure)
	}
	if runErr != nil {
		// the tool complained but the artifact is usable; keep it
		s.logger.Warn("ocr exited non-zero but produced output", "paper_id", stem, "error", runErr)
	}

	s.logger.Info("ocr output written", "paper_id", stem, "path", outPath, "bytes", st.Size())
	return outPath, nil
}
