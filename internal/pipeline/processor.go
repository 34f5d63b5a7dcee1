// Package pipeline drives classify → OCR / extract+index over a batch of
// documents, one at a time, in sorted filename order.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/research-center/paper-ingest/constants"
	"github.com/research-center/paper-ingest/internal/archive"
	"github.com/research-center/paper-ingest/internal/classify"
	"github.com/research-center/paper-ingest/internal/journal"
)

// DocumentClassifier is satisfied by classify.Classifier.
type DocumentClassifier interface {
	Classify(ctx context.Context, pdfPath string) classify.Classification
}

// Processor coordinates the per-document stages over every PDF in the input
// directory. Processing is strictly sequential and a single document's
// failure never aborts the batch.
type Processor struct {
	ws         *archive.Workspace
	classifier DocumentClassifier
	ocr        *OCRStage
	index      *IndexStage
	journal    *journal.Journal // nil disables journaling
	logger     *slog.Logger
}

func NewProcessor(ws *archive.Workspace, classifier DocumentClassifier, ocr *OCRStage, index *IndexStage, jr *journal.Journal, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{ws: ws, classifier: classifier, ocr: ocr, index: index, journal: jr, logger: logger}
}

// BatchStats summarizes one batch operation.
type BatchStats struct {
	Processed uint32
	Skipped   uint32
	Failed    uint32
}

func (s *BatchStats) add(o BatchStats) {
	s.Processed += o.Processed
	s.Skipped += o.Skipped
	s.Failed += o.Failed
}

// OCRAll runs the OCR stage over every input PDF that classifies as scanned.
// Digital documents are skipped: the classifier, not output caching, is what
// prevents redundant OCR.
func (p *Processor) OCRAll(ctx context.Context) (BatchStats, error) {
	var stats BatchStats
	pdfs, err := p.ws.InputPDFs()
	if err != nil {
		return stats, err
	}
	if len(pdfs) == 0 {
		p.logger.Info("no PDFs found in input directory", "dir", p.ws.InputDir)
		return stats, nil
	}

	for _, pdf := range pdfs {
		stem := archive.Stem(pdf)
		p.logger.Info("ocr check", "paper_id", stem, "pdf", filepath.Base(pdf))
		runID := p.journal.Begin(ctx, constants.OpOCR, stem, filepath.Base(pdf), p.pageCount(pdf, stem))

		class := p.classifier.Classify(ctx, pdf)
		if class == classify.Digital {
			p.logger.Info("fonts detected, no OCR needed", "paper_id", stem)
			stats.Skipped++
			p.journal.Finish(ctx, runID, string(class), 0, constants.RunStatusSkipped, "")
			continue
		}

		if _, err := p.ocr.Run(ctx, pdf, stem); err != nil {
			stats.Failed++
			p.journal.Finish(ctx, runID, string(class), 0, constants.RunStatusFailed, err.Error())
			continue
		}
		stats.Processed++
		p.journal.Finish(ctx, runID, string(class), 0, constants.RunStatusOCROK, "")
	}
	return stats, nil
}

// IndexAll runs figure extraction and index generation over every input PDF.
// Digital documents get their raster images extracted; anything else gets an
// index with an empty figure list.
func (p *Processor) IndexAll(ctx context.Context) (BatchStats, error) {
	var stats BatchStats
	pdfs, err := p.ws.InputPDFs()
	if err != nil {
		return stats, err
	}
	if len(pdfs) == 0 {
		p.logger.Info("no PDFs found in input directory", "dir", p.ws.InputDir)
		return stats, nil
	}

	for _, pdf := range pdfs {
		stem := archive.Stem(pdf)
		p.logger.Info("extract and index", "paper_id", stem, "pdf", filepath.Base(pdf))
		runID := p.journal.Begin(ctx, constants.OpIndex, stem, filepath.Base(pdf), p.pageCount(pdf, stem))

		class := p.classifier.Classify(ctx, pdf)
		figures, err := p.index.Run(ctx, pdf, stem, class)
		if err != nil {
			p.logger.Error("indexing failed", "paper_id", stem, "error", err)
			stats.Failed++
			p.journal.Finish(ctx, runID, string(class), 0, constants.RunStatusFailed, err.Error())
			continue
		}
		stats.Processed++
		p.journal.Finish(ctx, runID, string(class), figures, constants.RunStatusIndexed, "")
	}
	return stats, nil
}

// ProcessAll is the combined mode: OCR pass first, then extract+index pass.
func (p *Processor) ProcessAll(ctx context.Context) (BatchStats, error) {
	stats, err := p.OCRAll(ctx)
	if err != nil {
		return stats, err
	}
	idxStats, err := p.IndexAll(ctx)
	stats.add(idxStats)
	return stats, err
}

// pageCount inspects the PDF with pdfcpu for journaling. Best-effort: an
// unreadable document reports zero pages and still goes through the pipeline,
// where the external tools have the final say.
func (p *Processor) pageCount(pdfPath, stem string) int {
	n, err := api.PageCountFile(pdfPath)
	if err != nil {
		p.logger.Warn("page inspection failed", "paper_id", stem, "error", err)
		return 0
	}
	return n
}
