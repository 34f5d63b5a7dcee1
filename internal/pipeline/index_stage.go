package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/research-center/paper-ingest/internal/classify"
	"github.com/research-center/paper-ingest/internal/index"
)

// FigureExtractor is satisfied by extract.ImageExtractor.
type FigureExtractor interface {
	ExtractFigures(ctx context.Context, pdfPath, stem string) ([]index.FigureRecord, error)
}

// IndexStage extracts figures from a digital PDF and writes its index record.
// Non-digital documents still get a record, just with no figures: their
// images were (or will be) extracted by hand and indexed manually.
type IndexStage struct {
	extractor FigureExtractor
	builder   *index.Builder
	logger    *slog.Logger
}

func NewIndexStage(extractor FigureExtractor, builder *index.Builder, logger *slog.Logger) *IndexStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &IndexStage{extractor: extractor, builder: builder, logger: logger}
}

// Run writes the index record for one document and returns its figure count.
// A raster-extraction failure degrades to an empty figure list rather than
// failing the document; only a failed index write is an error.
func (s *IndexStage) Run(ctx context.Context, pdfPath, stem string, class classify.Classification) (int, error) {
	var figures []index.FigureRecord
	if class == classify.Digital {
		var err error
		figures, err = s.extractor.ExtractFigures(ctx, pdfPath, stem)
		if err != nil {
			s.logger.Error("figure extraction failed, indexing without figures",
				"paper_id", stem, "error", err)
			figures = nil
		}
	} else {
		s.logger.Warn("no fonts detected, treating as manual extraction", "paper_id", stem)
	}

	if _, err := s.builder.Build(stem, filepath.Base(pdfPath), figures); err != nil {
		return 0, err
	}
	return len(figures), nil
}
