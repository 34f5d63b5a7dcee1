package index

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/research-center/paper-ingest/internal/common"
)

// Builder persists index records into the metadata directory.
type Builder struct {
	metaDir string
	logger  *slog.Logger
}

func NewBuilder(metaDir string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{metaDir: metaDir, logger: logger}
}

// Build assembles, validates and writes {paperID}_index.JSON, fully replacing
// any previous file. No merge happens: a manually edited title or caption in a
// prior index does not survive a rebuild. Enrichment is a downstream concern.
func (b *Builder) Build(paperID, pdfID string, figures []FigureRecord) (string, error) {
	rec := NewRecord(paperID, pdfID, figures)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", common.NewAppError("INDEX_ENCODE", "encode index record", err)
	}
	if err := validateRecordJSON(data); err != nil {
		return "", common.NewAppError("INDEX_SCHEMA", "index record violates catalog schema", err)
	}

	path := filepath.Join(b.metaDir, paperID+"_index.JSON")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", common.NewAppError("INDEX_WRITE", "write index record", err)
	}

	b.logger.Info("index written", "paper_id", paperID, "figures", len(rec.Figures), "path", path)
	return path, nil
}
