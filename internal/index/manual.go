package index

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/research-center/paper-ingest/constants"
	"github.com/research-center/paper-ingest/internal/common"
)

// ManualIndexer builds index records straight from a folder of images,
// bypassing PDF analysis. It exists because only raster images are extracted
// automatically; vector figures are rasterized by hand and indexed here.
type ManualIndexer struct {
	imagesDir string // default scan folder
	builder   *Builder
	logger    *slog.Logger
}

func NewManualIndexer(imagesDir string, builder *Builder, logger *slog.Logger) *ManualIndexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ManualIndexer{imagesDir: imagesDir, builder: builder, logger: logger}
}

// BuildFromImages indexes every png/jpg/jpeg directly inside folder (or the
// default images directory when folder is empty), keeping the original
// filenames as figure IDs: manual mode trusts the caller's naming. The pdf_id
// is synthesized as {paperID}.pdf whether or not such a PDF exists.
func (m *ManualIndexer) BuildFromImages(paperID, folder string) (string, error) {
	paperID = strings.TrimSpace(paperID)
	if paperID == "" {
		return "", common.NewAppError("MANUAL_INDEX", "paper ID cannot be blank", common.ErrInvalidInput)
	}
	if folder == "" {
		folder = m.imagesDir
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return "", common.NewAppError("MANUAL_INDEX", fmt.Sprintf("image folder not readable: %s", folder), common.ErrNotFound)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if constants.IsImageExt(filepath.Ext(e.Name())) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", common.NewAppError("MANUAL_INDEX", fmt.Sprintf("no image files found in %s", folder), common.ErrNotFound)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	figures := make([]FigureRecord, 0, len(names))
	for _, name := range names {
		figures = append(figures, FigureRecord{
			FigureID:  name,
			Caption:   "",
			ImagePath: ArchivePath(paperID, name),
		})
	}

	m.logger.Info("manual image index", "paper_id", paperID, "folder", folder, "figures", len(figures))
	return m.builder.Build(paperID, paperID+".pdf", figures)
}
