// Package archive owns the on-disk layout of one working root: where input
// PDFs live and where OCR output, normalized images and index records go.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const dirPerm = 0o755

// Workspace is the fixed directory set under one working root. All artifact
// paths for a document are derived from its stem, so no two documents'
// working files collide.
type Workspace struct {
	Root      string
	InputDir  string
	OCRDir    string
	ImagesDir string
	MetaDir   string
}

// NewWorkspace builds the directory set under root, creating any missing
// directory. Failure to create one is fatal to the caller: nothing else in
// the pipeline can run without it.
func NewWorkspace(root string) (*Workspace, error) {
	ws := &Workspace{
		Root:      root,
		InputDir:  filepath.Join(root, "input"),
		OCRDir:    filepath.Join(root, "ocr_output"),
		ImagesDir: filepath.Join(root, "images"),
		MetaDir:   filepath.Join(root, "metadata"),
	}
	for _, dir := range []string{ws.InputDir, ws.OCRDir, ws.ImagesDir, ws.MetaDir} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return ws, nil
}

// InputPDFs lists the PDFs in the input directory sorted by filename, which
// fixes the processing order of a batch.
func (w *Workspace) InputPDFs() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(w.InputDir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("scan input directory: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// OCROutputPath is where the OCR'd copy of a document goes.
func (w *Workspace) OCROutputPath(stem string) string {
	return filepath.Join(w.OCRDir, stem+"_ocr.pdf")
}

// RawImagePrefix is the shared prefix for the intermediate images pdfimages
// writes for one document. These must not persist past a successful run.
func (w *Workspace) RawImagePrefix(stem string) string {
	return filepath.Join(w.ImagesDir, stem+"_RAW_")
}

// IndexPath is where the index record of a document goes.
func (w *Workspace) IndexPath(stem string) string {
	return filepath.Join(w.MetaDir, stem+"_index.JSON")
}

// Stem derives the paper ID from a PDF path: the filename without extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
