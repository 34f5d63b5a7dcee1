// Package index assembles and persists the per-document metadata records the
// downstream catalog consumes.
package index

import "fmt"

// ArchiveRoot is the virtual path prefix under which the downstream catalog
// files every paper's artifacts.
const ArchiveRoot = "data/research_center"

// FigureRecord describes one extracted or manually indexed image. Captions
// are filled in by a separate enrichment step, never here.
type FigureRecord struct {
	FigureID  string `json:"figure_ID"`
	Caption   string `json:"caption"`
	ImagePath string `json:"image_path"`
}

// Citation holds the citation formats. Only APA is carried, and it stays
// empty until enrichment.
type Citation struct {
	APA string `json:"APA"`
}

// Record is the canonical per-document metadata unit. The exact field set and
// order is the compatibility contract with the downstream catalog; fields left
// empty or null are deferred to enrichment, not omitted.
type Record struct {
	PaperID     string         `json:"paper_ID"`
	Access      string         `json:"access"`
	PaperAccess string         `json:"paper_access"`
	PaperTitle  string         `json:"paper_title"`
	Authors     []string       `json:"authors"`
	PDFID       string         `json:"pdf_id"`
	PDFPath     string         `json:"pdf_path"`
	Year        *int           `json:"year"`
	Journal     string         `json:"journal"`
	Figures     []FigureRecord `json:"figures"`
	Citation    Citation       `json:"citation"`
}

// ArchivePath builds the virtual catalog path for one artifact of a paper.
func ArchivePath(paperID, name string) string {
	return fmt.Sprintf("%s/%s/%s", ArchiveRoot, paperID, name)
}

// NewRecord assembles a skeleton record for paperID. The record is identical
// whether figures came from automatic extraction or manual indexing.
func NewRecord(paperID, pdfID string, figures []FigureRecord) Record {
	if figures == nil {
		figures = []FigureRecord{}
	}
	return Record{
		PaperID:     paperID,
		Access:      "private",
		PaperAccess: "private",
		Authors:     []string{},
		PDFID:       pdfID,
		PDFPath:     ArchivePath(paperID, pdfID),
		Figures:     figures,
	}
}
