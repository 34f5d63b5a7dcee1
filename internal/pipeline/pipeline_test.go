package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/research-center/paper-ingest/internal/archive"
	"github.com/research-center/paper-ingest/internal/classify"
	"github.com/research-center/paper-ingest/internal/index"
	"github.com/research-center/paper-ingest/internal/pdftool"
)

// classifierByStem classifies from a fixed table; unknown stems are Scanned.
type classifierByStem map[string]classify.Classification

func (c classifierByStem) Classify(_ context.Context, pdfPath string) classify.Classification {
	if class, ok := c[archive.Stem(pdfPath)]; ok {
		return class
	}
	return classify.Scanned
}

// fakeOCR pretends to be ocrmypdf: it writes the output artifact unless the
// document stem is marked as failing. Failing runs still "exit zero" so the
// stage's artifact check is what has to catch them.
type fakeOCR struct {
	failFor  map[string]bool
	emptyFor map[string]bool
}

func (f fakeOCR) Transform(_ context.Context, inputPath, outputPath string, _ pdftool.OCROptions) (string, error) {
	stem := archive.Stem(inputPath)
	if f.failFor[stem] {
		return "simulated tool diagnostics", nil
	}
	if f.emptyFor[stem] {
		return "", os.WriteFile(outputPath, nil, 0o644)
	}
	return "", os.WriteFile(outputPath, []byte("%PDF-1.7 ocr"), 0o644)
}

// figuresByStem returns canned figure records per document.
type figuresByStem map[string][]index.FigureRecord

func (f figuresByStem) ExtractFigures(_ context.Context, _, stem string) ([]index.FigureRecord, error) {
	return f[stem], nil
}

func newTestWorkspace(t *testing.T, pdfNames ...string) *archive.Workspace {
	t.Helper()
	ws, err := archive.NewWorkspace(t.TempDir())
	require.NoError(t, err)
	for _, name := range pdfNames {
		require.NoError(t, os.WriteFile(filepath.Join(ws.InputDir, name), []byte("%PDF-1.4 stub"), 0o644))
	}
	return ws
}

func TestOCRAllContinuesPastFailures(t *testing.T) {
	ws := newTestWorkspace(t, "a.pdf", "b.pdf", "c.pdf")
	p := NewProcessor(ws,
		classifierByStem{},
		NewOCRStage(ws, fakeOCR{failFor: map[string]bool{"b": true}}, pdftool.DefaultOCROptions(), nil),
		nil, nil, nil)

	stats, err := p.OCRAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(2), stats.Processed)
	assert.Equal(t, uint32(1), stats.Failed)

	assert.FileExists(t, ws.OCROutputPath("a"))
	assert.NoFileExists(t, ws.OCROutputPath("b"))
	assert.FileExists(t, ws.OCROutputPath("c"))
}

func TestOCRAllSkipsDigitalDocuments(t *testing.T) {
	ws := newTestWorkspace(t, "digital.pdf", "scan.pdf")
	p := NewProcessor(ws,
		classifierByStem{"digital": classify.Digital},
		NewOCRStage(ws, fakeOCR{}, pdftool.DefaultOCROptions(), nil),
		nil, nil, nil)

	stats, err := p.OCRAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(1), stats.Processed)
	assert.Equal(t, uint32(1), stats.Skipped)
	assert.NoFileExists(t, ws.OCROutputPath("digital"))
}

func TestOCRSuccessDependsOnArtifactNotExitStatus(t *testing.T) {
	ws := newTestWorkspace(t, "empty.pdf")
	stage := NewOCRStage(ws, fakeOCR{emptyFor: map[string]bool{"empty": true}}, pdftool.DefaultOCROptions(), nil)

	// the tool "succeeded" but wrote a zero-byte file
	_, err := stage.Run(context.Background(), filepath.Join(ws.InputDir, "empty.pdf"), "empty")
	assert.Error(t, err)
}

func TestIndexAllWritesRecordsForEveryDocument(t *testing.T) {
	ws := newTestWorkspace(t, "dig.pdf", "scan.pdf")
	figs := figuresByStem{
		"dig": {
			{FigureID: "F1.png", ImagePath: index.ArchivePath("dig", "F1.png")},
			{FigureID: "F2.png", ImagePath: index.ArchivePath("dig", "F2.png")},
		},
	}
	p := NewProcessor(ws,
		classifierByStem{"dig": classify.Digital},
		nil,
		NewIndexStage(figs, index.NewBuilder(ws.MetaDir, nil), nil),
		nil, nil)

	stats, err := p.IndexAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(2), stats.Processed)
	assert.Zero(t, stats.Failed)

	// scanned documents get an index too, just with no figures
	assert.FileExists(t, ws.IndexPath("dig"))
	assert.FileExists(t, ws.IndexPath("scan"))

	data, err := os.ReadFile(ws.IndexPath("scan"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"figures": []`)
}

func TestBatchesWithEmptyInputDirectory(t *testing.T) {
	ws := newTestWorkspace(t)
	p := NewProcessor(ws,
		classifierByStem{},
		NewOCRStage(ws, fakeOCR{}, pdftool.DefaultOCROptions(), nil),
		NewIndexStage(figuresByStem{}, index.NewBuilder(ws.MetaDir, nil), nil),
		nil, nil)

	stats, err := p.ProcessAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Processed)
	assert.Zero(t, stats.Failed)

	entries, err := os.ReadDir(ws.MetaDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "empty input must create no metadata")
}
