package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkspaceCreatesDirectories(t *testing.T) {
	root := t.TempDir()
	ws, err := NewWorkspace(root)
	require.NoError(t, err)

	for _, dir := range []string{ws.InputDir, ws.OCRDir, ws.ImagesDir, ws.MetaDir} {
		st, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, st.IsDir())
	}
}

func TestInputPDFsSortedAndFiltered(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"b.pdf", "a.pdf", "notes.txt", "c.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(ws.InputDir, name), []byte("x"), 0o644))
	}

	pdfs, err := ws.InputPDFs()
	require.NoError(t, err)
	require.Len(t, pdfs, 3)
	assert.Equal(t, "a.pdf", filepath.Base(pdfs[0]))
	assert.Equal(t, "b.pdf", filepath.Base(pdfs[1]))
	assert.Equal(t, "c.pdf", filepath.Base(pdfs[2]))
}

func TestArtifactPaths(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(ws.OCRDir, "P0010_ocr.pdf"), ws.OCROutputPath("P0010"))
	assert.Equal(t, filepath.Join(ws.ImagesDir, "P0010_RAW_"), ws.RawImagePrefix("P0010"))
	assert.Equal(t, filepath.Join(ws.MetaDir, "P0010_index.JSON"), ws.IndexPath("P0010"))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "P0010", Stem("/data/input/P0010.pdf"))
	assert.Equal(t, "paper.v2", Stem("paper.v2.pdf"))
}
