package journal

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/research-center/paper-ingest/constants"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestBeginFinishRoundtrip(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	id := j.Begin(ctx, constants.OpIndex, "P0010", "P0010.pdf", 12)
	require.NotEqual(t, uuid.Nil, id)
	j.Finish(ctx, id, "DIGITAL", 3, constants.RunStatusIndexed, "")

	runs, err := j.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, id, r.ID)
	assert.Equal(t, constants.OpIndex, r.Operation)
	assert.Equal(t, "P0010", r.PaperID)
	assert.Equal(t, "P0010.pdf", r.PDFID)
	assert.Equal(t, "DIGITAL", r.Classification)
	assert.Equal(t, 12, r.Pages)
	assert.Equal(t, 3, r.Figures)
	assert.Equal(t, constants.RunStatusIndexed, r.Status)
	assert.Empty(t, r.Error)
	assert.False(t, r.StartedAt.IsZero())
	assert.False(t, r.FinishedAt.IsZero())
}

func TestFailedRunKeepsDiagnostics(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	id := j.Begin(ctx, constants.OpOCR, "P0011", "P0011.pdf", 0)
	j.Finish(ctx, id, "SCANNED", 0, constants.RunStatusFailed, "OCR_FAILED: no OCR output")

	runs, err := j.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, constants.RunStatusFailed, runs[0].Status)
	assert.Contains(t, runs[0].Error, "no OCR output")
}

func TestNilJournalIsInert(t *testing.T) {
	var j *Journal
	ctx := context.Background()

	id := j.Begin(ctx, constants.OpOCR, "P0012", "P0012.pdf", 0)
	assert.Equal(t, uuid.Nil, id)
	j.Finish(ctx, id, "", 0, constants.RunStatusFailed, "")

	runs, err := j.Runs(ctx)
	assert.NoError(t, err)
	assert.Nil(t, runs)
	assert.NoError(t, j.Close())
}
