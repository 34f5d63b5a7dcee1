package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/research-center/paper-ingest/constants"
	"github.com/research-center/paper-ingest/internal/journal"
)

func TestRunsXLSX(t *testing.T) {
	jr, err := journal.Open(":memory:", nil)
	require.NoError(t, err)
	defer jr.Close()

	ctx := context.Background()
	id := jr.Begin(ctx, constants.OpIndex, "P0010", "P0010.pdf", 8)
	jr.Finish(ctx, id, "DIGITAL", 4, constants.RunStatusIndexed, "")

	data, err := NewService(jr, nil).RunsXLSX(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	header, err := wb.GetCellValue("Runs", "C1")
	require.NoError(t, err)
	assert.Equal(t, "Paper ID", header)

	paperID, err := wb.GetCellValue("Runs", "C2")
	require.NoError(t, err)
	assert.Equal(t, "P0010", paperID)

	status, err := wb.GetCellValue("Runs", "H2")
	require.NoError(t, err)
	assert.Equal(t, "INDEXED", status)
}

func TestRunsXLSXEmptyJournal(t *testing.T) {
	jr, err := journal.Open(":memory:", nil)
	require.NoError(t, err)
	defer jr.Close()

	data, err := NewService(jr, nil).RunsXLSX(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, data, "an empty journal still yields a workbook with headers")
}
