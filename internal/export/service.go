// Package export renders the run journal as an XLSX workbook for operators.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/research-center/paper-ingest/internal/journal"
)

// Service is a tiny façade over the journal that produces XLSX bytes.
type Service struct {
	journal *journal.Journal
	logger  *slog.Logger
}

func NewService(jr *journal.Journal, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{journal: jr, logger: logger}
}

// RunsXLSX returns an XLSX workbook (as bytes) summarizing every recorded run.
func (s *Service) RunsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	runs, err := s.journal.Runs(ctx)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Runs"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Started",
		"Operation",
		"Paper ID",
		"PDF",
		"Classification",
		"Pages",
		"Figures",
		"Status",
		"Error",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range runs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.StartedAt.Format("2006-01-02 15:04:05"))
		write(2, r.Operation)
		write(3, r.PaperID)
		write(4, r.PDFID)
		write(5, r.Classification)
		write(6, r.Pages)
		write(7, r.Figures)
		write(8, string(r.Status))
		write(9, r.Error)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 20) // timestamp
	_ = f.SetColWidth(sheet, "C", "D", 24) // paper/pdf ids
	_ = f.SetColWidth(sheet, "I", "I", 48) // error text

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("runs exported", "rows", len(runs), "duration_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}
