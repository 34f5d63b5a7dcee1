// Package pdftool wraps the external poppler/ocrmypdf binaries the pipeline
// shells out to. Every adapter takes a toolexec.Runner so tests can substitute
// fakes without invoking real tools.
package pdftool

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/research-center/paper-ingest/internal/toolexec"
)

// FontInspector reports the embedded font objects of a PDF via pdffonts.
type FontInspector struct {
	bin    string
	runner toolexec.Runner
	logger *slog.Logger
}

func NewFontInspector(bin string, runner toolexec.Runner, logger *slog.Logger) *FontInspector {
	if bin == "" {
		bin = "pdffonts"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FontInspector{bin: bin, runner: runner, logger: logger}
}

// Report runs pdffonts and returns the report lines. The first two lines are
// the column header and separator; every further line is one embedded font.
func (f *FontInspector) Report(ctx context.Context, pdfPath string) ([]string, error) {
	out, errb, err := f.runner.Run(ctx, f.bin, pdfPath)
	if err != nil {
		return nil, fmt.Errorf("pdffonts: %w: %s", err, strings.TrimSpace(string(errb)))
	}
	report := strings.TrimSpace(string(out))
	if report == "" {
		return nil, nil
	}
	return strings.Split(report, "\n"), nil
}
