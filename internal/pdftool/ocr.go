package pdftool

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/research-center/paper-ingest/internal/toolexec"
)

// OCROptions mirror the ocrmypdf flags the pipeline pins down.
type OCROptions struct {
	SkipText      bool   // skip pages that already carry a text layer
	Renderer      string // --pdf-renderer
	OutputType    string // --output-type
	OptimizeLevel int    // --optimize
	Jobs          int    // --jobs; 0 omits the flag
	Language      string // --language; "" omits the flag
}

// DefaultOCROptions returns the fixed configuration the pipeline uses:
// skip existing text, hocr renderer, plain PDF output, no optimization,
// a single worker.
func DefaultOCROptions() OCROptions {
	return OCROptions{
		SkipText:      true,
		Renderer:      "hocr",
		OutputType:    "pdf",
		OptimizeLevel: 0,
		Jobs:          1,
	}
}

// OCRTransformer produces a text-layered PDF from a scanned one via ocrmypdf.
type OCRTransformer struct {
	bin    string
	runner toolexec.Runner
	logger *slog.Logger
}

func NewOCRTransformer(bin string, runner toolexec.Runner, logger *slog.Logger) *OCRTransformer {
	if bin == "" {
		bin = "ocrmypdf"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OCRTransformer{bin: bin, runner: runner, logger: logger}
}

// Transform runs ocrmypdf over inputPath into outputPath. The exit status is
// advisory only: ocrmypdf can exit zero and still produce an empty file, so
// callers must judge success from the artifact, not from the returned error.
func (t *OCRTransformer) Transform(ctx context.Context, inputPath, outputPath string, opts OCROptions) (string, error) {
	var args []string
	if opts.SkipText {
		args = append(args, "--skip-text")
	}
	if opts.Renderer != "" {
		args = append(args, "--pdf-renderer", opts.Renderer)
	}
	if opts.OutputType != "" {
		args = append(args, "--output-type", opts.OutputType)
	}
	args = append(args, "--optimize", strconv.Itoa(opts.OptimizeLevel))
	if opts.Jobs > 0 {
		args = append(args, "--jobs", strconv.Itoa(opts.Jobs))
	}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}
	args = append(args, inputPath, outputPath)

	t.logger.Debug("running ocrmypdf", "input", inputPath, "output", outputPath)
	_, errb, err := t.runner.Run(ctx, t.bin, args...)
	return string(errb), err
}
