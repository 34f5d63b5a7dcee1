// paper-batch runs the pipeline non-interactively, for cron jobs and scripts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/research-center/paper-ingest/internal/archive"
	"github.com/research-center/paper-ingest/internal/classify"
	"github.com/research-center/paper-ingest/internal/common"
	"github.com/research-center/paper-ingest/internal/export"
	"github.com/research-center/paper-ingest/internal/extract"
	"github.com/research-center/paper-ingest/internal/index"
	"github.com/research-center/paper-ingest/internal/journal"
	"github.com/research-center/paper-ingest/internal/pdftool"
	"github.com/research-center/paper-ingest/internal/pipeline"
	"github.com/research-center/paper-ingest/internal/toolexec"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		mode      = flag.String("mode", "all", "operation: ocr | index | all")
		root      = flag.String("root", "", "working root (overrides INGEST_ROOT)")
		exportTo  = flag.String("export", "", "write a run summary XLSX to this path after the batch")
		manualID  = flag.String("manual", "", "build a manual index for this paper ID instead of running a batch")
		manualDir = flag.String("images", "", "image folder for -manual (defaults to the workspace images directory)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *root != "" {
		cfg.Workspace.Root = *root
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ws, err := archive.NewWorkspace(cfg.Workspace.Root)
	if err != nil {
		printError("Error: workspace setup failed: %v\n", err)
		os.Exit(1)
	}

	jr, err := journal.Open(cfg.JournalPath(), logger)
	if err != nil {
		logger.Warn("run journal unavailable, continuing without it", "path", cfg.JournalPath(), "error", err)
		jr = nil
	}
	defer jr.Close()

	runner := toolexec.NewRunner(cfg.Tools.Timeout)
	opts := pdftool.DefaultOCROptions()
	opts.Language = cfg.Tools.OCRLanguage

	builder := index.NewBuilder(ws.MetaDir, logger)
	proc := pipeline.NewProcessor(
		ws,
		classify.NewClassifier(pdftool.NewFontInspector(cfg.Tools.Pdffonts, runner, logger), logger),
		pipeline.NewOCRStage(ws, pdftool.NewOCRTransformer(cfg.Tools.OCRmyPDF, runner, logger), opts, logger),
		pipeline.NewIndexStage(
			extract.NewImageExtractor(ws.ImagesDir, pdftool.NewRasterExtractor(cfg.Tools.Pdfimages, runner, logger), logger),
			builder, logger),
		jr,
		logger,
	)

	ctx := context.Background()

	if *manualID != "" {
		manual := index.NewManualIndexer(ws.ImagesDir, builder, logger)
		path, err := manual.BuildFromImages(*manualID, *manualDir)
		if err != nil {
			printError("Error: manual index failed: %v\n", err)
			os.Exit(1)
		}
		logger.Info("manual index written", "path", path)
		return
	}

	var stats pipeline.BatchStats
	switch *mode {
	case "ocr":
		stats, err = proc.OCRAll(ctx)
	case "index":
		stats, err = proc.IndexAll(ctx)
	case "all":
		stats, err = proc.ProcessAll(ctx)
	default:
		printError("Error: unknown -mode %q (want ocr, index or all)\n", *mode)
		os.Exit(1)
	}
	if err != nil {
		printError("Error: batch aborted: %v\n", err)
		os.Exit(1)
	}
	logger.Info("batch finished",
		"mode", *mode,
		"processed", stats.Processed,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)

	if *exportTo != "" {
		data, err := export.NewService(jr, logger).RunsXLSX(ctx)
		if err != nil {
			printError("Error: export failed: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*exportTo, data, 0o644); err != nil {
			printError("Error: could not write %s: %v\n", *exportTo, err)
			os.Exit(1)
		}
		logger.Info("run summary written", "path", *exportTo)
	}
}
